package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRemoval(t *testing.T) {
	tests := []struct {
		name      string
		indicator *string
		want      RemovalMethod
	}{
		{"NotRemoved", nil, NoRemoval},
		{"Author", strPtr("author"), RemovedByModerator},
		{"Moderator", strPtr("moderator"), RemovedByModerator},
		{"Deleted", strPtr("deleted"), DeletedByUser},
		{"Reddit", strPtr("reddit"), UnknownRemovalMethod},
		{"CopyrightTakedown", strPtr("copyright_takedown"), UnknownRemovalMethod},
		{"Empty", strPtr(""), UnknownRemovalMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, ClassifyRemoval(tt.indicator))
			})
		})
	}
}

func TestParseFlair(t *testing.T) {
	tests := []struct {
		label string
		want  Flair
	}{
		{"Solved", FlairSolved},
		{"  abandoned ", FlairAbandoned},
		{"DISCUSSION", FlairDiscussion},
		{"Identification", FlairIdentification},
		{"Question", FlairQuestion},
		{"", FlairUnknown},
		{"Meta", FlairUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFlair(tt.label))
		})
	}
}

func TestIsTrackable(t *testing.T) {
	untracked := NewFlairSet(FlairSolved, FlairAbandoned)
	stored := map[string]struct{}{"known": {}}

	assert.True(t, IsTrackable(RemotePost{ID: "new", Flair: "Discussion"}, stored, untracked))
	assert.True(t, IsTrackable(RemotePost{ID: "new"}, stored, untracked))
	assert.False(t, IsTrackable(RemotePost{ID: "known", Flair: "Discussion"}, stored, untracked))
	assert.False(t, IsTrackable(RemotePost{ID: "new", Flair: "Solved"}, stored, untracked))
}
