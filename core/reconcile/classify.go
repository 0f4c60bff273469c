package reconcile

// ClassifyRemoval maps a raw removal indicator to a RemovalMethod.
// It is total: every indicator maps to exactly one method.
func ClassifyRemoval(indicator *string) RemovalMethod {
	if indicator == nil {
		return NoRemoval
	}
	switch *indicator {
	case "author", "moderator":
		return RemovedByModerator
	case "deleted":
		return DeletedByUser
	default:
		return UnknownRemovalMethod
	}
}

// IsTrackable reports whether a remote post may start being tracked: it is not
// yet stored and its flair is not untracked.
func IsTrackable(post RemotePost, stored map[string]struct{}, untracked FlairSet) bool {
	if _, ok := stored[post.ID]; ok {
		return false
	}
	return !untracked.Contains(ParseFlair(post.Flair))
}
