package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTransport(t *testing.T) {
	transport := newTransport(5 * time.Second)

	assert.Equal(t, 100, transport.MaxIdleConns)
	assert.Equal(t, 90*time.Second, transport.IdleConnTimeout)
	assert.Equal(t, 5*time.Second, transport.TLSHandshakeTimeout)
	assert.Equal(t, 5*time.Second, transport.ResponseHeaderTimeout)
	assert.True(t, transport.ForceAttemptHTTP2)
	assert.NotNil(t, transport.DialContext)
}
