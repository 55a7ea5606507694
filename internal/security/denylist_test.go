package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDenylist_Tokens(t *testing.T) {
	d := NewDenylist(time.Hour)
	assert.False(t, d.IsTokenRevoked("t1"))

	d.RevokeToken("t1")
	assert.True(t, d.IsTokenRevoked("t1"))
	assert.False(t, d.IsTokenRevoked("t2"))
}

func TestDenylist_PruneOldTokens(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDenylist(time.Hour)
	d.nowFunc = func() time.Time { return now }

	d.RevokeToken("old")
	now = now.Add(50 * time.Minute)
	d.RevokeToken("new")
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, d.Prune())
	assert.False(t, d.IsTokenRevoked("old"))
	assert.True(t, d.IsTokenRevoked("new"))
}

func TestDenylist_ZeroRetainKeepsEverything(t *testing.T) {
	d := NewDenylist(0)
	d.RevokeToken("t1")
	assert.Zero(t, d.Prune())
	assert.True(t, d.IsTokenRevoked("t1"))
}
