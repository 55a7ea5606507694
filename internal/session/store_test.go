package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/session"
)

var admin = models.User{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: models.RoleAdmin}

func TestStore_CreateGetDelete(t *testing.T) {
	s := session.NewStore(time.Hour)

	sess := s.Create(admin)
	assert.True(t, strings.HasPrefix(sess.Token, session.TokenPrefix), sess.Token)
	assert.False(t, sess.Expiry.IsZero())

	got, ok := s.Get(sess.Token)
	require.True(t, ok)
	assert.Equal(t, admin, got.User)

	s.Delete(sess.Token)
	_, ok = s.Get(sess.Token)
	assert.False(t, ok)
}

func TestStore_TokensAreUnique(t *testing.T) {
	s := session.NewStore(0)
	a := s.Create(admin)
	b := s.Create(admin)
	assert.NotEqual(t, a.Token, b.Token)
	assert.True(t, a.Expiry.IsZero(), "ttl 0 never expires")
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := session.NewStore(time.Minute, session.WithClock(func() time.Time { return now }))

	expired := s.Create(admin)
	now = now.Add(30 * time.Second)
	live := s.Create(admin)
	now = now.Add(45 * time.Second)

	_, ok := s.Get(expired.Token)
	assert.False(t, ok)
	_, ok = s.Get(live.Token)
	assert.True(t, ok)

	now = now.Add(time.Hour)
	assert.Equal(t, 1, s.Sweep())
	assert.Zero(t, s.Len())
}

func TestStore_SweeperStopsWithContext(t *testing.T) {
	s := session.NewStore(time.Nanosecond)
	s.Create(admin)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.StartSweeper(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestStore_ListSkipsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := session.NewStore(time.Minute, session.WithClock(func() time.Time { return now }))

	old := s.Create(admin)
	now = now.Add(20 * time.Second)
	newer := s.Create(admin)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, old.Token, list[0].Token)
	assert.Equal(t, newer.Token, list[1].Token)

	now = now.Add(50 * time.Second)
	list = s.List()
	require.Len(t, list, 1)
	assert.Equal(t, newer.Token, list[0].Token)
	assert.Equal(t, 2, s.Len())
}
