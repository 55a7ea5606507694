package security

import (
	"sync"
	"time"
)

// Denylist holds revoked bearer tokens in memory.
// Revoked tokens are forgotten after retain, once they could no longer
// be valid anyway.
type Denylist struct {
	mu      sync.RWMutex
	tokens  map[string]time.Time // token -> revoked at
	retain  time.Duration
	nowFunc func() time.Time
}

func NewDenylist(retain time.Duration) *Denylist {
	return &Denylist{
		tokens:  make(map[string]time.Time),
		retain:  retain,
		nowFunc: time.Now,
	}
}

func (d *Denylist) RevokeToken(token string) {
	d.mu.Lock()
	d.tokens[token] = d.nowFunc()
	d.mu.Unlock()
}

func (d *Denylist) IsTokenRevoked(token string) bool {
	d.mu.RLock()
	_, ok := d.tokens[token]
	d.mu.RUnlock()
	return ok
}

// Prune drops revoked tokens older than retain. retain <= 0 keeps them all.
func (d *Denylist) Prune() int {
	if d.retain <= 0 {
		return 0
	}
	cutoff := d.nowFunc().Add(-d.retain)
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for tok, at := range d.tokens {
		if at.Before(cutoff) {
			delete(d.tokens, tok)
			n++
		}
	}
	return n
}
