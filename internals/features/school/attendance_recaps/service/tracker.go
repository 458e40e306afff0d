package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Tracker mencatat request terbaru per "view" (satu layar/klien).
// Request yang tersusul dibatalkan dan hasilnya dibuang oleh pemanggil.
type Tracker struct {
	mu      sync.Mutex
	current map[string]trackedRequest
}

type trackedRequest struct {
	token  uuid.UUID
	cancel context.CancelFunc
}

func NewTracker() *Tracker {
	return &Tracker{current: map[string]trackedRequest{}}
}

// Begin mendaftarkan request baru untuk viewKey dan membatalkan request sebelumnya.
// done wajib dipanggil setelah hasil diproses.
func (t *Tracker) Begin(parent context.Context, viewKey string) (ctx context.Context, token uuid.UUID, done func()) {
	ctx, cancel := context.WithCancel(parent)
	token = uuid.New()

	t.mu.Lock()
	if prev, ok := t.current[viewKey]; ok {
		prev.cancel()
	}
	t.current[viewKey] = trackedRequest{token: token, cancel: cancel}
	t.mu.Unlock()

	done = func() {
		cancel()
		t.mu.Lock()
		if cur, ok := t.current[viewKey]; ok && cur.token == token {
			delete(t.current, viewKey)
		}
		t.mu.Unlock()
	}
	return ctx, token, done
}

// Current: true jika token masih request terbaru untuk viewKey.
func (t *Tracker) Current(viewKey string, token uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.current[viewKey]
	return ok && cur.token == token
}

// Pending: jumlah view yang masih punya request berjalan.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.current)
}
