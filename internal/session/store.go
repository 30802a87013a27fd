package session

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	wg sync.WaitGroup
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Delete removes a session, reporting whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// List returns snapshots of all sessions, newest first.
func (st *Store) List() []Info {
	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.mu.Unlock()

	infos := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Snapshot())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos
}

// Cleanup removes sessions idle past the TTL.
func (st *Store) Cleanup() {
	st.mu.Lock()
	stale := make([]string, 0)
	now := time.Now()
	for id, s := range st.sessions {
		if now.Sub(s.UpdatedAt()) > st.ttl {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(st.sessions, id)
	}
	st.mu.Unlock()
}

// StartCleanup launches the periodic eviction loop; it stops when ctx
// is cancelled. Call Stop to wait for it during shutdown.
func (st *Store) StartCleanup(ctx context.Context, every time.Duration) {
	st.wg.Add(1)
	go func() {
		defer st.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.Cleanup()
			}
		}
	}()
}

// Stop waits for the cleanup loop to exit.
func (st *Store) Stop() {
	st.wg.Wait()
}
