package mcp

// In this file: the session table for the HTTP binding.  The table is owned
// by the serving server, not package state, and every exit path (explicit
// DELETE, transport rejection of a stale id) goes through it.

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// headerSessionID is the header carrying the session continuation id.
const headerSessionID = "Mcp-Session-Id"

var errUnknownSession = errors.New("unknown session")

// sessionRegistry tracks live HTTP sessions.  It implements mcp-go's
// server.SessionIdManager, so the streamable transport creates and validates
// session ids through this table.
type sessionRegistry struct {
	mu     sync.RWMutex
	active map[string]time.Time
	logger *slog.Logger
}

func newSessionRegistry(lg *slog.Logger) *sessionRegistry {
	if lg == nil {
		lg = slog.Default()
	}
	return &sessionRegistry{
		active: make(map[string]time.Time),
		logger: lg,
	}
}

// Generate mints a new session id and records it as live.
func (r *sessionRegistry) Generate() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.active[id] = time.Now()
	r.mu.Unlock()
	r.logger.Info("mcp: session started", "session_id", id)
	return id
}

// Validate reports whether the session id belongs to a live session.
func (r *sessionRegistry) Validate(id string) (isTerminated bool, err error) {
	r.mu.RLock()
	_, ok := r.active[id]
	r.mu.RUnlock()
	if !ok {
		return true, errUnknownSession
	}
	return false, nil
}

// Terminate removes the session.  Unknown ids yield errUnknownSession.
func (r *sessionRegistry) Terminate(id string) (isNotAllowed bool, err error) {
	if !r.remove(id) {
		return false, errUnknownSession
	}
	return false, nil
}

// remove deletes the session from the table, reporting whether it existed.
func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	_, ok := r.active[id]
	delete(r.active, id)
	r.mu.Unlock()
	if ok {
		r.logger.Info("mcp: session closed", "session_id", id)
	}
	return ok
}

// len reports the number of live sessions.
func (r *sessionRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}
