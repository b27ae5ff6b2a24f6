// Package identity carries the authenticated user through request contexts
// and broadcasts sign-in and sign-out events to the components that hold
// per-user state.
package identity

import (
	"context"
	"errors"
	"sort"
	"sync"

	"spendwize/internal/logger"
)

// ErrNoUser is returned when no user is attached to the context.
var ErrNoUser = errors.New("identity: no authenticated user")

// Event names an auth state change.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// User is the authenticated principal.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Session is delivered to subscribers on every auth state change.
type Session struct {
	Event Event
	User  User
}

// Provider is the identity capability injected into components.
type Provider interface {
	CurrentUser(ctx context.Context) (*User, error)
	OnAuthStateChange(callback func(Session)) (unsubscribe func())
	SignOut(ctx context.Context) error
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the user attached to ctx, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	return u, ok && u != nil
}

// Hub is the in-process Provider. Construct one per process and pass it to
// whatever needs it.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]func(Session)
	next uint64
}

// NewHub returns a Hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func(Session))}
}

// CurrentUser returns the user attached to ctx.
func (h *Hub) CurrentUser(ctx context.Context) (*User, error) {
	u, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoUser
	}
	return u, nil
}

// OnAuthStateChange registers callback for every subsequent event. The
// returned function removes the subscription and is safe to call more
// than once.
func (h *Hub) OnAuthStateChange(callback func(Session)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = callback
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers s to every subscriber in registration order. Callbacks
// run on the caller's goroutine and must not block.
func (h *Hub) Publish(s Session) {
	h.mu.RLock()
	ids := make([]uint64, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	callbacks := make([]func(Session), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, h.subs[id])
	}
	h.mu.RUnlock()

	logger.Named("identity").Debugw("auth state change", "event", s.Event, "user_id", s.User.ID)
	for _, cb := range callbacks {
		cb(s)
	}
}

// SignOut publishes SIGNED_OUT for the user attached to ctx.
func (h *Hub) SignOut(ctx context.Context) error {
	u, err := h.CurrentUser(ctx)
	if err != nil {
		return err
	}
	h.Publish(Session{Event: EventSignedOut, User: *u})
	return nil
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
