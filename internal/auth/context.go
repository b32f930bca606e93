package auth

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

type slotKey struct{}

// userSlot lets outer middleware observe the user authenticated further
// down the chain, where the request context has already been replaced.
type userSlot struct {
	id uuid.UUID
	ok bool
}

// WithUserID returns a copy of ctx carrying the authenticated user's ID.
// If ctx holds a slot from WithUserSlot, the ID is recorded there too.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	if s, ok := ctx.Value(slotKey{}).(*userSlot); ok {
		s.id, s.ok = id, true
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFromContext returns the authenticated user's ID, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if id, ok := ctx.Value(ctxKey{}).(uuid.UUID); ok {
		return id, true
	}
	if s, ok := ctx.Value(slotKey{}).(*userSlot); ok && s.ok {
		return s.id, true
	}
	return uuid.Nil, false
}

// WithUserSlot returns a copy of ctx in which a later WithUserID on a derived
// context becomes visible to UserIDFromContext(ctx).
func WithUserSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, slotKey{}, &userSlot{})
}
