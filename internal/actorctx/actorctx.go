// Package actorctx carries the acting user through request context. Identity
// arrives pre-authenticated from the upstream gateway; the core never reads a
// session singleton.
package actorctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Role names a workflow permission group.
type Role string

const (
	RoleSKPD        Role = "skpd"
	RoleRegistrasi  Role = "registrasi"
	RoleVerifikasi  Role = "verifikasi"
	RoleKoreksi     Role = "koreksi"
	RoleSP2D        Role = "sp2d"
	RolePajak       Role = "pajak"
	RoleAdmin       Role = "admin"
)

// Actor is the acting user of a workflow operation.
type Actor struct {
	ID          snowflake.ID
	Role        Role
	DisplayName string
}

// Valid reports whether the actor carries enough identity to act.
func (a Actor) Valid() bool {
	return a.ID != 0 && strings.TrimSpace(string(a.Role)) != ""
}

// Is reports whether the actor holds the given role. Admin passes every gate.
func (a Actor) Is(role Role) bool {
	return a.Role == role || a.Role == RoleAdmin
}

type contextKey struct{ name string }

var (
	actorKey     = contextKey{"actor"}
	requestIDKey = contextKey{"request_id"}
)

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ParseRole normalizes a role header value; empty result means unknown.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleSKPD:
		return RoleSKPD
	case RoleRegistrasi:
		return RoleRegistrasi
	case RoleVerifikasi:
		return RoleVerifikasi
	case RoleKoreksi:
		return RoleKoreksi
	case RoleSP2D:
		return RoleSP2D
	case RolePajak:
		return RolePajak
	case RoleAdmin:
		return RoleAdmin
	default:
		return ""
	}
}
