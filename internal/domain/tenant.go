package domain

import "context"

// Actor is the tenant and acting user a request runs as. Authentication
// itself happens upstream; the engine only needs identifiers to stamp on
// audit entries and scope queries.
type Actor struct {
	TenantID string
	UserID   string
}

type actorContextKey struct{}

// ActorToContext stores the actor in the context.
func ActorToContext(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from the context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
