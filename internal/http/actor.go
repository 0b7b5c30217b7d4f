package http

import "net/http"

// ActorResolver returns the identity recorded as the author of a mutation.
type ActorResolver func(r *http.Request) string

// StaticActor attributes every mutation to the same actor.
func StaticActor(actor string) ActorResolver {
	return func(*http.Request) string {
		return actor
	}
}
