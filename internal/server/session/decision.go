package session

import "github.com/dmitrijs2005/jablog/internal/server/auth"

// Identity is the verified holder of a session.
type Identity = auth.Identity

// Decision is the outcome of authoritative verification. It is either
// Allowed or DenyRedirect; callers switch on the concrete type.
type Decision interface {
	decision()
}

// Allowed grants access to Identity.
type Allowed struct {
	Identity Identity
}

// DenyRedirect refuses access and names where to send the client.
type DenyRedirect struct {
	Target string
}

func (Allowed) decision()      {}
func (DenyRedirect) decision() {}
