package domain

import "time"

// Credential is the identity decoded from a verified access token. It is only
// ever produced by token verification and is read-only afterwards.
type Credential struct {
	Subject   string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}
