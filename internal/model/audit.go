package model

import "time"

// AuditEntry is an append-only record of a security-relevant action.
// ActorID is nil for unauthenticated actors.
type AuditEntry struct {
	ID        int64
	ActorID   *int64
	Action    string
	IP        string
	UserAgent string
	RequestID string
	CreatedAt time.Time
}
