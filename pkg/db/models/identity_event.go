package models

import "time"

// IdentityEvent records a processed identity provider webhook delivery.
// The unique event id makes duplicate deliveries no-ops.
type IdentityEvent struct {
	ID         int64     `db:"id"`
	EventID    string    `db:"event_id"`
	Type       string    `db:"type"`
	ReceivedAt time.Time `db:"received_at"`
}
