package uptime

import "time"

// Ping is one heartbeat received from the external keep-alive monitor.
type Ping struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Stats summarizes the ping log for the admin dashboard.
type Stats struct {
	Count     int        `json:"count"`
	FirstPing *time.Time `json:"first_ping,omitempty"`
	LastPing  *time.Time `json:"last_ping,omitempty"`
	// UptimeSeconds is the span between the first and last recorded ping.
	UptimeSeconds int64 `json:"uptime_seconds"`
}
