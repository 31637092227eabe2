package models

import "time"

// Session records what the facade knows about one chat thread. The entry
// is overwritten, not merged, on every chat call for the same id.
type Session struct {
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
	AgentUsed    string    `json:"agent_used"`
}
