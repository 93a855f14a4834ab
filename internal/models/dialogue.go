package models

import "time"

// Role identifies the author of a dialogue turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in an assistant conversation.
type Turn struct {
	Role      Role
	Text      string
	Timestamp time.Time
}
