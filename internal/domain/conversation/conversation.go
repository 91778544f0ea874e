package conversation

import "time"

// Role is the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid checks if the role is one of the supported values.
func (r Role) IsValid() bool { return r == RoleUser || r == RoleAssistant }

// Turn is one logged message of a project's conversation.
type Turn struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewTurn creates a turn stamped with the current UTC time in ISO-8601.
func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// Note is a derived memory note of a project.
type Note struct {
	File    string
	Content string
}

// Project summarizes one project directory of a user.
type Project struct {
	Name      string
	Turns     int
	Notes     int
	Legacy    bool
	UpdatedAt time.Time
}

// Transcript is the result of reading a project's conversation.
// Skipped counts malformed records that were dropped.
type Transcript struct {
	Turns   []Turn
	Legacy  bool
	Skipped int
}
