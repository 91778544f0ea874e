package document

// Type is the source of a retrievable document.
type Type string

// Document types.
const (
	// Conversation documents come from a project's turn log or legacy record.
	Conversation Type = "conversation"
	// Memory documents come from a project's derived memory notes.
	Memory Type = "memory"
)

// Metadata describes where a document came from.
// Role, Timestamp and Turn are set for conversation documents, File for memory documents.
type Metadata struct {
	Type      Type
	Project   string
	Role      string
	Timestamp string
	Turn      *int
	File      string
}

// Document is a unit of retrievable text. It lives for a single query.
type Document struct {
	text     string
	metadata Metadata
}

// NewConversation creates a document for the turn-th message of a project's conversation.
func NewConversation(project string, turn int, role, timestamp, text string) Document {
	t := turn
	return Document{
		text: text,
		metadata: Metadata{
			Type:      Conversation,
			Project:   project,
			Role:      role,
			Timestamp: timestamp,
			Turn:      &t,
		},
	}
}

// NewMemory creates a document for a memory note file of a project.
func NewMemory(project, file, text string) Document {
	return Document{
		text:     text,
		metadata: Metadata{Type: Memory, Project: project, File: file},
	}
}

// Text returns the raw document text.
func (d *Document) Text() string { return d.text }

// Metadata returns the source metadata.
func (d *Document) Metadata() Metadata { return d.metadata }
