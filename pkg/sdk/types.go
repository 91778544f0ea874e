package socratic

import (
	"time"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
	"github.com/kailas-cloud/socratic/internal/domain/search/result"
	chatuc "github.com/kailas-cloud/socratic/internal/usecase/chat"
	searchuc "github.com/kailas-cloud/socratic/internal/usecase/search"
)

// SearchMode controls how documents are scored.
type SearchMode string

// Search mode constants.
const (
	ModeHybrid  SearchMode = "hybrid"
	ModeLexical SearchMode = "tfidf"
	ModeDense   SearchMode = "vector"
)

// DenseStatus reports how the embedding component of a search was produced.
type DenseStatus string

// Dense status constants.
const (
	DenseOK          DenseStatus = "ok"
	DenseUnavailable DenseStatus = "unavailable"
	DenseFailed      DenseStatus = "error"
	DenseSkipped     DenseStatus = "skipped"
)

// Role is the author of a turn.
type Role string

// Role constants.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a project's conversation.
type Turn struct {
	Role      Role
	Content   string
	Timestamp string // ISO-8601, may be empty for legacy records
}

// Project summarizes one project of a user.
type Project struct {
	Name      string
	Turns     int
	Notes     int
	Legacy    bool // conversation still read from the legacy single-file record
	UpdatedAt time.Time
}

// Note is a memory note derived from a conversation.
type Note struct {
	File    string
	Content string
}

// Reply is the assistant's answer to one exchange.
type Reply struct {
	Content    string
	Step       int    // set by NextStep
	Note       string // memory note written by Summarize or Report
	References int    // past hits attached as context
	Cached     bool   // Report returned the stored note
}

// SearchResult is a single search hit.
type SearchResult struct {
	Score       float64
	TFIDFScore  float64
	VectorScore float64
	Preview     string
	Content     string

	Type      string // "conversation" or "memory"
	Project   string
	Role      string
	Timestamp string
	Turn      *int
	File      string
}

// SearchResponse is a ranked result list.
type SearchResponse struct {
	Mode        SearchMode
	DenseStatus DenseStatus
	Results     []SearchResult
}

func fromInternalTurns(turns []conversation.Turn) []Turn {
	out := make([]Turn, len(turns))
	for i, t := range turns {
		out[i] = Turn{Role: Role(t.Role), Content: t.Content, Timestamp: t.Timestamp}
	}
	return out
}

func fromInternalProject(p conversation.Project) Project {
	return Project{
		Name:      p.Name,
		Turns:     p.Turns,
		Notes:     p.Notes,
		Legacy:    p.Legacy,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromInternalNotes(notes []conversation.Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = Note{File: n.File, Content: n.Content}
	}
	return out
}

func fromInternalReply(r chatuc.Reply) Reply {
	return Reply{Content: r.Content, Step: r.Step, Note: r.Note, References: r.References, Cached: r.Cached}
}

func fromInternalResult(r *result.Result) SearchResult {
	md := r.Metadata()
	return SearchResult{
		Score:       r.Score(),
		TFIDFScore:  r.TFIDFScore(),
		VectorScore: r.VectorScore(),
		Preview:     r.Preview(),
		Content:     r.Content(),
		Type:        string(md.Type),
		Project:     md.Project,
		Role:        md.Role,
		Timestamp:   md.Timestamp,
		Turn:        md.Turn,
		File:        md.File,
	}
}

func fromInternalResponse(resp searchuc.Response) SearchResponse {
	results := make([]SearchResult, len(resp.Results))
	for i := range resp.Results {
		results[i] = fromInternalResult(&resp.Results[i])
	}
	return SearchResponse{
		Mode:        SearchMode(resp.Mode),
		DenseStatus: DenseStatus(resp.DenseStatus),
		Results:     results,
	}
}
