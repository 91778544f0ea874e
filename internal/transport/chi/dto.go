package chi

import (
	"time"

	"github.com/kailas-cloud/socratic/internal/domain/conversation"
	"github.com/kailas-cloud/socratic/internal/domain/search/result"
	chatuc "github.com/kailas-cloud/socratic/internal/usecase/chat"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest             ErrorCode = "bad_request"
	ErrorCodeUnauthorized           ErrorCode = "unauthorized"
	ErrorCodeValidationFailed       ErrorCode = "validation_failed"
	ErrorCodeNotFound               ErrorCode = "not_found"
	ErrorCodeAlreadyExists          ErrorCode = "already_exists"
	ErrorCodeChatProviderError      ErrorCode = "chat_provider_error"
	ErrorCodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	ErrorCodeEmbeddingUnavailable   ErrorCode = "embedding_unavailable"
	ErrorCodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type createProjectRequest struct {
	Name string `json:"name"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type nextStepRequest struct {
	Step *int `json:"step"`
}

type reportRequest struct {
	Force bool `json:"force"`
}

type searchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
	Limit *int   `json:"limit"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type projectResponse struct {
	Name      string    `json:"name"`
	Turns     int       `json:"turns"`
	Notes     int       `json:"notes"`
	Legacy    bool      `json:"legacy"`
	UpdatedAt time.Time `json:"updated_at"`
}

type projectListResponse struct {
	Items []projectResponse `json:"items"`
	Total int               `json:"total"`
}

type turnResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type historyResponse struct {
	Items []turnResponse `json:"items"`
	Total int            `json:"total"`
}

type noteResponse struct {
	File    string `json:"file"`
	Content string `json:"content"`
}

type noteListResponse struct {
	Items []noteResponse `json:"items"`
	Total int            `json:"total"`
}

type replyResponse struct {
	Response   string `json:"response"`
	Step       int    `json:"step,omitempty"`
	Note       string `json:"note,omitempty"`
	References int    `json:"references,omitempty"`
}

type reportResponse struct {
	Report string `json:"report"`
	Note   string `json:"note"`
	Cached bool   `json:"cached"`
}

type searchResultItem struct {
	Score       float64        `json:"score"`
	TFIDFScore  float64        `json:"tfidf_score"`
	VectorScore float64        `json:"vector_score"`
	Preview     string         `json:"preview"`
	Content     string         `json:"content"`
	Metadata    searchMetadata `json:"metadata"`
}

type searchMetadata struct {
	Type      string `json:"type"`
	Project   string `json:"project"`
	Role      string `json:"role,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Turn      *int   `json:"turn,omitempty"`
	File      string `json:"file,omitempty"`
}

type searchResponse struct {
	Mode        string             `json:"mode"`
	DenseStatus string             `json:"dense_status"`
	Total       int                `json:"total"`
	Items       []searchResultItem `json:"items"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func projectToDTO(p conversation.Project) projectResponse {
	return projectResponse{
		Name:      p.Name,
		Turns:     p.Turns,
		Notes:     p.Notes,
		Legacy:    p.Legacy,
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func turnsToDTO(turns []conversation.Turn) historyResponse {
	items := make([]turnResponse, len(turns))
	for i, t := range turns {
		items[i] = turnResponse{Role: string(t.Role), Content: t.Content, Timestamp: t.Timestamp}
	}
	return historyResponse{Items: items, Total: len(items)}
}

func notesToDTO(notes []conversation.Note) noteListResponse {
	items := make([]noteResponse, len(notes))
	for i, n := range notes {
		items[i] = noteResponse{File: n.File, Content: n.Content}
	}
	return noteListResponse{Items: items, Total: len(items)}
}

func replyToDTO(r chatuc.Reply) replyResponse {
	return replyResponse{
		Response:   r.Content,
		Step:       r.Step,
		Note:       r.Note,
		References: r.References,
	}
}

func reportToDTO(r chatuc.Reply) reportResponse {
	return reportResponse{Report: r.Content, Note: r.Note, Cached: r.Cached}
}

func searchResultToDTO(r *result.Result) searchResultItem {
	md := r.Metadata()
	return searchResultItem{
		Score:       r.Score(),
		TFIDFScore:  r.TFIDFScore(),
		VectorScore: r.VectorScore(),
		Preview:     r.Preview(),
		Content:     r.Content(),
		Metadata: searchMetadata{
			Type:      string(md.Type),
			Project:   md.Project,
			Role:      md.Role,
			Timestamp: md.Timestamp,
			Turn:      md.Turn,
			File:      md.File,
		},
	}
}
