package chi

import (
	"net/http"

	"github.com/kailas-cloud/socratic/internal/domain"
)

// History handles GET /users/{user}/projects/{project}/history.
// An optional ?limit= keeps only the most recent turns.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}
	limit, err := queryLimit(r)
	if err != nil || (limit != nil && *limit < 0) {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid limit parameter")
		return
	}

	turns, err := s.chat.History(r.Context(), user, project)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if limit != nil && *limit > 0 && len(turns) > *limit {
		turns = turns[len(turns)-*limit:]
	}
	writeJSON(w, http.StatusOK, turnsToDTO(turns))
}

// Chat handles POST /users/{user}/projects/{project}/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	reply, err := s.chat.Send(ctx, user, project, req.Message)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, replyToDTO(reply))
}

// NextStep handles POST /users/{user}/projects/{project}/next_step.
// A missing step defaults to 2.
func (s *Server) NextStep(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	var req nextStepRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	step := 2
	if req.Step != nil {
		step = *req.Step
	}

	reply, err := s.chat.NextStep(r.Context(), user, project, step)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, replyToDTO(reply))
}

// Summarize handles POST /users/{user}/projects/{project}/summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	reply, err := s.chat.Summarize(r.Context(), user, project)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, replyToDTO(reply))
}

// Report handles POST /users/{user}/projects/{project}/report.
// The stored report is returned unless the body asks for {"force": true}.
func (s *Server) Report(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	var req reportRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	reply, err := s.chat.Report(r.Context(), user, project, req.Force)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reportToDTO(reply))
}

// Reset handles POST /users/{user}/projects/{project}/reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	if err := s.chat.Reset(r.Context(), user, project); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
