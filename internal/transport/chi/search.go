package chi

import (
	"net/http"

	"github.com/kailas-cloud/socratic/internal/domain"
	"github.com/kailas-cloud/socratic/internal/domain/search/mode"
	"github.com/kailas-cloud/socratic/internal/domain/search/request"
)

// SearchConversations handles POST /users/{user}/search.
// The limit may come from the body or from ?limit=, the query parameter winning.
func (s *Server) SearchConversations(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	qLimit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid limit parameter")
		return
	}
	if qLimit != nil {
		req.Limit = qLimit
	}

	searchReq, err := s.searchRequest(req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.search.Search(ctx, user, &searchReq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToDTO(&resp.Results[i])
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchResponse{
		Mode:        string(resp.Mode),
		DenseStatus: string(resp.DenseStatus),
		Total:       len(items),
		Items:       items,
	})
}

// searchRequest applies the configured limits and validates the query.
func (s *Server) searchRequest(req searchRequest) (request.Request, error) {
	m, err := mode.Parse(req.Mode)
	if err != nil {
		return request.Request{}, err
	}

	limit := s.limits.Default
	if req.Limit != nil && *req.Limit > 0 {
		limit = *req.Limit
	}
	if limit > s.limits.Max {
		limit = s.limits.Max
	}

	return request.New(req.Query, m, limit)
}
