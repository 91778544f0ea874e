package chi

import (
	"net/http"
	"strings"
)

// ListProjects handles GET /users/{user}/projects.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	projects, err := s.projects.List(r.Context(), user)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]projectResponse, len(projects))
	for i, p := range projects {
		items[i] = projectToDTO(p)
	}
	writeJSON(w, http.StatusOK, projectListResponse{Items: items, Total: len(items)})
}

// CreateProject handles POST /users/{user}/projects.
func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := userParam(w, r)
	if !ok {
		return
	}

	var req createProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Project name is required")
		return
	}

	project, err := s.projects.Create(r.Context(), user, req.Name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectToDTO(project))
}

// GetProject handles GET /users/{user}/projects/{project}.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	p, err := s.projects.Get(r.Context(), user, project)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToDTO(p))
}

// DeleteProject handles DELETE /users/{user}/projects/{project}.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	if err := s.projects.Delete(r.Context(), user, project); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNotes handles GET /users/{user}/projects/{project}/memory.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	user, project, ok := projectParams(w, r)
	if !ok {
		return
	}

	notes, err := s.projects.Notes(r.Context(), user, project)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notesToDTO(notes))
}
