package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/socratic/internal/metrics"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// NewRouter wires middleware and routes for the server.
func NewRouter(s *Server, apiKeys []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route(APIPrefix+"/users/{user}", func(r chi.Router) {
		r.Post("/search", s.SearchConversations)

		r.Get("/projects", s.ListProjects)
		r.Post("/projects", s.CreateProject)

		r.Route("/projects/{project}", func(r chi.Router) {
			r.Get("/", s.GetProject)
			r.Delete("/", s.DeleteProject)
			r.Get("/history", s.History)
			r.Get("/memory", s.ListNotes)
			r.Post("/chat", s.Chat)
			r.Post("/next_step", s.NextStep)
			r.Post("/summarize", s.Summarize)
			r.Post("/report", s.Report)
			r.Post("/reset", s.Reset)
		})
	})

	return r
}

// pathParam binds a simple-style path parameter, unescaping percent-encoded names.
func pathParam(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	return v, err
}

// userParam extracts {user}, writing a 400 when binding fails.
func userParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := pathParam(r, "user")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid user parameter")
		return "", false
	}
	return user, true
}

// projectParams extracts {user} and {project}, writing a 400 when binding fails.
func projectParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	user, ok := userParam(w, r)
	if !ok {
		return "", "", false
	}
	project, err := pathParam(r, "project")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid project parameter")
		return "", "", false
	}
	return user, project, true
}

// queryLimit binds the optional ?limit= query parameter.
func queryLimit(r *http.Request) (*int, error) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		return nil, err
	}
	return limit, nil
}
