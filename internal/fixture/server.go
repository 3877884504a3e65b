package fixture

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/logging"
)

// Options tune the fixture server.
type Options struct {
	Logger *log.Logger
	// RequestsPerMinute caps requests per client IP. Zero disables the limit.
	RequestsPerMinute int
	// Delay holds every /api/titles response, to make overlapping requests
	// easy to produce by hand.
	Delay time.Duration
}

// Server serves a Catalog over the same HTTP API the real backend exposes.
type Server struct {
	catalog *Catalog
	logger  *log.Logger
	opts    Options
}

// NewServer wraps c.
func NewServer(c *Catalog, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{catalog: c, logger: logger, opts: opts}
}

// Handler returns the routed handler with CORS open to every origin.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	if s.opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(s.opts.RequestsPerMinute, time.Minute))
	}

	r.Method(http.MethodGet, "/ping", s.adapt(s.getPing))
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/filters", s.adapt(s.getFilters))
		r.Method(http.MethodGet, "/titles", s.adapt(s.getTitles))
		r.Method(http.MethodGet, "/details", s.adapt(s.getDetails))
		r.Method(http.MethodGet, "/recommendations", s.adapt(s.getRecommendations))
	})
	return r
}

func (s *Server) getPing(w http.ResponseWriter, _ *http.Request) error {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

func (s *Server) getFilters(w http.ResponseWriter, r *http.Request) error {
	kind, err := kindParam(r)
	if err != nil {
		return err
	}
	s.writeJSON(w, http.StatusOK, s.catalog.Facets(kind))
	return nil
}

func (s *Server) getTitles(w http.ResponseWriter, r *http.Request) error {
	kind, err := kindParam(r)
	if err != nil {
		return err
	}
	q := r.URL.Query()

	f := Filter{
		Text:    q.Get("q"),
		Genre:   q.Get("genre"),
		Country: q.Get("country"),
	}
	switch order := q.Get("order"); order {
	case "", string(catalog.Ascending):
		f.Order = catalog.Ascending
	case string(catalog.Descending):
		f.Order = catalog.Descending
	default:
		return invalid("order must be asc or desc")
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return invalid("year must be an integer")
		}
		f.Year = year
	}

	if s.opts.Delay > 0 {
		select {
		case <-time.After(s.opts.Delay):
		case <-r.Context().Done():
			return r.Context().Err()
		}
	}

	items := s.catalog.Titles(kind, f)
	s.writeJSON(w, http.StatusOK, catalog.TitleList{Total: len(items), Items: items})
	return nil
}

func (s *Server) getDetails(w http.ResponseWriter, r *http.Request) error {
	kind, err := kindParam(r)
	if err != nil {
		return err
	}
	id, err := idParam(r)
	if err != nil {
		return err
	}
	d, ok := s.catalog.Details(kind, id)
	if !ok {
		return notFound("title not found")
	}
	s.writeJSON(w, http.StatusOK, d)
	return nil
}

func (s *Server) getRecommendations(w http.ResponseWriter, r *http.Request) error {
	kind, err := kindParam(r)
	if err != nil {
		return err
	}
	id, err := idParam(r)
	if err != nil {
		return err
	}
	limit := catalog.DefaultRecommendations
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return invalid("limit must be a positive integer")
		}
	}
	recs, ok := s.catalog.Recommendations(kind, id, limit)
	if !ok {
		return notFound("title not found")
	}
	s.writeJSON(w, http.StatusOK, catalog.TitleList{Total: len(recs), Items: recs})
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

type handlerWithErr func(w http.ResponseWriter, r *http.Request) error

// statusError is rendered as {"detail": Message} with Status.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	return e.Message + " code=" + strconv.Itoa(e.Status)
}

func invalid(msg string) error  { return &statusError{Status: http.StatusUnprocessableEntity, Message: msg} }
func notFound(msg string) error { return &statusError{Status: http.StatusNotFound, Message: msg} }

func (s *Server) adapt(h handlerWithErr) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			s.writeJSON(w, statusErr.Status, map[string]string{"detail": statusErr.Message})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	})
}

func kindParam(r *http.Request) (catalog.Kind, error) {
	switch raw := strings.TrimSpace(r.URL.Query().Get("type")); raw {
	case "":
		return "", invalid("type is required")
	case string(catalog.Movie), string(catalog.Series):
		return catalog.Kind(raw), nil
	default:
		return "", invalid("type must be movie or series")
	}
}

func idParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		return "", invalid("id is required")
	}
	return id, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("write json failed", "err", err)
	}
}
