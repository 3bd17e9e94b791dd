// Package http exposes a carousel controller over HTTP.
//
// Commands are POST endpoints returning the resulting state, GET /events
// streams state diffs as server-sent events, and every request described by
// the embedded OpenAPI document is validated against it.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/pkg/deck"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Server holds the handlers' dependencies.
type Server struct {
	Carousel ports.Carousel
	Deck     *deck.Deck
	Streams  *StreamManager
	Name     string
	Version  string

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithDeck serves items from d on GET /items.
func WithDeck(d *deck.Deck) Option {
	return func(s *Server) {
		s.Deck = d
	}
}

// WithStreams uses a StreamManager already bound to the controller's hooks,
// so autoplay toggles reach SSE clients too.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithInfo sets the name and version reported by GET /info.
func WithInfo(name, version string) Option {
	return func(s *Server) {
		s.Name = name
		s.Version = version
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the carousel.
func NewHandler(c ports.Carousel, opts ...Option) (http.Handler, error) {
	s := &Server{Carousel: c}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
		c.OnChange(s.Streams.Observe)
	}
	s.Streams.Seed(c.State())

	router, err := newRouter(context.Background())
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Use(validator(router))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/state", s.GetState)
	r.Get("/items", s.ListItems)
	r.Get("/events", s.SubscribeEvents)

	r.Post("/next", s.Next)
	r.Post("/previous", s.Previous)
	r.Post("/goto/{index}", s.GoTo)
	r.Post("/pause", s.Pause)
	r.Post("/resume", s.Resume)

	r.Route("/pointer", func(r chi.Router) {
		r.Post("/down", s.PointerDown)
		r.Post("/up", s.PointerUp)
		r.Post("/cancel", s.PointerCancel)
	})
	r.Route("/hover", func(r chi.Router) {
		r.Post("/enter", s.HoverEnter)
		r.Post("/leave", s.HoverLeave)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Rotator API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// InfoResponse is the body of GET /info.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Count   int    `json:"count"`
}

// GestureResponse is the body of POST /pointer/up.
type GestureResponse struct {
	Direction domain.Direction `json:"direction"`
	State     domain.State     `json:"state"`
}

// PointerRequest is the body of POST /pointer/down and /pointer/up.
type PointerRequest struct {
	X float64 `json:"x"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, InfoResponse{Name: s.Name, Version: s.Version, Count: s.Carousel.Count()})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// ListItems handles GET /items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	items := []deck.Item{}
	if s.Deck != nil {
		items = s.Deck.Items
	}
	s.writeJSON(w, http.StatusOK, items)
}

// Next handles POST /next.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Carousel.Next(r.Context()))
}

// Previous handles POST /previous.
func (s *Server) Previous(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Carousel.Previous(r.Context()))
}

// GoTo handles POST /goto/{index}.
func (s *Server) GoTo(w http.ResponseWriter, r *http.Request) {
	var index int
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter index: %w", err))
		return
	}

	st, err := s.Carousel.GoTo(r.Context(), index)
	if errors.Is(err, domain.ErrInvalidIndex) {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		s.logger.Error("goto failed", "index", index, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

// Pause handles POST /pause.
func (s *Server) Pause(w http.ResponseWriter, r *http.Request) {
	s.Carousel.Pause(r.Context())
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// Resume handles POST /resume.
func (s *Server) Resume(w http.ResponseWriter, r *http.Request) {
	s.Carousel.Resume(r.Context())
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// PointerDown handles POST /pointer/down.
func (s *Server) PointerDown(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodePointer(w, r)
	if !ok {
		return
	}
	s.Carousel.PointerDown(body.X)
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// PointerUp handles POST /pointer/up.
func (s *Server) PointerUp(w http.ResponseWriter, r *http.Request) {
	body, ok := s.decodePointer(w, r)
	if !ok {
		return
	}
	dir := s.Carousel.PointerUp(body.X)
	s.writeJSON(w, http.StatusOK, GestureResponse{Direction: dir, State: s.Carousel.State()})
}

// PointerCancel handles POST /pointer/cancel.
func (s *Server) PointerCancel(w http.ResponseWriter, r *http.Request) {
	s.Carousel.PointerCancel()
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// HoverEnter handles POST /hover/enter.
func (s *Server) HoverEnter(w http.ResponseWriter, r *http.Request) {
	s.Carousel.HoverEnter()
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// HoverLeave handles POST /hover/leave.
func (s *Server) HoverLeave(w http.ResponseWriter, r *http.Request) {
	s.Carousel.HoverLeave()
	s.writeJSON(w, http.StatusOK, s.Carousel.State())
}

// SubscribeEvents handles the GET /events request (SSE).
// The first message is the full state; later messages are diffs.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	var watch []string
	if err := runtime.BindQueryParameter("form", false, false, "watch", r.URL.Query(), &watch); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter watch: %w", err))
		return
	}

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if snap, ok := s.Streams.Snapshot(); ok {
		if initial, err := json.Marshal(domain.Diff(nil, &snap)); err == nil {
			fmt.Fprintf(w, "data: %s\n\n", initial)
		}
	}
	flusher.Flush()

	s.logger.Info("sse client connected", "watch", watch)
	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("sse client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !matchesWatch(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func matchesWatch(msg []byte, watch []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal(msg, &diff); err != nil {
		return true
	}
	for _, field := range watch {
		switch field {
		case "index":
			if diff.Index != nil {
				return true
			}
		case "direction":
			if diff.Direction != nil {
				return true
			}
		case "autoplay":
			if diff.Autoplay != nil {
				return true
			}
		}
	}
	return false
}

func (s *Server) decodePointer(w http.ResponseWriter, r *http.Request) (PointerRequest, bool) {
	var body PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.logger.Warn("invalid pointer body", "err", err)
		return body, false
	}
	return body, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
