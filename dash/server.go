package dash

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midbel/barchart/internal/logging"
	"github.com/midbel/barchart/surface"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	PageTitle       = "Risk Dashboard"
	RequestIDHeader = "X-Request-ID"
)

type panelView struct {
	Name   string
	Title  string
	Markup template.HTML
}

type pageView struct {
	Title   string
	Error   string
	Updated time.Time
	Panels  []panelView
}

type Server struct {
	board *Board
	proxy http.Handler
	mux   *http.ServeMux
}

// NewServer serves the board. Requests under /api/ are forwarded to the bff
// when its url is not empty.
func NewServer(board *Board, bff string) (*Server, error) {
	s := Server{
		board: board,
		mux:   http.NewServeMux(),
	}
	if bff != "" {
		u, err := url.Parse(bff)
		if err != nil {
			return nil, fmt.Errorf("bff url: %w", err)
		}
		s.proxy = httputil.NewSingleHostReverseProxy(u)
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /panels/{file}", s.handlePanel)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.proxy != nil {
		s.mux.Handle("/api/", s.proxy)
	}
	return &s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)

	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "http "+r.Method)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.path", r.URL.Path),
		attribute.String("request.id", id),
	)

	var (
		start = time.Now()
		rw    = statusWriter{ResponseWriter: w, code: http.StatusOK}
	)
	s.mux.ServeHTTP(&rw, r.WithContext(ctx))

	span.SetAttributes(attribute.Int("http.status", rw.code))
	logging.Info().With(
		logging.RequestID(id),
		logging.Method(r.Method),
		logging.Path(r.URL.Path),
		logging.Status(rw.code),
		logging.Duration(time.Since(start)),
	).Msg("request")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := pageView{
		Title:   PageTitle,
		Updated: s.board.Updated(),
	}
	if err := s.board.Err(); err != nil {
		view.Error = "Failed to load dashboard data: " + err.Error()
	}
	svg := surface.SVG{}
	for _, p := range s.board.Panels() {
		scene, err := s.board.Scene(p.Name)
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		if err := svg.Render(&buf, scene); err != nil {
			logging.Warn().With(logging.Panel(p.Name), logging.ErrorField(err)).Msg("panel markup failed")
			continue
		}
		pv := panelView{
			Name:   p.Name,
			Title:  p.Title,
			Markup: template.HTML(buf.String()),
		}
		view.Panels = append(view.Panels, pv)
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	var (
		file = r.PathValue("file")
		ext  = path.Ext(file)
		name = strings.TrimSuffix(file, ext)
	)
	surf, err := surface.ByName(ext)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	scene, err := s.board.Scene(name)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownPanel) {
			code = http.StatusNotFound
		}
		http.Error(w, err.Error(), code)
		return
	}
	var buf bytes.Buffer
	if err := surf.Render(&buf, scene); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", surf.ContentType())
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Status  string    `json:"status"`
		Updated time.Time `json:"updated,omitempty"`
		Error   string    `json:"error,omitempty"`
	}{
		Status:  "ok",
		Updated: s.board.Updated(),
	}
	code := http.StatusOK
	if err := s.board.Err(); err != nil {
		status.Status = "degraded"
		status.Error = err.Error()
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
