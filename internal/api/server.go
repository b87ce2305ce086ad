package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/FlorentLa/obsidian-whisper/internal/processor"
	"github.com/FlorentLa/obsidian-whisper/internal/reconciler"
	"github.com/FlorentLa/obsidian-whisper/internal/store"
	"github.com/FlorentLa/obsidian-whisper/internal/summarizer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RunReader looks up recorded runs.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*store.Run, error)
	ListRuns(ctx context.Context, limit int) ([]store.Run, error)
}

type Server struct {
	router     *chi.Mux
	port       int
	reconciler reconciler.Reconciler
	summarizer summarizer.Summarizer
	processor  processor.Processor
	runs       RunReader
	logger     logger.Logger
}

type ReconcileRequest struct {
	Transcript string `json:"transcript"`
}

type ReconcileResponse struct {
	Text   string `json:"text"`
	Parsed int    `json:"parsed"`
	Kept   int    `json:"kept"`
}

type SummarizeRequest struct {
	Text string `json:"text"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type ProcessRequest struct {
	Source     string `json:"source"`
	Transcript string `json:"transcript"`
}

func NewServer(port int, rec reconciler.Reconciler, sum summarizer.Summarizer, proc processor.Processor, runs RunReader, log logger.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       port,
		reconciler: rec,
		summarizer: sum,
		processor:  proc,
		runs:       runs,
		logger:     log,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reconcile", s.reconcile)
		r.Post("/summarize", s.summarize)
		r.Post("/process", s.process)
		r.Get("/runs", s.listRuns)
		r.Get("/runs/{id}", s.getRun)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "API server shutdown: %v", err)
		}
	}()

	s.logger.Info(ctx, "API server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	// Shutdown returns once in-flight requests are done.
	<-stopped
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) reconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if !decode(w, r, &req) {
		return
	}

	res := s.reconciler.Reconcile(r.Context(), req.Transcript)
	writeJSON(w, http.StatusOK, ReconcileResponse{Text: res.Text, Parsed: res.Parsed, Kept: res.Kept})
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if !decode(w, r, &req) {
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), req.Text)
	if err != nil {
		s.logger.Error(r.Context(), "Summarize failed: %v", err)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("summarize failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, SummarizeResponse{Summary: summary})
}

func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Source == "" {
		req.Source = "api"
	}

	run, err := s.processor.Run(r.Context(), req.Source, req.Transcript)
	if err != nil {
		s.logger.Error(r.Context(), "Process %s failed: %v", req.Source, err)
		if run != nil {
			writeJSON(w, http.StatusBadGateway, run)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("process failed: %v", err))
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
