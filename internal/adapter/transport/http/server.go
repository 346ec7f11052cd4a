package http_server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/adlift/ad-aggregator/internal/entity"
)

// Server exposes the most recent aggregated report over HTTP.
type Server struct {
	log     *zap.Logger
	addr    string
	httpSrv *http.Server

	mu   sync.RWMutex
	last entity.Report
}

func NewServer(log *zap.Logger, addr string) *Server {
	s := &Server{log: log, addr: addr}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Get("/report", s.handleReport())

	s.httpSrv = &http.Server{Addr: addr, Handler: r}
	return s
}

// SetReport swaps the report served by /report. Called after every
// collection run.
func (s *Server) SetReport(report entity.Report) {
	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
}

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

func (s *Server) handleReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		report := s.last
		s.mu.RUnlock()

		// Пустой отчёт отдаём как пустой список, а не как null
		if report.Entries == nil {
			report.Entries = []entity.AggregatedEntry{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			s.log.Error("encode report", zap.Error(err))
		}
	}
}
