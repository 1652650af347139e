package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stats отдаётся хостингу на /stats — живость процесса плюс базовые счётчики.
type Stats struct {
	UptimeSeconds   int64 `json:"uptime_seconds"`
	Users           int64 `json:"users"`
	GuidesDelivered int64 `json:"guides_delivered"`
	PendingReviews  int64 `json:"pending_reviews"`
}

type StatsFunc func(ctx context.Context) (Stats, error)

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, stats StatsFunc) *Server {
	started := time.Now()
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		s := Stats{UptimeSeconds: int64(time.Since(started).Seconds())}
		if stats != nil {
			if got, err := stats(r.Context()); err == nil {
				got.UptimeSeconds = s.UptimeSeconds
				s = got
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
