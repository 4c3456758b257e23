package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/simplifymoney/kuberai-backend/internal/assistant"
	"github.com/simplifymoney/kuberai-backend/internal/purchase"
)

// AskService answers conversational questions. It never returns an
// error: failures are folded into the reply shape.
type AskService interface {
	Ask(ctx context.Context, question string) assistant.Response
}

// PurchaseService validates and records simulated gold purchases.
type PurchaseService interface {
	Record(ctx context.Context, req purchase.Request) (*purchase.Result, error)
}

type Server struct {
	pool       *pgxpool.Pool
	ask        AskService
	purchases  PurchaseService
	httpServer *http.Server
	log        zerolog.Logger
}

func NewServer(pool *pgxpool.Pool, ask AskService, purchases PurchaseService, port int, corsOrigin string, log zerolog.Logger) *Server {
	s := &Server{
		pool:      pool,
		ask:       ask,
		purchases: purchases,
		log:       log,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /ask-kuber", s.handleAskKuber)
	mux.HandleFunc("POST /buy-gold", s.handleBuyGold)

	handler := s.requestLogMiddleware(corsMiddleware(mux, corsOrigin))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	fmt.Printf("[API] KuberAI API server started on http://localhost%s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		next.ServeHTTP(w, r)

		s.log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
