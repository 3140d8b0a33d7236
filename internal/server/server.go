package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/CaseVault_Go/internal/account"
	"github.com/osse101/CaseVault_Go/internal/admin"
	"github.com/osse101/CaseVault_Go/internal/caseopen"
	"github.com/osse101/CaseVault_Go/internal/catalog"
	"github.com/osse101/CaseVault_Go/internal/database"
	"github.com/osse101/CaseVault_Go/internal/handler"
	"github.com/osse101/CaseVault_Go/internal/inventory"
	"github.com/osse101/CaseVault_Go/internal/ledger"
	"github.com/osse101/CaseVault_Go/internal/logger"
	"github.com/osse101/CaseVault_Go/internal/metrics"
	"github.com/osse101/CaseVault_Go/internal/upgrade"
)

// Services bundles everything the router needs
type Services struct {
	Account   account.Service
	Ledger    ledger.Service
	Inventory inventory.Service
	CaseOpen  caseopen.Service
	Upgrade   upgrade.Service
	Admin     admin.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance. Player routes are public; the
// operator routes under /api/v1/admin require the API key.
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, cat *catalog.Catalog, services Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.Post("/register", handler.HandleRegister(services.Account))
			r.Get("/balance", handler.HandleGetBalance(services.Ledger))
			r.Get("/transactions", handler.HandleGetTransactions(services.Ledger))
			r.Get("/inventory", handler.HandleGetInventory(services.Inventory))
			r.Post("/deposit", handler.HandleDeposit(services.Account))
		})

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", handler.HandleListCases(cat))
			r.Post("/open", handler.HandleOpenCase(services.CaseOpen))
			r.Get("/recent", handler.HandleRecentWins(services.CaseOpen))
		})

		r.Route("/upgrade", func(r chi.Router) {
			r.Post("/targets", handler.HandleListUpgradeTargets(services.Upgrade))
			r.Post("/execute", handler.HandleExecuteUpgrade(services.Upgrade))
		})

		// Operator routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
			r.Post("/withdraw", handler.HandleWithdraw(services.Admin))
			r.Post("/contract", handler.HandleExecuteContract(services.Admin))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
