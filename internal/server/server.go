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

	"github.com/osse101/LetterSpin_Go/internal/admin"
	"github.com/osse101/LetterSpin_Go/internal/engine"
	"github.com/osse101/LetterSpin_Go/internal/handler"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/metrics"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Engine  engine.Service
	Admin   admin.Service
	Health  handler.HealthChecker
	Service string
	Version string
	// TrustedProxies may set X-Forwarded-For for rate limiting.
	TrustedProxies []string
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance listening on port
func NewServer(port int, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with the middleware stack and all routes
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(deps.TrustedProxies, NewRateLimiter(RateLimitMaxRequests, RateLimitWindow)))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Health))
	r.Get("/version", handler.HandleVersion(deps.Service, deps.Version))
	r.Handle("/metrics", promhttp.Handler())

	rewards := handler.NewRewardHandler(deps.Engine)
	adminHandler := handler.NewAdminHandler(deps.Admin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/words", rewards.HandleListWords)
		r.Get("/tiers", rewards.HandleListTiers)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(userLogContext)
			r.Get("/", rewards.HandleGetAccount)
			r.Get("/ledger", rewards.HandleGetLedger)
			r.Post("/spin", rewards.HandleSpin)
			r.Post("/deposits", rewards.HandleDeposit)
			r.Post("/daily-login", rewards.HandleDailyLogin)
			r.Get("/words/{wordID}/eligibility", rewards.HandleWordEligibility)
			r.Post("/words/{wordID}/claim", rewards.HandleClaimWord)
			r.Post("/missions/{tierID}/claim", rewards.HandleClaimMission)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/slots", adminHandler.HandleSaveSlot)
			r.Post("/words", adminHandler.HandleSaveWord)
			r.Post("/tiers", adminHandler.HandleSaveTier)
		})
	})

	return r
}

// userLogContext tags request-scoped logs with the path's user id.
func userLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := chi.URLParam(r, handler.ParamUserID); userID != "" {
			r = r.WithContext(logger.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
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

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// loggingMiddleware tags the request context with a request id and logs
// start and completion. An incoming X-Request-ID is reused.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

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
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
