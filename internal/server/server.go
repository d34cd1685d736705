package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mockhotels/brandaudit/internal/audit"
	"github.com/mockhotels/brandaudit/internal/config"
	"github.com/mockhotels/brandaudit/internal/extract"
	"github.com/mockhotels/brandaudit/internal/llm"
	"github.com/mockhotels/brandaudit/internal/observability"
	"github.com/mockhotels/brandaudit/internal/pipeline"
	"github.com/mockhotels/brandaudit/internal/rendering"
	"github.com/mockhotels/brandaudit/internal/server/middleware"
	"github.com/mockhotels/brandaudit/internal/server/ratelimit"
	"github.com/mockhotels/brandaudit/internal/session"
)

// Submitter runs one submit action against a session. Satisfied by
// pipeline.Submitter; faked in tests.
type Submitter interface {
	Submit(ctx context.Context, sess *session.Session, in pipeline.Input) (*pipeline.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	llmClient      llm.Client
	submitter      Submitter
	sessions       *session.Store
	renderer       *rendering.Renderer
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	authHandler    *AuthHandler
	maxUploadBytes int64
}

// Config holds server configuration
type Config struct {
	Port           int
	App            *config.Config
	Model          string
	ExtendedPrompt bool
	Verbose        bool
}

// New creates a new server instance, wiring the LLM client, the two
// LLM-facing services, and the session store.
func New(cfg Config) (*Server, error) {
	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}

	client, err := llm.NewClient(context.Background(), llmConfig, cfg.App.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	extractor := extract.NewExtractor(client)
	if cfg.ExtendedPrompt {
		extractor = extract.NewExtendedExtractor(client)
	}
	submitter := pipeline.NewSubmitter(extractor, audit.NewAuditor(client), printer)

	sessions := session.NewStore(cfg.App.SessionTTL, cfg.App.SessionCleanupInterval)

	srv, err := newServer(cfg, client, submitter, sessions)
	if err != nil {
		sessions.Stop()
		_ = client.Close()
		return nil, err
	}
	return srv, nil
}

// newServer assembles the server from its collaborators. Split from New so
// tests can inject fakes.
func newServer(cfg Config, client llm.Client, submitter Submitter, sessions *session.Store) (*Server, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, err
	}

	passwords, err := config.NewPasswordConfig(cfg.App.AppPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	jwtService := NewJWTService(jwtConfig)

	s := &Server{
		llmClient:      client,
		submitter:      submitter,
		sessions:       sessions,
		renderer:       renderer,
		rateLimiter:    ratelimit.NewLimiter(ratelimit.LoadConfig()),
		jwtService:     jwtService,
		maxUploadBytes: cfg.App.MaxUploadBytes,
	}
	s.authHandler = NewAuthHandler(passwords, jwtService, sessions, renderer)

	// Setup router
	mux := http.NewServeMux()
	authRedirect := middleware.SessionAuth(jwtService.AsTokenValidator(), "/")
	authJSON := middleware.SessionAuth(jwtService.AsTokenValidator(), "")

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /login", s.authHandler.Login)
	mux.Handle("POST /logout", authRedirect(http.HandlerFunc(s.authHandler.Logout)))
	mux.Handle("POST /submit", authRedirect(http.HandlerFunc(s.handleSubmit)))
	mux.Handle("GET /extracted", authJSON(http.HandlerFunc(s.handleExtracted)))
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(mux)),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second, // two sequential LLM calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown completes.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.sessions.Stop()
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}

	log.Println("Server stopped")
	return err
}

// sessionFromRequest resolves the live session for an authenticated request
// (the middleware already validated the cookie).
func (s *Server) sessionFromRequest(r *http.Request) (*session.Session, bool) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(id)
}

// sessionFromCookie resolves the session on unauthenticated routes, where
// no middleware ran. Invalid or stale cookies just mean "not logged in".
func (s *Server) sessionFromCookie(r *http.Request) (*session.Session, bool) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := s.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(claims.GetSessionID())
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// renderPage writes an HTML page response.
func (s *Server) renderPage(w http.ResponseWriter, status int, page rendering.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.renderer.RenderPage(w, page); err != nil {
		log.Printf("Error rendering page: %v", err)
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
