// Package http wires the page views and form actions into a ready-to-run
// server over the embedded templates and static assets.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tripbudget/internal/repository"
	"tripbudget/internal/router"
	"tripbudget/internal/view"
	appweb "tripbudget/web"
)

type Server struct {
	http.Server
	store        *repository.Store
	views        *view.Deps
	router       *router.Router
	converter    *view.ConverterView
	destinations *view.DestinationsView
	rateLimiter  *rateLimiter
	logger       *slog.Logger
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
// The view dependencies must carry the repository and the outbound clients;
// templates are parsed here from the embedded FS.
func NewServer(addr string, deps *view.Deps) (*Server, error) {
	templates, err := view.ParseTemplates(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}
	deps.Templates = templates
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       deps.Store,
		views:       deps,
		rateLimiter: newRateLimiter(),
		logger:      deps.Logger,
	}

	// The converter keeps in-flight conversion state, so a single instance
	// is shared across mounts instead of rebuilding per navigation.
	s.converter = view.NewConverterView(deps)
	s.destinations = view.NewDestinationsView(deps)

	s.router = router.New("/", deps.Logger)
	s.router.Handle("/", "Home", func() router.View { return view.NewHomeView(deps) })
	s.router.Handle("/trips", "My Trips", func() router.View { return view.NewTripsView(deps) })
	s.router.Handle("/expenses", "Expenses", func() router.View { return view.NewExpensesView(deps) })
	s.router.Handle("/reports", "Reports", func() router.View { return view.NewReportsView(deps) })
	s.router.Handle("/converter", "Currency Converter", func() router.View { return s.converter })
	s.router.Handle("/destinations", "Destinations", func() router.View { return s.destinations })
	s.router.Handle("/settings", "Settings", func() router.View { return view.NewSettingsView(deps) })

	registerStatic(mux)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	// Pages. The root pattern also catches unknown paths, which the router
	// resolves to the home page.
	mux.HandleFunc("/", s.withSecurityHeaders(s.handlePage))
	mux.HandleFunc("/converter", s.withSecurityHeaders(s.handlePage))
	mux.HandleFunc("/destinations", s.withSecurityHeaders(s.handlePage))
	mux.HandleFunc("/reports", s.withSecurityHeaders(s.handlePage))

	// Pages with a mutating POST on the same path.
	mux.HandleFunc("/trips", s.withSecurityHeaders(s.handleTrips))
	mux.HandleFunc("/expenses", s.withSecurityHeaders(s.handleExpenses))
	mux.HandleFunc("/settings", s.withSecurityHeaders(s.handleSettings))

	// Form actions.
	mux.HandleFunc("/trips/update", s.withSecurityHeaders(s.handleTripUpdate))
	mux.HandleFunc("/trips/delete", s.withSecurityHeaders(s.handleTripDelete))
	mux.HandleFunc("/expenses/delete", s.withSecurityHeaders(s.handleExpenseDelete))
	mux.HandleFunc("/convert", s.withSecurityHeaders(s.handleConvert))
	mux.HandleFunc("/destinations/detail", s.withSecurityHeaders(s.handleDestinationDetail))

	// History navigation.
	mux.HandleFunc("/nav/back", s.withSecurityHeaders(s.handleNavBack))
	mux.HandleFunc("/nav/forward", s.withSecurityHeaders(s.handleNavForward))

	return s, nil
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limiting applies to mutations only.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
