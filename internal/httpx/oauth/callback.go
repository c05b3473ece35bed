// Package oauth runs the short-lived local listener that receives the OAuth redirect.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 8099
	DefaultPath = "/callback"

	// DefaultExpiry bounds how long an unanswered listener holds the port
	DefaultExpiry = 120 * time.Second

	shutdownTimeout = 5 * time.Second
)

var (
	ErrAlreadyWaiting = errors.New("OAuth callback server is already running")
	ErrNotStarted     = errors.New("OAuth callback server has not been started, call linkedin_authenticate first")
	ErrDenied         = errors.New("LinkedIn authorization denied")
	ErrStateMismatch  = errors.New("OAuth state mismatch")
	ErrTimeout        = errors.New("timed out waiting for LinkedIn authorization callback")
)

const successPage = `<html><body><h1>Authorization successful!</h1>` +
	`<p>You can close this window and return to your application.</p></body></html>`

const failurePage = `<html><body><h1>Authorization failed.</h1><p>Please try again.</p></body></html>`

type result struct {
	code string
	err  error
}

// CallbackServer listens on a local port for a single OAuth redirect
type CallbackServer struct {
	host   string
	port   int
	path   string
	logger *slog.Logger
	expiry time.Duration

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	state    string
	results  chan result
	timer    *time.Timer
}

// CallbackOption configures a CallbackServer
type CallbackOption func(*CallbackServer)

// WithExpiry sets how long Start keeps listening without a redirect
func WithExpiry(d time.Duration) CallbackOption {
	return func(s *CallbackServer) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// NewCallbackServer creates a callback server. Zero values select the defaults.
func NewCallbackServer(host string, port int, path string, logger *slog.Logger, opts ...CallbackOption) *CallbackServer {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	if path == "" {
		path = DefaultPath
	}

	s := &CallbackServer{
		host:   host,
		port:   port,
		path:   path,
		logger: logger,
		expiry: DefaultExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RedirectURL is the URL registered with LinkedIn for this listener
func (s *CallbackServer) RedirectURL() string {
	return "http://" + net.JoinHostPort(s.host, strconv.Itoa(s.port)) + s.path
}

// Addr returns the bound address while waiting, empty otherwise
func (s *CallbackServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the port and accepts the redirect carrying state. The listener
// stops by itself after the configured expiry, so an abandoned flow can be restarted.
func (s *CallbackServer) Start(state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrAlreadyWaiting
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return fmt.Errorf("listening for OAuth callback: %w", err)
	}

	r := chi.NewRouter()
	r.Get(s.path, s.handleCallback)

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.srv = srv
	s.listener = ln
	s.state = state
	s.results = make(chan result, 1)
	s.timer = time.AfterFunc(s.expiry, func() { s.expire(srv) })

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("OAuth callback server error", "error", err)
		}
	}(srv)

	s.logger.Info("waiting for OAuth callback", "redirect_url", s.RedirectURL())
	return nil
}

// Wait blocks until the redirect arrives or ctx ends, then stops the listener
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.srv == nil {
		s.mu.Unlock()
		return "", ErrNotStarted
	}
	srv := s.srv
	results := s.results
	s.mu.Unlock()

	defer s.shutdown(srv)

	select {
	case res := <-results:
		return res.code, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

// Close stops a listener that is still waiting. It is safe to call at any time.
func (s *CallbackServer) Close() {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	s.shutdown(srv)
}

// expire ends a listener nobody answered, waking a pending Wait with ErrTimeout
func (s *CallbackServer) expire(srv *http.Server) {
	s.mu.Lock()
	if s.srv != srv {
		s.mu.Unlock()
		return
	}
	select {
	case s.results <- result{err: ErrTimeout}:
	default:
	}
	s.mu.Unlock()

	s.logger.Warn("OAuth callback listener expired", "after", s.expiry)
	s.shutdown(srv)
}

// shutdown stops srv if it is still the active listener
func (s *CallbackServer) shutdown(srv *http.Server) {
	s.mu.Lock()
	if srv == nil || s.srv != srv {
		s.mu.Unlock()
		return
	}
	s.srv = nil
	s.listener = nil
	s.state = ""
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Warn("OAuth callback server shutdown", "error", err)
	}
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	state := s.state
	results := s.results
	s.mu.Unlock()

	var res result
	switch {
	case q.Get("error") != "":
		reason := q.Get("error_description")
		if reason == "" {
			reason = q.Get("error")
		}
		res.err = fmt.Errorf("%w: %s", ErrDenied, reason)
	case q.Get("code") == "":
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	case q.Get("state") != state:
		res.err = ErrStateMismatch
	default:
		res.code = q.Get("code")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if res.err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(failurePage))
	} else {
		w.Write([]byte(successPage))
	}

	// only the first redirect counts
	select {
	case results <- res:
	default:
	}
}
