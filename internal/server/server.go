// Package server is a development implementation of the users/tasks REST
// API backed by sqlite. It lets the client run and be tested end to end.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"uadmin/internal/domain"
	"uadmin/internal/gateway"
	"uadmin/internal/logging"
	"uadmin/internal/repository/sqlite"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server serves the API over a repository.
type Server struct {
	repo     sqlite.Repository
	mapper   *domain.Mapper
	router   *mux.Router
	hashCost int
}

// Option configures a Server.
type Option func(*Server)

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Server) {
		s.hashCost = cost
	}
}

// New creates a server and registers its routes.
func New(repo sqlite.Repository, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		mapper:   domain.NewMapper(),
		router:   mux.NewRouter(),
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID, logRequests)

	users := s.router.PathPrefix("/users").Subrouter()
	users.HandleFunc("", s.listUsers).Methods(http.MethodGet)
	users.HandleFunc("", s.createUser).Methods(http.MethodPost)
	users.HandleFunc("/{id:[0-9]+}", s.getUser).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}", s.updateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id:[0-9]+}", s.deleteUser).Methods(http.MethodDelete)

	tasks := s.router.PathPrefix("/tasks").Subrouter()
	tasks.HandleFunc("", s.createTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{id:[0-9]+}", s.updateTask).Methods(http.MethodPut)
	tasks.HandleFunc("/{id:[0-9]+}", s.deleteTask).Methods(http.MethodDelete)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Debugf("server: listening on %s\n", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestID echoes the caller's request ID or assigns one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(gateway.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(gateway.RequestIDHeader, id)
		}
		w.Header().Set(gateway.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Debugf("server: %s %s [%s] %d %s\n", r.Method, r.URL.Path,
			r.Header.Get(gateway.RequestIDHeader), rec.status, time.Since(start))
	})
}
