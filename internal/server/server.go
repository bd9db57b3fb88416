// Package server serves a browser viewer and streams snapshot frames of a
// running simulation over a websocket at /ws.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/sphsim/internal/sim"
	"github.com/san-kum/sphsim/internal/snapshot"
	"github.com/san-kum/sphsim/internal/sph"
)

//go:embed static
var staticFiles embed.FS

type Params struct {
	Address string
	Root    string        // directory served at /; empty serves the built-in viewer
	Every   int           // broadcast a frame every Every steps
	MinGap  time.Duration // minimum wall time between frames
}

type Server struct {
	params   Params
	logger   *slog.Logger
	hub      *Hub
	upgrader websocket.Upgrader
}

func New(p Params, logger *slog.Logger) *Server {
	if p.Every < 1 {
		p.Every = 1
	}
	return &Server{
		params: p,
		logger: logger,
		hub:    NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes: static files at / and the stream at /ws.
func (s *Server) Handler() http.Handler {
	var files http.FileSystem
	if s.params.Root != "" {
		files = http.Dir(s.params.Root)
	} else {
		sub, _ := fs.Sub(staticFiles, "static")
		files = http.FS(sub)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(files))
	mux.HandleFunc("/ws", s.wsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "remote", r.RemoteAddr, "method", r.Method, "url", r.URL.String())
		mux.ServeHTTP(w, r)
	})
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		var he websocket.HandshakeError
		if !errors.As(err, &he) {
			s.logger.Warn("websocket upgrade failed", "err", err)
		}
		return
	}
	s.hub.serve(conn)
}

// Simulate steps st until ctx is done, broadcasting an encoded frame every
// params.Every steps. Frames are encoded between steps, so clients never
// observe a step in progress.
func (s *Server) Simulate(ctx context.Context, st *sph.State, dt float64) error {
	runner := sim.New(s.logger)
	last := time.Time{}

	err := runner.RunWithCallback(ctx, st, sim.Config{Dt: dt, ValidateState: true}, func(st *sph.State, d sph.Diagnostics) bool {
		if d.Step%s.params.Every != 0 {
			return true
		}
		if gap := time.Since(last); gap < s.params.MinGap {
			time.Sleep(s.params.MinGap - gap)
		}
		last = time.Now()
		s.hub.Broadcast(snapshot.Marshal(st.Particles))
		if d.Step%(s.params.Every*100) == 0 {
			s.logger.Debug("streaming", "diag", d, "clients", s.hub.Len(), "dropped", s.hub.Dropped())
		}
		return true
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.params.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "address", s.params.Address, "root", s.params.Root)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
