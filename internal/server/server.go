// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package server runs an SPA development server on a plain HTTP port until told
to stop, serving a single directory using a spafallback.SPAHandler.
*/
package server

import (
	"context"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/thediveo/spafallback"
)

// DefaultPort is the TCP port an SPA development server listens on unless
// told otherwise.
const DefaultPort = 8000

// DefaultShutdownTimeout limits how long in-flight requests may take to finish
// when shutting down.
const DefaultShutdownTimeout = 5 * time.Second

// Config describes what to serve and where.
type Config struct {
	Port            int           // TCP port to listen on; 0 picks a free port.
	Root            string        // directory to serve from.
	Index           string        // fallback document inside Root; defaults to "index.html".
	ShutdownTimeout time.Duration // defaults to DefaultShutdownTimeout.
}

// Server serves an SPA from a fixed serving root directory.
type Server struct {
	port            int
	root            string
	shutdownTimeout time.Duration
	log             *logrus.Entry
	httpsrv         *http.Server
	listener        net.Listener
}

// New returns a new Server for the specified configuration, or an error if the
// serving root isn't an accessible directory. If log is nil, the logrus
// standard logger is used.
func New(cfg Config, log *logrus.Entry) (*Server, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve serving root %q", cfg.Root)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "cannot access serving root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("serving root %q is not a directory", root)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	handler := spafallback.NewSPAHandler(os.DirFS(root), cfg.Index)
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(handler.Index()))); err != nil {
		log.WithField("index", handler.Index()).Warn("fallback document not found, client-side routes will 404")
	}
	return &Server{
		port:            cfg.Port,
		root:            root,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             log.WithField("root", root),
		httpsrv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Root returns the absolute path of the serving root directory.
func (s *Server) Root() string { return s.root }

// Addr returns the address the server is listening on, or nil if it isn't
// listening (yet).
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listen binds the server's TCP port on all interfaces. Calling Listen is
// optional, as Serve binds the port if necessary; it allows reporting the bound
// address before serving.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(s.port)))
	if err != nil {
		return errors.Wrapf(err, "cannot listen on port %d", s.port)
	}
	s.listener = l
	return nil
}

// Serve serves HTTP requests until the passed context gets cancelled, then
// gracefully shuts down, waiting at most the configured shutdown timeout for
// in-flight requests. Serve returns nil after a context-triggered shutdown. The
// listener is always closed when Serve returns.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	errlog := s.log.WriterLevel(logrus.WarnLevel)
	defer func() { _ = errlog.Close() }()
	s.httpsrv.ErrorLog = stdlog.New(errlog, "", 0)

	s.log.WithField("addr", s.listener.Addr().String()).Info("serving")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.httpsrv.Serve(s.listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving failed")
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpsrv.Shutdown(shutdownCtx); err != nil {
			_ = s.httpsrv.Close()
			return errors.Wrap(err, "graceful shutdown failed")
		}
		return nil
	})
	return g.Wait()
}
