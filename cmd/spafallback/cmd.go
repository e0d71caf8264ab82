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

package main

import (
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thediveo/spafallback"
	"github.com/thediveo/spafallback/internal/server"
)

// shutdownSignals trigger a graceful shutdown.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// options of the root command.
type options struct {
	port  int
	root  string
	index string
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "spafallback",
		Short: "serves a single-page application for local development",
		Long: `spafallback serves the static assets of a single-page application and
falls back to the application's index document for any path without a file
extension that doesn't name an existing file, so that the client-side router
can take over.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	addFlags(cmd.Flags(), &opts)
	return cmd
}

func addFlags(flags *pflag.FlagSet, opts *options) {
	flags.IntVarP(&opts.port, "port", "p", server.DefaultPort,
		"TCP port to listen on")
	flags.StringVarP(&opts.root, "root", "r", executableDir(),
		"directory to serve from")
	flags.StringVar(&opts.index, "index", spafallback.DefaultIndex,
		"fallback document served for client-side routes")
}

// run serves until interrupted, returning nil after an interrupt-triggered
// shutdown.
func run(cmd *cobra.Command, opts options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv, err := server.New(server.Config{
		Port:  opts.port,
		Root:  opts.root,
		Index: opts.index,
	}, logrus.NewEntry(log))
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return err
	}
	port := srv.Addr().(*net.TCPAddr).Port
	printBanner(cmd.OutOrStdout(), port, srv.Root())

	if err := srv.Serve(ctx); err != nil {
		return err
	}
	printStopped(cmd.OutOrStdout())
	return nil
}

// executableDir returns the directory containing this program's executable,
// with symbolic links resolved, falling back to the current working directory.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
