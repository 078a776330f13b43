// Command portfolio serves the site locally: localized pages, project
// images and the compiled background module.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/aek676/portfolio/internal/logging"
	"github.com/aek676/portfolio/internal/server"
	"github.com/aek676/portfolio/site/content"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	contentDir := flag.String("content", "src/projects", "directory holding project .mdx entries")
	staticDir := flag.String("static", "public", "directory holding background.wasm and wasm_exec.js")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := logging.NewDefaultLogger("portfolio", *debug)

	contentFS := os.DirFS(*contentDir)
	projects, err := content.Load(contentFS, log)
	switch {
	case projects == nil:
		log.Warnf("No projects loaded: %v", err)
		projects = &content.Collection{}
	case err != nil:
		// invalid entries are skipped; the rest are still served
		log.Warnf("Some projects failed validation: %v", err)
	}
	log.Infof("Loaded %d projects from %s", len(projects.Projects), *contentDir)

	srv, err := server.New(server.Config{
		Static:  os.DirFS(*staticDir),
		Content: contentFS,
	}, projects, log)
	if err != nil {
		log.Errorf("Templates: %v", err)
		os.Exit(1)
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Errorf("Listen: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, ln, server.LogRequests(log, srv.Handler()), log); err != nil {
		log.Errorf("Server: %v", err)
		os.Exit(1)
	}
}
