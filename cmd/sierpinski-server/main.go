// Command sierpinski-server serves rendered Sierpinski views over HTTP.
//
//	sierpinski-server -addr :8080
//	curl 'localhost:8080/render.png?width=640&height=480&zoom=12&x=-200&y=-150' > view.png
//	curl 'localhost:8080/api/stats?zoom=1000'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/sierpinski"
	"github.com/gogpu/sierpinski/internal/config"
	"github.com/gogpu/sierpinski/internal/server"
)

func run() error {
	var (
		addr    = flag.String("addr", ":8080", "listen address")
		cfgPath = flag.String("config", "", "YAML config file")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sierpinski.SetLogger(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(cfg).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sierpinski-server: %v\n", err)
		os.Exit(1)
	}
}
