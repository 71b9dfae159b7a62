// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tochemey/goactor/actor"
	"github.com/tochemey/goactor/config"
	"github.com/tochemey/goactor/internal/metric"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
	"github.com/tochemey/goactor/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	ctx := context.Background()
	logger := log.NewZap(log.InfoLevel, os.Stdout)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.Level())

	registry := message.NewRegistry()
	if err := message.RegisterBuiltins(registry); err != nil {
		logger.Fatalf("failed to register messages: %v", err)
	}

	handlers := actor.NewHandlers()
	if err := handlers.RegisterFor(registry, new(message.TestRequest), actor.Typed(
		func(_ context.Context, a *actor.Actor, req *message.TestRequest) (any, error) {
			a.Logger().Infof("received %q", req.Txt)
			return &message.TestResponse{Txt: "response"}, nil
		})); err != nil {
		logger.Fatalf("failed to register handler: %v", err)
	}

	srv, err := server.New(cfg, registry, handlers,
		server.WithLogger(logger),
		server.WithMeter(metric.NewProvider().Meter()))
	if err != nil {
		logger.Fatalf("failed to create server: %v", err)
	}
	if err := srv.Start(ctx); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}

	// only the log level is applied at runtime; other settings need a restart
	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, logger)
		if err != nil {
			logger.Fatalf("failed to watch configuration: %v", err)
		}
		watcher.OnChange(func(old, current *config.Config) {
			if old.Level() != current.Level() {
				logger.SetLevel(current.Level())
				logger.Infof("log level changed from %s to %s", old.Level(), current.Level())
			}
		})
		if err := watcher.Start(); err != nil {
			logger.Fatalf("failed to watch configuration: %v", err)
		}
		defer func() { _ = watcher.Stop() }()
	}

	// capture ctrl+c
	interruptSignal := make(chan os.Signal, 1)
	signal.Notify(interruptSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-interruptSignal

	stopCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout+cfg.SessionCheckInterval)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		logger.Errorf("failed to stop server: %v", err)
	}
	_ = logger.Flush()
}
