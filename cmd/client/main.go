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
	"fmt"
	"os"

	"github.com/tochemey/goactor/client"
	"github.com/tochemey/goactor/config"
	"github.com/tochemey/goactor/internal/metric"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	address := flag.String("address", "127.0.0.1:9999", "server address")
	text := flag.String("text", "hello", "text of the test request")
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

	c, err := client.Dial(ctx, *address, registry,
		client.WithLogger(logger),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithCompression(cfg.Compression),
		client.WithMaxFrameSize(cfg.MaxFrameSize),
		client.WithMeter(metric.NewProvider().Meter()),
		client.WithPushHandler(func(payload any) {
			logger.Infof("push received: %+v", payload)
		}))
	if err != nil {
		logger.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = c.Close() }()

	reply, err := c.Request(ctx, &message.TestRequest{Txt: *text}, cfg.RequestTimeout)
	if err != nil {
		logger.Errorf("request failed: %v", err)
		return
	}
	fmt.Printf("%+v\n", reply)
}
