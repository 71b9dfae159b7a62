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

package actor

import (
	"context"
	"slices"
	"sync"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	gerrors "github.com/tochemey/goactor/errors"
	"github.com/tochemey/goactor/internal/metric"
	"github.com/tochemey/goactor/internal/ticker"
	"github.com/tochemey/goactor/internal/xsync"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

const (
	// DefaultTick is the interval between two scheduling passes
	DefaultTick = 10 * time.Millisecond
	// DefaultSessionCheckInterval is how often an actor polls its session
	DefaultSessionCheckInterval = time.Second

	postBufferSize = 1024
)

// System maps sessions to actors and runs their components.
//
// Scheduling passes, posted functions and handler replies all run on one
// execution goroutine, so passes never overlap and code running there never
// races with another update of the same actor. Handlers run on their own
// goroutines and hand their result back to the execution goroutine before
// anything is sent.
type System struct {
	registry *message.Registry
	codec    *message.Codec
	handlers *Handlers
	logger   log.Logger

	tick                 time.Duration
	sessionCheckInterval time.Duration
	factories            []ComponentFactory
	unhandled            UnhandledFunc

	bySession *xsync.Map[uint32, *Actor]
	byID      *xsync.Map[int64, *Actor]
	listMu    sync.RWMutex
	actors    []*Actor
	nextID    atomic.Int64

	startMu sync.Mutex
	ticker  *ticker.Ticker
	posts   chan func()
	started atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc

	meter        otelmetric.Meter
	metrics      *metric.SystemMetric
	registration otelmetric.Registration
}

// NewSystem creates an actor system. codec encodes replies and pushes;
// handlers serves inbound requests.
func NewSystem(codec *message.Codec, handlers *Handlers, opts ...Option) *System {
	sys := &System{
		registry:             codec.Registry(),
		codec:                codec,
		handlers:             handlers,
		logger:               log.DefaultLogger,
		tick:                 DefaultTick,
		sessionCheckInterval: DefaultSessionCheckInterval,
		bySession:            xsync.NewMap[uint32, *Actor](),
		byID:                 xsync.NewMap[int64, *Actor](),
		actors:               make([]*Actor, 0),
	}

	for _, opt := range opts {
		opt.Apply(sys)
	}
	return sys
}

// Start launches the execution goroutine and the scheduling ticker.
func (s *System) Start(ctx context.Context) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started.Load() {
		return nil
	}

	if s.meter != nil {
		if err := s.registerMetrics(); err != nil {
			return err
		}
	}

	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.posts = make(chan func(), postBufferSize)
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.ticker = ticker.New(s.tick)
	s.ticker.Start()
	s.started.Store(true)

	go s.run()
	s.logger.Infof("actor system started: tick=(%s) messages=(%d) handlers=(%d) fingerprint=(%x)",
		s.tick, s.registry.Len(), s.handlers.Len(), s.registry.Fingerprint())
	return nil
}

// Stop removes every actor, then stops the execution goroutine. Handlers
// still running are cancelled through their context and their replies are
// dropped.
func (s *System) Stop(ctx context.Context) error {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if !s.started.Load() {
		return nil
	}

	var err error
	done := make(chan struct{})
	if s.post(func() {
		s.RemoveActors(ctx, func(*Actor) bool { return true })
		close(done)
	}) {
		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	s.started.Store(false)
	s.ticker.Stop()
	close(s.stopCh)
	<-s.doneCh
	s.cancel()

	if s.registration != nil {
		err = multierr.Append(err, s.registration.Unregister())
		s.registration = nil
	}

	s.logger.Info("actor system stopped")
	return err
}

// Running reports whether Start has been called and Stop has not.
func (s *System) Running() bool {
	return s.started.Load()
}

// Post runs fn on the execution goroutine. It returns false when the
// system is not running.
func (s *System) Post(fn func()) bool {
	if !s.started.Load() {
		return false
	}
	return s.post(fn)
}

// Tick runs one scheduling pass on the execution goroutine and waits for
// it. It lets callers drive the scheduler deterministically.
func (s *System) Tick(ctx context.Context) error {
	if !s.started.Load() {
		return gerrors.ErrSystemNotStarted
	}
	done := make(chan struct{})
	if !s.post(func() {
		s.pass(time.Now())
		close(done)
	}) {
		return gerrors.ErrSystemNotStarted
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Codec returns the envelope codec.
func (s *System) Codec() *message.Codec {
	return s.codec
}

// Handlers returns the request handler table.
func (s *System) Handlers() *Handlers {
	return s.handlers
}

// Logger returns the system logger.
func (s *System) Logger() log.Logger {
	return s.logger
}

// AddActor returns the actor bound to session, creating it first if needed.
// A new actor gets its built-in components and the configured ones before
// it becomes visible to the scheduler.
func (s *System) AddActor(ctx context.Context, session Session) (*Actor, error) {
	if actor, ok := s.bySession.Get(session.ID()); ok {
		return actor, nil
	}

	actor, loaded := s.bySession.GetOrSet(session.ID(), func() *Actor {
		return newActor(s.nextID.Inc(), s, session)
	})
	if loaded {
		return actor, nil
	}

	if err := s.setup(ctx, actor); err != nil {
		s.bySession.Delete(session.ID())
		_ = actor.destroy(ctx)
		return nil, err
	}

	s.byID.Set(actor.id, actor)
	s.listMu.Lock()
	s.actors = append(s.actors, actor)
	s.listMu.Unlock()

	actor.logger.Debugf("actor created for session=(%s) remote=(%s)", session.Name(), session.RemoteAddr())
	return actor, nil
}

// RemoveActor tears actor down: its session is closed, every component is
// destroyed and it disappears from every index. Only the first call for a
// given actor does anything; it returns false for the others.
func (s *System) RemoveActor(ctx context.Context, actor *Actor) bool {
	if actor == nil {
		return false
	}
	if _, ok := s.byID.Take(actor.id); !ok {
		return false
	}

	actor.stopped.Store(true)
	session := actor.Session()
	if session != nil {
		if current, ok := s.bySession.Get(session.ID()); ok && current == actor {
			s.bySession.Delete(session.ID())
		}
	}

	s.listMu.Lock()
	s.actors = slices.DeleteFunc(s.actors, func(other *Actor) bool { return other == actor })
	s.listMu.Unlock()

	if session != nil {
		if err := session.Close(); err != nil {
			actor.logger.Warnf("failed to close session=(%s): %v", session.Name(), err)
		}
	}
	if err := actor.destroy(ctx); err != nil {
		actor.logger.Errorf("failed to destroy components: %v", err)
	}

	actor.logger.Debugf("actor removed after %s online", actor.Online())
	return true
}

// RemoveActorBySession removes the actor bound to sessionID.
func (s *System) RemoveActorBySession(ctx context.Context, sessionID uint32) bool {
	actor, ok := s.bySession.Get(sessionID)
	if !ok {
		return false
	}
	return s.RemoveActor(ctx, actor)
}

// RemoveActorByID removes the actor with the given id.
func (s *System) RemoveActorByID(ctx context.Context, id int64) bool {
	actor, ok := s.byID.Get(id)
	if !ok {
		return false
	}
	return s.RemoveActor(ctx, actor)
}

// RemoveActors removes every actor matching predicate and returns how many
// were removed.
func (s *System) RemoveActors(ctx context.Context, predicate func(*Actor) bool) int {
	removed := 0
	for _, actor := range s.Actors() {
		if predicate(actor) && s.RemoveActor(ctx, actor) {
			removed++
		}
	}
	return removed
}

// ActorBySession returns the actor bound to sessionID.
func (s *System) ActorBySession(sessionID uint32) (*Actor, bool) {
	return s.bySession.Get(sessionID)
}

// ActorByID returns the actor with the given id.
func (s *System) ActorByID(id int64) (*Actor, bool) {
	return s.byID.Get(id)
}

// FindActor returns the first actor, in creation order, matching predicate.
func (s *System) FindActor(predicate func(*Actor) bool) (*Actor, bool) {
	for _, actor := range s.Actors() {
		if predicate(actor) {
			return actor, true
		}
	}
	return nil, false
}

// Actors returns a snapshot of the live actors in creation order.
func (s *System) Actors() []*Actor {
	s.listMu.RLock()
	defer s.listMu.RUnlock()
	return slices.Clone(s.actors)
}

// Len returns the number of live actors.
func (s *System) Len() int {
	s.listMu.RLock()
	defer s.listMu.RUnlock()
	return len(s.actors)
}

func (s *System) setup(ctx context.Context, actor *Actor) error {
	if err := attach(ctx, actor, newSessionComponent(s.sessionCheckInterval)); err != nil {
		return err
	}
	if err := attach(ctx, actor, newRequestComponent()); err != nil {
		return err
	}
	for _, factory := range s.factories {
		if err := attach(ctx, actor, factory(actor)); err != nil {
			return err
		}
	}
	return nil
}

// rebind moves the session index entry of actor from old to current.
func (s *System) rebind(actor *Actor, old, current Session) {
	if current != nil {
		s.bySession.Set(current.ID(), actor)
	}
	if old != nil && (current == nil || old.ID() != current.ID()) {
		if mapped, ok := s.bySession.Get(old.ID()); ok && mapped == actor {
			s.bySession.Delete(old.ID())
		}
	}
}

func (s *System) run() {
	defer close(s.doneCh)
	for {
		select {
		case <-s.stopCh:
			return
		case now := <-s.ticker.Ticks:
			s.pass(now)
		case fn := <-s.posts:
			fn()
		}
	}
}

// pass visits every actor in creation order and updates its due components.
// Actors removed earlier in the same pass are skipped.
func (s *System) pass(now time.Time) {
	for _, actor := range s.Actors() {
		if actor.stopped.Load() {
			continue
		}
		if err := actor.Update(s.ctx, now); err != nil {
			actor.logger.Errorf("component update failed: %v", err)
		}
	}
}

func (s *System) post(fn func()) bool {
	select {
	case s.posts <- fn:
		return true
	case <-s.stopCh:
		return false
	}
}

func (s *System) registerMetrics() error {
	metrics, err := metric.NewSystemMetric(s.meter)
	if err != nil {
		return err
	}
	registration, err := s.meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		observer.ObserveInt64(metrics.ActorsCount(), int64(s.Len()))
		return nil
	}, metrics.ActorsCount())
	if err != nil {
		return err
	}
	s.metrics = metrics
	s.registration = registration
	return nil
}

func (s *System) record(counter func(*metric.SystemMetric) otelmetric.Int64Counter) {
	if s.metrics == nil {
		return
	}
	counter(s.metrics).Add(s.ctx, 1)
}
