package trends

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 10 * time.Second

// Observer receives provider activity. It is implemented by the metrics
// package and may be nil.
type Observer interface {
	ObserveProviderCall(provider, operation string, err error)
	ObserveActiveProvider(active string, providers []string)
}

// Selector holds the priority-ordered list of providers that passed the
// startup probe and the one currently serving requests. Switching only
// happens at startup or through Switch.
type Selector struct {
	mu        sync.RWMutex
	providers []Provider
	active    int

	logger   *zap.SugaredLogger
	observer Observer
}

type SelectorOption func(*Selector)

func WithObserver(o Observer) SelectorOption {
	return func(s *Selector) {
		s.observer = o
	}
}

// NewSelector probes every candidate once, in order, and keeps those that
// report a usable health status. The fallback provider is always kept and
// always comes last.
func NewSelector(ctx context.Context, logger *zap.SugaredLogger, fallback Provider, candidates []Provider, options ...SelectorOption) *Selector {
	s := &Selector{logger: logger}
	for _, option := range options {
		option(s)
	}

	for _, p := range candidates {
		if p == nil {
			continue
		}
		health := s.probe(ctx, p)
		if !health.Usable() {
			logger.Warnf("Provider %s failed startup health check: %s (%s)", p.Name(), health.Status, health.Note)
			continue
		}
		logger.Infof("Provider %s initialized (status: %s)", p.Name(), health.Status)
		s.providers = append(s.providers, p)
	}
	if fallback != nil {
		s.providers = append(s.providers, fallback)
	}

	if len(s.providers) > 0 {
		logger.Infof("Active provider: %s", s.providers[0].Name())
	} else {
		logger.Errorf("No data providers available")
	}
	s.notify()

	return s
}

func (s *Selector) probe(ctx context.Context, p Provider) (h Health) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h = Health{
				Status:    StatusError,
				Timestamp: time.Now().Format(time.RFC3339),
				Note:      fmt.Sprint(r),
			}
		}
	}()

	return p.HealthCheck(ctx)
}

// Active returns the provider currently serving requests, or nil when the
// selector is empty.
func (s *Selector) Active() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.providers) == 0 {
		return nil
	}
	return s.providers[s.active]
}

func (s *Selector) ActiveName() string {
	if p := s.Active(); p != nil {
		return p.Name()
	}
	return "None"
}

// Get returns the named provider, or the active one when name is empty or
// unknown.
func (s *Selector) Get(name string) Provider {
	if p, ok := s.Lookup(name); ok {
		return p
	}
	return s.Active()
}

func (s *Selector) Lookup(name string) (Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	return s.providers[i], true
}

// Switch makes the named provider active. It reports false when no
// provider with that name is registered.
func (s *Selector) Switch(name string) bool {
	s.mu.Lock()
	i := s.index(name)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.active = i
	active := s.providers[i].Name()
	s.mu.Unlock()

	s.logger.Infof("Switched to provider: %s", active)
	s.notify()

	return true
}

func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Status runs the health check of every registered provider.
func (s *Selector) Status(ctx context.Context) map[string]Health {
	s.mu.RLock()
	providers := append([]Provider(nil), s.providers...)
	s.mu.RUnlock()

	status := make(map[string]Health, len(providers))
	for _, p := range providers {
		status[p.Name()] = s.probe(ctx, p)
	}
	return status
}

func (s *Selector) index(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}
	for i, p := range s.providers {
		if strings.EqualFold(p.Name(), name) {
			return i
		}
	}
	return -1
}

func (s *Selector) notify() {
	if s.observer == nil {
		return
	}
	s.observer.ObserveActiveProvider(s.ActiveName(), s.Names())
}
