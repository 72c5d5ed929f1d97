// Package migration switches every data-layer call between the legacy and the
// next implementation and falls back to legacy when the next one fails.
package migration

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/core/events"
)

// Config is replaced as a whole; a loaded *Config is never mutated.
type Config struct {
	UseNewService    bool                 `json:"useNewService"`
	EnableLogging    bool                 `json:"enableLogging"`
	FallbackToLegacy bool                 `json:"fallbackToLegacy"`
	NoFallbackCodes  []internal.ErrorCode `json:"noFallbackCodes"`
}

func (c Config) clone() Config {
	c.NoFallbackCodes = append([]internal.ErrorCode{}, c.NoFallbackCodes...)
	return c
}

// fallsBackOn reports whether a failure with code is retried on legacy.
func (c Config) fallsBackOn(code internal.ErrorCode) bool {
	if !c.FallbackToLegacy {
		return false
	}
	for _, blocked := range c.NoFallbackCodes {
		if blocked == code {
			return false
		}
	}
	return true
}

// Patch is a partial update; nil fields keep their current value.
type Patch struct {
	UseNewService    *bool                 `json:"useNewService,omitempty"`
	EnableLogging    *bool                 `json:"enableLogging,omitempty"`
	FallbackToLegacy *bool                 `json:"fallbackToLegacy,omitempty"`
	NoFallbackCodes  *[]internal.ErrorCode `json:"noFallbackCodes,omitempty"`
}

func (p Patch) apply(c Config) Config {
	if p.UseNewService != nil {
		c.UseNewService = *p.UseNewService
	}
	if p.EnableLogging != nil {
		c.EnableLogging = *p.EnableLogging
	}
	if p.FallbackToLegacy != nil {
		c.FallbackToLegacy = *p.FallbackToLegacy
	}
	if p.NoFallbackCodes != nil {
		c.NoFallbackCodes = append([]internal.ErrorCode{}, (*p.NoFallbackCodes)...)
	}
	return c
}

// FromAppConfig converts the migration section of the application config.
func FromAppConfig(cfg internal.MigrationConfig) Config {
	codes := make([]internal.ErrorCode, 0, len(cfg.NoFallbackCodes))
	for _, code := range cfg.NoFallbackCodes {
		codes = append(codes, internal.ErrorCode(code))
	}
	return Config{
		UseNewService:    cfg.UseNewService,
		EnableLogging:    cfg.EnableLogging,
		FallbackToLegacy: cfg.FallbackToLegacy,
		NoFallbackCodes:  codes,
	}
}

// Manager holds the process-wide routing configuration. Readers load an
// immutable snapshot per call; writers are serialised.
type Manager struct {
	current   atomic.Pointer[Config]
	mu        sync.Mutex
	logger    *slog.Logger
	publisher events.Publisher
	metrics   *Metrics
}

func NewManager(cfg Config, logger *slog.Logger, publisher events.Publisher, metrics *Metrics) *Manager {
	if publisher == nil {
		publisher = events.Discard
	}
	m := &Manager{
		logger:    logger,
		publisher: publisher,
		metrics:   metrics,
	}
	initial := cfg.clone()
	m.current.Store(&initial)
	return m
}

func (m *Manager) snapshot() *Config {
	return m.current.Load()
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() Config {
	return m.snapshot().clone()
}

func (m *Manager) ShouldUseNewService() bool {
	return m.snapshot().UseNewService
}

// UpdateConfig merges p into the current configuration and returns the result.
func (m *Manager) UpdateConfig(p Patch) Config {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := p.apply(m.snapshot().clone())
	m.current.Store(&next)

	m.logger.Info("migration config updated",
		"use_new_service", next.UseNewService,
		"enable_logging", next.EnableLogging,
		"fallback_to_legacy", next.FallbackToLegacy,
		"no_fallback_codes", next.NoFallbackCodes)
	return next.clone()
}
