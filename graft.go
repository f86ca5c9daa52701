package graft

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/graft/internal/logging"
	"github.com/aretw0/graft/internal/manifest"
	"github.com/aretw0/graft/internal/validator"
	"github.com/aretw0/graft/pkg/registry"
)

// Version is the graft release version, embedded in the CLI and the MCP
// server identity.
const Version = "0.3.0"

// ReportCache stores validation reports keyed by tree digest, so repeated
// runs over an unchanged tree (the common CI case) skip re-validation.
type ReportCache interface {
	Get(ctx context.Context, digest string) (*validator.Report, bool, error)
	Put(ctx context.Context, report *validator.Report) error
}

// Project is the high-level entry point for the graft library. It wraps the
// manifest loader and the validator and provides a simplified API for
// consumers: load a tree once, check it, introspect it.
type Project struct {
	dir    string
	logger *slog.Logger
	strict bool
	cache  ReportCache

	tree *manifest.Tree

	mu     sync.Mutex
	report *validator.Report
	reg    *registry.Registry
}

// Option defines a functional option for configuring the Project.
type Option func(*Project)

// WithLogger injects a custom logger, bypassing the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Project) {
		p.logger = logger
	}
}

// WithStrict escalates warnings (mirroring drift) to errors, the CI mode.
func WithStrict(strict bool) Option {
	return func(p *Project) {
		p.strict = strict
	}
}

// WithCache attaches a report cache.
func WithCache(cache ReportCache) Option {
	return func(p *Project) {
		p.cache = cache
	}
}

// Open loads the project tree rooted at dir.
func Open(dir string, opts ...Option) (*Project, error) {
	p := &Project{
		dir:    dir,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	tree, err := manifest.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project at %s: %w", dir, err)
	}
	p.tree = tree

	p.logger.Debug("project loaded", "dir", dir, "units", len(tree.Units), "digest", tree.Digest())
	return p, nil
}

// Dir returns the project root directory.
func (p *Project) Dir() string { return p.dir }

// Strict reports whether warnings escalate to errors.
func (p *Project) Strict() bool { return p.strict }

// Check validates the whole tree and returns the report. With a cache
// attached, an unchanged tree returns the cached report without re-running
// the checks.
func (p *Project) Check(ctx context.Context) (*validator.Report, error) {
	if p.cache != nil {
		cached, hit, err := p.cache.Get(ctx, p.tree.Digest())
		if err != nil {
			p.logger.Warn("report cache unavailable", "err", err)
		} else if hit {
			p.logger.Debug("report cache hit", "digest", p.tree.Digest())
			return cached, nil
		}
	}

	report, _ := p.validated()

	if p.cache != nil {
		if err := p.cache.Put(ctx, report); err != nil {
			p.logger.Warn("report cache write failed", "err", err)
		}
	}
	return report, nil
}

// Registry returns the entry-point registry of units that compiled cleanly.
func (p *Project) Registry() *registry.Registry {
	_, reg := p.validated()
	return reg
}

// validated runs validation once and memoizes the result.
func (p *Project) validated() (*validator.Report, *registry.Registry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.report == nil {
		p.report, p.reg = validator.New(p.logger).Validate(p.tree)
	}
	return p.report, p.reg
}
