package serde

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"objtree/internal/diagnostic"
	"objtree/internal/match"
	"objtree/options"
	"objtree/primitive"
	"objtree/walker"
)

// Report collects the non-fatal findings of a pass.
type Report = diagnostic.Diagnostics

// PassOption configures a single Serialize or Deserialize call.
type PassOption func(*passConfig)

type passConfig struct {
	report  *Report
	tags    options.TagEnum
	lenient bool
}

// WithReport makes the pass record its findings into r.
func WithReport(r *Report) PassOption {
	return func(c *passConfig) { c.report = r }
}

// WithTags applies tags to the top-level value, as a member would carry them.
func WithTags(tags options.TagEnum) PassOption {
	return func(c *passConfig) { c.tags = tags }
}

// WithLenientNodes makes a read tolerate absent class, container and pointer
// nodes: the destination is left unchanged and a missing-node warning is
// recorded instead of failing with ErrMalformed.
func WithLenientNodes() PassOption {
	return func(c *passConfig) { c.lenient = true }
}

func newPassConfig(opts []PassOption) passConfig {
	var cfg passConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.report == nil {
		cfg.report = &Report{}
	}

	return cfg
}

// pass is the state shared by both directions.
type pass struct {
	ctx       *Context
	w         walker.Walker
	report    *Report
	logger    *zap.Logger
	direction string
	path      []string
	nodes     int
	started   time.Time
	lenient   bool
}

func newPass(ctx *Context, w walker.Walker, cfg passConfig, direction string) pass {
	p := pass{
		ctx:       ctx,
		w:         w,
		report:    cfg.report,
		logger:    ctx.logger.With(zap.String("direction", direction)),
		direction: direction,
		started:   time.Now(),
		lenient:   cfg.lenient,
	}

	p.logger.Debug("pass started", zap.String("root", w.Name()))
	return p
}

func (p *pass) enter(name string) {
	p.path = append(p.path, name)
	p.nodes++
}

func (p *pass) leave() { p.path = p.path[:len(p.path)-1] }

func (p *pass) where() string {
	if len(p.path) == 0 {
		return p.w.Name()
	}

	return strings.Join(p.path, ".")
}

// errorf wraps a sentinel with the current node path.
func (p *pass) errorf(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, "%s: %s", p.where(), fmt.Sprintf(format, args...))
}

func (p *pass) wrap(err error) error {
	if err == nil {
		return nil
	}

	return errors.Wrapf(err, "%s", p.where())
}

func (p *pass) skipped(tags options.TagEnum) bool {
	return tags.Has(options.TagIgnore) || (p.ctx.skipLocal && tags.Has(options.TagLocal))
}

func (p *pass) category(t reflect.Type) (CategoryEnum, error) {
	cat := p.ctx.category(t)
	if cat == CategoryUnknown {
		return cat, p.errorf(ErrUnsupported, "%s", t)
	}

	return cat, nil
}

func (p *pass) warn(code, message, typeName string) {
	p.report.AddWarning(code, message, typeName, p.where())
}

func (p *pass) info(code, message, typeName string) {
	p.report.AddInfo(code, message, typeName, p.where())
}

func (p *pass) unregistered(t reflect.Type) {
	p.logger.Debug("unregistered type skipped", zap.Stringer("type", t), zap.String("path", p.where()))
	p.warn(diagnostic.CodeUnregistered, "type has no member table, members skipped", t.String())
}

func (p *pass) missingCaster(base reflect.Type, derivedName string) error {
	baseName := p.ctx.TypeName(base)
	err := p.errorf(ErrMissingCaster, "%s as %s", derivedName, baseName)

	hints := match.Suggest(derivedName, p.ctx.casters.DerivedNames(baseName), 3)
	if len(hints) > 0 {
		err = errors.WithHintf(err, "registered for %s: %s", baseName, strings.Join(hints, ", "))
	}

	p.report.AddError(diagnostic.CodeMissingCaster, "no caster to "+baseName, derivedName, p.where(), hints...)

	return err
}

// attr creates the attribute and stores v. A name already taken is reported.
func (p *pass) attr(name string, v primitive.Value) {
	if !p.w.CreateAttribute(name, options.TagNone) {
		p.collision(name)
		return
	}

	p.w.SetValue(name, v)
}

func (p *pass) collision(name string) {
	p.warn(diagnostic.CodeNameCollision, fmt.Sprintf("%q already exists on this node", name), "")
}

func (p *pass) finish(err error) {
	elapsed := time.Since(p.started)
	p.ctx.metrics.ObservePass(p.direction, p.nodes, elapsed, err)

	if err != nil {
		p.report.AddError("pass-failed", err.Error(), "", "")
		p.logger.Debug("pass failed", zap.Error(err), zap.Int("nodes", p.nodes))
		return
	}

	p.logger.Debug("pass finished",
		zap.Int("nodes", p.nodes),
		zap.Int("warnings", len(p.report.Warnings)),
		zap.Duration("elapsed", elapsed))
}
