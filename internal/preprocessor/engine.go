// Package preprocessor implements recursive #include expansion for shell
// scripts: path resolution confined to a base directory, cycle detection
// over canonical paths, and depth limiting.
package preprocessor

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrison/shrup/internal/parser"
)

// DefaultMaxIncludeDepth bounds include nesting when no explicit limit is
// configured.
const DefaultMaxIncludeDepth = 100

// Marker comments emitted around spliced blocks in debug mode. The path is
// the raw text from the directive, not the resolved one, because the marker
// exists to show authors where their own text was inlined.
const (
	markerBeginFormat = "# --- Included from %s ---"
	markerEndFormat   = "# --- End of %s ---"
)

// Config is the policy for one preprocessing run, constant for its duration.
type Config struct {
	// Debug brackets each spliced block with marker comments.
	Debug bool

	// MaxIncludeDepth caps include nesting; the top-level file is depth 1.
	// Zero selects DefaultMaxIncludeDepth.
	MaxIncludeDepth int

	// BaseDirectory is the sandbox root for include resolution.
	BaseDirectory string
}

// Tracer receives progress callbacks as the engine enters and leaves files.
// Depth counts the file itself, so the top-level input reports depth 1.
type Tracer interface {
	EnterFile(path string, depth int)
	LeaveFile(path string, depth int)
}

// Engine performs recursive include expansion under one Config. It is the
// only component that mutates the Context threaded through a run.
type Engine struct {
	cfg      Config
	resolver *Resolver
	tracer   Tracer
}

// NewEngine builds an engine for cfg. BaseDirectory must name an existing
// directory.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxIncludeDepth == 0 {
		cfg.MaxIncludeDepth = DefaultMaxIncludeDepth
	}
	if cfg.MaxIncludeDepth < 0 {
		return nil, fmt.Errorf("max include depth must be positive, got %d", cfg.MaxIncludeDepth)
	}

	resolver, err := NewResolver(cfg.BaseDirectory)
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, resolver: resolver}, nil
}

// SetTracer installs a progress tracer; nil disables tracing.
func (e *Engine) SetTracer(t Tracer) {
	e.tracer = t
}

// ExpandFile expands input and returns the output lines in depth-first,
// line-order traversal of the include tree. The first error anywhere in the
// tree aborts the run; partial output is never returned.
func (e *Engine) ExpandFile(input string) ([]string, error) {
	canon, err := CanonicalizeFile(input)
	if err != nil {
		return nil, err
	}

	ctx := NewContext(e.cfg.MaxIncludeDepth)
	if err := ctx.Enter(canon); err != nil {
		return nil, err
	}
	defer ctx.Leave()

	return e.expand(canon, ctx)
}

// expand processes one file. path must be canonical and already entered in
// ctx; the caller owns the matching Leave.
func (e *Engine) expand(path string, ctx *Context) ([]string, error) {
	if e.tracer != nil {
		e.tracer.EnterFile(path, ctx.Depth())
		defer e.tracer.LeaveFile(path, ctx.Depth())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		// Covers races between resolution and read.
		return nil, classifyPathError(path, err)
	}

	var out []string
	for i, line := range splitLines(string(content)) {
		lineNumber := i + 1

		directive, err := parser.ParseLine(line, lineNumber, path)
		if err != nil {
			return nil, err
		}
		if directive == nil {
			out = append(out, line)
			continue
		}

		included, err := e.expandDirective(directive, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNumber, err)
		}
		out = append(out, included...)
	}
	return out, nil
}

// expandDirective resolves one directive and returns the expansion of its
// target, wrapped in markers when debug mode is on. The context entry is
// released on every exit path so a failed include cannot poison a later,
// independent include of the same file.
func (e *Engine) expandDirective(d *parser.Directive, ctx *Context) ([]string, error) {
	resolved, err := e.resolver.Resolve(d.Path, d.SourceFile)
	if err != nil {
		return nil, err
	}

	if err := ctx.Enter(resolved); err != nil {
		return nil, err
	}
	defer ctx.Leave()

	lines, err := e.expand(resolved, ctx)
	if err != nil {
		return nil, err
	}

	if !e.cfg.Debug {
		return lines, nil
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, fmt.Sprintf(markerBeginFormat, d.Path))
	out = append(out, lines...)
	out = append(out, fmt.Sprintf(markerEndFormat, d.Path))
	return out, nil
}

// splitLines splits content into lines. A trailing newline does not produce
// a phantom empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Render joins output lines into the final text, newline-terminated.
func Render(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
