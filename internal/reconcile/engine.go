// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile merges the answers of several reference systems into one
// verdict per identifier. Adapters are queried concurrently; a failed adapter
// counts as not found and never fails the verification.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/metadata-verifier/internal/form"
	"github.com/pdiddy/metadata-verifier/internal/identifier"
	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/internal/source"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// ErrNoSources is returned when a mode has no adapters to query.
var ErrNoSources = errors.New("no sources configured")

// Options configures an Engine. Registry adapters serve registry mode; the
// form feeds, fetched through Fetcher, serve form mode.
type Options struct {
	Registry []source.Adapter

	Feeds   []form.Feed
	Fetcher form.Fetcher
	FormID  string
	Locale  string

	// Recognizer classifies identifier cells. Nil uses the default placeholders.
	Recognizer *identifier.Recognizer

	// LookupTimeout bounds each adapter call. Zero leaves only the HTTP
	// client timeout and the caller's context.
	LookupTimeout time.Duration

	Logger *zerolog.Logger
}

// Engine holds the configured adapters. It is safe for concurrent use.
type Engine struct {
	opts   Options
	rec    *identifier.Recognizer
	logger *zerolog.Logger
}

// NewEngine returns an Engine for opts.
func NewEngine(opts Options) *Engine {
	rec := opts.Recognizer
	if rec == nil {
		rec = identifier.New(nil)
	}
	return &Engine{opts: opts, rec: rec, logger: logging.OrNop(opts.Logger)}
}

// Recognizer returns the identifier recognizer the engine classifies with.
func (e *Engine) Recognizer() *identifier.Recognizer { return e.rec }

// Session prepares one verification run in mode. Form mode fetches and
// indexes every feed here, once, so rows only do map lookups.
func (e *Engine) Session(ctx context.Context, mode types.Mode) (*Session, error) {
	var adapters []source.Adapter
	switch mode {
	case types.ModeRegistry:
		adapters = e.opts.Registry
	case types.ModeForm:
		if e.opts.Fetcher == nil || len(e.opts.Feeds) == 0 {
			return nil, fmt.Errorf("form mode: %w", ErrNoSources)
		}
		for _, a := range form.Load(ctx, e.opts.Fetcher, e.opts.FormID, e.opts.Locale, e.opts.Feeds, e.logger) {
			adapters = append(adapters, a)
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("%s mode: %w", mode, ErrNoSources)
	}

	names := source.Names(adapters)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return nil, fmt.Errorf("%s mode: duplicate source name %q", mode, n)
		}
		seen[n] = true
	}

	return &Session{
		mode:     mode,
		adapters: adapters,
		names:    names,
		rec:      e.rec,
		timeout:  e.opts.LookupTimeout,
		logger:   e.logger,
	}, nil
}

// Verify runs a one-off session and verifies a single value. ok is false
// when raw is malformed and no verdict applies.
func (e *Engine) Verify(ctx context.Context, raw, expected string, mode types.Mode) (v types.Verdict, ok bool, err error) {
	s, err := e.Session(ctx, mode)
	if err != nil {
		return types.Verdict{}, false, err
	}
	v, ok = s.Verify(ctx, raw, expected)
	return v, ok, nil
}

// Session verifies identifiers against a fixed adapter set. The adapter set
// and any form index are read-only, so a Session is safe for concurrent use.
type Session struct {
	mode     types.Mode
	adapters []source.Adapter
	names    []string
	rec      *identifier.Recognizer
	timeout  time.Duration
	logger   *zerolog.Logger
}

// Mode returns the session's verification mode.
func (s *Session) Mode() types.Mode { return s.mode }

// Sources returns the adapter names in query order.
func (s *Session) Sources() []string {
	return append([]string(nil), s.names...)
}

// Classify classifies a raw cell value.
func (s *Session) Classify(raw string) identifier.Kind { return s.rec.Classify(raw) }

// Verify produces the verdict for raw. Placeholders get a not-found-indicator
// verdict without any adapter call. Malformed values return ok=false.
// expected is the paired datatype cell, or "" when there is none.
func (s *Session) Verify(ctx context.Context, raw, expected string) (types.Verdict, bool) {
	switch s.rec.Classify(raw) {
	case identifier.Malformed:
		return types.Verdict{}, false
	case identifier.Placeholder:
		return s.placeholder(raw, expected), true
	}

	results := s.lookupAll(ctx, identifier.Normalize(raw))
	v := types.Verdict{
		Kind:          types.CellIdentifier,
		Mode:          s.mode,
		Value:         raw,
		IsVerified:    true,
		Sources:       s.Sources(),
		SourceResults: results,
	}

	inAll, inAny := v.FoundInAll(), v.FoundInAny()
	switch s.mode {
	case types.ModeForm:
		v.IsValid = inAny
	default:
		v.IsValid = inAll
	}
	v.HasDiscrepancy = inAny && !inAll

	applyDatatype(&v, reconcileDatatype(expected, v.Sources, results))
	v.Explanation = explain(v)
	return v, true
}

// lookupAll queries every adapter concurrently and waits for all of them.
// The result holds exactly one answer per adapter.
func (s *Session) lookupAll(ctx context.Context, id string) map[string]types.SourceAnswer {
	type lookupResult struct {
		name   string
		answer types.SourceAnswer
	}

	ch := make(chan lookupResult, len(s.adapters))
	var wg sync.WaitGroup

	for _, a := range s.adapters {
		wg.Add(1)
		go func(a source.Adapter) {
			defer wg.Done()
			ch <- lookupResult{name: a.Name(), answer: source.Resolve(ctx, a, id, s.timeout, s.logger)}
		}(a)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	results := make(map[string]types.SourceAnswer, len(s.adapters))
	for r := range ch {
		results[r.name] = r.answer
	}
	return results
}

func (s *Session) placeholder(raw, expected string) types.Verdict {
	v := types.Verdict{
		Kind:                types.CellIdentifier,
		Mode:                s.mode,
		Value:               raw,
		IsVerified:          true,
		IsNotFoundIndicator: true,
	}
	applyDatatype(&v, reconcileDatatype(expected, nil, nil))
	v.Explanation = explain(v)
	return v
}

func applyDatatype(v *types.Verdict, ag agreement) {
	v.ExpectedDatatype = ag.expected
	v.ActualDatatype = ag.actual
	v.DatatypeState = ag.state
	v.DatatypeMatch = ag.state != types.DatatypeMismatched
}

// DatatypeVerdict derives the verdict stored under the datatype cell paired
// with an identifier verdict. Its validity is the datatype agreement, not the
// identifier's validity.
func DatatypeVerdict(id types.Verdict, value string) types.Verdict {
	v := types.Verdict{
		Kind:                types.CellDatatype,
		Mode:                id.Mode,
		Value:               value,
		IsVerified:          id.IsVerified,
		IsValid:             id.DatatypeMatch,
		IsNotFoundIndicator: id.IsNotFoundIndicator,
		Sources:             id.Sources,
		SourceResults:       id.SourceResults,
		ExpectedDatatype:    id.ExpectedDatatype,
		ActualDatatype:      id.ActualDatatype,
		DatatypeMatch:       id.DatatypeMatch,
		DatatypeState:       id.DatatypeState,
	}
	if v.ExpectedDatatype == "" {
		v.ExpectedDatatype = strings.TrimSpace(value)
	}
	v.Explanation = explainDatatype(v)
	return v
}
