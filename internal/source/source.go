// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source wraps the reference systems an identifier is checked
// against. Each system implements Adapter; Resolve is the boundary that turns
// every adapter failure into a not-found answer.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/metadata-verifier/internal/httputil"
	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Adapter answers whether one reference system knows an identifier and, if
// so, what datatype it declares. Lookup may return an error; callers go
// through Resolve, which never does.
type Adapter interface {
	Name() string
	Lookup(ctx context.Context, id string) (types.SourceAnswer, error)
}

// Resolve queries a within timeout (zero means only ctx bounds the call) and
// normalizes the result. Errors and panics degrade to NotFound and are
// logged: 404s at debug, anything else at warn.
func Resolve(ctx context.Context, a Adapter, id string, timeout time.Duration, logger *zerolog.Logger) (ans types.SourceAnswer) {
	logger = logging.OrNop(logger)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("source", a.Name()).
				Str("identifier", id).
				Err(fmt.Errorf("panic: %v", r)).
				Msg("Source lookup panicked")
			ans = types.NotFound()
		}
	}()

	ans, err := a.Lookup(ctx, id)
	if err != nil {
		ev := logger.Warn()
		if errors.Is(err, httputil.ErrNotFound) {
			ev = logger.Debug()
		}
		ev.Str("source", a.Name()).Str("identifier", id).Err(err).Msg("Source lookup failed")
		return types.NotFound()
	}
	return normalize(ans)
}

// normalize enforces the answer shape: not-found answers carry nothing else.
func normalize(ans types.SourceAnswer) types.SourceAnswer {
	if !ans.Exists {
		return types.NotFound()
	}
	ans.Datatype = strings.TrimSpace(ans.Datatype)
	return ans
}

// Names returns the adapter names in order.
func Names(adapters []Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	return names
}
