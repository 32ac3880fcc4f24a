// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet drives the reconciliation engine over every row of a sheet
// and collects per-cell verdicts keyed by coordinate.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/metadata-verifier/internal/columns"
	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/internal/reconcile"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Skip reasons recorded when Options.RecordSkips is set.
const (
	ReasonShortRow  = "row shorter than identifier column"
	ReasonEmpty     = "empty identifier cell"
	ReasonMalformed = "malformed identifier"
)

// Skip describes a cell that produced no verdict.
type Skip struct {
	Coordinate types.Coordinate `json:"coordinate" yaml:"coordinate"`
	Value      string           `json:"value" yaml:"value"`
	Reason     string           `json:"reason" yaml:"reason"`
}

// Options tunes a sheet verification.
type Options struct {
	// Columns configures header matching. Zero uses the default patterns.
	Columns types.ColumnConfig

	// Progress is called with each row index once that row's work has
	// started. Indices are reported in increasing order.
	Progress func(row int)

	// Concurrency is the number of rows in flight. Values below 1 mean 1.
	Concurrency int

	// RecordSkips collects cells that produced no verdict in Result.Skipped.
	RecordSkips bool

	Logger *zerolog.Logger
}

// Result is the outcome of verifying one sheet.
type Result struct {
	Verdicts types.VerificationMap
	Location columns.Location
	Rows     int
	Skipped  []Skip
}

// Verify verifies every row of sh in mode. A sheet without an identifier
// column yields an empty map and no error. If ctx is cancelled Verify stops
// dispatching rows and returns the partial result with ctx.Err(); callers
// should discard it.
func Verify(ctx context.Context, engine *reconcile.Engine, sh types.Sheet, mode types.Mode, opts Options) (*Result, error) {
	if !columns.Locate(sh.Headers, opts.Columns).HasIdentifier() {
		return VerifySession(ctx, nil, sh, opts)
	}
	sess, err := engine.Session(ctx, mode)
	if err != nil {
		return nil, err
	}
	return VerifySession(ctx, sess, sh, opts)
}

// VerifySession verifies sh with an existing session, so several sheets of
// one workbook share a single form index. sess may be nil only when sh has
// no identifier column.
func VerifySession(ctx context.Context, sess *reconcile.Session, sh types.Sheet, opts Options) (*Result, error) {
	logger := logging.OrNop(opts.Logger)
	loc := columns.Locate(sh.Headers, opts.Columns)
	res := &Result{
		Verdicts: make(types.VerificationMap),
		Location: loc,
		Rows:     len(sh.Rows),
	}
	if !loc.HasIdentifier() {
		logger.Info().Str("sheet", sh.Name).Msg("No identifier column, nothing to verify")
		return res, nil
	}
	if sess == nil {
		return nil, errors.New("verifying sheet: nil session")
	}

	start := time.Now()
	w := &rowWorker{sess: sess, loc: loc, res: res, recordSkips: opts.RecordSkips, logger: logger}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, row := range sh.Rows {
		if ctx.Err() != nil {
			break
		}
		if loc.Identifier >= len(row) {
			w.skip(types.Coordinate{Row: i, Col: loc.Identifier}, "", ReasonShortRow)
			continue
		}
		g.Go(func() error {
			w.verifyRow(ctx, i, row)
			return nil
		})
		if opts.Progress != nil {
			opts.Progress(i)
		}
	}
	_ = g.Wait()

	sort.Slice(res.Skipped, func(i, j int) bool {
		return res.Skipped[i].Coordinate.Row < res.Skipped[j].Coordinate.Row
	})

	if err := ctx.Err(); err != nil {
		return res, err
	}

	logger.Info().
		Str("sheet", sh.Name).
		Str("mode", string(sess.Mode())).
		Int("rows", len(sh.Rows)).
		Int("verdicts", len(res.Verdicts)).
		Dur("elapsed", time.Since(start)).
		Msg("Sheet verified")
	return res, nil
}

// rowWorker verifies rows and inserts into the shared result. Rows write
// distinct keys; mu serializes the map and skip list.
type rowWorker struct {
	sess        *reconcile.Session
	loc         columns.Location
	recordSkips bool
	logger      *zerolog.Logger

	mu  sync.Mutex
	res *Result
}

func (w *rowWorker) verifyRow(ctx context.Context, i int, row []any) {
	idCoord := types.Coordinate{Row: i, Col: w.loc.Identifier}
	raw := CellString(row[w.loc.Identifier])
	if strings.TrimSpace(raw) == "" {
		w.skip(idCoord, raw, ReasonEmpty)
		return
	}

	var expected string
	hasDatatype := w.loc.HasDatatype() && w.loc.Datatype < len(row)
	if hasDatatype {
		expected = CellString(row[w.loc.Datatype])
		hasDatatype = strings.TrimSpace(expected) != ""
	}

	v, ok := w.sess.Verify(ctx, raw, expected)
	if !ok {
		w.skip(idCoord, raw, ReasonMalformed)
		return
	}
	w.logger.Debug().Int("row", i).Str("identifier", raw).Bool("valid", v.IsValid).Msg("Row verified")

	w.mu.Lock()
	defer w.mu.Unlock()
	w.res.Verdicts[idCoord] = v
	if hasDatatype {
		w.res.Verdicts[types.Coordinate{Row: i, Col: w.loc.Datatype}] = reconcile.DatatypeVerdict(v, expected)
	}
}

func (w *rowWorker) skip(c types.Coordinate, value, reason string) {
	if !w.recordSkips {
		return
	}
	w.mu.Lock()
	w.res.Skipped = append(w.res.Skipped, Skip{Coordinate: c, Value: value, Reason: reason})
	w.mu.Unlock()
}

// CellString renders a scalar cell value as text. Nil and NaN become "".
// Whole floats print without a fraction.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return CellString(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
