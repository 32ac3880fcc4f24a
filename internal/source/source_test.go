// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/metadata-verifier/internal/httputil"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// --- mock adapter ---

type mockAdapter struct {
	name   string
	answer types.SourceAnswer
	err    error
	panic  bool
	block  bool
}

func (m *mockAdapter) Name() string { return m.name }

func (m *mockAdapter) Lookup(ctx context.Context, _ string) (types.SourceAnswer, error) {
	if m.panic {
		panic("boom")
	}
	if m.block {
		<-ctx.Done()
		return types.NotFound(), ctx.Err()
	}
	return m.answer, m.err
}

func TestResolveFound(t *testing.T) {
	a := &mockAdapter{name: "dev", answer: types.Found("  Coded ", &types.SourceDetails{Display: "Weight"})}
	got := Resolve(context.Background(), a, "id", 0, nil)
	if !got.Exists {
		t.Fatal("expected found answer")
	}
	if got.Datatype != "Coded" {
		t.Errorf("Datatype = %q, want trimmed %q", got.Datatype, "Coded")
	}
	if got.Details == nil || got.Details.Display != "Weight" {
		t.Errorf("Details = %+v, want display Weight", got.Details)
	}
}

func TestResolveNotFoundDropsPayload(t *testing.T) {
	a := &mockAdapter{name: "dev", answer: types.SourceAnswer{Exists: false, Datatype: "Coded", Details: &types.SourceDetails{}}}
	got := Resolve(context.Background(), a, "id", 0, nil)
	if got != (types.SourceAnswer{}) {
		t.Errorf("not-found answer should carry nothing, got %+v", got)
	}
}

func TestResolveErrorsDegrade(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"not found logs at debug", &httputil.APIError{Source: "dev", StatusCode: 404, URL: "u"}, "debug"},
		{"server error logs at warn", &httputil.APIError{Source: "dev", StatusCode: 503, URL: "u"}, "warn"},
		{"network error logs at warn", errors.New("connection refused"), "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

			a := &mockAdapter{name: "dev", answer: types.Found("Coded", nil), err: tt.err}
			got := Resolve(context.Background(), a, "id", 0, &logger)
			if got.Exists {
				t.Error("failed lookup must degrade to not found")
			}
			if !strings.Contains(buf.String(), fmt.Sprintf(`"level":"%s"`, tt.wantLevel)) {
				t.Errorf("log %q missing level %s", buf.String(), tt.wantLevel)
			}
			if !strings.Contains(buf.String(), `"source":"dev"`) {
				t.Errorf("log %q missing source field", buf.String())
			}
		})
	}
}

func TestResolvePanicDegrades(t *testing.T) {
	got := Resolve(context.Background(), &mockAdapter{name: "bad", panic: true}, "id", 0, nil)
	if got.Exists {
		t.Error("panicking adapter must degrade to not found")
	}
}

func TestResolveTimeoutBoundsLookup(t *testing.T) {
	start := time.Now()
	got := Resolve(context.Background(), &mockAdapter{name: "slow", block: true}, "id", 20*time.Millisecond, nil)
	if got.Exists {
		t.Error("timed out adapter must degrade to not found")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Resolve took %v, timeout was not applied", elapsed)
	}
}

func TestNames(t *testing.T) {
	got := Names([]Adapter{&mockAdapter{name: "a"}, &mockAdapter{name: "b"}})
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("Names = %v, want [a b]", got)
	}
}
