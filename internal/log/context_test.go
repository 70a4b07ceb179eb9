// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext = %q, want %q", got, "req-123")
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
	//nolint:staticcheck // nil context is an explicit robustness case
	if got := RequestIDFromContext(nil); got != "" {
		t.Errorf("expected empty request id for nil context, got %q", got)
	}
}

func TestFromContextFallsBack(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("FromContext returned nil logger")
	}
}
