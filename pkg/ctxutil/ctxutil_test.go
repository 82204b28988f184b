package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithRunID_And_RunIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithRunID(context.Background(), id)

	got, ok := RunIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestRunIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := RunIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestRunIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithRunID(context.Background(), uuid.Nil)
	if _, ok := RunIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for nil UUID")
	}
}

func TestLogAttrs(t *testing.T) {
	t.Parallel()

	if attrs := LogAttrs(context.Background()); attrs != nil {
		t.Errorf("expected no attrs, got %v", attrs)
	}

	id := uuid.New()
	attrs := LogAttrs(WithRunID(context.Background(), id))
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(attrs))
	}
}
