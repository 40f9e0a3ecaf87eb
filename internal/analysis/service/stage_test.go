package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"samakicash_backend/platform/logger"
)

func testLogger() *logger.Logger {
	return logger.New("test")
}

func TestRunStageSuccess(t *testing.T) {
	result := runStage(context.Background(), testLogger(), "price", time.Second, -1, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if result.IsFallback() {
		t.Fatalf("expected success, got fallback with cause %q", result.Cause())
	}
	if result.Value != 42 {
		t.Fatalf("expected 42, got %d", result.Value)
	}
}

func TestRunStageErrorResolvesToFallback(t *testing.T) {
	result := runStage(context.Background(), testLogger(), "price", time.Second, -1, func(ctx context.Context) (int, error) {
		return 0, errors.New("upstream exploded")
	})

	if !result.IsFallback() {
		t.Fatal("expected fallback")
	}
	if result.Value != -1 {
		t.Fatalf("expected fallback value -1, got %d", result.Value)
	}
	if result.Cause() != "upstream exploded" {
		t.Fatalf("unexpected cause %q", result.Cause())
	}
}

func TestRunStagePanicResolvesToFallback(t *testing.T) {
	result := runStage(context.Background(), testLogger(), "image", time.Second, "fallback", func(ctx context.Context) (string, error) {
		panic("nil dereference in decoder")
	})

	if !result.IsFallback() {
		t.Fatal("expected fallback after panic")
	}
	if result.Value != "fallback" {
		t.Fatalf("expected fallback value, got %q", result.Value)
	}
}

func TestRunStageAppliesTimeout(t *testing.T) {
	start := time.Now()
	result := runStage(context.Background(), testLogger(), "voice", 20*time.Millisecond, "fallback", func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	})

	if !result.IsFallback() {
		t.Fatal("expected fallback on timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("stage did not respect timeout, took %v", elapsed)
	}
}

func TestRunStageZeroTimeoutRunsUnbounded(t *testing.T) {
	result := runStage(context.Background(), testLogger(), "persist", 0, 0, func(ctx context.Context) (int, error) {
		if _, ok := ctx.Deadline(); ok {
			return 0, errors.New("unexpected deadline")
		}
		return 7, nil
	})

	if result.IsFallback() {
		t.Fatalf("expected success, got fallback: %s", result.Cause())
	}
}
