package service

import (
	"context"
	"fmt"
	"time"

	"samakicash_backend/platform/logger"
)

// StageResult is the tagged outcome of one pipeline stage: either the
// stage's own value or a typed fallback with the cause that forced it.
// Both variants carry a usable value, so downstream stages never need
// to handle an error case.
type StageResult[T any] struct {
	Value    T
	fellBack bool
	cause    string
}

// Ok wraps a successfully produced value.
func Ok[T any](value T) StageResult[T] {
	return StageResult[T]{Value: value}
}

// Fallback wraps a substitute value together with the failure that
// forced it.
func Fallback[T any](value T, cause string) StageResult[T] {
	return StageResult[T]{Value: value, fellBack: true, cause: cause}
}

// IsFallback reports whether the stage resolved to its fallback value.
func (r StageResult[T]) IsFallback() bool { return r.fellBack }

// Cause returns the failure description of a fallback result.
func (r StageResult[T]) Cause() string { return r.cause }

// runStage executes one stage operation under a bounded timeout and
// resolves every possible failure (error, panic, timeout) to the given
// fallback value. It never returns an error and never panics: this is
// the invariant that keeps a single sick upstream from taking down the
// whole analysis.
func runStage[T any](ctx context.Context, log *logger.Logger, name string, timeout time.Duration, fallback T, fn func(context.Context) (T, error)) (result StageResult[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			cause := fmt.Sprintf("panic: %v", rec)
			log.StageFallback(name, cause)
			result = Fallback(fallback, cause)
		}
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	value, err := fn(ctx)
	if err != nil {
		log.StageFallback(name, err.Error())
		return Fallback(fallback, err.Error())
	}

	return Ok(value)
}
