package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type outcome[T any] struct {
	v   T
	err error
}

// call runs fn under the per-call timeout. A failure, panic or timeout is
// logged and counted, and reported as false; fn may keep running in the
// background after a timeout.
func call[T any](ctx context.Context, im *Improver, engine string, fn func(context.Context) (T, error)) (T, bool) {
	var zero T
	if im.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.opts.CallTimeout)
		defer cancel()
	}

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome[T]{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		im.fail(engine, ctx.Err())
		return zero, false
	case out := <-done:
		if out.err != nil {
			im.fail(engine, out.err)
			return zero, false
		}
		return out.v, true
	}
}

func (im *Improver) fail(engine string, err error) {
	reason := "error"
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "timeout"
	}
	im.rec.EngineFailure(engine, reason)
	im.logger.Warn("engine call failed, skipping its suggestions",
		zap.String("engine", engine),
		zap.String("reason", reason),
		zap.Error(err))
}
