package app

import (
	"context"
	"iter"
)

// stopOnDone ends seq early once ctx is done
func stopOnDone[T any](ctx context.Context, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if ctx.Err() != nil || !yield(v) {
				return
			}
		}
	}
}
