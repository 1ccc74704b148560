package gen

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Take generates up to n values. It stops early if the generator depletes.
func Take[T any](g Generator[T], n int) []T {
	values := make([]T, 0, n)

	for len(values) < n {
		p, ok := g.Generate()
		if !ok {
			break
		}

		values = append(values, p.Value)
	}

	return values
}

// Drain generates values until the generator depletes. It must only be used
// with finite generators.
func Drain[T any](g Generator[T]) []T {
	var values []T

	for {
		p, ok := g.Generate()
		if !ok {
			return values
		}

		values = append(values, p.Value)
	}
}

// DrainParallel lets several workers pull products from one thread-safe
// generator and hands every product to fn. It stops after n products if n is
// positive, when the generator depletes, when fn fails, or when ctx is
// canceled.
func DrainParallel[T any](
	ctx context.Context,
	g Generator[T],
	workers int,
	n int,
	fn func(Product[T]) error,
) error {
	if !g.IsThreadSafe() {
		return NewStateError(g.Name(),
			"cannot be driven by %d workers, it is not thread-safe", workers)
	}

	if workers < 1 {
		return NewConfigError(g.Name(), "workers", "must be positive, got %d",
			workers)
	}

	var (
		lock    sync.Mutex
		claimed int
	)

	claim := func() bool {
		if n <= 0 {
			return true
		}

		lock.Lock()
		defer lock.Unlock()

		if claimed >= n {
			return false
		}

		claimed++

		return true
	}

	eg, egCtx := errgroup.WithContext(ctx)

	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			for egCtx.Err() == nil && claim() {
				p, ok := g.Generate()
				if !ok {
					return nil
				}

				if err := fn(p); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
