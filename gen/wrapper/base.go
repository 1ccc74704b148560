package wrapper

import (
	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen"
)

// Base is embedded by wrappers of a single source that produce values of
// type T from values of type S.
type Base[S, T any] struct {
	gen.Base[T]

	source gen.Generator[S]
}

// MakeBase creates the base of a wrapper.
func MakeBase[S, T any](name string, source gen.Generator[S]) Base[S, T] {
	return Base[S, T]{
		Base:   gen.MakeBase[T](name),
		source: source,
	}
}

// Source returns the wrapped generator.
func (w *Base[S, T]) Source() gen.Generator[S] {
	return w.source
}

// InitSource initializes the wrapper and, if it is still created, the
// source. A failed Init closes the wrapper.
func (w *Base[S, T]) InitSource(ctx *gen.Context) error {
	if err := w.InitBase(ctx); err != nil {
		return err
	}

	if err := initSource(w.Name(), ctx, w.source); err != nil {
		w.CloseBase()
		return err
	}

	return nil
}

// ResetSource resets the wrapper and the source.
func (w *Base[S, T]) ResetSource() {
	w.ResetBase()
	w.source.Reset()
}

// CloseSource closes the wrapper and the source.
func (w *Base[S, T]) CloseSource() {
	if w.CloseBase() {
		w.source.Close()
	}
}

// IsThreadSafe returns the capability of the source, or false without one.
func (w *Base[S, T]) IsThreadSafe() bool {
	return w.source != nil && w.source.IsThreadSafe()
}

// IsParallelizable returns the capability of the source, or false without
// one.
func (w *Base[S, T]) IsParallelizable() bool {
	return w.source != nil && w.source.IsParallelizable()
}

func checkSource[S any](name string, source gen.Generator[S]) error {
	if source == nil {
		return gen.NewConfigError(name, "source", "must not be nil")
	}

	return nil
}

func checkSources[S any](name string, sources []gen.Generator[S]) error {
	for i, s := range sources {
		if s == nil {
			return gen.NewConfigError(name, "source",
				"source %d must not be nil", i)
		}
	}

	return nil
}

func initSource[S any](name string, ctx *gen.Context, source gen.Generator[S]) error {
	if source.State() != gen.StateCreated {
		return nil
	}

	if err := source.Init(ctx); err != nil {
		return errors.Wrapf(err, "%s: init source %s", name, source.Name())
	}

	return nil
}

func initSources[S any](
	name string,
	ctx *gen.Context,
	sources []gen.Generator[S],
) error {
	for _, s := range sources {
		if err := initSource(name, ctx, s); err != nil {
			return err
		}
	}

	return nil
}

func resetSources[S any](sources []gen.Generator[S]) {
	for _, s := range sources {
		s.Reset()
	}
}

func closeSources[S any](sources []gen.Generator[S]) {
	for _, s := range sources {
		s.Close()
	}
}

func allThreadSafe[S any](sources []gen.Generator[S]) bool {
	for _, s := range sources {
		if !s.IsThreadSafe() {
			return false
		}
	}

	return true
}

func allParallelizable[S any](sources []gen.Generator[S]) bool {
	for _, s := range sources {
		if !s.IsParallelizable() {
			return false
		}
	}

	return true
}
