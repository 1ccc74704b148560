package gen

import (
	"reflect"
	"sync/atomic"

	"github.com/sarchlab/datagen/gen/hooking"
	"github.com/sarchlab/datagen/gen/naming"
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
)

// Base implements the lifecycle bookkeeping of a generator. Generator
// implementations embed it and call InitBase, Active, Yield, Deplete,
// ResetBase and CloseBase from their own lifecycle methods.
type Base[T any] struct {
	hooking.HookableBase
	naming.NamedBase

	state  int32
	logger *zap.Logger
}

// MakeBase creates the base of a generator with the given name.
func MakeBase[T any](name string) Base[T] {
	return Base[T]{
		NamedBase: naming.MakeNamedBase(name),
		logger:    zap.NewNop(),
	}
}

// CheckName returns a configuration error if the name does not follow the
// generator naming convention.
func CheckName(name string) error {
	if err := naming.ValidateName(name); err != nil {
		return NewConfigError(name, "name", "%v", err)
	}

	return nil
}

// GeneratedType returns the type of the generated values.
func (b *Base[T]) GeneratedType() reflect.Type {
	return reflect.TypeFor[T]()
}

// State returns the current lifecycle state.
func (b *Base[T]) State() State {
	return State(atomic.LoadInt32(&b.state))
}

func (b *Base[T]) setState(s State) {
	atomic.StoreInt32(&b.state, int32(s))
}

// Logger returns the logger received at Init.
func (b *Base[T]) Logger() *zap.Logger {
	return b.logger
}

// InitBase moves the generator from created to running.
func (b *Base[T]) InitBase(ctx *Context) error {
	if b.State() != StateCreated {
		return NewStateError(b.Name(), "init called in state %s", b.State())
	}

	if ctx == nil {
		return NewConfigError(b.Name(), "context", "must not be nil")
	}

	b.logger = ctx.Logger()
	b.setState(StateRunning)

	b.logger.Debug("generator initialized", logging.Generator(b.Name()))
	b.invoke(hooking.HookPosInit, nil, nil)

	return nil
}

// Active tells whether the generator may produce a value. It panics if the
// generator was never initialized.
func (b *Base[T]) Active() bool {
	switch b.State() {
	case StateRunning:
		return true
	case StateCreated:
		panic(NewStateError(b.Name(), "generate called before init"))
	default:
		return false
	}
}

// Yield reports a value as the product of the current Generate call.
func (b *Base[T]) Yield(v T) (Product[T], bool) {
	return b.YieldProduct(MakeProduct(v))
}

// YieldProduct reports a tagged product as the result of the current
// Generate call.
func (b *Base[T]) YieldProduct(p Product[T]) (Product[T], bool) {
	var detail any
	if len(p.tags) > 0 {
		detail = p.Tags()
	}

	b.invoke(hooking.HookPosGenerate, p.Value, detail)

	return p, true
}

// Deplete marks the generator unavailable and returns the depletion result.
func (b *Base[T]) Deplete() (Product[T], bool) {
	if atomic.CompareAndSwapInt32(
		&b.state, int32(StateRunning), int32(StateUnavailable),
	) {
		b.logger.Debug("generator depleted", logging.Generator(b.Name()))
		b.invoke(hooking.HookPosDeplete, nil, nil)
	}

	return Depleted[T]()
}

// ResetBase moves the generator back to running.
func (b *Base[T]) ResetBase() {
	switch b.State() {
	case StateCreated:
		panic(NewStateError(b.Name(), "reset called before init"))
	case StateClosed:
		panic(NewStateError(b.Name(), "reset called after close"))
	}

	b.setState(StateRunning)

	b.logger.Debug("generator reset", logging.Generator(b.Name()))
	b.invoke(hooking.HookPosReset, nil, nil)
}

// CloseBase moves the generator to closed. It returns false if the generator
// was closed before, so that resources are released only once.
func (b *Base[T]) CloseBase() bool {
	if State(atomic.SwapInt32(&b.state, int32(StateClosed))) == StateClosed {
		return false
	}

	b.logger.Debug("generator closed", logging.Generator(b.Name()))
	b.invoke(hooking.HookPosClose, nil, nil)

	return true
}

func (b *Base[T]) invoke(pos *hooking.HookPos, item, detail any) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(hooking.HookCtx{
		Domain: b,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
