package datarecording

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/gen/hooking"
)

// Table names used by the product recording hook.
const (
	ProductTable   = "products"
	LifecycleTable = "lifecycle"
)

// ProductEntry is one recorded product.
type ProductEntry struct {
	Generator string
	Seq       int64
	Value     string
	Last      bool
}

// LifecycleEntry is one recorded lifecycle event.
type LifecycleEntry struct {
	Generator string
	Event     string
	Products  int64
}

// ProductRecordingHook records the products and lifecycle events of the
// generators it is attached to. Products are numbered per generator,
// starting at zero after every Init or Reset.
type ProductRecordingHook struct {
	recorder DataRecorder

	lock sync.Mutex
	seq  map[string]int64
	err  error
}

// NewProductRecordingHook creates the product and lifecycle tables and
// returns a hook that fills them.
func NewProductRecordingHook(recorder DataRecorder) (*ProductRecordingHook, error) {
	if err := recorder.CreateTable(ProductTable, ProductEntry{}); err != nil {
		return nil, err
	}

	if err := recorder.CreateTable(LifecycleTable, LifecycleEntry{}); err != nil {
		return nil, err
	}

	return &ProductRecordingHook{
		recorder: recorder,
		seq:      make(map[string]int64),
	}, nil
}

// Err returns the first error that occurred while recording.
func (h *ProductRecordingHook) Err() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.err
}

// Func records the hook context.
func (h *ProductRecordingHook) Func(ctx hooking.HookCtx) {
	name := hooking.DomainName(ctx)

	h.lock.Lock()
	defer h.lock.Unlock()

	var err error

	switch ctx.Pos {
	case hooking.HookPosGenerate:
		err = h.recordProduct(name, ctx)
	case hooking.HookPosInit, hooking.HookPosReset:
		err = h.recordEvent(name, ctx.Pos)
		h.seq[name] = 0
	case hooking.HookPosDeplete, hooking.HookPosClose:
		err = h.recordEvent(name, ctx.Pos)
	}

	if err != nil && h.err == nil {
		h.err = err
	}
}

func (h *ProductRecordingHook) recordProduct(name string, ctx hooking.HookCtx) error {
	value, err := formatValue(ctx.Item)
	if err != nil {
		return errors.Wrapf(err, "record product of %s", name)
	}

	tags, _ := ctx.Detail.(map[string]string)
	_, last := tags[gen.TagLast]

	entry := ProductEntry{
		Generator: name,
		Seq:       h.seq[name],
		Value:     value,
		Last:      last,
	}
	h.seq[name]++

	return h.recorder.InsertData(ProductTable, entry)
}

func (h *ProductRecordingHook) recordEvent(name string, pos *hooking.HookPos) error {
	return h.recorder.InsertData(LifecycleTable, LifecycleEntry{
		Generator: name,
		Event:     pos.Name,
		Products:  h.seq[name],
	})
}

func formatValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}

	buf, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}
