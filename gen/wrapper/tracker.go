package wrapper

import (
	"fmt"
	"reflect"
)

// MaxDuplicateRun is the number of consecutive duplicates after which a
// unique wrapper gives up and depletes.
const MaxDuplicateRun = 10000

// tracker remembers the products a unique generator has emitted. Nil values
// are never tracked.
type tracker struct {
	seen map[any]struct{}
}

func newTracker() *tracker {
	return &tracker{seen: make(map[any]struct{})}
}

// add records v and reports whether it is new.
func (t *tracker) add(v any) bool {
	if isNil(v) {
		return true
	}

	k := key(v)
	if _, found := t.seen[k]; found {
		return false
	}

	t.seen[k] = struct{}{}

	return true
}

func (t *tracker) clear() {
	clear(t.seen)
}

func key(v any) any {
	if reflect.ValueOf(v).Comparable() {
		return v
	}

	return fmt.Sprintf("%T%#v", v, v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
