package chain

import "reflect"

// IsEmpty reports whether v is the absence marker: a nil interface or a nil
// pointer, map, slice, func or chan. Zero values such as false, 0 and "" are
// present.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return value.IsNil()
	}
	return false
}
