package native

import "unsafe"

// goString copies a NUL-terminated C string. ptr must be zero or point to
// memory owned by the native library.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	base := *(*unsafe.Pointer)(unsafe.Pointer(&ptr))
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

// takeString copies an owned string and releases it through free exactly
// once. A zero pointer is never passed to free.
func takeString(ptr uintptr, free func(uintptr)) string {
	if ptr == 0 {
		return ""
	}
	defer free(ptr)
	return goString(ptr)
}
