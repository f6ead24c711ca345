//go:build windows

package d3d11

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	vtblAddRef  = 1
	vtblRelease = 2
)

// HRESULTError is a failed COM call.
type HRESULTError struct {
	Op string
	HR uint32
}

func (e *HRESULTError) Error() string {
	return fmt.Sprintf("%s: 0x%08X", e.Op, e.HR)
}

// Unwrap exposes the HRESULT as a windows.Errno so callers can match known codes.
func (e *HRESULTError) Unwrap() error {
	return windows.Errno(e.HR)
}

func failed(hr uintptr) bool {
	return int32(hr) < 0
}

// comVtblFn resolves a COM vtable function pointer by index.
func comVtblFn(obj uintptr, idx int) uintptr {
	vtablePtr := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtablePtr + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
}

// hresult turns a failing HRESULT into an error.
func hresult(op string, hr uintptr) error {
	if failed(hr) {
		return &HRESULTError{Op: op, HR: uint32(hr)}
	}
	return nil
}

func comRelease(obj uintptr) {
	if obj != 0 {
		syscall.SyscallN(comVtblFn(obj, vtblRelease), obj)
	}
}

func comAddRef(obj uintptr) {
	if obj != 0 {
		syscall.SyscallN(comVtblFn(obj, vtblAddRef), obj)
	}
}

type comGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// comObject owns one reference to a COM interface.
type comObject struct {
	ptr uintptr
}

func (o *comObject) Release() {
	comRelease(o.ptr)
	o.ptr = 0
}

// Raw returns the interface pointer without touching its reference count.
func (o *comObject) Raw() uintptr {
	return o.ptr
}

type rawer interface {
	Raw() uintptr
}

// rawOf extracts the interface pointer of a resource created by this package.
func rawOf(r interface{}) uintptr {
	if r == nil {
		return 0
	}
	if v, ok := r.(rawer); ok {
		return v.Raw()
	}
	panic(fmt.Sprintf("d3d11: foreign resource %T", r))
}
