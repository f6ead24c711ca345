//go:build windows

package d3d11

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	d3dcompiler47  = windows.NewLazySystemDLL("d3dcompiler_47.dll")
	procD3DCompile = d3dcompiler47.NewProc("D3DCompile")
)

const (
	blobGetBufferPointer = 3
	blobGetBufferSize    = 4
)

// Compile compiles HLSL source for the given entry point and target profile
// (e.g. "vs_4_0") and returns the bytecode.
func Compile(src []byte, entryPoint, target string) ([]byte, error) {
	if len(src) == 0 {
		return nil, errEmptyBytecode
	}
	var code, errs uintptr
	entryPoint0 := []byte(entryPoint + "\x00")
	target0 := []byte(target + "\x00")
	r, _, _ := procD3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		0, // pSourceName
		0, // pDefines
		0, // pInclude
		uintptr(unsafe.Pointer(&entryPoint0[0])),
		uintptr(unsafe.Pointer(&target0[0])),
		0, // Flags1
		0, // Flags2
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errs)),
	)
	var compileErr string
	if errs != 0 {
		compileErr = string(blobData(errs))
		comRelease(errs)
	}
	if failed(r) {
		return nil, fmt.Errorf("D3DCompile %s/%s: %w: %s", entryPoint, target, &HRESULTError{Op: "D3DCompile", HR: uint32(r)}, compileErr)
	}
	defer comRelease(code)
	bytecode := blobData(code)
	cp := make([]byte, len(bytecode))
	copy(cp, bytecode)
	return cp, nil
}

// blobData views the contents of an ID3DBlob. The slice is valid until the blob is released.
func blobData(blob uintptr) []byte {
	ptr, _, _ := syscall.SyscallN(comVtblFn(blob, blobGetBufferPointer), blob)
	n, _, _ := syscall.SyscallN(comVtblFn(blob, blobGetBufferSize), blob)
	if ptr == 0 || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(n))
}
