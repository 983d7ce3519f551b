// SPDX-License-Identifier: Unlicense OR MIT

package errstream

import (
	"io"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

type debugView struct{}

var (
	kernel32           = syscall.NewLazySystemDLL("kernel32")
	outputDebugStringW = kernel32.NewProc("OutputDebugStringW")
)

func init() {
	if syscall.Stderr == 0 {
		// No console; debuggers still see OutputDebugString.
		SetOutput(&debugView{})
	} else {
		SetOutput(io.MultiWriter(Output(), &debugView{}))
	}
}

func (*debugView) Write(buf []byte) (int, error) {
	p, err := syscall.UTF16PtrFromString(string(buf))
	if err != nil {
		return 0, err
	}
	outputDebugStringW.Call(uintptr(unsafe.Pointer(p)))
	return len(buf), nil
}
