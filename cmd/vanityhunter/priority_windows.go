//go:build windows

package main

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetProcessInformation = kernel32.NewProc("SetProcessInformation")
)

// raisePriority moves the process to HIGH_PRIORITY_CLASS, falling back to
// ABOVE_NORMAL, and opts out of power throttling (Efficiency Mode).
func raisePriority() error {
	self := windows.CurrentProcess()
	if err := windows.SetPriorityClass(self, windows.HIGH_PRIORITY_CLASS); err != nil {
		if err := windows.SetPriorityClass(self, windows.ABOVE_NORMAL_PRIORITY_CLASS); err != nil {
			return err
		}
	}
	_ = disablePowerThrottling(self)
	return nil
}

// disablePowerThrottling needs Windows 10 1709 or later.
func disablePowerThrottling(process windows.Handle) error {
	if err := procSetProcessInformation.Find(); err != nil {
		return err
	}

	const (
		processPowerThrottling       = 4
		powerThrottlingExecutionSpeed = 0x1
	)
	state := struct {
		Version     uint32
		ControlMask uint32
		StateMask   uint32
	}{
		Version:     1,
		ControlMask: powerThrottlingExecutionSpeed,
		StateMask:   0, // 0 = disable throttling
	}

	ret, _, err := procSetProcessInformation.Call(
		uintptr(process),
		processPowerThrottling,
		uintptr(unsafe.Pointer(&state)),
		unsafe.Sizeof(state),
	)
	if ret == 0 {
		return err
	}
	return nil
}
