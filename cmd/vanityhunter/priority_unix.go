//go:build unix

package main

import "golang.org/x/sys/unix"

// niceness applied by raisePriority. Lowering it below 0 needs
// CAP_SYS_NICE or root.
const niceness = -10

// raisePriority renices the whole process.
func raisePriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, niceness)
}
