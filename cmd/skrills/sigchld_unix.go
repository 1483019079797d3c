//go:build !windows

package main

import (
	"os/signal"
	"syscall"
)

func ignoreSigchld() {
	signal.Ignore(syscall.SIGCHLD)
}
