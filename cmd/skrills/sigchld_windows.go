//go:build windows

package main

func ignoreSigchld() {}
