//go:build !unix

package main

import "os/exec"

// setProcessGroup leaves the default cancellation in place, which
// kills only qsub itself
func setProcessGroup(cmd *exec.Cmd) {}
