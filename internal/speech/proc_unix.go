//go:build unix

package speech

import (
	"context"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// command starts name in its own process group so cancellation also
// takes down any audio helper the synthesizer spawned.
func command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
	return cmd
}
