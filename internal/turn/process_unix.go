//go:build !windows

package turn

import (
	"os/exec"
	"syscall"
)

// configureProcAttr places the child in its own process group when detached,
// so termination signals reach the agent and everything it spawned.
func configureProcAttr(cmd *exec.Cmd, detached bool) {
	if detached {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
}

// terminate sends SIGTERM to the child, or to its whole process group when it
// was started detached. ESRCH means the process already exited and is not an
// error.
func terminate(cmd *exec.Cmd, detached bool) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	pid := cmd.Process.Pid
	if detached {
		if pgid, err := syscall.Getpgid(pid); err == nil {
			if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
				return err
			}
			return nil
		}
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return err
	}
	return nil
}
