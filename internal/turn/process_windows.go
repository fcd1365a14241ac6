//go:build windows

package turn

import (
	"os/exec"
)

// configureProcAttr is a no-op on Windows (Setpgid not supported).
func configureProcAttr(_ *exec.Cmd, _ bool) {}

// terminate on Windows falls back to Process.Kill().
func terminate(cmd *exec.Cmd, _ bool) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
