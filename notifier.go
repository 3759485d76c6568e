package main

import (
	"fmt"
	"os/exec"
)

// Notifier runs the configured on-change command and reports its outcome.
type Notifier interface {
	Notify(command []string) error
}

// execNotifier launches the command and waits for it to exit. The watch
// loop being cancelled does not interrupt a command that is already
// running; only the next tick is prevented.
type execNotifier struct{}

func (execNotifier) Notify(command []string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.Command(command[0], command[1:]...)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s exited with status %d", command[0], exitErr.ExitCode())
		}
		return fmt.Errorf("could not run %s: %w", command[0], err)
	}

	return nil
}
