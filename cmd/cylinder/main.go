// cylinder - rotating ASCII cylinder for the terminal.
//
// Controls:
//
//	q, Esc, Ctrl+C - Quit
//	Space          - Pause/resume
//	+/-            - Faster/slower
//	T              - Toggle turbo (speed keeps climbing until turned off)
//	C              - Cycle chaos jitter level
//	R              - Reset rotation, speed, turbo and chaos
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	ctx := context.Background()
	if err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
