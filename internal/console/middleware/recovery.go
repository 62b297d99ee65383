package middleware

import (
	"fmt"
	"io"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// RecoverFromPanic must be deferred. It logs the panic with a stack trace
// and tells the operator the command failed, so the console keeps running.
func RecoverFromPanic(out io.Writer, cmd string) {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"component": "panic_recovery",
			"cmd":       cmd,
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("Panic in command handler, recovered")
		fmt.Fprintf(out, "❌ %s failed with an internal error\n", cmd)
	}
}
