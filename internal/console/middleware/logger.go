// Package middleware wraps console command execution with logging and
// panic recovery.
package middleware

import (
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/features/auth"
)

// secretCommands never get their arguments logged.
var secretCommands = map[string]bool{"login": true, "passwd": true, "users": true}

// LogCommand logs an incoming command at debug level.
func LogCommand(sess *auth.Session, cmd, sub string, args []string) {
	fields := log.Fields{
		"cmd":   cmd,
		"sub":   sub,
		"nargs": len(args),
	}
	if !secretCommands[cmd] {
		fields["args"] = args
	}
	if sess != nil {
		fields["user_id"] = sess.UserID
		fields["username"] = sess.Username
		fields["session_id"] = sess.ID
	}
	log.WithFields(fields).Debug("Incoming command")
}
