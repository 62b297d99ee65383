// Package filters decides whether the current session may run a command
// group.
package filters

import (
	"time"

	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// GroupDepartments maps each department command group to the department
// that owns it.
var GroupDepartments = map[string]auth.Department{
	"hr":         auth.DeptHR,
	"finance":    auth.DeptFinance,
	"inventory":  auth.DeptInventory,
	"purchasing": auth.DeptPurchasing,
	"suppliers":  auth.DeptSuppliers,
	"sales":      auth.DeptSales,
	"logistics":  auth.DeptLogistics,
	"reports":    auth.DeptReports,
}

// adminGroups are open to administrators only.
var adminGroups = map[string]bool{"users": true}

type AccessFilter struct {
	now func() time.Time
}

func NewAccessFilter(now func() time.Time) *AccessFilter {
	if now == nil {
		now = time.Now
	}
	return &AccessFilter{now: now}
}

// CheckAccess returns nil when sess may run group. An expired session yields
// ErrSessionExpired; the caller drops it.
func (f *AccessFilter) CheckAccess(sess *auth.Session, group string) error {
	if sess == nil {
		return common.ErrNotLoggedIn
	}

	logger := log.WithFields(log.Fields{
		"component":  "AccessFilter",
		"user_id":    sess.UserID,
		"department": sess.Department,
		"group":      group,
	})

	if !sess.Valid(f.now()) {
		logger.Info("deny: session expired")
		return common.ErrSessionExpired
	}

	if adminGroups[group] {
		if !sess.IsAdmin() {
			logger.Info("deny: admin only")
			return common.ErrForbidden
		}
		logger.Debug("allow: admin")
		return nil
	}

	dept, ok := GroupDepartments[group]
	if !ok {
		// not a department module, any operator may run it
		return nil
	}
	if !sess.CanAccess(dept) {
		logger.Info("deny: other department")
		return common.ErrForbidden
	}
	logger.Debug("allow")
	return nil
}
