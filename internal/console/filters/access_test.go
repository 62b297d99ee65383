package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

var now = time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)

func session(role auth.Role, dept auth.Department) *auth.Session {
	return &auth.Session{UserID: 1, Username: "u", Role: role, Department: dept, ExpiresAt: now.Add(time.Hour)}
}

func TestCheckAccess(t *testing.T) {
	f := NewAccessFilter(func() time.Time { return now })

	admin := session(auth.RoleAdmin, auth.DeptAll)
	seller := session(auth.RoleEmployee, auth.DeptSales)
	head := session(auth.RoleHead, auth.DeptHR)

	tests := []struct {
		name  string
		sess  *auth.Session
		group string
		want  error
	}{
		{"anonymous", nil, "sales", common.ErrNotLoggedIn},
		{"admin any group", admin, "hr", nil},
		{"admin reports", admin, "reports", nil},
		{"admin users", admin, "users", nil},
		{"own department", seller, "sales", nil},
		{"other department", seller, "finance", common.ErrForbidden},
		{"head no reports", head, "reports", common.ErrForbidden},
		{"head no users", head, "users", common.ErrForbidden},
		{"non department command", seller, "whoami", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.CheckAccess(tt.sess, tt.group)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckAccess_Expired(t *testing.T) {
	f := NewAccessFilter(func() time.Time { return now.Add(2 * time.Hour) })
	err := f.CheckAccess(session(auth.RoleAdmin, auth.DeptAll), "hr")
	assert.ErrorIs(t, err, common.ErrSessionExpired)
}
