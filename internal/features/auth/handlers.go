// Package auth: handlers.go serves the account commands:
// users (list), users add-head, users reset, passwd, genpass.
package auth

import (
	"context"
	"io"
	"strconv"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
)

// Handler serves account commands.
type Handler struct {
	service *Service
	out     io.Writer
}

// NewHandler creates the account command handler.
func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

// HandleList prints every account.
func (h *Handler) HandleList(ctx context.Context, sess *Session, args []string) {
	users, err := h.service.Users(ctx, sess)
	if err != nil {
		common.ReplyError(h.out, "List users", err)
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tUSERNAME\tNAME\tROLE\tDEPARTMENT")
	for _, u := range users {
		common.Reply(tw, "%d\t%s\t%s\t%s\t%s", u.ID, u.Username, common.FullName(u.FirstName, u.LastName), u.Role, u.Department)
	}
	tw.Flush()
}

// HandleAddHead: users add-head <first> <last> <username> <password> <department>
func (h *Handler) HandleAddHead(ctx context.Context, sess *Session, args []string) {
	if len(args) < 5 {
		common.Reply(h.out, "❌ Usage: users add-head <first> <last> <username> <password> <department>")
		return
	}
	u, err := h.service.CreateHead(ctx, sess, HeadRequest{
		FirstName:  args[0],
		LastName:   args[1],
		Username:   args[2],
		Password:   args[3],
		Department: Department(args[4]),
	})
	if err != nil {
		common.ReplyError(h.out, "Create head", err)
		return
	}
	common.Reply(h.out, "✅ %s is now head of %s (user #%d)", u.Username, u.Department, u.ID)
}

// HandleReset: users reset <user_id> <password> <confirm>
func (h *Handler) HandleReset(ctx context.Context, sess *Session, args []string) {
	if len(args) < 3 {
		common.Reply(h.out, "❌ Usage: users reset <user_id> <password> <confirm>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		common.Reply(h.out, "❌ User id must be a number")
		return
	}
	if err := h.service.ResetPassword(ctx, sess, id, args[1], args[2]); err != nil {
		common.ReplyError(h.out, "Reset password", err)
		return
	}
	common.Reply(h.out, "✅ Password updated")
}

// HandlePasswd changes the operator's own password: passwd <new> <confirm>
func (h *Handler) HandlePasswd(ctx context.Context, sess *Session, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, "❌ Usage: passwd <new> <confirm>")
		return
	}
	h.HandleReset(ctx, sess, []string{strconv.FormatInt(sess.UserID, 10), args[0], args[1]})
}

// HandleGenerate suggests a random password.
func (h *Handler) HandleGenerate(ctx context.Context, sess *Session, args []string) {
	p, err := h.service.GeneratePassword()
	if err != nil {
		common.ReplyError(h.out, "Generate password", err)
		return
	}
	common.Reply(h.out, "🔑 %s", p)
}
