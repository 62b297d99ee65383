// Package console is the operator surface: it reads commands line by line,
// keeps the logged-in session and routes each command to its feature
// handler.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/console/filters"
	"busline.mx/erp/internal/console/middleware"
	"busline.mx/erp/internal/features/auth"
	"busline.mx/erp/internal/features/finance"
	"busline.mx/erp/internal/features/fleet"
	"busline.mx/erp/internal/features/inventory"
	"busline.mx/erp/internal/features/logistics"
	"busline.mx/erp/internal/features/procurement"
	"busline.mx/erp/internal/features/reports"
	"busline.mx/erp/internal/features/sales"
	"busline.mx/erp/internal/features/staff"
	"busline.mx/erp/internal/features/suppliers"
)

// groups are commands that take a subcommand.
var groups = map[string]bool{
	"hr": true, "finance": true, "inventory": true, "purchasing": true,
	"suppliers": true, "sales": true, "logistics": true, "reports": true,
	"users": true,
}

// Handlers bundles the feature handlers the console routes to.
type Handlers struct {
	Auth        *auth.Handler
	Staff       *staff.Handler
	Finance     *finance.Handler
	Fleet       *fleet.Handler
	Inventory   *inventory.Handler
	Procurement *procurement.Handler
	Suppliers   *suppliers.Handler
	Sales       *sales.Handler
	Logistics   *logistics.Handler
	Reports     *reports.Handler
}

// Console is one operator terminal. It is not safe for concurrent use; the
// read loop runs commands one at a time.
type Console struct {
	in  io.Reader
	out io.Writer

	authService *auth.Service
	filter      *filters.AccessFilter
	h           Handlers

	session *auth.Session
}

// New creates a console reading from in and writing to out.
func New(in io.Reader, out io.Writer, authService *auth.Service, filter *filters.AccessFilter, h Handlers) *Console {
	return &Console{in: in, out: out, authService: authService, filter: filter, h: h}
}

// Run reads commands until quit, end of input or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	log.Info("Console started")
	common.Reply(c.out, "BusLine back office. Type \"help\" for commands, \"login <user> <password>\" to start.")
	c.prompt()

	for {
		select {
		case <-ctx.Done():
			log.Info("Console stopping (ctx done)")
			return nil
		case line, ok := <-lines:
			if !ok {
				log.Info("Console input closed")
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := c.Execute(ctx, line); quit {
				return nil
			}
			c.prompt()
		}
	}
}

func (c *Console) prompt() {
	if c.session != nil {
		io.WriteString(c.out, c.session.Username+"> ")
		return
	}
	io.WriteString(c.out, "> ")
}

// Execute runs one command line and reports whether the operator asked to quit.
func (c *Console) Execute(ctx context.Context, line string) (quit bool) {
	cmd, sub, args, err := ParseCommand(line)
	if err != nil {
		common.Reply(c.out, "❌ %v", err)
		return false
	}
	if cmd == "" {
		return false
	}
	defer middleware.RecoverFromPanic(c.out, cmd)
	middleware.LogCommand(c.session, cmd, sub, args)

	switch cmd {
	case "quit", "exit":
		common.Reply(c.out, "Bye")
		return true
	case "help":
		c.help()
		return false
	case "login":
		c.login(ctx, args)
		return false
	}

	if err := c.filter.CheckAccess(c.session, cmd); err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			c.session = nil
		}
		common.Reply(c.out, "❌ %v", err)
		return false
	}

	if !c.routeCommand(ctx, cmd, sub, args) {
		if groups[cmd] && sub == "" {
			common.Reply(c.out, "❌ %s needs a subcommand, see \"help\"", cmd)
		} else {
			common.Reply(c.out, "❌ Unknown command %q, see \"help\"", joinCommand(cmd, sub))
		}
	}
	return false
}

func joinCommand(cmd, sub string) string {
	if sub == "" {
		return cmd
	}
	return cmd + " " + sub
}

func (c *Console) login(ctx context.Context, args []string) {
	if len(args) < 2 {
		common.Reply(c.out, "❌ Usage: login <username> <password>")
		return
	}
	sess, err := c.authService.Login(ctx, args[0], args[1])
	if err != nil {
		common.ReplyError(c.out, "Login", err)
		return
	}
	c.session = sess
	common.Reply(c.out, "✅ Welcome, %s (%s)", sess.FullName, sess.Department)
}

// Session returns the logged-in session, nil when nobody is logged in.
func (c *Console) Session() *auth.Session {
	return c.session
}

// routeCommand dispatches a command to its handler and reports whether it
// knew the command.
func (c *Console) routeCommand(ctx context.Context, cmd, sub string, args []string) bool {
	s := c.session
	log.WithFields(log.Fields{"cmd": cmd, "sub": sub}).Debug("routing command")

	switch cmd {
	case "logout":
		log.WithField("user_id", s.UserID).Info("Logout")
		c.session = nil
		common.Reply(c.out, "👋 Logged out")
	case "whoami":
		common.Reply(c.out, "%s", s.Describe())
	case "passwd":
		c.h.Auth.HandlePasswd(ctx, s, args)
	case "genpass":
		c.h.Auth.HandleGenerate(ctx, s, args)

	case "users":
		switch sub {
		case "list":
			c.h.Auth.HandleList(ctx, s, args)
		case "add-head":
			c.h.Auth.HandleAddHead(ctx, s, args)
		case "reset":
			c.h.Auth.HandleReset(ctx, s, args)
		default:
			return false
		}

	case "hr":
		switch sub {
		case "list":
			c.h.Staff.HandleList(ctx, s, args)
		case "show":
			c.h.Staff.HandleShow(ctx, s, args)
		case "hire":
			c.h.Staff.HandleHire(ctx, s, args)
		case "fire":
			c.h.Staff.HandleFire(ctx, s, args)
		case "pay":
			c.h.Staff.HandlePay(ctx, s, args)
		case "payments":
			c.h.Staff.HandlePayments(ctx, s, args)
		case "positions":
			c.h.Staff.HandlePositions(ctx, s, args)
		default:
			return false
		}

	case "finance":
		switch sub {
		case "balance":
			c.h.Finance.HandleBalance(ctx, s, args)
		case "history":
			c.h.Finance.HandleHistory(ctx, s, args)
		case "income":
			c.h.Finance.HandleIncome(ctx, s, args)
		case "expense":
			c.h.Finance.HandleExpense(ctx, s, args)
		case "audit":
			c.h.Finance.HandleAudit(ctx, s, args)
		default:
			return false
		}

	case "inventory":
		switch sub {
		case "stock":
			c.h.Inventory.HandleStock(ctx, s, args)
		case "withdraw":
			c.h.Inventory.HandleWithdraw(ctx, s, args)
		case "withdrawals":
			c.h.Inventory.HandleWithdrawals(ctx, s, args)
		case "buses":
			c.h.Fleet.HandleBuses(ctx, s, args)
		case "add-bus":
			c.h.Fleet.HandleAddBus(ctx, s, args)
		case "computers":
			c.h.Fleet.HandleComputers(ctx, s, args)
		case "add-computer":
			c.h.Fleet.HandleAddComputer(ctx, s, args)
		default:
			return false
		}

	case "purchasing":
		switch sub {
		case "buy":
			c.h.Procurement.HandleBuy(ctx, s, args)
		case "history":
			c.h.Procurement.HandleHistory(ctx, s, args)
		default:
			return false
		}

	case "suppliers":
		switch sub {
		case "list":
			c.h.Suppliers.HandleList(ctx, s, args)
		case "show":
			c.h.Suppliers.HandleShow(ctx, s, args)
		case "add":
			c.h.Suppliers.HandleAdd(ctx, s, args)
		default:
			return false
		}

	case "sales":
		switch sub {
		case "seats":
			c.h.Sales.HandleSeats(ctx, s, args)
		case "sell":
			c.h.Sales.HandleSell(ctx, s, args)
		case "customers":
			c.h.Sales.HandleCustomers(ctx, s, args)
		case "tickets":
			c.h.Sales.HandleTickets(ctx, s, args)
		default:
			return false
		}

	case "logistics":
		switch sub {
		case "routes":
			c.h.Logistics.HandleRoutes(ctx, s, args)
		case "add-route":
			c.h.Logistics.HandleAddRoute(ctx, s, args)
		case "edit-route":
			c.h.Logistics.HandleEditRoute(ctx, s, args)
		case "del-route":
			c.h.Logistics.HandleDeleteRoute(ctx, s, args)
		case "schedules":
			c.h.Logistics.HandleSchedules(ctx, s, args)
		case "add-schedule":
			c.h.Logistics.HandleAddSchedule(ctx, s, args)
		case "del-schedule":
			c.h.Logistics.HandleDeleteSchedule(ctx, s, args)
		default:
			return false
		}

	case "reports":
		switch sub {
		case "summary":
			c.h.Reports.HandleSummary(ctx, s, args)
		case "staff":
			c.h.Reports.HandleStaff(ctx, s, args)
		case "fleet":
			c.h.Reports.HandleFleet(ctx, s, args)
		case "sales":
			c.h.Reports.HandleSales(ctx, s, args)
		case "expenses":
			c.h.Reports.HandleExpenses(ctx, s, args)
		case "income":
			c.h.Reports.HandleIncome(ctx, s, args)
		case "routes":
			c.h.Reports.HandleRoutes(ctx, s, args)
		case "categories":
			c.h.Reports.HandleCategories(ctx, s, args)
		default:
			return false
		}

	default:
		return false
	}
	return true
}
