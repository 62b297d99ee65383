package console

import (
	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/console/filters"
)

type helpSection struct {
	group string
	lines []string
}

var helpSections = []helpSection{
	{"hr", []string{
		"hr list [active|terminated|all]",
		"hr show <id>",
		`hr hire "<first>" "<last>" <age> <position> <salary>`,
		"hr fire <id>",
		"hr pay <id>",
		"hr payments [count]",
		"hr positions",
	}},
	{"finance", []string{
		"finance balance",
		"finance history [count]",
		"finance income <amount> <concept...>",
		"finance expense <amount> <concept...>",
		"finance audit",
	}},
	{"inventory", []string{
		"inventory stock",
		"inventory withdraw <item_id> <qty> [requested by...]",
		"inventory withdrawals",
		"inventory buses",
		"inventory add-bus <brand> <model> <year> [capacity] [state]",
		"inventory computers",
		`inventory add-computer <brand> <model> ["assigned to"] [department] [state]`,
	}},
	{"purchasing", []string{
		`purchasing buy <supplier_id> <bus|computer|supplies|other> "<description>" <qty> <unit_price>`,
		"purchasing history [count]",
	}},
	{"suppliers", []string{
		"suppliers list",
		"suppliers show <id>",
		`suppliers add "<name>" <kind> ["contact"] [phone] [email]`,
	}},
	{"sales", []string{
		"sales seats <schedule_id> <date>",
		"sales sell <schedule_id> <date> <first> <last> <seats...>",
		"sales customers [search]",
		"sales tickets <first> <last>",
	}},
	{"logistics", []string{
		"logistics routes",
		`logistics add-route <origin> <destination> <km> "<duration>" <fare>`,
		`logistics edit-route <id> <origin> <destination> <km> "<duration>" <fare>`,
		"logistics del-route <id>",
		"logistics schedules [route_id]",
		`logistics add-schedule <route_id> <bus_id> <HH:MM> <HH:MM> "<days>"`,
		"logistics del-schedule <id> [--force]",
	}},
	{"reports", []string{
		"reports summary",
		"reports staff",
		"reports fleet",
		"reports sales [months]",
		"reports expenses [months]",
		"reports income [from to]",
		"reports routes [from to]",
		"reports categories [from to]",
	}},
}

// help prints the commands the current session can run.
func (c *Console) help() {
	common.Reply(c.out, "login <username> <password> | logout | whoami | passwd <new> <confirm> | genpass | help | quit")
	if c.session == nil {
		return
	}
	if c.session.IsAdmin() {
		common.Reply(c.out, "users list | users add-head <first> <last> <username> <password> <department> | users reset <user_id> <password> <confirm>")
	}
	for _, s := range helpSections {
		if !c.session.CanAccess(filters.GroupDepartments[s.group]) {
			continue
		}
		common.Reply(c.out, "")
		for _, l := range s.lines {
			common.Reply(c.out, "  %s", l)
		}
	}
	if !c.session.IsAdmin() {
		common.Reply(c.out, "")
		common.Reply(c.out, "Department: %s", c.session.Department)
	}
}
