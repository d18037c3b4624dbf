// Package perm holds the role → permission capability matrix. The auth
// middleware and the UI (via /auth/me) consult the same table, so there is
// exactly one place that says what a role may do.
package perm

type Permission string

const (
	OrdersCreate  Permission = "orders.create"
	OrdersView    Permission = "orders.view"
	OrdersUpdate  Permission = "orders.update"
	OrdersVoid    Permission = "orders.void"
	KitchenView   Permission = "kitchen.view"
	KitchenUpdate Permission = "kitchen.update"
	ReceiptsView  Permission = "receipts.view"
	ReportsView   Permission = "reports.view"
	ReportsExport Permission = "reports.export"
	ImportsRun    Permission = "imports.run"
	MenuManage    Permission = "menu.manage"
	TablesManage  Permission = "tables.manage"
	StaffManage   Permission = "staff.manage"
)

var matrix = map[string][]Permission{
	"admin": {
		OrdersCreate, OrdersView, OrdersUpdate, OrdersVoid,
		KitchenView, KitchenUpdate,
		ReceiptsView, ReportsView, ReportsExport, ImportsRun,
		MenuManage, TablesManage, StaffManage,
	},
	"manager": {
		OrdersCreate, OrdersView, OrdersUpdate, OrdersVoid,
		KitchenView, KitchenUpdate,
		ReceiptsView, ReportsView, ReportsExport, ImportsRun,
		MenuManage, TablesManage,
	},
	"server": {
		OrdersCreate, OrdersView, OrdersUpdate,
		KitchenView, ReceiptsView,
	},
	"cashier": {
		OrdersView, OrdersUpdate,
		ReceiptsView, ReportsView,
	},
	"kitchen": {
		OrdersView, KitchenView, KitchenUpdate,
	},
}

// Allowed reports whether the role carries the permission.
func Allowed(role string, p Permission) bool {
	for _, have := range matrix[role] {
		if have == p {
			return true
		}
	}
	return false
}

// For returns the permission set of a role, for UI gating.
func For(role string) []Permission {
	ps := matrix[role]
	out := make([]Permission, len(ps))
	copy(out, ps)
	return out
}
