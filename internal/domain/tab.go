package domain

// Tab is one of the four top-level screens.
type Tab int

const (
	TabDashboard Tab = iota
	TabInventory
	TabSales
	TabQuotes
)

// Tabs lists every tab in navigation order.
var Tabs = []Tab{TabDashboard, TabInventory, TabSales, TabQuotes}

func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "dashboard"
	case TabInventory:
		return "inventory"
	case TabSales:
		return "sales"
	case TabQuotes:
		return "quotes"
	}
	return "unknown"
}

// ParseTab maps a tab name from a URL back to a Tab.
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs {
		if t.String() == s {
			return t, true
		}
	}
	return TabDashboard, false
}

// Label is the navigation caption.
func (t Tab) Label() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabInventory:
		return "Inventory"
	case TabSales:
		return "Sales"
	case TabQuotes:
		return "Quotes"
	}
	return "?"
}
