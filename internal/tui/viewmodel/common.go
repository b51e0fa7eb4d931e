package viewmodel

// Tab identifies a dashboard page.
type Tab int

const (
	// TabBilling is the revenue page.
	TabBilling Tab = iota
	// TabHistory lists finished consultations.
	TabHistory
	// TabAgenda shows released slots.
	TabAgenda
)

// Tabs lists the pages in display order.
var Tabs = []Tab{TabBilling, TabHistory, TabAgenda}

// Title returns the page name shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabBilling:
		return "Faturamento"
	case TabHistory:
		return "Histórico"
	case TabAgenda:
		return "Agenda"
	default:
		return "?"
	}
}

// Next returns the following tab, wrapping around.
func (t Tab) Next() Tab {
	return Tabs[(int(t)+1)%len(Tabs)]
}

// Card is one summary tile above a table.
type Card struct {
	Title string
	Value string
	Hint  string
}
