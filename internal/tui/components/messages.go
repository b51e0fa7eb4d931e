package components

// SearchSubmittedMsg carries the term entered in the search box.
type SearchSubmittedMsg struct {
	Query string
}

// SearchCancelledMsg closes the search box without changing the filter.
type SearchCancelledMsg struct{}
