package adminview

import "github.com/purnalakshitha99/location-app/internal/model"

// PageSize is the fixed number of rows per page.
const PageSize = 10

// ViewState is the operator's view over the record set: search term,
// sort key and direction, current page, visible columns, and selected
// rows. It is an immutable value; every transition returns a new state,
// so no hidden mutable state crosses the engine's operations.
type ViewState struct {
	Search   string
	SortKey  string
	SortAsc  bool
	Page     int
	Visible  map[string]bool
	Selected map[string]bool
}

// NewViewState returns the initial state: no search, no sort, page 1,
// all columns visible, nothing selected.
func NewViewState() ViewState {
	visible := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		visible[c] = true
	}
	return ViewState{
		SortAsc:  true,
		Page:     1,
		Visible:  visible,
		Selected: map[string]bool{},
	}
}

// VisibleColumns returns the visible columns in declared order.
func (v ViewState) VisibleColumns() []string {
	var cols []string
	for _, c := range Columns {
		if v.Visible[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// WithSearch sets the search term and resets to the first page.
func (v ViewState) WithSearch(term string) ViewState {
	v.Search = term
	v.Page = 1
	return v
}

// WithSort selects the sort key. Choosing the key already in effect
// toggles the direction; a new key defaults to ascending.
func (v ViewState) WithSort(key string) ViewState {
	if v.SortKey == key {
		v.SortAsc = !v.SortAsc
	} else {
		v.SortKey = key
		v.SortAsc = true
	}
	return v
}

// WithPage sets the requested page; Paginate clamps it to range.
func (v ViewState) WithPage(page int) ViewState {
	v.Page = page
	return v
}

// WithColumnVisible shows or hides one column.
func (v ViewState) WithColumnVisible(col string, visible bool) ViewState {
	m := make(map[string]bool, len(v.Visible))
	for k, val := range v.Visible {
		m[k] = val
	}
	m[col] = visible
	v.Visible = m
	return v
}

// WithToggled flips the selection of one record. Selection is
// independent of filter, sort, and page.
func (v ViewState) WithToggled(id string) ViewState {
	m := make(map[string]bool, len(v.Selected))
	for k, val := range v.Selected {
		m[k] = val
	}
	if m[id] {
		delete(m, id)
	} else {
		m[id] = true
	}
	v.Selected = m
	return v
}

// WithAllSelected selects exactly the given records — callers pass the
// currently filtered rows, so "select all" never touches records the
// filter excludes.
func (v ViewState) WithAllSelected(subs []*model.ContactSubmission) ViewState {
	m := make(map[string]bool, len(subs))
	for _, s := range subs {
		m[s.ID] = true
	}
	v.Selected = m
	return v
}

// WithSelectionCleared drops all selections.
func (v ViewState) WithSelectionCleared() ViewState {
	v.Selected = map[string]bool{}
	return v
}

// SelectedIDs returns the selected record ids (order unspecified).
func (v ViewState) SelectedIDs() []string {
	ids := make([]string, 0, len(v.Selected))
	for id := range v.Selected {
		ids = append(ids, id)
	}
	return ids
}
