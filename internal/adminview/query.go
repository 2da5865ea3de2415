package adminview

import (
	"sort"
	"strings"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// Filter returns the records matching the search term: a record matches
// when any visible column's string representation contains the term as
// a case-insensitive substring. An empty term matches everything, in
// the original order.
func Filter(subs []*model.ContactSubmission, term string, visible map[string]bool) []*model.ContactSubmission {
	if term == "" {
		return subs
	}
	needle := strings.ToLower(term)

	var out []*model.ContactSubmission
	for _, sub := range subs {
		for _, col := range Columns {
			if !visible[col] {
				continue
			}
			v, ok := FieldString(sub, col)
			if ok && strings.Contains(strings.ToLower(v), needle) {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}

// Sort orders the records by one column, case-insensitive lexicographic
// on the string representation. The sort is stable, and a pair where
// either side is missing the key compares equal, preserving their
// relative order. An empty key returns the input untouched.
func Sort(subs []*model.ContactSubmission, key string, asc bool) []*model.ContactSubmission {
	if key == "" {
		return subs
	}
	out := make([]*model.ContactSubmission, len(subs))
	copy(out, subs)

	sort.SliceStable(out, func(i, j int) bool {
		a, aok := FieldString(out[i], key)
		b, bok := FieldString(out[j], key)
		if !aok || !bok {
			return false
		}
		a, b = strings.ToLower(a), strings.ToLower(b)
		if asc {
			return a < b
		}
		return b < a
	})
	return out
}

// Paginate slices one fixed-size page out of the records. Pages are
// 1-based; out-of-range requests clamp to [1, totalPages]. An empty
// set reports 0 pages and an empty slice.
func Paginate(subs []*model.ContactSubmission, page int) (pageSubs []*model.ContactSubmission, totalPages, clampedPage int) {
	totalPages = (len(subs) + PageSize - 1) / PageSize
	if totalPages == 0 {
		return nil, 0, 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(subs) {
		end = len(subs)
	}
	return subs[start:end], totalPages, page
}
