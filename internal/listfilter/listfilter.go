// Package listfilter narrows lists fetched once by the admin pages. Every
// function returns a subsequence of its input in the original order.
package listfilter

import (
	"strings"

	"oneasy-portal/internal/models"
)

type Predicate[T any] func(T) bool

// Filter keeps the items matching every predicate. No predicates keeps all.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if p != nil && !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

// Contains matches items where any of the selected fields contains query,
// ignoring case and surrounding space. An empty query matches everything.
func Contains[T any](query string, fields ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(it T) bool {
		if q == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(it)), q) {
				return true
			}
		}
		return false
	}
}

// Equals matches items whose key equals want. The zero value of want matches
// everything, which is how an "All" category option behaves.
func Equals[T any, K comparable](want K, key func(T) K) Predicate[T] {
	var zero K
	return func(it T) bool {
		return want == zero || key(it) == want
	}
}

func Search[T any](items []T, query string, fields ...func(T) string) []T {
	return Filter(items, Contains(query, fields...))
}

// Slice returns items[offset:offset+limit] clamped to the list. A limit of
// zero or less means no limit.
func Slice[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// GroupBy buckets items by key. Keys are returned in first-seen order.
func GroupBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	var keys []K
	groups := map[K][]T{}
	for _, it := range items {
		k := key(it)
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], it)
	}
	return keys, groups
}

// OrgDirectors is an organization with its directors attached.
type OrgDirectors struct {
	Organization models.Organization `json:"organization"`
	Directors    []models.Director   `json:"directors"`
}

// JoinDirectors attaches directors to organizations by organizationUserId.
// Directors whose organization is unknown are returned separately.
func JoinDirectors(orgs []models.Organization, directors []models.Director) ([]OrgDirectors, []models.Director) {
	_, byOrg := GroupBy(directors, func(d models.Director) string { return d.OrganizationUserID })
	out := make([]OrgDirectors, 0, len(orgs))
	known := map[string]bool{}
	for _, o := range orgs {
		known[o.UserID] = true
		ds := byOrg[o.UserID]
		if ds == nil {
			ds = []models.Director{}
		}
		out = append(out, OrgDirectors{Organization: o, Directors: ds})
	}
	orphans := Filter(directors, Predicate[models.Director](func(d models.Director) bool { return !known[d.OrganizationUserID] }))
	return out, orphans
}
