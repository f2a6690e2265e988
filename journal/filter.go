package journal

import (
	"slices"
	"strings"
)

/***** Filter *****/

// Filter selects journal events. Its items are OR-ed; an empty Filter matches every event.
type Filter struct {
	items []FilterItem
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// Matches reports whether the event satisfies at least one item of the Filter.
func (f Filter) Matches(event StorableEvent) bool {
	if len(f.items) == 0 {
		return true
	}

	for _, item := range f.items {
		if item.matches(event) {
			return true
		}
	}

	return false
}

/***** FilterItem *****/

// FilterItem matches events with ANY of its event types AND its predicates.
// Predicates are OR-ed unless allPredicatesMustMatch is set. Empty parts match everything.
type FilterItem struct {
	eventTypes             []string
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []string {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) matches(event StorableEvent) bool {
	if len(fi.eventTypes) > 0 && !slices.Contains(fi.eventTypes, event.EventType) {
		return false
	}

	if len(fi.predicates) == 0 {
		return true
	}

	matched := func(p FilterPredicate) bool {
		value, ok := event.payloadValue(p.key)
		return ok && value == p.val
	}

	if fi.allPredicatesMustMatch {
		return !slices.ContainsFunc(fi.predicates, func(p FilterPredicate) bool { return !matched(p) })
	}

	return slices.ContainsFunc(fi.predicates, matched)
}

/***** FilterPredicate *****/

// FilterPredicate compares a top-level payload field with a value, both as strings.
type FilterPredicate struct {
	key string
	val string
}

// P creates a FilterPredicate, e.g. P("PatronID", "3").
func P(key, val string) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() string {
	return fp.key
}

func (fp FilterPredicate) Val() string {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter:
//
//	journal.BuildFilter().
//		Matching().
//		AnyEventTypeOf(circulation.BookBorrowedEventType, circulation.BookReturnedEventType).
//		AndAnyPredicateOf(journal.P("PatronID", "3")).
//		Finalize()
//
// Event types and predicates are sanitized: empty values are dropped, the rest is sorted and deduplicated.
type FilterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildFilter creates a FilterBuilder which must be finished with Finalize or MatchingAnyEvent.
func BuildFilter() FilterBuilder {
	return FilterBuilder{}
}

// MatchingAnyEvent directly creates an empty Filter.
func (fb FilterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

// Matching starts a new FilterItem.
func (fb FilterBuilder) Matching() FilterBuilder {
	fb.current = FilterItem{}
	return fb
}

// AnyEventTypeOf adds event types to the current FilterItem, any of which must match.
func (fb FilterBuilder) AnyEventTypeOf(eventType string, eventTypes ...string) FilterBuilder {
	all := append([]string{eventType}, eventTypes...)
	all = slices.DeleteFunc(all, func(e string) bool { return e == "" })
	all = append(slices.Clone(fb.current.eventTypes), all...)
	slices.Sort(all)

	fb.current.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

// AndAnyPredicateOf adds predicates to the current FilterItem, any of which must match.
func (fb FilterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterBuilder {
	fb.current.predicates = sanitizePredicates(fb.current.predicates, predicate, predicates...)
	return fb
}

// AndAllPredicatesOf adds predicates to the current FilterItem, all of which must match.
func (fb FilterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterBuilder {
	fb.current.allPredicatesMustMatch = true
	fb.current.predicates = sanitizePredicates(fb.current.predicates, predicate, predicates...)

	return fb
}

// OrMatching finalizes the current FilterItem and starts a new one.
func (fb FilterBuilder) OrMatching() FilterBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)
	fb.current = FilterItem{}

	return fb
}

// Finalize returns the Filter including the current FilterItem.
func (fb FilterBuilder) Finalize() Filter {
	return Filter{items: append(slices.Clone(fb.filter.items), fb.current)}
}

func sanitizePredicates(existing []FilterPredicate, predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	all := append(slices.Clone(existing), predicate)
	all = append(all, predicates...)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })

	slices.SortFunc(all, func(a, b FilterPredicate) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}

		return strings.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(all))
}
