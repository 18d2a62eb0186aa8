package ordering

import (
	"github.com/nikogura/cvforge/pkg/profile"
)

// DefaultOrder returns the fixed priority order used to place sections the
// proposal did not mention.
func DefaultOrder() (order []profile.SectionKey) {
	order = profile.AllSections()
	return order
}

// ParseKeys converts untrusted tokens, such as a suggestion service reply,
// into section keys. Unknown tokens are kept so Reconcile can drop them.
func ParseKeys(tokens []string) (keys []profile.SectionKey) {
	keys = make([]profile.SectionKey, 0, len(tokens))
	for _, token := range tokens {
		key, _ := profile.ParseSectionKey(token)
		keys = append(keys, key)
	}
	return keys
}

// Reconcile repairs proposed into a permutation of exactly the available
// sections. Valid proposed entries keep their relative order, duplicates and
// foreign tokens are dropped, and anything missing is appended in default
// order. It never fails and never modifies its arguments.
func Reconcile(proposed []profile.SectionKey, available profile.SectionSet) (order []profile.SectionKey) {
	order = make([]profile.SectionKey, 0, available.Len())
	seen := make(map[profile.SectionKey]struct{}, available.Len())

	// Keep proposed keys that are available, first occurrence wins
	for _, key := range proposed {
		if !available.Has(key) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, key)
	}

	// Append whatever the proposal left out
	for _, key := range DefaultOrder() {
		if !available.Has(key) {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, key)
	}

	if !isPermutation(order, available) {
		order = filterDefault(available)
	}

	return order
}

// ReconcileDocument reconciles the stored order of doc against its non-empty
// sections.
func ReconcileDocument(doc profile.Document) (order []profile.SectionKey) {
	order = Reconcile(doc.SectionOrder, profile.NonEmptySections(doc))
	return order
}

// isPermutation checks the output covers available exactly once each.
func isPermutation(order []profile.SectionKey, available profile.SectionSet) (ok bool) {
	if len(order) != available.Len() {
		return ok
	}

	seen := make(map[profile.SectionKey]struct{}, len(order))
	for _, key := range order {
		if !available.Has(key) {
			return ok
		}
		if _, dup := seen[key]; dup {
			return ok
		}
		seen[key] = struct{}{}
	}

	ok = true
	return ok
}

func filterDefault(available profile.SectionSet) (order []profile.SectionKey) {
	order = make([]profile.SectionKey, 0, available.Len())
	for _, key := range DefaultOrder() {
		if available.Has(key) {
			order = append(order, key)
		}
	}
	return order
}
