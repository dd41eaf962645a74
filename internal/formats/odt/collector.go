package odt

import (
	"sort"

	"github.com/FocuswithJustin/bibleodt/core/ir"
)

// XrefTargets maps the key of a verse to the full keys of the
// cross-references that start at it. It is read-only once collected.
type XrefTargets struct {
	byPrefix map[string]map[string]struct{}
}

// CollectCrossReferences walks every prolog and verse of b, including
// references nested inside footnotes, headlines and other references.
func CollectCrossReferences(b *ir.Bible) XrefTargets {
	t := XrefTargets{byPrefix: make(map[string]map[string]struct{})}
	ir.WalkBible(b, func(e ir.Element) {
		x, ok := e.(*ir.CrossReference)
		if !ok {
			return
		}
		prefix := x.PrefixKey()
		set := t.byPrefix[prefix]
		if set == nil {
			set = make(map[string]struct{})
			t.byPrefix[prefix] = set
		}
		set[x.FullKey()] = struct{}{}
	})
	return t
}

// Targets returns the distinct full keys recorded under prefix, sorted.
func (t XrefTargets) Targets(prefix string) []string {
	set := t.byPrefix[prefix]
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct full keys over all prefixes.
func (t XrefTargets) Len() int {
	n := 0
	for _, set := range t.byPrefix {
		n += len(set)
	}
	return n
}
