package facts

import (
	"sort"

	"memo-drafting-be/pkg/memo/schema"
)

// Merge folds newly extracted values into the accumulated fact map and
// returns the merged copy plus the field names actually applied (sorted).
//
// Rule: last write wins, except that an incoming value with strictly lower
// confidence never overwrites a higher-confidence value for the same field.
// Unknown fields are expected to have been dropped by the extractor already,
// but are filtered here too so a bad caller can't widen the schema.
func Merge(accumulated schema.FactMap, extracted schema.FactMap) (schema.FactMap, []string) {
	merged := make(schema.FactMap, len(accumulated)+len(extracted))
	for name, v := range accumulated {
		merged[name] = v
	}

	var applied []string
	for name, incoming := range extracted {
		if !schema.IsKnownField(name) {
			continue
		}
		existing, ok := merged[name]
		if ok && incoming.Confidence.Rank() < existing.Confidence.Rank() {
			continue
		}
		merged[name] = incoming
		applied = append(applied, name)
	}

	sort.Strings(applied)
	return merged, applied
}

// NewFields returns the extracted field names not yet present in the
// accumulated map, sorted.
func NewFields(accumulated schema.FactMap, extracted schema.FactMap) []string {
	var names []string
	for name := range extracted {
		if _, ok := accumulated[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
