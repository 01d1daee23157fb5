package form

import (
	"github.com/tbxark/eventagent/draft"
)

// CriticalField is a field that must be filled for the form to count
// as complete even when the schema does not mark it required.
type CriticalField struct {
	Name  string
	Label string
}

// Rule is a conditional completeness check. It returns the label to
// report and whether the rule currently fires.
type Rule func(d draft.Draft) (label string, missing bool)

// MissingFields computes the ordered missing-field report for a draft:
// schema-required fields in declaration order, then critical fields,
// then conditional rules. Duplicates are suppressed by exact label
// only, so a rule whose label differs from the field's own label
// reports the same field a second time.
//
// The result is empty iff the draft is complete for routing purposes.
func MissingFields(s Schema, d draft.Draft, critical []CriticalField, rules ...Rule) []string {
	var missing []string
	seen := make(map[string]bool)

	add := func(label string) {
		if seen[label] {
			return
		}
		seen[label] = true
		missing = append(missing, label)
	}

	for _, field := range s.Fields {
		if !field.Required {
			continue
		}
		if !d.Has(field.Name) {
			add(field.DisplayLabel())
		}
	}

	for _, cf := range critical {
		if !d.Has(cf.Name) {
			add(cf.Label)
		}
	}

	for _, rule := range rules {
		if label, fires := rule(d); fires {
			add(label)
		}
	}

	return missing
}
