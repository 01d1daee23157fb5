package event

import (
	"github.com/tbxark/eventagent/draft"
	"github.com/tbxark/eventagent/form"
)

// Definition declares the event form the agent fills. None of the
// fields is schema-required: completeness is driven by the critical
// set and the conditional address rule below, so the draft can grow in
// any order.
func Definition() form.Schema {
	return form.Schema{
		Title: "Event",
		Fields: []form.Field{
			{Name: "title", Type: form.TypeString, Description: "The name of the event"},
			{Name: "description", Type: form.TypeString, Description: "Detailed description of the event"},
			{Name: "is_online", Type: form.TypeBoolean, Description: "Whether the event is online or in-person"},
			{Name: "location_address", Type: form.TypeString, Description: "Physical address (required if not online)"},
			{Name: "online_url", Type: form.TypeURL, Description: "URL for the online event"},
			{Name: "start_time", Type: form.TypeString, Description: "Start date and time (ISO format preferred or natural language)"},
			{Name: "end_time", Type: form.TypeString, Description: "End date and time"},
			{Name: "cost", Type: form.TypeNumber, Description: "Cost of the event ticket"},
			{Name: "tags", Type: form.TypeStringList, Description: "Tags or categories for the event"},
			{Name: "media_urls", Type: form.TypeStringList, Description: "List of image or video URLs"},
		},
		Rules: []string{
			"If 'is_online' is false, 'location_address' becomes CRITICAL/REQUIRED.",
			"'cost' must be a number (0 for free).",
		},
	}
}

// CriticalFields are always required for a complete event regardless
// of the schema's required flags.
func CriticalFields() []form.CriticalField {
	return []form.CriticalField{
		{Name: "title", Label: "Title"},
		{Name: "is_online", Label: "Is Online?"},
		{Name: "start_time", Label: "Start Time"},
		{Name: "cost", Label: "Cost"},
	}
}

// AddressRule fires when the event is explicitly in-person and no
// address has been captured. Its label spells out why the field became
// mandatory, so it never dedups against the field's own label.
func AddressRule(d draft.Draft) (string, bool) {
	isOnline, ok := d.Bool("is_online")
	if !ok || isOnline {
		return "", false
	}
	if addr, _ := d.String("location_address"); addr != "" {
		return "", false
	}
	return "Location Address (since it is not online)", true
}

// Missing is the event completeness evaluator: the ordered
// missing-field report for the draft.
func Missing(d draft.Draft) []string {
	return form.MissingFields(Definition(), d, CriticalFields(), AddressRule)
}
