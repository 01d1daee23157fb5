package extract

import "strings"

// expansionTriggers are scanned case-insensitively against the raw
// utterance as a fallback signal when the model did not flag an
// expansion itself. Order matters: the first match wins.
var expansionTriggers = []string{
	"long description",
	"detailed description",
	"longer description",
	"marketing copy",
	"make it longer",
	"expand the description",
	"write more about",
	"write a longer",
	"promotional text",
	"full description",
}

// scanExpansionTriggers reports whether the utterance contains one of
// the trigger phrases. Keyword matches never carry an explicit target
// field, so the caller defaults to DefaultExpansionField.
func scanExpansionTriggers(userInput string) bool {
	lowered := strings.ToLower(userInput)
	for _, trigger := range expansionTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}
