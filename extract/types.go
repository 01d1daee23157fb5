package extract

import (
	"context"

	"github.com/tbxark/eventagent/draft"
)

// Control keys the model may set alongside field updates. They are
// read and stripped before the merge and must never survive into the
// returned draft.
const (
	KeyNeedsExpansion  = "needs_expansion"
	KeyExpansionTarget = "expansion_target"
)

// DefaultExpansionField receives generated long-form content when the
// user asks for it without naming a field.
const DefaultExpansionField = "description"

// Intent asks for long-form content to be generated for one field.
// A nil *Intent means the turn goes straight to the response step.
type Intent struct {
	Field string
}

// Result is the outcome of one extraction: the merged draft and the
// optional expansion intent.
type Result struct {
	Draft     draft.Draft
	Expansion *Intent
}

type Engine interface {
	Extract(ctx context.Context, current draft.Draft, userInput string) (*Result, error)
}
