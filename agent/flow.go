package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/eventagent/draft"
	"github.com/tbxark/eventagent/event"
	"github.com/tbxark/eventagent/expand"
	"github.com/tbxark/eventagent/extract"
	"github.com/tbxark/eventagent/respond"
)

type step string

const (
	stepExtractData       step = "extract_data"
	stepGenerateExpansion step = "generate_expansion"
	stepGenerateResponse  step = "generate_response"
)

// Evaluator computes the missing-field report for a draft.
type Evaluator func(d draft.Draft) []string

// Flow sequences one turn: extract, then expansion when the
// extraction signaled the intent, then the response. Expansion always
// completes before the responder sees the draft, and the intent never
// survives the turn. Model transport failures propagate to the
// caller; the caller may retry the whole turn since the flow is
// stateless.
type Flow struct {
	extractor extract.Engine
	expander  expand.Generator
	responder respond.Generator
	evaluate  Evaluator
}

func NewFlow(
	extractor extract.Engine,
	expander expand.Generator,
	responder respond.Generator,
	evaluate Evaluator,
) *Flow {
	return &Flow{
		extractor: extractor,
		expander:  expander,
		responder: responder,
		evaluate:  evaluate,
	}
}

// NewEventFlow wires the event-domain flow: schema-driven extraction
// at temperature zero, creative expansion, conversational responses,
// and the event completeness evaluator.
func NewEventFlow(cfg *Config, chatModel model.ToolCallingChatModel) *Flow {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewFlow(
		extract.NewModelExtractor(event.Definition(), chatModel),
		expand.NewModelGeneratorWithTemperature(chatModel, cfg.CreativeTemperature),
		respond.NewModelResponderWithTemperature(chatModel, cfg.DialogueTemperature),
		event.Missing,
	)
}

func (f *Flow) Invoke(ctx context.Context, req *Request) (*Response, error) {
	current := req.Draft
	if current == nil {
		current = draft.New()
	}

	history := make([]*schema.Message, 0, len(req.History)+1)
	history = append(history, req.History...)
	history = append(history, schema.UserMessage(req.UserInput))

	slog.Debug("running turn step", "step", stepExtractData)
	result, err := f.extractor.Extract(ctx, current, req.UserInput)
	if err != nil {
		return nil, fmt.Errorf("extract data: %w", err)
	}
	current = result.Draft

	if intent := result.Expansion; intent != nil {
		slog.Debug("running turn step", "step", stepGenerateExpansion, "field", intent.Field)
		current, err = f.expander.Expand(ctx, current, intent.Field)
		if err != nil {
			return nil, fmt.Errorf("generate expansion: %w", err)
		}
	}

	missing := f.evaluate(current)
	slog.Debug("running turn step", "step", stepGenerateResponse, "missing", len(missing))
	message, err := f.responder.Respond(ctx, missing, history)
	if err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}

	return &Response{
		Message: message,
		Draft:   current,
		Missing: missing,
	}, nil
}
