package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/eventagent/draft"
	"github.com/tbxark/eventagent/form"
	"github.com/tbxark/eventagent/structured"
)

const (
	updateDraftToolName        = "update_event_draft"
	updateDraftToolDescription = "Record the fields of the event draft that should change based on the user's latest message. Include only changed fields; use null to clear a field."
)

type extractInput struct {
	Draft     draft.Draft
	UserInput string
}

// ModelExtractor turns a user utterance into a partial draft update
// with a single deterministic tool-forced call. The tool's parameter
// schema is built from the form definition at construction time, plus
// the two expansion-control parameters.
type ModelExtractor struct {
	definition form.Schema
	chain      *structured.Chain[*extractInput, draft.Draft]
}

func NewModelExtractor(s form.Schema, chatModel model.ToolCallingChatModel) *ModelExtractor {
	toolInfo := &schema.ToolInfo{
		Name:        updateDraftToolName,
		Desc:        updateDraftToolDescription,
		ParamsOneOf: schema.NewParamsOneOfByParams(toolParams(s)),
	}
	chain := structured.NewChainWithToolInfo[*extractInput, draft.Draft](
		chatModel,
		buildExtractPrompt(s.Instructions()),
		toolInfo,
	)
	// Extraction must be reproducible for a given draft and utterance.
	chain.Temperature = 0
	return &ModelExtractor{definition: s, chain: chain}
}

func toolParams(s form.Schema) map[string]*schema.ParameterInfo {
	params := make(map[string]*schema.ParameterInfo, len(s.Fields)+2)
	for _, field := range s.Fields {
		params[field.Name] = fieldParam(field)
	}
	params[KeyNeedsExpansion] = &schema.ParameterInfo{
		Type: schema.Boolean,
		Desc: "Set true when the user asks for long-form content to be written for a field.",
	}
	params[KeyExpansionTarget] = &schema.ParameterInfo{
		Type: schema.String,
		Desc: "The field the long-form content is for. Only set together with " + KeyNeedsExpansion + ".",
	}
	return params
}

func fieldParam(field form.Field) *schema.ParameterInfo {
	info := &schema.ParameterInfo{Desc: field.Description}
	switch field.Type {
	case form.TypeBoolean:
		info.Type = schema.Boolean
	case form.TypeNumber:
		info.Type = schema.Number
	case form.TypeStringList:
		info.Type = schema.Array
		info.ElemInfo = &schema.ParameterInfo{Type: schema.String}
	case form.TypeEnum:
		info.Type = schema.String
		info.Enum = field.Enum
	default:
		info.Type = schema.String
	}
	return info
}

func buildExtractPrompt(instructions string) structured.PromptBuilder[*extractInput] {
	systemPrompt := fmt.Sprintf(`You are a data extraction engine for an event management system.

Analyze the user input against the schema and the current draft, then call %s with ONLY the fields that should change.

Rules:
- Omit fields that are not mentioned or unchanged.
- If the user explicitly clears a field, set it to null.
- Do not invent values the user did not provide.
- If the user asks for a long or detailed description, marketing copy, or similar long-form content, set %s to true and %s to the field it belongs to.`,
		updateDraftToolName, KeyNeedsExpansion, KeyExpansionTarget)

	return func(ctx context.Context, input *extractInput) ([]*schema.Message, error) {
		draftJSON, err := input.Draft.MarshalJSONString()
		if err != nil {
			return nil, fmt.Errorf("marshal draft state: %w", err)
		}
		sections := []string{
			instructions,
			fmt.Sprintf("# Current draft state:\n```json\n%s\n```", draftJSON),
			fmt.Sprintf("# User input:\n%s", input.UserInput),
		}
		return []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(strings.Join(sections, "\n\n")),
		}, nil
	}
}

// Extract runs the extraction call and merges the update into a copy
// of the draft. A malformed payload is recovered locally as an empty
// update; transport failures propagate. The keyword fallback scan
// runs only when the model did not flag an expansion itself.
func (e *ModelExtractor) Extract(ctx context.Context, current draft.Draft, userInput string) (*Result, error) {
	var update map[string]any
	parsed, err := e.chain.Invoke(ctx, &extractInput{Draft: current, UserInput: userInput})
	switch {
	case err == nil:
		update = map[string]any(*parsed)
	case errors.Is(err, structured.ErrMalformedOutput):
		slog.Debug("extraction payload malformed, treating as empty update", "error", err)
		update = nil
	default:
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	intent, update := stripExpansionControls(update)
	if intent != nil {
		if _, ok := e.definition.Field(intent.Field); !ok {
			// The model named a field the schema does not declare;
			// route the prose to the default field rather than invent
			// a draft key.
			intent.Field = DefaultExpansionField
		}
	}
	if intent == nil && scanExpansionTriggers(userInput) {
		intent = &Intent{Field: DefaultExpansionField}
	}

	return &Result{
		Draft:     current.Merge(update),
		Expansion: intent,
	}, nil
}

// stripExpansionControls removes the control keys from the update so
// they can never leak into the draft, and converts them into an
// Intent when the flag was set.
func stripExpansionControls(update map[string]any) (*Intent, map[string]any) {
	if update == nil {
		return nil, nil
	}
	flag, _ := update[KeyNeedsExpansion].(bool)
	target, _ := update[KeyExpansionTarget].(string)
	delete(update, KeyNeedsExpansion)
	delete(update, KeyExpansionTarget)
	if !flag {
		return nil, update
	}
	if target == "" {
		target = DefaultExpansionField
	}
	return &Intent{Field: target}, update
}

var _ Engine = (*ModelExtractor)(nil)
