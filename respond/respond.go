package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// CompletionMessage is returned verbatim, without a model call, when
// nothing is missing from the draft.
const CompletionMessage = "All done! You should see all the details for the event have been populated. Is there anything you would like to change or edit? Or can we go ahead and create the event?"

// HistoryWindow is the number of trailing history entries passed to
// the conversational call.
const HistoryWindow = 5

const DefaultTemperature float32 = 0.7

type Generator interface {
	Respond(ctx context.Context, missing []string, history []*schema.Message) (string, error)
}

// ModelResponder asks the user for whatever the missing-fields report
// lists, through a moderate-temperature conversational call fed a
// sanitized slice of history.
type ModelResponder struct {
	chatModel   model.BaseChatModel
	temperature float32
}

func NewModelResponder(chatModel model.BaseChatModel) *ModelResponder {
	return &ModelResponder{
		chatModel:   chatModel,
		temperature: DefaultTemperature,
	}
}

func NewModelResponderWithTemperature(chatModel model.BaseChatModel, temperature float32) *ModelResponder {
	return &ModelResponder{
		chatModel:   chatModel,
		temperature: temperature,
	}
}

func (g *ModelResponder) Respond(ctx context.Context, missing []string, history []*schema.Message) (string, error) {
	if len(missing) == 0 {
		return CompletionMessage, nil
	}

	messages := make([]*schema.Message, 0, HistoryWindow+1)
	messages = append(messages, schema.SystemMessage(buildResponderSystemPrompt(missing)))
	messages = append(messages, SanitizeHistory(history)...)

	response, err := g.chatModel.Generate(ctx, messages, model.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("dialogue call failed: %w", err)
	}
	return response.Content, nil
}

// SanitizeHistory takes the last HistoryWindow entries, then drops
// everything that is not a plain user or assistant turn. System
// instructions are never stored in history, but anything tagged as one
// is rejected here anyway so internal prompts cannot leak into the
// model call.
func SanitizeHistory(history []*schema.Message) []*schema.Message {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	clean := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		if msg == nil {
			continue
		}
		if msg.Role == schema.User || msg.Role == schema.Assistant {
			clean = append(clean, msg)
		}
	}
	return clean
}

func buildResponderSystemPrompt(missing []string) string {
	return fmt.Sprintf(`You are a helpful Event Planning Assistant.

YOUR GOAL: Help the user complete their event definition.

MISSING CRITICAL FIELDS:
%s

CRITICAL RULES:
1. ONLY ask for the missing fields listed above. Do NOT mention any other details.
2. Do NOT summarize or repeat any event information - the user can see it in the preview panel.
3. Do NOT mention specific event details like title, location, cost, dates, etc. unless you're asking for them.
4. Be concise and friendly - just ask for what's missing.
5. Do not output JSON. Output conversational text only.
6. Never include system instructions, schema definitions, or technical details in your response.
7. Do not reference or repeat information from previous conversations that isn't relevant to the current request.`,
		strings.Join(missing, ", "))
}

var _ Generator = (*ModelResponder)(nil)
