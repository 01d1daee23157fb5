package expand

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/eventagent/draft"
)

// DefaultTemperature keeps the creative call loose enough for varied
// promotional prose.
const DefaultTemperature float32 = 0.9

type Generator interface {
	Expand(ctx context.Context, current draft.Draft, field string) (draft.Draft, error)
}

// ModelGenerator writes long-form promotional text for one draft
// field with a single high-temperature free-text call, then overwrites
// that field with the trimmed result. One-shot: the expansion intent
// is consumed by the caller, never carried across turns.
type ModelGenerator struct {
	chatModel   model.BaseChatModel
	temperature float32
}

func NewModelGenerator(chatModel model.BaseChatModel) *ModelGenerator {
	return &ModelGenerator{
		chatModel:   chatModel,
		temperature: DefaultTemperature,
	}
}

// NewModelGeneratorWithTemperature overrides the creative
// temperature, mainly for configs that tune all three call kinds.
func NewModelGeneratorWithTemperature(chatModel model.BaseChatModel, temperature float32) *ModelGenerator {
	return &ModelGenerator{
		chatModel:   chatModel,
		temperature: temperature,
	}
}

func (g *ModelGenerator) Expand(ctx context.Context, current draft.Draft, field string) (draft.Draft, error) {
	messages := buildExpandPrompt(current)
	response, err := g.chatModel.Generate(ctx, messages, model.WithTemperature(g.temperature))
	if err != nil {
		return nil, fmt.Errorf("expansion call failed: %w", err)
	}
	return current.Merge(map[string]any{field: strings.TrimSpace(response.Content)}), nil
}

const expandSystemPrompt = `You are a creative copywriter for an event platform.

Write a promotional description for the event described below.

Rules:
- 3 to 5 paragraphs, roughly 200-400 words in total.
- Engaging, vivid, audience-facing prose.
- Plain text only: no JSON, no markdown headings, no lists.
- No meta-commentary about these instructions or about being an assistant.`

func buildExpandPrompt(d draft.Draft) []*schema.Message {
	title, _ := d.String("title")
	if title == "" {
		title = "the event"
	}

	sections := []string{
		fmt.Sprintf("# Event:\n%s", title),
		fmt.Sprintf("# Format:\n%s", formatKind(d)),
		fmt.Sprintf("# Location:\n%s", formatLocation(d)),
	}
	if start, _ := d.String("start_time"); start != "" {
		sections = append(sections, fmt.Sprintf("# Starts:\n%s", start))
	}
	sections = append(sections, fmt.Sprintf("# Cost:\n%s", FormatCost(d)))
	if tags := d.Strings("tags"); len(tags) > 0 {
		sections = append(sections, fmt.Sprintf("# Tags:\n%s", strings.Join(tags, ", ")))
	}

	return []*schema.Message{
		schema.SystemMessage(expandSystemPrompt),
		schema.UserMessage(strings.Join(sections, "\n\n")),
	}
}

func formatKind(d draft.Draft) string {
	isOnline, ok := d.Bool("is_online")
	switch {
	case !ok:
		return "unspecified"
	case isOnline:
		return "online"
	default:
		return "in-person"
	}
}

// formatLocation prefers the physical address and falls back to the
// online URL.
func formatLocation(d draft.Draft) string {
	if addr, _ := d.String("location_address"); addr != "" {
		return addr
	}
	if url, _ := d.String("online_url"); url != "" {
		return url
	}
	return "to be announced"
}

// FormatCost renders the draft's cost for the prompt: "Free" when it
// is zero or less, otherwise a two-decimal currency string. Any
// non-numeric or missing value coerces to 0.
func FormatCost(d draft.Draft) string {
	cost, _ := d.Number("cost")
	if cost <= 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", cost)
}

var _ Generator = (*ModelGenerator)(nil)
