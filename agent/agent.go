package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

var _ adk.Agent = (*Agent)(nil)

// Agent adapts the turn flow to the eino adk interface. The draft
// store keeps the per-conversation draft between turns; history
// maintenance stays with the caller, which passes the full
// conversation (ending in this turn's single user message) as input.
type Agent struct {
	name        string
	description string
	flow        *Flow
	drafts      *DraftStore
}

func NewAgent(name, description string, flow *Flow, drafts *DraftStore) *Agent {
	return &Agent{
		name:        name,
		description: description,
		flow:        flow,
		drafts:      drafts,
	}
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			if e := recover(); e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no messages in input"),
			})
			return
		}

		current, err := a.drafts.Load(ctx)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("load draft failed: %w", err),
			})
			return
		}

		last := len(input.Messages) - 1
		resp, err := a.flow.Invoke(ctx, &Request{
			UserInput: input.Messages[last].Content,
			Draft:     current,
			History:   input.Messages[:last],
		})
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("flow invoke failed: %w", err),
			})
			return
		}

		if err := a.drafts.Save(ctx, resp.Draft); err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("save draft failed: %w", err),
			})
			return
		}

		gen.Send(&adk.AgentEvent{
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message: &schema.Message{
						Role:    schema.Assistant,
						Content: resp.Message,
					},
					Role: schema.Assistant,
				},
			},
		})
	}()
	return iter
}
