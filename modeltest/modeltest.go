// Package modeltest provides a scriptable chat model for exercising
// the agent without a live endpoint.
package modeltest

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Reply scripts one model response: free text, a forced tool call, or
// a failure.
type Reply struct {
	Content       string
	ToolArguments string
	Err           error
}

func Text(content string) Reply {
	return Reply{Content: content}
}

// ToolCall scripts a response whose first tool call carries the given
// raw arguments payload.
func ToolCall(arguments string) Reply {
	return Reply{ToolArguments: arguments}
}

func Failure(err error) Reply {
	return Reply{Err: err}
}

// Call records one Generate invocation so tests can assert on
// prompts, history and the resolved call options.
type Call struct {
	Messages    []*schema.Message
	Temperature *float32
}

type ChatModel struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

func New(replies ...Reply) *ChatModel {
	return &ChatModel{replies: replies}
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resolved := model.GetCommonOptions(&model.Options{}, opts...)
	m.calls = append(m.calls, Call{Messages: input, Temperature: resolved.Temperature})
	if len(m.replies) == 0 {
		return nil, fmt.Errorf("modeltest: no scripted reply for call %d", len(m.calls))
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	msg := &schema.Message{
		Role:    schema.Assistant,
		Content: reply.Content,
	}
	if reply.ToolArguments != "" {
		msg.ToolCalls = []schema.ToolCall{
			{
				Function: schema.FunctionCall{
					Name:      "scripted",
					Arguments: reply.ToolArguments,
				},
			},
		}
	}
	return msg, nil
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *ChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

// Calls returns a copy of the recorded invocations.
func (m *ChatModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount reports how many Generate invocations have been made.
func (m *ChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

var _ model.ToolCallingChatModel = (*ChatModel)(nil)
