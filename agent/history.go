package agent

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type Trimmer interface {
	Trim(history []*schema.Message) []*schema.Message
}

// KeepConversationLastN keeps the last N user/assistant turns and
// drops everything else, system entries included. History stored for
// the agent is conversational only; internal instructions are built
// fresh per call and never persisted.
type KeepConversationLastN struct {
	N int
}

func (t KeepConversationLastN) Trim(history []*schema.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		if m == nil {
			continue
		}
		if m.Role == schema.User || m.Role == schema.Assistant {
			out = append(out, m)
		}
	}
	if t.N > 0 && len(out) > t.N {
		out = out[len(out)-t.N:]
	}
	return out
}

// HistoryStore owns the per-conversation append-only history between
// turns, trimmed on every save.
type HistoryStore struct {
	store   Store[[]*schema.Message]
	trimmer Trimmer
}

func NewHistoryStore(core Cache[[]*schema.Message], trimmer Trimmer) *HistoryStore {
	return &HistoryStore{
		store:   NewStore(core, "agent:history"),
		trimmer: trimmer,
	}
}

func NewMemoryHistoryStore(trimmer Trimmer) *HistoryStore {
	return NewHistoryStore(NewMemoryCache[[]*schema.Message](), trimmer)
}

func (s *HistoryStore) Load(ctx context.Context) ([]*schema.Message, error) {
	hist, ok, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return hist, nil
}

func (s *HistoryStore) Save(ctx context.Context, history []*schema.Message) error {
	if s.trimmer != nil {
		history = s.trimmer.Trim(history)
	}
	return s.store.Set(ctx, history)
}

func (s *HistoryStore) Clear(ctx context.Context) error {
	return s.store.Del(ctx)
}

// Append loads, appends and saves in one step, returning the saved
// history.
func (s *HistoryStore) Append(ctx context.Context, msgs ...*schema.Message) ([]*schema.Message, error) {
	hist, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, msg := range msgs {
		if msg != nil {
			hist = append(hist, msg)
		}
	}
	if err := s.Save(ctx, hist); err != nil {
		return nil, err
	}
	if s.trimmer != nil {
		hist = s.trimmer.Trim(hist)
	}
	return hist, nil
}
