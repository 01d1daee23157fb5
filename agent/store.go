package agent

import (
	"context"

	"github.com/tbxark/eventagent/draft"
)

type conversationKeyContext struct{}

const defaultConversationKey = "default"

// WithConversationKey routes session state to a conversation. Turns
// for the same conversation must be serialized by the caller; the
// stores provide no per-conversation locking of their own.
func WithConversationKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, conversationKeyContext{}, key)
}

func ConversationKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(conversationKeyContext{}).(string); ok && key != "" {
		return key
	}
	return defaultConversationKey
}

// Store namespaces a Cache and routes keys via the context's
// conversation key.
type Store[S any] struct {
	core      Cache[S]
	namespace string
}

func NewStore[S any](core Cache[S], namespace string) Store[S] {
	return Store[S]{core: core, namespace: namespace}
}

func (s Store[S]) key(ctx context.Context) string {
	return s.namespace + ":" + ConversationKeyFromContext(ctx)
}

func (s Store[S]) Set(ctx context.Context, val S) error {
	return s.core.Set(ctx, s.key(ctx), val)
}

func (s Store[S]) Get(ctx context.Context) (S, bool, error) {
	return s.core.Get(ctx, s.key(ctx))
}

func (s Store[S]) Del(ctx context.Context) error {
	return s.core.Del(ctx, s.key(ctx))
}

// DraftStore owns the per-conversation draft between turns. The core
// never touches it; the caller loads before a turn and saves after.
type DraftStore struct {
	store Store[draft.Draft]
}

func NewDraftStore(core Cache[draft.Draft]) *DraftStore {
	return &DraftStore{store: NewStore(core, "agent:draft")}
}

func NewMemoryDraftStore() *DraftStore {
	return NewDraftStore(NewMemoryCache[draft.Draft]())
}

// Load returns the conversation's draft, or a fresh empty draft at
// the start of an event-creation session.
func (s *DraftStore) Load(ctx context.Context) (draft.Draft, error) {
	d, ok, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || d == nil {
		return draft.New(), nil
	}
	return d, nil
}

func (s *DraftStore) Save(ctx context.Context, d draft.Draft) error {
	return s.store.Set(ctx, d)
}

// Clear resets the draft on explicit reset or successful save.
func (s *DraftStore) Clear(ctx context.Context) error {
	return s.store.Del(ctx)
}
