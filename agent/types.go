package agent

import (
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/eventagent/draft"
	"github.com/tbxark/eventagent/expand"
	"github.com/tbxark/eventagent/respond"
)

// Config fixes the per-call-kind temperatures at startup. The
// extraction call is always pinned to zero and is not configurable.
type Config struct {
	DialogueTemperature float32 `json:"dialogue_temperature"`
	CreativeTemperature float32 `json:"creative_temperature"`
}

func DefaultConfig() *Config {
	return &Config{
		DialogueTemperature: respond.DefaultTemperature,
		CreativeTemperature: expand.DefaultTemperature,
	}
}

// Request carries one turn's inputs. History holds prior user and
// assistant turns only; the flow appends the turn's single user
// message itself. Draft and history are passed by value each turn -
// the core keeps no state between invocations.
type Request struct {
	UserInput string
	Draft     draft.Draft
	History   []*schema.Message
}

// Response is the turn's outcome: the assistant message, the updated
// draft the caller should persist, and the missing-field labels used
// to produce the message (handy for preview rendering).
type Response struct {
	Message string
	Draft   draft.Draft
	Missing []string
}
