package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/eino-contrib/jsonschema"
	"github.com/tbxark/eventagent/draft"
)

// Event is the strict record an accepted draft is persisted as. The
// draft stays loosely typed through the conversation; validation
// happens here, once, at save time.
type Event struct {
	Title           string     `json:"title" jsonschema:"description=The name of the event"`
	Description     string     `json:"description,omitempty" jsonschema:"description=Detailed description of the event"`
	IsOnline        bool       `json:"is_online" jsonschema:"description=Whether the event is online or in-person"`
	LocationAddress string     `json:"location_address,omitempty" jsonschema:"description=Physical address (required if not online)"`
	OnlineURL       string     `json:"online_url,omitempty" jsonschema:"description=URL for the online event"`
	StartTime       time.Time  `json:"start_time" jsonschema:"description=Start date and time"`
	EndTime         *time.Time `json:"end_time,omitempty" jsonschema:"description=End date and time"`
	Cost            float64    `json:"cost" jsonschema:"description=Cost of the event ticket"`
	Tags            []string   `json:"tags,omitempty" jsonschema:"description=Tags or categories for the event"`
	MediaURLs       []string   `json:"media_urls,omitempty" jsonschema:"description=List of image or video URLs"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", value)
}

// FromDraft validates a draft into an Event. Mirrors the save-time
// rules: title, is_online and a parseable start_time are mandatory, an
// in-person event needs an address, cost defaults to 0, and an
// unparseable end_time is dropped rather than rejected.
func FromDraft(d draft.Draft) (*Event, error) {
	title, _ := d.String("title")
	if title == "" {
		return nil, errors.New("title is required")
	}
	isOnline, ok := d.Bool("is_online")
	if !ok {
		return nil, errors.New("is_online is required")
	}

	startRaw, _ := d.String("start_time")
	if startRaw == "" {
		return nil, errors.New("start_time is required")
	}
	startTime, err := parseTime(startRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time: %w", err)
	}

	var endTime *time.Time
	if endRaw, _ := d.String("end_time"); endRaw != "" {
		if t, err := parseTime(endRaw); err == nil {
			endTime = &t
		}
	}

	address, _ := d.String("location_address")
	if !isOnline && address == "" {
		return nil, errors.New("location_address is required for in-person events")
	}

	cost, _ := d.Number("cost")
	description, _ := d.String("description")
	onlineURL, _ := d.String("online_url")

	return &Event{
		Title:           title,
		Description:     description,
		IsOnline:        isOnline,
		LocationAddress: address,
		OnlineURL:       onlineURL,
		StartTime:       startTime,
		EndTime:         endTime,
		Cost:            cost,
		Tags:            d.Strings("tags"),
		MediaURLs:       d.Strings("media_urls"),
	}, nil
}

// JSONSchema reflects the strict record for caller-side form-preview
// rendering. Purely descriptive.
func JSONSchema() (string, error) {
	schema := jsonschema.Reflect(&Event{})
	schema.Title = "Event"
	schema.Description = "A scheduled event, online or in-person, created through the assistant."
	out, err := sonic.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("marshal event schema: %w", err)
	}
	return string(out), nil
}
