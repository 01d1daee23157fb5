package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/tbxark/eventagent/agent"
	"github.com/tbxark/eventagent/draft"
	"github.com/tbxark/eventagent/event"
	"github.com/tbxark/eventagent/form"
)

func main() {
	conf := flag.String("config", "config.json", "path to config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	config, err := loadConfig(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if err := startApp(context.Background(), config); err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, config *Config) error {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  config.APIKey,
		Model:   config.Model,
		BaseURL: config.BaseURL,
	})
	if err != nil {
		return err
	}

	flow := agent.NewEventFlow(config.Agent, cm)
	drafts := agent.NewMemoryDraftStore()
	history := agent.NewMemoryHistoryStore(agent.KeepConversationLastN{N: 50})
	manager := NewEventManager()

	ctx = agent.WithConversationKey(ctx, "local")
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Tell me about the event you want to create. Commands: /preview /save /edit <json> /schema /reset /quit")

	for {
		fmt.Print("you: ")
		line, rErr := reader.ReadString('\n')
		if rErr != nil {
			fmt.Println("input closed, exiting.")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if payload, ok := strings.CutPrefix(line, "/edit "); ok {
			if eErr := editDraft(ctx, drafts, payload); eErr != nil {
				fmt.Printf("edit failed: %v\n", eErr)
			} else if pErr := printPreview(ctx, drafts); pErr != nil {
				fmt.Printf("preview failed: %v\n", pErr)
			}
			continue
		}

		switch line {
		case "/quit":
			return nil
		case "/preview":
			if pErr := printPreview(ctx, drafts); pErr != nil {
				fmt.Printf("preview failed: %v\n", pErr)
			}
			continue
		case "/schema":
			if out, sErr := event.JSONSchema(); sErr != nil {
				fmt.Printf("schema failed: %v\n", sErr)
			} else {
				fmt.Println(out)
			}
			continue
		case "/reset":
			_ = drafts.Clear(ctx)
			_ = history.Clear(ctx)
			fmt.Println("draft and history cleared.")
			continue
		case "/save":
			if sErr := saveDraft(ctx, drafts, history, manager); sErr != nil {
				fmt.Printf("save failed: %v\n", sErr)
			} else {
				fmt.Println("event saved.")
			}
			continue
		}

		current, lErr := drafts.Load(ctx)
		if lErr != nil {
			return lErr
		}
		prior, lErr := history.Load(ctx)
		if lErr != nil {
			return lErr
		}

		resp, tErr := flow.Invoke(ctx, &agent.Request{
			UserInput: line,
			Draft:     current,
			History:   prior,
		})
		if tErr != nil {
			fmt.Printf("turn failed, please try again: %v\n", tErr)
			continue
		}

		if sErr := drafts.Save(ctx, resp.Draft); sErr != nil {
			return sErr
		}
		if _, hErr := history.Append(ctx, schema.UserMessage(line), schema.AssistantMessage(resp.Message, nil)); hErr != nil {
			return hErr
		}

		fmt.Printf("\nassistant: %s\n\n", resp.Message)
		if pErr := printPreview(ctx, drafts); pErr != nil {
			fmt.Printf("preview failed: %v\n", pErr)
		}
	}
}

// editDraft seeds the current draft from a saved event record, e.g.
// one copied out of the persistence layer, so the conversation can
// continue as an edit session.
func editDraft(ctx context.Context, drafts *agent.DraftStore, payload string) error {
	var record map[string]any
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return fmt.Errorf("parse record: %w", err)
	}
	current, err := drafts.Load(ctx)
	if err != nil {
		return err
	}
	seeded, err := draft.Prefill(current, record)
	if err != nil {
		return err
	}
	return drafts.Save(ctx, seeded)
}

func saveDraft(ctx context.Context, drafts *agent.DraftStore, history *agent.HistoryStore, manager *EventManager) error {
	current, err := drafts.Load(ctx)
	if err != nil {
		return err
	}
	e, err := event.FromDraft(current)
	if err != nil {
		return err
	}
	if err := manager.Save(ctx, e); err != nil {
		return err
	}
	_ = drafts.Clear(ctx)
	_ = history.Clear(ctx)
	return nil
}

func printPreview(ctx context.Context, drafts *agent.DraftStore) error {
	current, err := drafts.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Println(renderPreview(current))
	return nil
}

func renderPreview(d draft.Draft) string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Value")
	for _, field := range event.Definition().Fields {
		value := "..."
		if v, ok := d[field.Name]; ok && v != nil {
			value = fmt.Sprintf("%v", v)
		}
		_ = table.Append(field.DisplayLabel(), value)
	}
	_ = table.Render()
	if missing := event.Missing(d); len(missing) > 0 {
		buf.WriteString(form.FormatMissingLabels(missing) + "\n")
	}
	return buf.String()
}
