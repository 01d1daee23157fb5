package draft

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

type patchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Prefill seeds a draft from an existing record, e.g. when a saved
// event is reopened for editing. Non-zero fields of the record become
// RFC6902 add/replace operations applied on top of the current draft;
// zero and nil fields are skipped so they stay askable.
func Prefill(current Draft, record any) (Draft, error) {
	recordJSON, err := sonic.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var recordMap map[string]any
	if err := sonic.Unmarshal(recordJSON, &recordMap); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	ops := make([]patchOperation, 0)
	collectOps("", map[string]any(current), recordMap, &ops)
	if len(ops) == 0 {
		return current.Clone(), nil
	}

	currentJSON, err := sonic.Marshal(map[string]any(current))
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}
	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("marshal patch operations: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	seededJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}

	var seeded Draft
	if err := sonic.Unmarshal(seededJSON, &seeded); err != nil {
		return nil, fmt.Errorf("unmarshal seeded draft: %w", err)
	}
	return seeded, nil
}

func collectOps(prefix string, current, record map[string]any, ops *[]patchOperation) {
	for key, value := range record {
		if value == nil || isZeroValue(value) {
			continue
		}
		path := prefix + "/" + escapePointerToken(key)
		currentValue, exists := current[key]

		if nested, ok := value.(map[string]any); ok {
			if currentNested, ok := currentValue.(map[string]any); ok {
				collectOps(path, currentNested, nested, ops)
			} else {
				*ops = append(*ops, patchOperation{Op: opFor(exists), Path: path, Value: value})
			}
			continue
		}

		if !exists {
			*ops = append(*ops, patchOperation{Op: "add", Path: path, Value: value})
		} else if !reflect.DeepEqual(currentValue, value) {
			*ops = append(*ops, patchOperation{Op: "replace", Path: path, Value: value})
		}
	}
}

func opFor(exists bool) string {
	if exists {
		return "replace"
	}
	return "add"
}

func escapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

func isZeroValue(v any) bool {
	switch val := v.(type) {
	case string:
		return val == ""
	case float64:
		return val == 0
	case bool:
		return !val
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
