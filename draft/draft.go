package draft

import (
	"strconv"

	"github.com/bytedance/sonic"
)

// Draft is the in-progress event record being assembled across a
// conversation. Values stay loosely typed (JSON scalar types) until a
// strict record validates them at persistence time. Keys are never
// deleted by a merge, only set or nulled.
type Draft map[string]any

func New() Draft {
	return Draft{}
}

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge applies a partial update: every key present in the update
// overwrites the draft key, including an explicit nil which clears the
// value in place. Keys absent from the update are left untouched.
// Applying the same update twice yields the same draft as applying it
// once.
func (d Draft) Merge(update map[string]any) Draft {
	out := d.Clone()
	for k, v := range update {
		out[k] = v
	}
	return out
}

// Has reports whether the key is present with a non-nil value.
func (d Draft) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

func (d Draft) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (d Draft) Bool(key string) (bool, bool) {
	v, ok := d[key]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number coerces the value to float64. Model payloads deliver numbers
// as float64 or json.Number depending on the decoder, and users phrase
// costs as strings often enough that string parsing is worth keeping.
func (d Draft) Number(key string) (float64, bool) {
	v, ok := d[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Strings coerces the value to a string list, tolerating the []any
// shape JSON decoding produces.
func (d Draft) Strings(key string) []string {
	v, ok := d[key]
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// MarshalJSONString renders the draft for inclusion in a prompt.
func (d Draft) MarshalJSONString() (string, error) {
	return sonic.MarshalString(map[string]any(d))
}
