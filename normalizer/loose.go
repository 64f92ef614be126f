package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
)

// LooseStringList accepts whatever the dashboard sends for a list of tags.
// Anything that is not a JSON array decodes to an empty list, non-string
// items are stringified and nulls are dropped.
type LooseStringList []string

func (l *LooseStringList) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = LooseStringList{}
		return nil
	}
	out := make(LooseStringList, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	*l = out
	return nil
}

// LooseBool decodes any JSON value using truthiness: false, 0, "", null are
// false, everything else is true.
type LooseBool bool

func (b *LooseBool) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = LooseBool(truthy(v))
	return nil
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}
