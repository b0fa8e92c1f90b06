package graphz

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedObject is a JSON object that keeps its fields in insertion order,
// for the wire formats that promise one. The zero value is an empty object.
type orderedObject struct {
	keys   []string
	values []any
}

// Append adds a field. Keys are not deduplicated.
func (o *orderedObject) Append(key string, value any) *orderedObject {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
	return o
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
