package gewe

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Param is a single wire field of a request body.
type Param struct {
	Key   string
	Value interface{}
}

// Params is an ordered request body. It marshals to a JSON object whose keys
// appear in insertion order.
type Params []Param

// P builds Params from alternating key/value arguments.
// It panics if the arguments are unbalanced or a key is not a string.
func P(kv ...interface{}) Params {
	if len(kv)%2 != 0 {
		panic("gewe.P: odd number of arguments")
	}
	p := make(Params, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("gewe.P: key at position %d is %T, not string", i, kv[i]))
		}
		p = append(p, Param{Key: key, Value: kv[i+1]})
	}
	return p
}

// Add returns p extended with one more field.
func (p Params) Add(key string, value interface{}) Params {
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value of the first field named key.
func (p Params) Get(key string) (interface{}, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, kv := range p {
		keys[i] = kv.Key
	}
	return keys
}

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", kv.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
