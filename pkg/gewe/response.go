package gewe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// StatusOK is the value of the "ret" field on a successful gateway reply.
const StatusOK = 200

// Response is the decoded JSON reply of the gateway. The schema is owned by
// the gateway; only the conventional ret/msg/data fields get accessors.
type Response struct {
	raw   json.RawMessage
	value interface{}
}

// newResponse decodes numbers as json.Number so 64-bit message ids survive.
func newResponse(raw []byte) (*Response, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return &Response{raw: json.RawMessage(raw), value: v}, nil
}

// Raw returns the response body exactly as received.
func (r *Response) Raw() json.RawMessage { return r.raw }

// Value returns the decoded body: a map, slice, string, json.Number, bool or
// nil.
func (r *Response) Value() interface{} { return r.value }

// Get returns a top-level field when the body is a JSON object.
func (r *Response) Get(key string) (interface{}, bool) {
	m, ok := r.value.(map[string]interface{})
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// Ret returns the numeric "ret" status field, if present.
func (r *Response) Ret() (int, bool) {
	v, ok := r.Get("ret")
	if !ok {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// OK reports whether the gateway answered with ret == 200.
func (r *Response) OK() bool {
	ret, ok := r.Ret()
	return ok && ret == StatusOK
}

// Msg returns the "msg" field, or "" when absent.
func (r *Response) Msg() string {
	v, _ := r.Get("msg")
	s, _ := v.(string)
	return s
}

// Data returns the "data" field, or nil when absent.
func (r *Response) Data() interface{} {
	v, _ := r.Get("data")
	return v
}

// Decode unmarshals the whole body into target.
func (r *Response) Decode(target interface{}) error {
	return json.Unmarshal(r.raw, target)
}

// DecodeData unmarshals the "data" field into target.
func (r *Response) DecodeData(target interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.raw, &envelope); err != nil {
		return err
	}
	if envelope.Data == nil {
		return fmt.Errorf("response has no data field")
	}
	return json.Unmarshal(envelope.Data, target)
}

func (r *Response) String() string { return string(r.raw) }
