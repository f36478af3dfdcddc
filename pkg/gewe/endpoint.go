package gewe

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind describes how an argument is checked and encoded on the wire.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindWxid
	KindWxidList
	KindStringList
	// KindJoinedStrings sends a string list as one comma separated string.
	KindJoinedStrings
	// KindJoinedWxids sends a Wxid list as one comma separated string.
	KindJoinedWxids
)

var kindNames = map[Kind]string{
	KindString:        "string",
	KindInt:           "int",
	KindBool:          "bool",
	KindWxid:          "wxid",
	KindWxidList:      "[]wxid",
	KindStringList:    "[]string",
	KindJoinedStrings: "string,string",
	KindJoinedWxids:   "wxid,wxid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is one wire field of an endpoint.
type Field struct {
	Wire string
	Kind Kind
}

// Endpoint binds a gateway route to its ordered list of body fields.
type Endpoint struct {
	Name   string
	Area   string
	Route  string
	Fields []Field
}

func (e *Endpoint) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Wire + " " + f.Kind.String()
	}
	return fmt.Sprintf("%s %s (%s)", e.Name, e.Route, strings.Join(parts, ", "))
}

// Bind checks args positionally against the endpoint's fields and returns the
// request body.
func (e *Endpoint) Bind(args ...interface{}) (Params, error) {
	if len(args) != len(e.Fields) {
		return nil, &ArgumentError{
			Endpoint: e.Name,
			Reason:   fmt.Sprintf("expected %d arguments, got %d", len(e.Fields), len(args)),
		}
	}
	params := make(Params, 0, len(e.Fields))
	for i, f := range e.Fields {
		v, err := e.bindValue(f, args[i])
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Key: f.Wire, Value: v})
	}
	return params, nil
}

// ParseArgs binds textual values keyed by wire name. Lists are comma
// separated; ints and bools use strconv syntax.
func (e *Endpoint) ParseArgs(values map[string]string) (Params, error) {
	known := make(map[string]bool, len(e.Fields))
	args := make([]interface{}, len(e.Fields))
	for i, f := range e.Fields {
		known[f.Wire] = true
		raw, ok := values[f.Wire]
		if !ok {
			return nil, &ArgumentError{Endpoint: e.Name, Field: f.Wire, Reason: "missing value"}
		}
		v, err := e.parseValue(f, raw)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	var unknown []string
	for k := range values {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ArgumentError{
			Endpoint: e.Name,
			Reason:   "unknown fields: " + strings.Join(unknown, ", "),
		}
	}
	return e.Bind(args...)
}

func (e *Endpoint) parseValue(f Field, raw string) (interface{}, error) {
	switch f.Kind {
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ArgumentError{Endpoint: e.Name, Field: f.Wire, Reason: err.Error()}
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &ArgumentError{Endpoint: e.Name, Field: f.Wire, Reason: err.Error()}
		}
		return b, nil
	case KindWxidList, KindStringList, KindJoinedStrings, KindJoinedWxids:
		return splitList(raw), nil
	default:
		return raw, nil
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (e *Endpoint) bindValue(f Field, arg interface{}) (interface{}, error) {
	mismatch := func() error {
		return &ArgumentError{
			Endpoint: e.Name,
			Field:    f.Wire,
			Reason:   fmt.Sprintf("cannot use %T as %s", arg, f.Kind),
		}
	}

	switch f.Kind {
	case KindString:
		rv := reflect.ValueOf(arg)
		if !rv.IsValid() || rv.Kind() != reflect.String {
			return nil, mismatch()
		}
		return rv.String(), nil

	case KindInt:
		rv := reflect.ValueOf(arg)
		if !rv.IsValid() {
			return nil, mismatch()
		}
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return rv.Uint(), nil
		}
		return nil, mismatch()

	case KindBool:
		b, ok := arg.(bool)
		if !ok {
			return nil, mismatch()
		}
		return b, nil

	case KindWxid:
		switch v := arg.(type) {
		case Wxid:
			if v.IsZero() {
				return nil, &ValidationError{Input: ""}
			}
			return v, nil
		case string:
			return ParseWxid(v)
		}
		return nil, mismatch()

	case KindWxidList, KindJoinedWxids:
		var ids []Wxid
		switch v := arg.(type) {
		case []Wxid:
			ids = v
		case []string:
			parsed, err := ParseWxids(v)
			if err != nil {
				return nil, err
			}
			ids = parsed
		default:
			return nil, mismatch()
		}
		if f.Kind == KindJoinedWxids {
			return joinWxids(ids), nil
		}
		if ids == nil {
			ids = []Wxid{}
		}
		return ids, nil

	case KindStringList, KindJoinedStrings:
		ss, ok := arg.([]string)
		if !ok {
			return nil, mismatch()
		}
		if f.Kind == KindJoinedStrings {
			return strings.Join(ss, ","), nil
		}
		if ss == nil {
			ss = []string{}
		}
		return ss, nil
	}
	return nil, mismatch()
}
