package callback

import (
	"encoding/json"
	"fmt"
)

// Callback type names pushed by the gateway.
const (
	TypeAddMsg      = "AddMsg"
	TypeModContacts = "ModContacts"
	TypeDelContacts = "DelContacts"
	TypeOffline     = "Offline"
)

// Event is one callback posted by the gateway. Raw holds the request body
// exactly as received.
type Event struct {
	TypeName string          `json:"TypeName"`
	Appid    string          `json:"Appid"`
	Wxid     string          `json:"Wxid"`
	Data     json.RawMessage `json:"Data,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// ParseEvent decodes a callback body.
func ParseEvent(body []byte) (*Event, error) {
	evt := &Event{}
	if err := json.Unmarshal(body, evt); err != nil {
		return nil, fmt.Errorf("decode callback: %w", err)
	}
	evt.Raw = append(json.RawMessage(nil), body...)
	return evt, nil
}

// IsProbe reports whether the event is the connectivity check the gateway
// sends when a callback URL is registered.
func (e *Event) IsProbe() bool { return e.TypeName == "" }

// stringField is the {"string": "..."} wrapper the gateway uses for text
// inside message payloads.
type stringField struct {
	Str string `json:"string"`
}

// Message is the Data of an AddMsg event.
type Message struct {
	MsgID        int64  `json:"MsgId"`
	NewMsgID     int64  `json:"NewMsgId"`
	MsgType      int    `json:"MsgType"`
	FromUserName string `json:"-"`
	ToUserName   string `json:"-"`
	Content      string `json:"-"`
	PushContent  string `json:"PushContent"`
	CreateTime   int64  `json:"CreateTime"`
}

// Message decodes the payload of an AddMsg event.
func (e *Event) Message() (*Message, error) {
	if e.TypeName != TypeAddMsg {
		return nil, fmt.Errorf("callback %q is not a message", e.TypeName)
	}
	var wire struct {
		Message
		From    stringField `json:"FromUserName"`
		To      stringField `json:"ToUserName"`
		Content stringField `json:"Content"`
	}
	if err := json.Unmarshal(e.Data, &wire); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	msg := wire.Message
	msg.FromUserName = wire.From.Str
	msg.ToUserName = wire.To.Str
	msg.Content = wire.Content.Str
	return &msg, nil
}
