package callback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

var testLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

type recordingSink struct {
	events []*Event
	err    error
}

func (s *recordingSink) HandleEvent(_ context.Context, evt *Event) error {
	s.events = append(s.events, evt)
	return s.err
}

func postCallback(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const addMsgBody = `{
	"TypeName": "AddMsg",
	"Appid": "wx_app",
	"Wxid": "wxid_me",
	"Data": {
		"MsgId": 1001,
		"NewMsgId": 9001,
		"MsgType": 1,
		"FromUserName": {"string": "wxid_friend"},
		"ToUserName": {"string": "wxid_me"},
		"Content": {"string": "hello"},
		"PushContent": "friend: hello",
		"CreateTime": 1700000000
	}
}`

func TestHandler_ForwardsToSinks(t *testing.T) {
	first := &recordingSink{err: errors.New("boom")}
	second := &recordingSink{}
	h := NewHandler(testLog, first, second)

	rec := postCallback(h, addMsgBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != `{"ret":200}` {
		t.Fatalf("body = %s", rec.Body.String())
	}

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("expected both sinks called once, got %d and %d", len(first.events), len(second.events))
	}
	evt := second.events[0]
	if evt.TypeName != TypeAddMsg || evt.Appid != "wx_app" || evt.Wxid != "wxid_me" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if string(evt.Raw) != addMsgBody {
		t.Fatal("raw body not preserved")
	}
}

func TestHandler_ProbeAcknowledged(t *testing.T) {
	sink := &recordingSink{}
	h := NewHandler(testLog, sink)

	rec := postCallback(h, `{"testMsg":"callback test","token":"tok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sink.events) != 0 {
		t.Fatalf("probe forwarded to sink")
	}
}

func TestHandler_BadJSON(t *testing.T) {
	sink := &recordingSink{}
	h := NewHandler(testLog, sink)

	rec := postCallback(h, `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sink.events) != 0 {
		t.Fatal("bad payload forwarded")
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(testLog)

	req := httptest.NewRequest(http.MethodGet, "/callback", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSinkFunc(t *testing.T) {
	var got string
	h := NewHandler(testLog, SinkFunc(func(_ context.Context, evt *Event) error {
		got = evt.TypeName
		return nil
	}))

	postCallback(h, `{"TypeName":"Offline","Appid":"a","Wxid":"wxid_me"}`)
	if got != TypeOffline {
		t.Fatalf("got %q", got)
	}
}

func TestEvent_Message(t *testing.T) {
	evt, err := ParseEvent([]byte(addMsgBody))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	msg, err := evt.Message()
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if msg.NewMsgID != 9001 || msg.MsgType != 1 {
		t.Errorf("ids: %+v", msg)
	}
	if msg.FromUserName != "wxid_friend" || msg.ToUserName != "wxid_me" || msg.Content != "hello" {
		t.Errorf("text fields: %+v", msg)
	}

	offline := &Event{TypeName: TypeOffline}
	if _, err := offline.Message(); err == nil {
		t.Fatal("expected error for non-message event")
	}
}
