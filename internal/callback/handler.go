package callback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxBodySize bounds a single callback body.
const maxBodySize = 8 << 20

// Sink receives every accepted callback.
type Sink interface {
	HandleEvent(ctx context.Context, evt *Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, evt *Event) error

func (f SinkFunc) HandleEvent(ctx context.Context, evt *Event) error { return f(ctx, evt) }

// Handler processes callbacks posted by the gateway and fans them out to
// its sinks in order. A failing sink is logged and does not stop the others.
type Handler struct {
	log   *slog.Logger
	sinks []Sink
}

// NewHandler creates a new callback handler.
func NewHandler(log *slog.Logger, sinks ...Sink) *Handler {
	return &Handler{
		log:   log,
		sinks: sinks,
	}
}

// ServeHTTP implements http.Handler for the callback endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.log.Warn("read callback body", "error", err)
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}

	evt, err := ParseEvent(body)
	if err != nil {
		h.log.Warn("invalid callback payload", "error", err)
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if evt.IsProbe() {
		h.log.Info("callback probe acknowledged")
	} else {
		h.dispatch(r.Context(), evt)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"ret":200}`)
}

func (h *Handler) dispatch(ctx context.Context, evt *Event) {
	h.logEvent(evt)
	for _, sink := range h.sinks {
		if err := sink.HandleEvent(ctx, evt); err != nil {
			h.log.Error("callback sink failed", "error", err, "type", evt.TypeName, "app_id", evt.Appid)
		}
	}
}

func (h *Handler) logEvent(evt *Event) {
	switch evt.TypeName {
	case TypeAddMsg:
		msg, err := evt.Message()
		if err != nil {
			h.log.Warn("unparseable message callback", "error", err, "app_id", evt.Appid)
			return
		}
		h.log.Debug("received message",
			"app_id", evt.Appid,
			"new_msg_id", msg.NewMsgID,
			"type", msg.MsgType,
			"from", msg.FromUserName)
	case TypeOffline:
		h.log.Warn("account went offline", "app_id", evt.Appid, "wxid", evt.Wxid)
	default:
		h.log.Debug("received callback", "type", evt.TypeName, "app_id", evt.Appid)
	}
}
