package gewe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"
)

var testLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

type recordedRequest struct {
	Path  string
	Token string
	Type  string
	Body  string
}

type gatewayStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	reply    string
}

func (g *gatewayStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	g.mu.Lock()
	g.requests = append(g.requests, recordedRequest{
		Path:  r.URL.Path,
		Token: r.Header.Get(TokenHeader),
		Type:  r.Header.Get("Content-Type"),
		Body:  string(body),
	})
	reply := g.reply
	g.mu.Unlock()
	w.Write([]byte(reply))
}

func (g *gatewayStub) hits() []recordedRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]recordedRequest(nil), g.requests...)
}

func newStubClient(t *testing.T, reply string) (*Client, *gatewayStub) {
	t.Helper()
	stub := &gatewayStub{reply: reply}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	c := NewBuilder().
		WithToken("tok-1").
		WithBaseURL(srv.URL + "/v2/api/").
		WithLogger(testLog).
		Build()
	return c, stub
}

func TestClient_PostSendsBodyAndToken(t *testing.T) {
	c, stub := newStubClient(t, `{"ret":200,"msg":"ok","data":{"uuid":"u1"}}`)

	resp, err := c.Post(context.Background(), "/personal/getProfile", P("appId", "X"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	hits := stub.hits()
	if len(hits) != 1 {
		t.Fatalf("expected 1 request, got %d", len(hits))
	}
	got := hits[0]
	if got.Path != "/v2/api/personal/getProfile" {
		t.Errorf("path = %s", got.Path)
	}
	if got.Token != "tok-1" {
		t.Errorf("token header = %q", got.Token)
	}
	if got.Type != "application/json" {
		t.Errorf("content type = %q", got.Type)
	}
	if got.Body != `{"appId":"X"}` {
		t.Errorf("body = %s", got.Body)
	}

	if !resp.OK() || resp.Msg() != "ok" {
		t.Fatalf("unexpected response %s", resp)
	}
	var data struct {
		UUID string `json:"uuid"`
	}
	if err := resp.DecodeData(&data); err != nil || data.UUID != "u1" {
		t.Fatalf("decode data: %v %+v", err, data)
	}
}

func TestClient_EmptyBodyRejectedWithoutNetwork(t *testing.T) {
	c, stub := newStubClient(t, `{}`)

	_, err := c.Post(context.Background(), "/personal/getProfile", nil)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cerr.Route != "/personal/getProfile" {
		t.Errorf("route = %s", cerr.Route)
	}
	if n := len(stub.hits()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}

	if _, err := c.Post(context.Background(), "/personal/getProfile", Params{}); !errors.As(err, &cerr) {
		t.Fatalf("empty Params: expected ConfigurationError, got %v", err)
	}
}

func TestClient_GetTokenSendsNoBody(t *testing.T) {
	c, stub := newStubClient(t, `{"ret":200,"data":"new-token"}`)

	resp, err := c.GetToken(context.Background())
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	if resp.Data() != "new-token" {
		t.Fatalf("data = %v", resp.Data())
	}

	hits := stub.hits()
	if len(hits) != 1 || hits[0].Path != "/v2/api/tools/getTokenId" {
		t.Fatalf("unexpected requests: %+v", hits)
	}
	if hits[0].Body != "" {
		t.Fatalf("expected empty body, got %q", hits[0].Body)
	}
}

func TestClient_LargeIntegersKeepPrecision(t *testing.T) {
	c, _ := newStubClient(t, `{"ret":200,"msg":"ok","data":{"newMsgId":7265512345678901234,"createTime":1700000000}}`)

	resp, err := c.Post(context.Background(), "/message/postText", P("appId", "X"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if ret, ok := resp.Ret(); !ok || ret != StatusOK {
		t.Fatalf("ret = %d, %v", ret, ok)
	}

	data, ok := resp.Data().(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T", resp.Data())
	}
	id, ok := data["newMsgId"].(json.Number)
	if !ok {
		t.Fatalf("newMsgId = %T", data["newMsgId"])
	}
	if n, err := id.Int64(); err != nil || n != 7265512345678901234 {
		t.Fatalf("newMsgId = %s (%v)", id, err)
	}

	var typed struct {
		NewMsgID int64 `json:"newMsgId"`
	}
	if err := resp.DecodeData(&typed); err != nil || typed.NewMsgID != 7265512345678901234 {
		t.Fatalf("decode data: %+v %v", typed, err)
	}

	body, _ := json.Marshal(P("appId", "X", "newMsgId", id))
	if string(body) != `{"appId":"X","newMsgId":7265512345678901234}` {
		t.Fatalf("id does not round trip into a request: %s", body)
	}

	params, err := RevokeMsg.Bind("X", "wxid_bob", "1", id, "1700000000")
	if err != nil {
		t.Fatalf("bind revoke: %v", err)
	}
	if v, _ := params.Get("newMsgId"); v != "7265512345678901234" {
		t.Fatalf("revoke newMsgId = %v", v)
	}
}

func TestClient_TrailingDataIsTransportError(t *testing.T) {
	c, _ := newStubClient(t, `{"ret":200} {"ret":500}`)

	_, err := c.Post(context.Background(), "/login/logout", P("appId", "X"))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestClient_UnencodableBody(t *testing.T) {
	c, stub := newStubClient(t, `{}`)

	_, err := c.Post(context.Background(), "/login/logout", P("appId", make(chan int)))
	var aerr *ArgumentError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected ArgumentError, got %v", err)
	}
	if aerr.Endpoint != "/login/logout" {
		t.Errorf("endpoint = %s", aerr.Endpoint)
	}
	if n := len(stub.hits()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestClient_RejectionsAreObserved(t *testing.T) {
	obs := &recordingObserver{}
	c := NewBuilder().WithObserver(obs).WithLogger(testLog).Build()

	if _, err := c.Post(context.Background(), "/personal/getProfile", nil); err == nil {
		t.Fatal("expected ConfigurationError")
	}
	if len(obs.calls) != 1 || obs.calls[0].route != "/personal/getProfile" {
		t.Fatalf("observed %+v", obs.calls)
	}
	var cerr *ConfigurationError
	if !errors.As(obs.calls[0].err, &cerr) {
		t.Fatalf("observed error %v", obs.calls[0].err)
	}
}

func TestClient_NonJSONReply(t *testing.T) {
	c, _ := newStubClient(t, `<html>bad gateway</html>`)

	_, err := c.Post(context.Background(), "/login/logout", P("appId", "X"))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Route != "/login/logout" {
		t.Errorf("route = %s", terr.Route)
	}
}

func TestClient_NonOKRetIsNotAnError(t *testing.T) {
	c, _ := newStubClient(t, `{"ret":500,"msg":"not logged in"}`)

	resp, err := c.Post(context.Background(), "/login/logout", P("appId", "X"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.OK() {
		t.Fatal("OK() = true for ret 500")
	}
	if ret, ok := resp.Ret(); !ok || ret != 500 {
		t.Fatalf("ret = %d, %v", ret, ok)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewBuilder().WithBaseURL(url).WithLogger(testLog).Build()
	_, err := c.Post(context.Background(), "/login/logout", P("appId", "X"))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newStubClient(t, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Post(ctx, "/login/logout", P("appId", "X"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type observedRequest struct {
	route string
	err   error
}

type recordingObserver struct {
	calls []observedRequest
}

func (o *recordingObserver) ObserveRequest(route string, _ time.Duration, err error) {
	o.calls = append(o.calls, observedRequest{route: route, err: err})
}

func TestClient_InvokeNotifiesObserver(t *testing.T) {
	stub := &gatewayStub{reply: `{"ret":200}`}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewBuilder().WithBaseURL(srv.URL).WithObserver(obs).WithLogger(testLog).Build()

	if _, err := c.Invoke(context.Background(), SetFriendRemark, "a", "wxid_b", "Bob"); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if _, err := c.Call(context.Background(), "/login/logout", "a"); err != nil {
		t.Fatalf("call by route: %v", err)
	}
	if _, err := c.Call(context.Background(), "Nope"); err == nil {
		t.Fatal("expected error for unknown endpoint")
	}

	if len(obs.calls) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.calls))
	}
	if obs.calls[0].route != "/contacts/setFriendRemark" || obs.calls[1].route != "/login/logout" {
		t.Fatalf("observed %+v", obs.calls)
	}

	hits := stub.hits()
	if hits[0].Body != `{"appId":"a","wxid":"wxid_b","remark":"Bob"}` {
		t.Fatalf("body = %s", hits[0].Body)
	}
}

func TestClient_InvalidArgsNeverDispatch(t *testing.T) {
	c, stub := newStubClient(t, `{}`)

	if _, err := c.Invoke(context.Background(), PostText, "a", "alice", "hi", ""); err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(stub.hits()); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestBuilder_Defaults(t *testing.T) {
	c := NewClient("t")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("base url = %s", c.BaseURL())
	}
	if c.Token() != "t" {
		t.Errorf("token = %s", c.Token())
	}

	c = NewBuilder().WithBaseURL("http://gw:2531/v2/api/").Build()
	if c.BaseURL() != "http://gw:2531/v2/api" {
		t.Errorf("trailing slash kept: %s", c.BaseURL())
	}
}

func TestClient_ProxyIgnored(t *testing.T) {
	t.Setenv("HTTP_PROXY", "http://127.0.0.1:1")
	t.Setenv("http_proxy", "http://127.0.0.1:1")

	c, stub := newStubClient(t, `{"ret":200}`)
	if _, err := c.Post(context.Background(), "/login/logout", P("appId", "X")); err != nil {
		t.Fatalf("post: %v", err)
	}
	if n := len(stub.hits()); n != 1 {
		t.Fatalf("expected direct request, got %d hits", n)
	}
}
