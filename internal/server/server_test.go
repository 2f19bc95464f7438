package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matzehuels/blocks/pkg/bookmark"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, bookmark.Store) {
	t.Helper()
	store, err := bookmark.NewFileStore(filepath.Join(t.TempDir(), "bm.json"))
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), store, logger, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("health body = %v", body)
	}
}

func TestListGenerators(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/api/generators", "")
	var infos []registry.Info
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(registry.Kinds()) {
		t.Errorf("got %d generators, want %d", len(infos), len(registry.Kinds()))
	}
}

func TestGenerate(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		body        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{
			name:        "box shadow from params",
			path:        "/api/generators/box-shadow/css",
			body:        `{"layers": [{"offset_x": 10, "offset_y": 10, "blur": 20, "spread": 0, "color": "#000000", "opacity": 0.1}]}`,
			wantStatus:  http.StatusOK,
			wantType:    "text/css",
			wantContain: "box-shadow: 10px 10px 20px 0px rgba(0, 0, 0, 0.1);",
		},
		{
			name:        "defaults",
			path:        "/api/generators/gradient/tailwind",
			wantStatus:  http.StatusOK,
			wantType:    "text/plain",
			wantContain: "bg-[linear-gradient(135deg,#8b5cf6_0%,#3b82f6_100%)]",
		},
		{
			name:        "svg",
			path:        "/api/generators/svg-wave/svg",
			wantStatus:  http.StatusOK,
			wantType:    "image/svg+xml",
			wantContain: "<svg",
		},
		{
			name:        "invalid colour",
			path:        "/api/generators/gradient/css",
			body:        `{"stops": [{"color": "red", "position": 0}, {"color": "#000000", "position": 100}]}`,
			wantStatus:  http.StatusBadRequest,
			wantContain: "INVALID_COLOR_FORMAT",
		},
		{
			name:        "unknown field",
			path:        "/api/generators/blob/css",
			body:        `{"wobble": 1}`,
			wantStatus:  http.StatusBadRequest,
			wantContain: "INVALID_PARAMS",
		},
		{
			name:        "unknown kind",
			path:        "/api/generators/teapot/css",
			wantStatus:  http.StatusBadRequest,
			wantContain: "INVALID_KIND",
		},
		{
			name:        "unknown format",
			path:        "/api/generators/blob/gif",
			wantStatus:  http.StatusBadRequest,
			wantContain: "INVALID_FORMAT",
		},
		{
			name:        "unsupported pair",
			path:        "/api/generators/box-shadow/svg",
			wantStatus:  http.StatusUnprocessableEntity,
			wantContain: "UNSUPPORTED",
		},
		{
			name:        "partial list items",
			path:        "/api/generators/clip-path/css",
			body:        `{"points": [{"x": 10}, {"x": 20}, {"x": 30}]}`,
			wantStatus:  http.StatusOK,
			wantContain: "polygon(10.0% 0.0%, 20.0% 0.0%, 30.0% 0.0%)",
		},
		{
			name:        "code screenshot too long",
			path:        "/api/generators/code-screenshot/png",
			body:        `{"code": "` + strings.Repeat(`\n`, 200000) + `"}`,
			wantStatus:  http.StatusBadRequest,
			wantContain: "INVALID_PARAMS",
		},
		{
			name:        "pdf without printer",
			path:        "/api/generators/markdown/pdf",
			wantStatus:  http.StatusUnprocessableEntity,
			wantContain: "UNSUPPORTED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tt.path, tt.body)
			body := readBody(t, resp)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantType != "" && !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", resp.Header.Get("Content-Type"), tt.wantType)
			}
			if !strings.Contains(body, tt.wantContain) {
				t.Errorf("body does not contain %q:\n%s", tt.wantContain, body)
			}
		})
	}
}

func TestShareRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/api/share/blob", `{"top": 11}`)
	var enc map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&enc); err != nil {
		t.Fatal(err)
	}
	if enc["token"] == "" {
		t.Fatal("no token returned")
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/share/"+enc["token"], "")
	var dec struct {
		Kind   string         `json:"kind"`
		Params map[string]any `json:"params"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&dec); err != nil {
		t.Fatal(err)
	}
	if dec.Kind != "blob" || dec.Params["top"] != 11.0 {
		t.Errorf("decoded = %+v", dec)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/share/garbage", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad token status = %d, want 400", resp.StatusCode)
	}
}

func TestBookmarks(t *testing.T) {
	ts, store := newTestServer(t)

	if resp := do(t, http.MethodPut, ts.URL+"/api/bookmarks/dots", ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
	resp := do(t, http.MethodPost, ts.URL+"/api/bookmarks/grid/toggle", "")
	var toggled map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&toggled); err != nil {
		t.Fatal(err)
	}
	if !toggled["bookmarked"] {
		t.Error("toggle of a new id should bookmark it")
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/bookmarks", "")
	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatal(err)
	}
	if strings.Join(ids, ",") != "dots,grid" {
		t.Errorf("ids = %v", ids)
	}

	if resp := do(t, http.MethodDelete, ts.URL+"/api/bookmarks/dots", ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", resp.StatusCode)
	}
	if has, _ := store.Has(context.Background(), "dots"); has {
		t.Error("dots still bookmarked after DELETE")
	}
}

func TestBookmarksDisabled(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), nil, logger)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookmarks/", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestAnimateStream(t *testing.T) {
	ts, _ := newTestServer(t, WithFrameInterval(time.Millisecond), WithMaxFrames(3))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/animate/svg-wave?speed=100"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.CloseNow()

	var prev Frame
	for i := 0; i < 3; i++ {
		var f Frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if f.Frame != i || f.Format != "svg" || !strings.HasPrefix(f.Body, "<svg") {
			t.Errorf("frame %d = {%d %v %s}", i, f.Frame, f.Time, f.Format)
		}
		if i > 0 && !(f.Time > prev.Time) {
			t.Errorf("time did not advance: %v then %v", prev.Time, f.Time)
		}
		if i > 0 && f.Body == prev.Body {
			t.Errorf("frame %d identical to previous", i)
		}
		prev = f
	}

	var extra Frame
	err = wsjson.Read(ctx, conn, &extra)
	if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.Errorf("after max frames, read err = %v, want normal closure", err)
	}
}

func TestAnimateStreamStopsOnDisconnect(t *testing.T) {
	ts, _ := newTestServer(t, WithFrameInterval(time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/animate/mesh-gradient"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	var f Frame
	if err := wsjson.Read(ctx, conn, &f); err != nil {
		t.Fatal(err)
	}
	if f.Format != "css" || !strings.Contains(f.Body, "radial-gradient") {
		t.Errorf("mesh frame = %+v", f)
	}
	// Closing must not hang the server; ts.Close in cleanup waits for the handler.
	conn.Close(websocket.StatusNormalClosure, "")
}

func TestAnimateRejectsStillGenerators(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/ws/animate/gradient", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestWriteErrorStatus(t *testing.T) {
	srv := New(pipeline.NewRunner(nil, nil, nil), nil, log.NewWithOptions(io.Discard, log.Options{}))
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidParams, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeExportFailed, "x"), http.StatusBadGateway},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		srv.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		if rec.Code != tt.want {
			t.Errorf("writeError(%v) status = %d, want %d", tt.err, rec.Code, tt.want)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte(`"code"`)) {
			t.Errorf("error body missing code: %s", rec.Body.String())
		}
	}
}
