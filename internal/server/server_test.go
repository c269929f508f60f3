package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLiveReloadWrapperInjectsScript(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><div id=\"header\"></div></body></html>"))
	})

	rec := httptest.NewRecorder()
	liveReloadWrapper(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `new WebSocket("ws://"`)
	assert.True(t, strings.HasSuffix(body, "</script>\n</body></html>"))
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestLiveReloadWrapperPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("body{}</body>"))
	})

	rec := httptest.NewRecorder()
	liveReloadWrapper(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/style.css", nil))
	assert.Equal(t, "body{}</body>", rec.Body.String())

	rec = httptest.NewRecorder()
	liveReloadWrapper(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "WebSocket")
}

func TestHubBroadcast(t *testing.T) {
	hub := newHub(zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.broadcastMessage([]byte("reload"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, "reload", string(msg))

	conn.Close()
	assert.Eventually(t, func() bool { return hub.clientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestWatchPaths(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "content", "reference")
	require.NoError(t, os.MkdirAll(nested, 0755))
	cfgFile := filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("title: x\n"), 0644))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	err = watchPaths(watcher, []string{
		filepath.Join(root, "content"),
		cfgFile,
		filepath.Join(root, "missing"),
	}, zap.NewNop())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "content"),
		nested,
		root,
	}, watcher.WatchList())
}

func TestIsRebuildEvent(t *testing.T) {
	assert.True(t, isRebuildEvent(fsnotify.Event{Op: fsnotify.Write}))
	assert.True(t, isRebuildEvent(fsnotify.Event{Op: fsnotify.Rename}))
	assert.False(t, isRebuildEvent(fsnotify.Event{Op: fsnotify.Chmod}))
}
