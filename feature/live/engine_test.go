package live

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"netviz/core/dataset"
	"netviz/core/graph"
	"netviz/core/render"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func newAttached(t *testing.T) (*Engine, *dataset.Store, *httptest.Server) {
	t.Helper()
	store := dataset.NewStore()
	require.NoError(t, store.Load(graph.NewSnapshot(
		[]graph.Element{graph.NewElement("1", graph.Attributes{"label": "a"})}, nil)))

	e := New(zap.NewNop())
	require.NoError(t, e.Attach(store))
	require.NoError(t, e.SetOptions(render.DefaultOptions()))
	srv := httptest.NewServer(e.Handler())
	t.Cleanup(func() {
		srv.Close()
		e.Close()
	})
	return e, store, srv
}

func TestEngine_ResetFrame(t *testing.T) {
	_, _, srv := newAttached(t)
	conn := dial(t, srv)

	f := readFrame(t, conn)
	assert.Equal(t, FrameReset, f.Type)
	require.Len(t, f.Nodes, 1)
	assert.Equal(t, "1", f.Nodes[0].ID)
	require.NotNil(t, f.Options)
	assert.Equal(t, render.SolverBarnesHut, f.Options.Physics.Solver)
}

func TestEngine_StreamsStoreChangesAndOptions(t *testing.T) {
	e, store, srv := newAttached(t)
	conn := dial(t, srv)
	readFrame(t, conn)
	require.Eventually(t, func() bool { return e.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, store.Batch(func(tx *dataset.Tx) error {
		return tx.Add(graph.KindNode, graph.NewElement("2", nil))
	}))
	f := readFrame(t, conn)
	assert.Equal(t, FrameChange, f.Type)
	require.NotNil(t, f.Change)
	assert.Equal(t, dataset.OpAdd, f.Change.Op)
	assert.Equal(t, []string{"2"}, f.Change.IDs)

	opts := render.DefaultOptions()
	opts.Physics.Enabled = false
	require.NoError(t, e.SetOptions(opts))
	f = readFrame(t, conn)
	assert.Equal(t, FrameOptions, f.Type)
	assert.False(t, f.Options.Physics.Enabled)

	h := render.NewHandler("click", func(render.Event) {})
	require.NoError(t, e.On(render.EventClick, h))
	f = readFrame(t, conn)
	assert.Equal(t, FrameBindings, f.Type)
	assert.Equal(t, []render.EventName{render.EventClick}, f.Events)
}

func TestEngine_DispatchesBrowserEvents(t *testing.T) {
	e, _, srv := newAttached(t)
	got := make(chan render.Event, 1)
	require.NoError(t, e.On(render.EventSelectNode, render.NewHandler("select", func(ev render.Event) { got <- ev })))

	conn := dial(t, srv)
	readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"explode"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"selectNode","nodes":["1"]}`)))

	select {
	case ev := <-got:
		assert.Equal(t, render.EventSelectNode, ev.Name)
		assert.Equal(t, []string{"1"}, ev.Nodes)
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}
}

func TestEngine_OffAndClose(t *testing.T) {
	e, _, srv := newAttached(t)
	h := render.NewHandler("click", nil)
	other := render.NewHandler("other", nil)
	require.NoError(t, e.On(render.EventClick, h))
	require.NoError(t, e.Off(render.EventClick, other))
	assert.True(t, e.Dispatch(render.Event{Name: render.EventClick}))
	require.NoError(t, e.Off(render.EventClick, h))
	assert.False(t, e.Dispatch(render.Event{Name: render.EventClick}))

	conn := dial(t, srv)
	readFrame(t, conn)
	require.Eventually(t, func() bool { return e.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	assert.Equal(t, 0, e.Clients())
	assert.ErrorIs(t, e.SetOptions(render.DefaultOptions()), ErrClosed)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestEngine_ServesPage(t *testing.T) {
	_, _, srv := newAttached(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "vis-network")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEngine_UpdateCarriesFullItems(t *testing.T) {
	e, store, srv := newAttached(t)
	conn := dial(t, srv)
	readFrame(t, conn)
	require.Eventually(t, func() bool { return e.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, store.Batch(func(tx *dataset.Tx) error {
		return tx.Update(graph.KindNode, graph.NewElement("1", graph.Attributes{"title": "t"}))
	}))
	f := readFrame(t, conn)
	require.NotNil(t, f.Change)
	assert.Equal(t, dataset.OpUpdate, f.Change.Op)
	require.Len(t, f.Change.Items, 1)
	// The page clears keys absent from the item, so "label" must not be sent.
	assert.Equal(t, graph.Attributes{"title": "t"}, f.Change.Items[0].Attrs)
}

func TestEngine_PageDiffsBindingsAndClearsDroppedKeys(t *testing.T) {
	_, _, srv := newAttached(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	assert.Contains(t, page, "network.off(name, handler)")
	assert.Contains(t, page, "if (bound.has(name)) return;")
	assert.Contains(t, page, "item[key] = null")
}
