package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"netviz/core/graph"
	"netviz/core/reconcile"
	"netviz/core/render"
	"netviz/core/render/headless"
	"netviz/core/storage/mocks"
	"netviz/feature/source"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHost(t *testing.T, opts ...headless.Option) (*render.Host, *headless.Engine) {
	t.Helper()
	engine := headless.New(opts...)
	initial := graph.NewSnapshot(
		[]graph.Element{
			graph.NewElement("1", graph.Attributes{graph.AttrLabel: "a"}),
			graph.NewElement("2", graph.Attributes{graph.AttrLabel: "b"}),
		},
		[]graph.Element{graph.NewEdge("1->2", "1", "2", nil)},
	)
	host, err := render.New(engine, initial, render.Config{Options: render.DefaultOptions()}, render.Observers{}, zap.NewNop())
	require.NoError(t, err)
	return host, engine
}

func setupTestApp(t *testing.T, opts ...ServiceOption) (*fiber.App, *Service, *headless.Engine) {
	host, engine := newTestHost(t)
	svc := NewService(host, nil, zap.NewNop(), opts...)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc, engine
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandleSnapshot_Applies(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/network/snapshot",
		`{"nodes":[{"id":"1","label":"a"},{"id":"3","label":"c"}],"edges":[]}`)
	require.Equal(t, 200, status, string(body))

	var resp ApplyResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, reconcile.AppliedOps{NodesRemoved: 1, NodesAdded: 1, EdgesRemoved: 1}, resp.Applied)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, svc.Nodes(), 2)
	assert.Empty(t, svc.Edges())
}

func TestHandleSnapshot_RejectsDuplicates(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/network/snapshot",
		`{"nodes":[{"id":"9"},{"id":"9"}],"edges":[]}`)
	assert.Equal(t, 422, status)
	assert.Len(t, svc.Nodes(), 2)
}

func TestHandleSnapshot_BadBody(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/network/snapshot", `{"nodes":[{"label":"no id"}]}`)
	assert.Equal(t, 400, status)
}

func TestHandleSnapshot_RejectsNullBody(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	for _, body := range []string{`null`, `[]`} {
		status, _ := doJSON(t, app, "POST", "/network/snapshot", body)
		assert.Equal(t, 400, status, body)
	}
	assert.Len(t, svc.Nodes(), 2)
	assert.Len(t, svc.Edges(), 1)
}

func TestHandleLoad_UnknownSource(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/network/load", `{"source":"ftp"}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, string(body), "unknown source")
	assert.Len(t, svc.Nodes(), 2)
}

func TestHandleSnapshot_AsyncWithoutPump(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/network/snapshot?async=true", `{"nodes":[],"edges":[]}`)
	assert.Equal(t, 501, status)
}

func TestHandleSnapshot_Async(t *testing.T) {
	host, _ := newTestHost(t)
	applied := make(chan struct{}, 1)
	pump := render.NewPump(host, zap.NewNop(), render.WithResultHandler(func(graph.Snapshot, reconcile.AppliedOps, error) {
		applied <- struct{}{}
	}))
	defer pump.Close()
	app := fiber.New()
	NewHandler(NewService(host, pump, zap.NewNop())).RegisterRoutes(app)

	status, body := doJSON(t, app, "POST", "/network/snapshot?async=true", `{"nodes":[],"edges":[]}`)
	require.Equal(t, 202, status)

	var resp QueuedResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.True(t, resp.Queued)

	<-applied
	assert.Equal(t, 0, host.Nodes().Len())
}

func TestHandleNodes_ReturnsCollections(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, body := doJSON(t, app, "GET", "/network/nodes", "")
	require.Equal(t, 200, status)
	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(body, &nodes))
	assert.Len(t, nodes, 2)

	status, body = doJSON(t, app, "GET", "/network/edges", "")
	require.Equal(t, 200, status)
	var edges []map[string]any
	require.NoError(t, json.Unmarshal(body, &edges))
	require.Len(t, edges, 1)
	assert.Equal(t, "1", edges[0]["from"])
}

func TestHandlePutOptions_Applies(t *testing.T) {
	app, svc, engine := setupTestApp(t)

	status, body := doJSON(t, app, "PUT", "/network/options", `{"height":"900px"}`)
	require.Equal(t, 200, status, string(body))
	assert.Equal(t, "900px", svc.Options().Height)
	assert.Equal(t, "900px", engine.Options().Height)
	assert.Equal(t, render.DefaultOptions().Width, engine.Options().Width)
}

func TestHandlePutOptions_Rejected(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "PUT", "/network/options", `{"height":""}`)
	assert.Equal(t, 422, status)
	assert.Equal(t, render.DefaultOptions(), svc.Options())
}

func TestHandlePutEvents_Binds(t *testing.T) {
	app, svc, engine := setupTestApp(t)

	status, body := doJSON(t, app, "PUT", "/network/events", `{"events":["click","hoverNode"]}`)
	require.Equal(t, 200, status, string(body))
	assert.Equal(t, 2, engine.BoundCount())

	click := engine.Bound(render.EventClick)
	require.NotNil(t, click)
	click.Handle(render.Event{Name: render.EventClick, Nodes: []string{"1"}})

	status, body = doJSON(t, app, "GET", "/network/events", "")
	require.Equal(t, 200, status)
	var resp EventsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, []render.EventName{render.EventClick, render.EventHoverNode}, resp.Events)
	require.Len(t, resp.Recent, 1)
	assert.Equal(t, []string{"1"}, resp.Recent[0].Nodes)

	// Rebinding the same names keeps the handlers in place.
	engine.ResetCalls()
	require.NoError(t, svc.SetEvents([]string{"click", "hoverNode"}))
	assert.Empty(t, engine.Calls())
	assert.Same(t, click, engine.Bound(render.EventClick))
}

func TestHandlePutEvents_Unknown(t *testing.T) {
	app, _, engine := setupTestApp(t)

	status, _ := doJSON(t, app, "PUT", "/network/events", `{"events":["explode"]}`)
	assert.Equal(t, 422, status)
	assert.Zero(t, engine.BoundCount())
}

func TestHandleStats_Reports(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, body := doJSON(t, app, "GET", "/network/stats", "")
	require.Equal(t, 200, status)
	var stats render.Stats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 2, stats.Nodes)
	assert.Equal(t, 1, stats.Edges)
}

func TestHandleLoad_NotConfigured(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, _ := doJSON(t, app, "POST", "/network/load", `{"source":"storage","object":"a.json"}`)
	assert.Equal(t, 501, status)
	status, _ = doJSON(t, app, "POST", "/network/load", `{"source":"database","query":"q"}`)
	assert.Equal(t, 501, status)
	status, _ = doJSON(t, app, "GET", "/network/objects", "")
	assert.Equal(t, 501, status)
}

func TestHandleLoad_FromStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "graphs", "snapshots/a.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"nodes":[{"id":"7"}],"edges":[]}`)), nil)
	app, svc, _ := setupTestApp(t, WithStorage(source.NewStorage(client, "graphs", "snapshots/", zap.NewNop())))

	status, body := doJSON(t, app, "POST", "/network/load", `{"source":"storage","object":"snapshots/a.json"}`)
	require.Equal(t, 200, status, string(body))
	require.Len(t, svc.Nodes(), 1)
	assert.Equal(t, "7", svc.Nodes()[0].ID)
	client.AssertExpectations(t)
}

func TestHandleObjects_ListAndSave(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "graphs", mock.Anything).
		Return(mocks.Listing("snapshots/b.json", "snapshots/readme.txt"))
	client.On("PutObject", mock.Anything, "graphs", "snapshots/c.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	app, _, _ := setupTestApp(t, WithStorage(source.NewStorage(client, "graphs", "snapshots/", zap.NewNop())))

	status, body := doJSON(t, app, "GET", "/network/objects", "")
	require.Equal(t, 200, status)
	var keys []string
	require.NoError(t, json.Unmarshal(body, &keys))
	assert.Equal(t, []string{"snapshots/b.json"}, keys)

	status, _ = doJSON(t, app, "POST", "/network/save", `{"object":"snapshots/c.json"}`)
	assert.Equal(t, 200, status)
	status, _ = doJSON(t, app, "POST", "/network/save", `{}`)
	assert.Equal(t, 400, status)
	client.AssertExpectations(t)
}

func TestHandleExport_ServesHTML(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/network/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestHandler_AfterDispose(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	require.NoError(t, svc.host.OnDispose())

	status, _ := doJSON(t, app, "POST", "/network/snapshot", `{"nodes":[],"edges":[]}`)
	assert.Equal(t, 503, status)
}

func TestStatusFor_MapsErrors(t *testing.T) {
	assert.Equal(t, 422, statusFor(reconcile.ErrInvalidModel))
	assert.Equal(t, 422, statusFor(render.ErrConfigurationRejected))
	assert.Equal(t, 400, statusFor(fmt.Errorf("%w %q", ErrUnknownSource, "ftp")))
	assert.Equal(t, 404, statusFor(source.ErrUnknownQuery))
	assert.Equal(t, 501, statusFor(source.ErrNotConfigured))
	assert.Equal(t, 503, statusFor(render.ErrPumpClosed))
	assert.Equal(t, 500, statusFor(errors.New("boom")))
}

func TestFeatures_Load(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	f := NewFeature(svc)
	assert.Equal(t, "network", f.Name())
	assert.True(t, f.IsEnabled())

	m := NewMetricsFeature(true)
	require.NoError(t, m.Load(app))
	req := httptest.NewRequest("GET", "/metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.False(t, NewMetricsFeature(false).IsEnabled())
}
