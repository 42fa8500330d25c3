package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"netviz/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() graph.Snapshot {
	return graph.NewSnapshot(
		[]graph.Element{
			graph.NewElement("ada", graph.Attributes{graph.AttrGroup: "person"}),
			graph.NewElement("london", graph.Attributes{graph.AttrGroup: "city"}),
			graph.NewElement("charles", graph.Attributes{graph.AttrGroup: "person"}),
		},
		[]graph.Element{
			graph.NewEdge("a", "ada", "london", nil),
			graph.NewEdge("b", "charles", "london", nil),
			graph.NewEdge("dangling", "ada", "paris", nil),
		},
	)
}

func TestSeries_GroupsNodes(t *testing.T) {
	nodes, links, categories := series(sample())

	require.Len(t, nodes, 3)
	require.Len(t, categories, 2)
	assert.Equal(t, "person", categories[0].Name)
	assert.Equal(t, "city", categories[1].Name)
	assert.Equal(t, 0, nodes[0].Category)
	assert.Equal(t, 1, nodes[1].Category)
	assert.Equal(t, 0, nodes[2].Category)
	assert.Len(t, links, 2)
}

func TestRender_WritesPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), DefaultOptions()))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "ada")
	assert.Contains(t, html, "london")
	assert.NotContains(t, html, "paris")
}

func TestRender_ToFile(t *testing.T) {
	path, err := RenderToFile(filepath.Join(t.TempDir(), "graph"), sample(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, ".html", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "charles")
}
