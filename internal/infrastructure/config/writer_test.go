package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTOML_SortedSectionsAndDurationStrings(t *testing.T) {
	data, err := EncodeTOML(DefaultConfig())
	require.NoError(t, err)
	out := string(data)

	order := []string{"[engine]", "[journal]", "[logging]", "[supervisor]", "[timing]", "[view]"}
	last := -1
	for _, header := range order {
		idx := strings.Index(out, header)
		require.NotEqual(t, -1, idx, header)
		assert.Greater(t, idx, last, header)
		last = idx
	}
	assert.Contains(t, out, `poll_interval = '200ms'`)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestWriteConfigOrdered_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), configName)
	want := DefaultConfig()
	want.Engine.Kind = EngineHeadless
	want.Supervisor.MaxRecreates = 7
	require.NoError(t, WriteConfigOrdered(want, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Config
	require.NoError(t, toml.Unmarshal(raw, &got))
	assert.Equal(t, *want, got)
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "x.toml")))
}

func TestSortTOMLSections(t *testing.T) {
	in := "top = 1\n\n[b]\nx = 1\n\n[a]\ny = 2\n"
	assert.Equal(t, "top = 1\n\n[a]\ny = 2\n\n[b]\nx = 1\n", sortTOMLSections(in))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "nativeview configuration", doc["title"])
	assert.Contains(t, string(data), "poll_interval")
	assert.Contains(t, string(data), "webkitgtk")
}
