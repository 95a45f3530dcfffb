package geodata

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/geodata-dev/geojson-viewer/internal/fsutil"
	"github.com/geodata-dev/geojson-viewer/internal/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocalPath(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	require.NoError(t, fs.WriteFile("/data/regions.geojson", []byte(fixture), 0644))

	loader := NewLoader(fs, httputil.NewMockDoer())
	ds, err := loader.Load(context.Background(), "/data/regions.geojson", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "pop", "urban", "note"}, ds.Columns())
}

func TestLoadPathTrimsWhitespace(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	require.NoError(t, fs.WriteFile("/data/regions.geojson", []byte(fixture), 0644))

	loader := NewLoader(fs, nil)
	_, err := loader.Load(context.Background(), "  /data/regions.geojson\n", "")
	assert.NoError(t, err)
}

func TestLoadMissingPath(t *testing.T) {
	loader := NewLoader(fsutil.NewMemoryFileSystem(), nil)
	_, err := loader.Load(context.Background(), "/nowhere/missing.geojson", "")
	assert.Error(t, err)
}

func TestLoadExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	fs := fsutil.NewMemoryFileSystem()
	require.NoError(t, fs.WriteFile("/home/tester/regions.geojson", []byte(fixture), 0644))

	loader := NewLoader(fs, nil)
	_, err := loader.Load(context.Background(), "~/regions.geojson", "")
	assert.NoError(t, err)
}

func TestLoadURL(t *testing.T) {
	client := httputil.NewMockDoer().AddResponse(http.StatusOK, fixture)
	loader := NewLoader(fsutil.NewMemoryFileSystem(), client)

	ds, err := loader.Load(context.Background(), "https://example.com/regions.geojson", "")
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())

	require.Len(t, client.Requests, 1)
	assert.Equal(t, "https://example.com/regions.geojson", client.Requests[0].URL.String())
}

func TestLoadURLFailures(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		client := httputil.NewMockDoer().AddError(errors.New("connection refused"))
		loader := NewLoader(nil, client)
		_, err := loader.Load(context.Background(), "https://example.com/x.geojson", "")
		assert.Error(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		client := httputil.NewMockDoer().AddResponse(http.StatusNotFound, "gone")
		loader := NewLoader(nil, client)
		_, err := loader.Load(context.Background(), "https://example.com/x.geojson", "")
		assert.Error(t, err)
	})

	t.Run("body not geojson", func(t *testing.T) {
		client := httputil.NewMockDoer().AddResponse(http.StatusOK, "<html>not geojson</html>")
		loader := NewLoader(nil, client)
		_, err := loader.Load(context.Background(), "https://example.com/x.geojson", "")
		assert.Error(t, err)
	})
}

func TestLoadUpload(t *testing.T) {
	payload := "data:application/json;base64," +
		base64.StdEncoding.EncodeToString([]byte(fixture))

	loader := NewLoader(fsutil.NewMemoryFileSystem(), httputil.NewMockDoer())
	ds, err := loader.Load(context.Background(), "", payload)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())
}

func TestLoadNoInput(t *testing.T) {
	loader := NewLoader(nil, nil)
	_, err := loader.Load(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestDecodeUpload(t *testing.T) {
	t.Run("decodes after first separator", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte(`{"a":1,"b":2}`))
		data, err := DecodeUpload("data:application/json;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1,"b":2}`, string(data))
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := DecodeUpload("no-separator-here")
		assert.Error(t, err)
	})

	t.Run("bad base64", func(t *testing.T) {
		_, err := DecodeUpload("data:application/json;base64,!!!not-base64!!!")
		assert.Error(t, err)
	})

	t.Run("not utf-8", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x81})
		_, err := DecodeUpload("data:application/octet-stream;base64," + encoded)
		assert.Error(t, err)
	})
}
