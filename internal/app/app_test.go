package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadim/linkedin-mcp/internal/config"
)

func testConfig(t *testing.T, transport string) config.Config {
	t.Helper()
	return config.Config{
		Server: config.Server{
			Host:         "127.0.0.1",
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
		},
		Storage: config.Storage{
			Driver:  config.DriverJSON,
			DataDir: t.TempDir(),
		},
		Log: config.Log{Level: "error", Format: "json"},
		MCP: config.MCP{Transport: transport, Path: "/mcp"},
	}
}

func newTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()

	application, err := NewApp(context.Background(), testConfig(t, config.TransportHTTP), "test")
	require.NoError(t, err)
	t.Cleanup(application.Shutdown)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	return application, srv
}

func TestNewApp_StdioHasNoRouter(t *testing.T) {
	application, err := NewApp(context.Background(), testConfig(t, config.TransportStdio), "test")
	require.NoError(t, err)
	defer application.Shutdown()

	assert.Nil(t, application.Handler())
	assert.Nil(t, application.scheduler)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	cfg := testConfig(t, config.TransportHTTP)
	cfg.Storage.Driver = "mongo"

	_, err := NewApp(context.Background(), cfg, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestNewApp_Scheduler(t *testing.T) {
	cfg := testConfig(t, config.TransportHTTP)
	cfg.Scheduler = config.Scheduler{Enabled: true, Spec: "@every 1h", Timezone: "UTC"}

	application, err := NewApp(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer application.Shutdown()

	assert.NotNil(t, application.scheduler)
}

func TestApp_HealthAndReadiness(t *testing.T) {
	_, srv := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/docs/openapi.json"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestApp_RESTAndMCPShareStore(t *testing.T) {
	_, srv := newTestApp(t)

	body, _ := json.Marshal(map[string]string{"topic": "remote work"})
	resp, err := http.Post(srv.URL+"/api/v1/posts", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		PostID string `json:"post_id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.PostID)
	assert.Equal(t, "draft", created.Status)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{Endpoint: srv.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_post",
		Arguments: map[string]any{"post_id": created.PostID},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var text string
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			text = tc.Text
		}
	}
	assert.True(t, strings.Contains(text, "remote work"), text)
}

func TestApp_UnmatchedRoute(t *testing.T) {
	_, srv := newTestApp(t)

	resp, err := http.Get(srv.URL + "/api/v1/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMigrate(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		require.NoError(t, Migrate(context.Background(), testConfig(t, config.TransportStdio)))
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(t, config.TransportStdio)
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.SQLitePath = filepath.Join(cfg.Storage.DataDir, "db", "posts.db")

		require.NoError(t, Migrate(context.Background(), cfg))
		assert.FileExists(t, cfg.Storage.SQLitePath)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(config.Log{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")

	_, err = NewLogger(config.Log{Level: "loud"}, &buf)
	assert.Error(t, err)
}
