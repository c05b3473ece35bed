package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	authentity "github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
	settings "github.com/vadim/linkedin-mcp/internal/domain/settings/entity"
	"github.com/vadim/linkedin-mcp/internal/metrics"
)

// ServerName is the implementation name announced to MCP clients
const ServerName = "linkedin-mcp"

// PostUseCases defines the post operations exposed as tools
type PostUseCases interface {
	DraftPost(ctx context.Context, in policy.DraftPostInput) (*policy.DraftPostOutput, error)
	OptimizePost(ctx context.Context, id string) (*policy.OptimizePostOutput, error)
	ScoreContent(in policy.ScoreContentInput) content.EngagementScore
	SuggestHashtags(ctx context.Context, in policy.SuggestHashtagsInput) (*policy.SuggestHashtagsOutput, error)
	OptimalTimes(timezone, industry string) *policy.OptimalTimesOutput
	SchedulePost(ctx context.Context, id string, at time.Time) (*policy.SchedulePostOutput, error)
	UnschedulePost(ctx context.Context, id string) (*entity.Post, error)
	PlanCalendar(in policy.PlanCalendarInput) *policy.PlanCalendarOutput
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListDrafts(ctx context.Context) (*policy.DraftList, error)
	ListScheduled(ctx context.Context) (*policy.ScheduledList, error)
	PublishPost(ctx context.Context, id string) (*policy.PublishPostOutput, error)
	Statistics(ctx context.Context) (*entity.Statistics, error)
	ExportPosts(ctx context.Context) (*policy.ExportOutput, error)
}

// SettingsUseCases defines the settings operations exposed as tools
type SettingsUseCases interface {
	Get(ctx context.Context) (*settings.Settings, error)
	SetDefaultTone(ctx context.Context, tone string) (*settings.Settings, error)
}

// AuthUseCases defines the OAuth operations exposed as tools
type AuthUseCases interface {
	StartAuth(ctx context.Context) (*authentity.AuthResult, error)
	CompleteAuth(ctx context.Context, timeout time.Duration) (*authentity.AuthResult, error)
	Status(ctx context.Context) (*authentity.Status, error)
	Logout(ctx context.Context) error
}

// Config holds the dependencies of the tool server
type Config struct {
	Posts    PostUseCases
	Settings SettingsUseCases
	Auth     AuthUseCases
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Version  string
}

// Server exposes the LinkedIn content tools over MCP
type Server struct {
	mcpServer *sdkmcp.Server
	posts     PostUseCases
	settings  SettingsUseCases
	auth      AuthUseCases
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewServer creates a new MCP server with all tools registered
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		mcpServer: sdkmcp.NewServer(&sdkmcp.Implementation{
			Name:    ServerName,
			Version: cfg.Version,
		}, nil),
		posts:    cfg.Posts,
		settings: cfg.Settings,
		auth:     cfg.Auth,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}

	s.registerPostTools()
	s.registerContentTools()
	s.registerSettingsTools()
	s.registerAuthTools()

	return s
}

// MCPServer returns the underlying SDK server
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}

// Run serves tools over stdin/stdout until ctx is cancelled or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// HTTPHandler returns a streamable HTTP handler serving the same tools
func (s *Server) HTTPHandler() http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return s.mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)
}

// noArgs is the input of tools without parameters
type noArgs struct{}

// addTool registers a tool whose handler returns a result value or an error.
// Errors become IsError results so the model can read and react to them.
func addTool[In any](s *Server, tool *sdkmcp.Tool, handle func(ctx context.Context, in In) (any, error)) {
	sdkmcp.AddTool(s.mcpServer, tool, func(ctx context.Context, req *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		start := time.Now()
		result, err := handle(ctx, in)
		s.metrics.ObserveTool(tool.Name, err, time.Since(start))

		if err != nil {
			s.logger.Warn("tool call failed", "tool", tool.Name, "error", err)
			return toolError(err.Error())
		}
		s.logger.Debug("tool call", "tool", tool.Name, "duration", time.Since(start))
		return toolSuccess(result)
	})
}

// toolError returns an error result for a tool call
func toolError(message string) (*sdkmcp.CallToolResult, any, error) {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: message},
		},
		IsError: true,
	}, nil, nil
}

// toolSuccess returns the result as indented JSON text plus structured content
func toolSuccess(result any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return toolError(fmt.Sprintf("failed to format result: %v", err))
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(data)},
		},
	}, result, nil
}
