// Package mcp exposes estimation and the project library as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexanderramin/effortplan/internal/calendar"
	"github.com/alexanderramin/effortplan/internal/contract"
	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/importer"
	"github.com/alexanderramin/effortplan/internal/service"
)

const serverInstructions = `effortplan computes effort totals, buffers and business-day timelines
for software projects. Use estimate_project to evaluate a project file you
hold, list_projects to see the published library and lookup_project to
evaluate a published project by code.`

// Config contains server configuration.
type Config struct {
	Library  service.LibraryService
	Defaults domain.Settings
	Clock    func() time.Time
	Logger   *slog.Logger
	Version  string
}

// NewServer creates an MCP server with all tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "effortplan",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	t := &tools{cfg: cfg}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "estimate_project",
		Description: "Compute totals, timeline and summary for a project file given as JSON or YAML text",
	}, t.estimateProject)
	if cfg.Library != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "list_projects",
			Description: "List the projects published to the library",
		}, t.listProjects)
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "lookup_project",
			Description: "Compute totals, timeline and summary for a published project by code",
		}, t.lookupProject)
	}
	return server
}

// Serve runs the server over stdio until the client disconnects or ctx ends.
func Serve(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

type tools struct {
	cfg Config
}

type EstimateInput struct {
	Project string `json:"project" jsonschema:"the project file contents"`
	Format  string `json:"format,omitempty" jsonschema:"json (default) or yaml"`
}

type LookupInput struct {
	Code string `json:"code" jsonschema:"the published project code"`
}

type ListInput struct{}

type ListOutput struct {
	Projects []contract.ProjectListEntry `json:"projects"`
}

func (t *tools) estimateProject(_ context.Context, _ *sdkmcp.CallToolRequest, in EstimateInput) (*sdkmcp.CallToolResult, contract.ProjectView, error) {
	format := importer.FormatJSON
	switch in.Format {
	case "", string(importer.FormatJSON):
	case string(importer.FormatYAML), "yml":
		format = importer.FormatYAML
	default:
		return nil, contract.ProjectView{}, fmt.Errorf("unknown format %q", in.Format)
	}

	doc, err := importer.Parse([]byte(in.Project), format, "project")
	if err != nil {
		return nil, contract.ProjectView{}, err
	}
	view, err := service.BuildView(doc, t.cfg.Defaults, calendar.Today(t.cfg.Clock()))
	if err != nil {
		return nil, contract.ProjectView{}, err
	}
	return nil, contract.FromView("", view), nil
}

func (t *tools) lookupProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in LookupInput) (*sdkmcp.CallToolResult, contract.ProjectView, error) {
	view, err := t.cfg.Library.LookupView(ctx, in.Code)
	if err != nil {
		return nil, contract.ProjectView{}, err
	}
	return nil, contract.FromView(in.Code, view), nil
}

func (t *tools) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListInput) (*sdkmcp.CallToolResult, ListOutput, error) {
	entries, err := t.cfg.Library.List(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, ListOutput{Projects: contract.FromEntries(entries)}, nil
}
