// Package mcp exposes a checked project over the Model Context Protocol,
// so agents can lint trees and inspect contracts as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/presentation/graph"
	"github.com/aretw0/graft/internal/validator"
)

// CheckResponse is the structured result of the check_tree tool.
type CheckResponse struct {
	Report  *validator.Report `json:"report" jsonschema_description:"The full findings report"`
	Outcome string            `json:"outcome" jsonschema_description:"pass or fail"`
}

// UnitsResponse is the structured result of the list_units tool.
type UnitsResponse struct {
	Units []graft.UnitSummary `json:"units" jsonschema_description:"Every unit that compiled cleanly"`
}

// ModulesResponse is the structured result of the list_modules tool.
type ModulesResponse struct {
	Modules []graft.ModuleSummary `json:"modules" jsonschema_description:"Every domain module, by state path"`
}

// Inspector defines the project surface the MCP server exposes.
type Inspector interface {
	Check(ctx context.Context) (*validator.Report, error)
	Units() []graft.UnitSummary
	Describe(name string) (graft.UnitDetail, error)
	Modules() ([]graft.ModuleSummary, error)
	Strict() bool
}

// Server wraps a project and exposes it as an MCP server.
type Server struct {
	inspector Inspector
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(inspector Inspector) *Server {
	s := &Server{
		inspector: inspector,
		mcpServer: server.NewMCPServer("graft-mcp", graft.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	checkTool := mcp.NewTool("check_tree",
		mcp.WithDescription("Run every contract check over the project tree and return the findings report."),
		mcp.WithBoolean("strict", mcp.Description("Escalate warnings (mirroring drift) to failures")),
		mcp.WithOutputSchema[CheckResponse](),
	)
	s.mcpServer.AddTool(checkTool, mcp.NewStructuredToolHandler(s.handleCheckTree))

	listUnitsTool := mcp.NewTool("list_units",
		mcp.WithDescription("List every unit that compiled cleanly, with its required and optional input names."),
		mcp.WithOutputSchema[UnitsResponse](),
	)
	s.mcpServer.AddTool(listUnitsTool, mcp.NewStructuredToolHandler(s.handleListUnits))

	describeTool := mcp.NewTool("describe_unit",
		mcp.WithDescription("Return a unit's full derived contract: inputs, defaults, shapes, children and connection slices."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Unit name")),
		mcp.WithOutputSchema[graft.UnitDetail](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribeUnit))

	listModulesTool := mcp.NewTool("list_modules",
		mcp.WithDescription("List every domain module with its state fields, actions, queries and children."),
		mcp.WithOutputSchema[ModulesResponse](),
	)
	s.mcpServer.AddTool(listModulesTool, mcp.NewStructuredToolHandler(s.handleListModules))

	describeModuleTool := mcp.NewTool("describe_module",
		mcp.WithDescription("Return one domain module by its state path (e.g. \"user/session\"; \"/\" for the root)."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Slash-separated state path")),
		mcp.WithOutputSchema[graft.ModuleSummary](),
	)
	s.mcpServer.AddTool(describeModuleTool, mcp.NewStructuredToolHandler(s.handleDescribeModule))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get Mermaid graphs of the unit composition tree and the domain-module tree."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		md, err := graph.Project(s.inspector)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
		}
		return mcp.NewToolResultText(md), nil
	})
}

func (s *Server) handleCheckTree(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (CheckResponse, error) {
	report, err := s.inspector.Check(ctx)
	if err != nil {
		return CheckResponse{}, fmt.Errorf("check failed: %w", err)
	}

	strict := s.inspector.Strict()
	if v, ok := args["strict"].(bool); ok {
		strict = v
	}

	outcome := "pass"
	if report.Err(strict) != nil {
		outcome = "fail"
	}
	return CheckResponse{Report: report, Outcome: outcome}, nil
}

func (s *Server) handleListUnits(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (UnitsResponse, error) {
	return UnitsResponse{Units: s.inspector.Units()}, nil
}

func (s *Server) handleDescribeUnit(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (graft.UnitDetail, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return graft.UnitDetail{}, fmt.Errorf("name is required")
	}

	detail, err := s.inspector.Describe(name)
	if err != nil {
		return graft.UnitDetail{}, fmt.Errorf("describe failed: %w", err)
	}
	return detail, nil
}

func (s *Server) handleListModules(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ModulesResponse, error) {
	modules, err := s.inspector.Modules()
	if err != nil {
		return ModulesResponse{}, fmt.Errorf("modules failed: %w", err)
	}
	return ModulesResponse{Modules: modules}, nil
}

func (s *Server) handleDescribeModule(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (graft.ModuleSummary, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return graft.ModuleSummary{}, fmt.Errorf("path is required")
	}

	modules, err := s.inspector.Modules()
	if err != nil {
		return graft.ModuleSummary{}, fmt.Errorf("modules failed: %w", err)
	}
	for _, m := range modules {
		if m.Path == path {
			return m, nil
		}
	}
	return graft.ModuleSummary{}, fmt.Errorf("no module at path %q", path)
}
