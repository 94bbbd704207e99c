package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"banctl/internal/admin"
	"banctl/internal/logging"
	"banctl/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverVersion = "1.0.0"

// Server represents an MCP server instance over the administrative service.
type Server struct {
	admin     *admin.Service
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(adminSvc *admin.Service, logger *logging.AppLogger) *Server {
	return &Server{
		admin:  adminSvc,
		logger: logger,
	}
}

// Start initializes the MCP server and serves it over stdio until the
// client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	s.mcpServer = server.NewMCPServer(
		"banctl",
		serverVersion,
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()

	s.logger.Info("MCP server created, starting stdio communication")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("unban_user",
		mcp.WithDescription("Clear the ban entry for the user with the given email address. "+
			"Only the entry keyed by the user identifier is removed; entries keyed by "+
			"network address are left in place and lapse on their own expiry."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address of the user to unban (case-sensitive exact match)."),
		),
	), s.handleUnban)

	s.mcpServer.AddTool(mcp.NewTool("ban_user",
		mcp.WithDescription("Write a ban entry keyed by the identifier of the user with the given email address."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address of the user to ban (case-sensitive exact match)."),
		),
		mcp.WithString("duration",
			mcp.Description("Ban duration in Go duration syntax (e.g. \"2h\", \"30m\"). Omit or \"0\" for a permanent ban."),
		),
		mcp.WithString("reason",
			mcp.Description("Free-form reason recorded on the ban entry."),
		),
	), s.handleBan)

	s.mcpServer.AddTool(mcp.NewTool("ban_status",
		mcp.WithDescription("Report whether the user with the given email address is currently banned. "+
			"Absence of a ban entry means not banned."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address of the user to check (case-sensitive exact match)."),
		),
	), s.handleStatus)

	s.mcpServer.AddTool(mcp.NewTool("list_bans",
		mcp.WithDescription("List live violation records in a namespace with pagination support."),
		mcp.WithString("namespace",
			mcp.Description("Violation namespace to list. Defaults to \"bans\"."),
		),
		mcp.WithNumber("page",
			mcp.Description("The page number to retrieve (starting from 1). Defaults to 1."),
		),
		mcp.WithNumber("page_size",
			mcp.Description("The number of records per page. Defaults to 100."),
		),
	), s.handleList)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		"config://violation_namespaces",
		"Violation namespaces",
		mcp.WithResourceDescription("The violation categories the store is namespaced by."),
		mcp.WithMIMEType("application/json"),
	), s.handleNamespacesResource)
}

func (s *Server) handleUnban(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.admin.Unban(ctx, email)
	if err != nil {
		s.logger.Warn("unban_user tool failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

func (s *Server) handleBan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var duration time.Duration
	if raw := req.GetString("duration", ""); raw != "" && raw != "0" {
		duration, err = time.ParseDuration(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid duration %q: %v", raw, err)), nil
		}
	}
	reason := req.GetString("reason", "")

	rec, err := s.admin.Ban(ctx, email, duration, reason)
	if err != nil {
		s.logger.Warn("ban_user tool failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(rec)
}

func (s *Server) handleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := s.admin.Status(ctx, email)
	if err != nil {
		s.logger.Warn("ban_status tool failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(status)
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ns := store.Namespace(req.GetString("namespace", store.NamespaceBans.String()))
	page := req.GetInt("page", 1)
	pageSize := req.GetInt("page_size", 100)

	result, err := s.admin.ListBans(ctx, ns, page, pageSize)
	if err != nil {
		s.logger.Warn("list_bans tool failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Pagination metadata travels with the page so the client can walk the
	// full set without a separate count call.
	payload := map[string]any{
		"records": result.Records,
		"pagination": map[string]any{
			"page":        result.Page,
			"page_size":   result.PageSize,
			"total_items": result.TotalItems,
			"total_pages": result.TotalPages,
		},
	}

	return jsonResult(payload)
}

func (s *Server) handleNamespacesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(store.Namespaces())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal namespaces: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
