package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/docfill/mcp-docfill/internal/config"
	"github.com/docfill/mcp-docfill/internal/descriptions"
	"github.com/docfill/mcp-docfill/internal/docfill"
	"github.com/docfill/mcp-docfill/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	docService *docfill.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, docService *docfill.Service) (*Server, error) {
	if docService == nil {
		return nil, fmt.Errorf("docService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		docService: docService,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	loadTemplateTool := mcp.NewTool(
		"doc_load_template",
		mcp.WithDescription(descriptions.GetToolDescription("doc_load_template")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the template file, absolute or relative to the template directory"),
		),
	)
	s.mcpServer.AddTool(loadTemplateTool, s.handleLoadTemplate)

	answerTool := mcp.NewTool(
		"doc_answer",
		mcp.WithDescription(descriptions.GetToolDescription("doc_answer")),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("The reply to the current prompt: a field value, 'yes', or 'change [field name]'"),
		),
	)
	s.mcpServer.AddTool(answerTool, s.handleAnswer)

	editFieldTool := mcp.NewTool(
		"doc_edit_field",
		mcp.WithDescription(descriptions.GetToolDescription("doc_edit_field")),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Name of the field to re-collect (case-insensitive, partial names accepted)"),
		),
	)
	s.mcpServer.AddTool(editFieldTool, s.handleEditField)

	setFieldTool := mcp.NewTool(
		"doc_set_field",
		mcp.WithDescription(descriptions.GetToolDescription("doc_set_field")),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Name of the field to set (case-insensitive, partial names accepted)"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("The value to store for the field"),
		),
	)
	s.mcpServer.AddTool(setFieldTool, s.handleSetField)

	previewTool := mcp.NewTool(
		"doc_preview",
		mcp.WithDescription(descriptions.GetToolDescription("doc_preview")),
	)
	s.mcpServer.AddTool(previewTool, s.handlePreview)

	statusTool := mcp.NewTool(
		"doc_status",
		mcp.WithDescription(descriptions.GetToolDescription("doc_status")),
	)
	s.mcpServer.AddTool(statusTool, s.handleStatus)

	downloadTool := mcp.NewTool(
		"doc_download",
		mcp.WithDescription(descriptions.GetToolDescription("doc_download")),
	)
	s.mcpServer.AddTool(downloadTool, s.handleDownload)

	resetTool := mcp.NewTool(
		"doc_reset",
		mcp.WithDescription(descriptions.GetToolDescription("doc_reset")),
	)
	s.mcpServer.AddTool(resetTool, s.handleReset)

	serverInfoTool := mcp.NewTool(
		"doc_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("doc_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleLoadTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.LoadTemplate(docfill.LoadTemplateRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Loaded template: %s\n", result.FileName)
	if result.Pages > 0 {
		responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
	}
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	responseText += fmt.Sprintf("Placeholders detected: %d\n", result.PlaceholderCount)
	responseText += "\nFields:\n"
	for _, p := range result.Placeholders {
		responseText += fmt.Sprintf("%d. %s (%s)\n", p.ID, p.Text, p.Kind)
	}
	responseText += "\n" + formatMessages(result.Messages)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.Answer(docfill.AnswerRequest{Input: input})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := formatMessages(result.Messages)
	responseText += fmt.Sprintf("\nProgress: %d/%d fields filled (state: %s)\n",
		result.Filled, result.Total, result.State)
	if result.Complete {
		responseText += "The document is complete. Use doc_preview to review it or doc_download to save it.\n"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleEditField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.EditField(docfill.EditFieldRequest{Field: field})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := formatMessages(result.Messages)
	responseText += fmt.Sprintf("\nState: %s\n", result.State)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSetField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.docService.SetField(docfill.SetFieldRequest{Field: field, Value: value})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Set %q to %q\n", result.Placeholder.Text, result.Placeholder.Value)
	responseText += fmt.Sprintf("Progress: %d/%d fields filled\n", result.Filled, result.Total)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.docService.Preview()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatPreviewResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.docService.Status()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatStatusResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDownload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.docService.Download()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Completed document written: %s\n", result.Path)
	responseText += fmt.Sprintf("File name: %s\n", result.FileName)
	responseText += fmt.Sprintf("Media type: %s\n", result.MediaType)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.docService.Reset()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.HadSession {
		responseText = fmt.Sprintf("Discarded session for %s", result.FileName)
	} else {
		responseText = "No active session to discard"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.docService.ServerInfo(s.config.ServerName, s.config.Version, s.config.MaxFileSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatPreviewResult(result *docfill.PreviewResult) string {
	text := fmt.Sprintf("Preview of %s (%d/%d fields filled)\n", result.FileName, result.Filled, result.Total)
	if result.Complete {
		text += "Status: complete\n"
	} else {
		text += "Status: in progress\n"
	}

	if len(result.Misses) > 0 {
		text += "\nFields that could not be placed back into the text:\n"
		for _, miss := range result.Misses {
			text += fmt.Sprintf("• %s: %s\n", miss.Placeholder.Text, miss.Reason)
		}
	}

	text += "\nDocument:\n"
	text += result.Content
	return text
}

func (s *Server) formatStatusResult(result *docfill.StatusResult) string {
	if !result.Active {
		return "No active session. Use doc_load_template to start one."
	}

	text := fmt.Sprintf("Session for: %s\n", result.FileName)
	text += fmt.Sprintf("State: %s\n", result.State)
	text += fmt.Sprintf("Progress: %d/%d fields filled\n", result.Filled, result.Total)
	text += "\nFields:\n"
	for _, p := range result.Placeholders {
		if p.Filled {
			text += fmt.Sprintf("%d. [x] %s = %q\n", p.ID, p.Text, p.Value)
		} else {
			text += fmt.Sprintf("%d. [ ] %s\n", p.ID, p.Text)
		}
	}
	return text
}

func (s *Server) formatServerInfoResult(result *docfill.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Template Directory: %s\n", result.TemplateDirectory)
	text += fmt.Sprintf("📂 Output Directory: %s\n", result.OutputDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	if len(result.TemplateFiles) > 0 {
		text += fmt.Sprintf("📄 Template Files (%d found):\n", len(result.TemplateFiles))
		for i, file := range result.TemplateFiles {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.TemplateFiles)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📄 Template Files: none found in template directory\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  %s\n", firstLine(tool.Description))
	}

	text += "\n" + result.UsageGuidance
	return text
}

// formatMessages renders session messages as a transcript.
func formatMessages(msgs []session.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "[%s] %s\n", m.Role, m.Content)
	}
	return b.String()
}

// firstLine trims a multi-paragraph description to its summary line.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting document fill MCP server in stdio mode")
		log.Printf("Template directory: %s", s.config.TemplateDirectory)
		log.Printf("Output directory: %s", s.config.OutputDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
