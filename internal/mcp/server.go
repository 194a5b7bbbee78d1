// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/linerange"
	"github.com/helixml/delve/domain/repository"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "delve"

// FileReader reads line ranges out of repository files.
type FileReader interface {
	ReadRange(ctx context.Context, repo, revision, path, fragment string) (service.File, service.Excerpt, error)
	ListFiles(ctx context.Context, repo, revision string) (service.Tree, error)
}

// RepositoryLister lists registered repositories.
type RepositoryLister interface {
	Find(ctx context.Context, options ...repository.Option) ([]repository.Repository, error)
}

// Server wraps the MCP server with line addressing tools.
type Server struct {
	mcpServer    *server.MCPServer
	files        FileReader
	repositories RepositoryLister
	version      string
	logger       *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(files FileReader, repositories RepositoryLister, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		files:        files,
		repositories: repositories,
		version:      version,
		logger:       logger,
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(mcp.NewTool("parse_line_range",
		mcp.WithDescription("Parse a line fragment such as #L10-L20 into its start and end lines"),
		mcp.WithString("fragment",
			mcp.Required(),
			mcp.Description("The fragment identifier, e.g. #L42 or #L10-L20"),
		),
	), s.handleParseLineRange)

	mcpServer.AddTool(mcp.NewTool("read_file_range",
		mcp.WithDescription("Read the numbered lines of a repository file selected by a line fragment"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name, e.g. helixml/delve"),
		),
		mcp.WithString("rev",
			mcp.Description("Branch, tag or commit (default: the repository's default revision)"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path within the repository"),
		),
		mcp.WithString("fragment",
			mcp.Description("Line fragment, e.g. #L10-L20 (default: the whole file)"),
		),
	), s.handleReadFileRange)

	mcpServer.AddTool(mcp.NewTool("list_files",
		mcp.WithDescription("List every file path of a repository at a revision"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository name, e.g. helixml/delve"),
		),
		mcp.WithString("rev",
			mcp.Description("Branch, tag or commit (default: the repository's default revision)"),
		),
	), s.handleListFiles)

	mcpServer.AddTool(mcp.NewTool("list_repositories",
		mcp.WithDescription("List the repositories that can be read, favourites first"),
	), s.handleListRepositories)

	mcpServer.AddTool(mcp.NewTool("get_version",
		mcp.WithDescription("Get the server version"),
	), s.handleGetVersion)
}

type rangeResult struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Fragment string `json:"fragment"`
}

func (s *Server) handleParseLineRange(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fragment, err := request.RequireString("fragment")
	if err != nil {
		return mcp.NewToolResultError("fragment is required"), nil
	}

	r, ok := linerange.Parse(fragment)
	if !ok {
		return mcp.NewToolResultText("no selection"), nil
	}
	return jsonResult(rangeResult{Start: r.Start(), End: r.End(), Fragment: r.Fragment()})
}

type fileRangeResult struct {
	URI       string       `json:"uri"`
	Repo      string       `json:"repo"`
	Revision  string       `json:"rev"`
	Commit    string       `json:"commit"`
	Path      string       `json:"path"`
	Selection *rangeResult `json:"selection,omitempty"`
	Total     int          `json:"total"`
	Text      string       `json:"text"`
}

func (s *Server) handleReadFileRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := request.RequireString("repo")
	if err != nil {
		return mcp.NewToolResultError("repo is required"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}
	rev := request.GetString("rev", "")
	fragment := request.GetString("fragment", "")

	file, excerpt, err := s.files.ReadRange(ctx, repo, rev, path, fragment)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.ErrorContext(ctx, "read file range failed",
			slog.String("repo", repo),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	uri := NewFileURI(file.Repository().Name(), file.Commit(), file.Path())
	result := fileRangeResult{
		Repo:     file.Repository().Name(),
		Revision: file.Revision(),
		Commit:   file.Commit(),
		Path:     file.Path(),
		Total:    excerpt.Total,
		Text:     excerpt.String(),
	}
	if sel := excerpt.Selection; sel != nil {
		uri = uri.WithLineRange(*sel)
		result.Selection = &rangeResult{Start: sel.Start(), End: sel.End(), Fragment: sel.Fragment()}
	}
	result.URI = uri.String()

	return jsonResult(result)
}

type fileListResult struct {
	Repo     string   `json:"repo"`
	Revision string   `json:"rev"`
	Commit   string   `json:"commit"`
	Files    []string `json:"files"`
}

func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := request.RequireString("repo")
	if err != nil {
		return mcp.NewToolResultError("repo is required"), nil
	}

	tree, err := s.files.ListFiles(ctx, repo, request.GetString("rev", ""))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.logger.ErrorContext(ctx, "list files failed",
			slog.String("repo", repo),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list files: %v", err)), nil
	}

	return jsonResult(fileListResult{
		Repo:     tree.Repo.Name(),
		Revision: tree.Revision,
		Commit:   tree.Commit,
		Files:    tree.Files,
	})
}

type repositoryResult struct {
	Name            string `json:"name"`
	DefaultRevision string `json:"default_revision"`
	Favorite        bool   `json:"favorite"`
}

func (s *Server) handleListRepositories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repos, err := s.repositories.Find(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list repositories failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to list repositories: %v", err)), nil
	}

	results := make([]repositoryResult, 0, len(repos))
	for _, r := range repos {
		results = append(results, repositoryResult{
			Name:            r.Name(),
			DefaultRevision: r.DefaultRevision(),
			Favorite:        r.Favorite(),
		})
	}
	return jsonResult(results)
}

func (s *Server) handleGetVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
