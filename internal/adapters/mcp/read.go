package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scrivo/internal/application"
	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// RegisterReadTools adds all read-only post tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.ContentRepository) {
	s.AddTool(listPostsTool(), listPostsHandler(repo))
	s.AddTool(readPostTool(), readPostHandler(repo))
}

// --- list_posts ---

func listPostsTool() mcp.Tool {
	return mcp.NewTool("list_posts",
		mcp.WithDescription("List every post in the blog repository with its path, slug, and current version token."),
	)
}

func listPostsHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := application.NewListPostsCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(res.Posts) == 0 {
			return mcp.NewToolResultText("No posts."), nil
		}

		var sb strings.Builder
		for _, ref := range res.Posts {
			fmt.Fprintf(&sb, "%s  %s  %s\n", domain.Slug(ref.Name), ref.Path, ref.SHA)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_post ---

func readPostTool() mcp.Tool {
	return mcp.NewTool("read_post",
		mcp.WithDescription("Read a post's raw text (front matter and body) by repository path."),
		mcp.WithString("path",
			mcp.Description("Repository path of the post (e.g. source/_posts/hello-world.md)"),
			mcp.Required(),
		),
	)
}

func readPostHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		file, err := repo.Read(ctx, path)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(file.Content), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
