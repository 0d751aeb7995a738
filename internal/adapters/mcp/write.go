package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scrivo/internal/application"
	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// RegisterWriteTools adds the mutating post tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.ContentRepository, contentDir string) {
	s.AddTool(createPostTool(), createPostHandler(repo, contentDir))
	s.AddTool(updatePostTool(), updatePostHandler(repo))
	s.AddTool(deletePostTool(), deletePostHandler(repo))
	s.AddTool(renamePostTool(), renamePostHandler(repo))
}

// --- create_post ---

func createPostTool() mcp.Tool {
	return mcp.NewTool("create_post",
		mcp.WithDescription("Create a new post with template front matter. The filename is normalized (lowercase, hyphens, .md)."),
		mcp.WithString("filename",
			mcp.Description("Desired filename or title (e.g. \"My New Post\")"),
			mcp.Required(),
		),
		mcp.WithString("body",
			mcp.Description("Initial Markdown body"),
		),
	)
}

func createPostHandler(repo ports.ContentRepository, contentDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filename := req.GetString("filename", "")
		body := req.GetString("body", "")

		res, err := application.NewCreatePostCommand(repo, contentDir, filename, body).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (version %s)", res.Message, res.SHA)), nil
	}
}

// --- update_post ---

func updatePostTool() mcp.Tool {
	return mcp.NewTool("update_post",
		mcp.WithDescription("Replace a post's full text. Pass the version token from a prior read to detect concurrent edits; omit it to update the latest revision."),
		mcp.WithString("path", mcp.Description("Repository path of the post"), mcp.Required()),
		mcp.WithString("content", mcp.Description("Full replacement text including front matter"), mcp.Required()),
		mcp.WithString("sha", mcp.Description("Version token the update is based on (optional)")),
	)
}

func updatePostHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		content := req.GetString("content", "")
		sha := req.GetString("sha", "")
		if path == "" || content == "" {
			return toolError(fmt.Errorf("path and content are required"))
		}

		if sha == "" {
			file, err := repo.Read(ctx, path)
			if err != nil {
				return toolError(err)
			}
			sha = file.SHA
		}

		meta, body := domain.ParseDocument(content)
		res, err := application.NewSavePostCommand(repo, path, meta, body, sha, false).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (version %s)", res.Message, res.SHA)), nil
	}
}

// --- delete_post ---

func deletePostTool() mcp.Tool {
	return mcp.NewTool("delete_post",
		mcp.WithDescription("Delete a post from the repository."),
		mcp.WithString("path", mcp.Description("Repository path of the post"), mcp.Required()),
		mcp.WithString("sha", mcp.Description("Version token to delete against (optional)")),
	)
}

func deletePostHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		sha := req.GetString("sha", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		if sha == "" {
			file, err := repo.Read(ctx, path)
			if err != nil {
				return toolError(err)
			}
			sha = file.SHA
		}

		res, err := application.NewDeletePostCommand(repo, path, sha).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- rename_post ---

func renamePostTool() mcp.Tool {
	return mcp.NewTool("rename_post",
		mcp.WithDescription("Rename a post. The new path is created before the old one is removed."),
		mcp.WithString("path", mcp.Description("Current repository path of the post"), mcp.Required()),
		mcp.WithString("new_filename", mcp.Description("New filename (normalized automatically)"), mcp.Required()),
	)
}

func renamePostHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		newFilename := req.GetString("new_filename", "")
		if path == "" || newFilename == "" {
			return toolError(fmt.Errorf("path and new_filename are required"))
		}

		file, err := repo.Read(ctx, path)
		if err != nil {
			return toolError(err)
		}

		res, err := application.NewRenamePostCommand(repo, path, newFilename, file.SHA, file.Content).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}
