package ports

import "os/exec"

// BodyEditor defines the interface for editing post text in an
// external editor
type BodyEditor interface {
	// Scratch writes content to a temporary Markdown file and
	// returns its path, for handing to the editor command
	Scratch(content string) (string, error)

	// Command returns an exec.Cmd for opening a file in the editor.
	// It uses $EDITOR, falling back to common editors. This is
	// useful for integrating with bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
