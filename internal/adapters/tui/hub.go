package tui

// note is a status line produced by a background operation
type note struct {
	text  string
	isErr bool
}

// promptRequest is a yes/no question waiting for the user's answer
type promptRequest struct {
	message string
	reply   chan bool
}

// StatusHub bridges the application layer's notification and
// confirmation callbacks into the bubbletea message loop. Notify never
// blocks; Confirm blocks the calling goroutine until the user answers
// in the UI, which is safe because application methods always run
// inside tea commands, never in Update.
type StatusHub struct {
	notes   chan note
	prompts chan promptRequest
}

// NewStatusHub creates a hub with room for a burst of notifications
func NewStatusHub() *StatusHub {
	return &StatusHub{
		notes:   make(chan note, 16),
		prompts: make(chan promptRequest),
	}
}

// Notify implements ports.Notifier
func (h *StatusHub) Notify(message string, isError bool) {
	select {
	case h.notes <- note{text: message, isErr: isError}:
	default:
		// Dropping a status line beats blocking the editor.
	}
}

// Confirm implements ports.Prompter
func (h *StatusHub) Confirm(message string) bool {
	reply := make(chan bool, 1)
	h.prompts <- promptRequest{message: message, reply: reply}
	return <-reply
}
