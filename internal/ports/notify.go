package ports

// Notifier receives transient status messages for display to the user
type Notifier interface {
	Notify(message string, isError bool)
}

// Prompter asks the user a blocking yes/no question. Implementations
// suspend the caller until the user answers; no other editor action
// runs during the prompt.
type Prompter interface {
	Confirm(message string) bool
}
