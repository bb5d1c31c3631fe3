package cmd

// Exit codes for the longboard CLI
const (
	// ExitSuccess indicates the request completed
	ExitSuccess = 0

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/transport error
	ExitNetworkError = 4

	// ExitIOError indicates a local read/write error
	ExitIOError = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
