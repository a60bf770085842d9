package ports

// Navigator moves the user between screens. Navigate returns the location
// actually reached, which differs from path when a guard redirected.
type Navigator interface {
	Navigate(path string) string
	Location() string
}

// Notifier surfaces toast-style messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
