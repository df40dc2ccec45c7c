package core

// KeyValueStore persists small pieces of client state across runs, the way the
// browser's localStorage does.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}

// Clipboard copies text for the user.
type Clipboard interface {
	WriteText(text string) error
}

// URLOpener opens a link outside the application (new-tab analog).
type URLOpener interface {
	Open(url string) error
}

// Confirmer asks the user to confirm a destructive action and blocks for the
// answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
