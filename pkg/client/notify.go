package client

// Kind classifies a Notification.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// Notification is what a presentation layer shows after a mutation, e.g. a
// banner or toast.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
}

// Notifier receives a Notification after every mutation.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

func failureNotification(err error) Notification {
	return Notification{Kind: KindError, Title: "Error", Description: UserMessage(err)}
}
