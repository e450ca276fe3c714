// Package transport defines the messaging-transport contract consumed
// by the dialog core, plus the Telegram implementation of it. The core
// only ever sees Event values coming in and the Transport interface
// going out; everything Telegram-specific stays in this package.
package transport

import "context"

// EventKind is the type for the inbound event kind enum.
type EventKind string

// EventKind enum values.
const (
	EventText   EventKind = "text"
	EventButton EventKind = "button"
	EventVoice  EventKind = "voice"
)

// Voice is an inbound voice attachment reference. The audio itself is
// fetched separately via DownloadVoice.
type Voice struct {
	FileID   string
	Duration int // seconds
}

// Event is one inbound event from the transport, tagged with the sender.
type Event struct {
	ChatID int64
	Kind   EventKind

	// Text is set for EventText.
	Text string
	// Button is the callback payload for EventButton.
	Button string
	// Voice is set for EventVoice.
	Voice *Voice
}

// Button is a single inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Transport is the outbound side of the messaging transport.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]Button) error
	DownloadVoice(ctx context.Context, fileID string) ([]byte, error)
}

// EventHandler consumes inbound events. Implemented by the dialog router.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev Event)
}
