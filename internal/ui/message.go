package ui

import (
	"github.com/google/uuid"
)

// Sender identifies who wrote a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Avatar returns the badge label shown next to a message.
func (s Sender) Avatar() string {
	if s == SenderAI {
		return "AI"
	}
	return "U"
}

// Message is one transcript entry. Transcripts are never persisted.
type Message struct {
	ID     string
	Sender Sender
	Text   string
}

// NewMessage returns a message with a fresh id.
func NewMessage(text string, sender Sender) Message {
	return Message{ID: uuid.NewString(), Sender: sender, Text: text}
}

// CopyMessageMsg is emitted when the copy control of an AI message is clicked.
type CopyMessageMsg struct {
	ID string
}
