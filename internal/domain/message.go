package domain

// MessageType distinguishes transcript entries.
type MessageType string

const (
	// MessageTypeUser marks a message typed by the user.
	MessageTypeUser MessageType = "user"
	// MessageTypeAssistant marks a message produced by the assistant.
	MessageTypeAssistant MessageType = "assistant"
)

// ChatMessage is a single entry in the chat transcript.
type ChatMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
