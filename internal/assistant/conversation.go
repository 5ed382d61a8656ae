package assistant

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// Conversation is the server-side session state: an opaque chat id and a
// rolling message log. It is appended to on every turn and only torn down
// with the session.
type Conversation struct {
	ChatID string

	mu       sync.Mutex
	messages []models.ChatMessage
}

// NewConversation creates an empty conversation with a fresh chat id.
func NewConversation() *Conversation {
	return &Conversation{ChatID: uuid.NewString()}
}

// Append adds one message to the log.
func (c *Conversation) Append(role models.Role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, models.ChatMessage{Role: role, Content: content})
}

// Messages returns a copy of the message log.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Store persists conversations at the end of a turn.
type Store interface {
	Save(ctx context.Context, conv *Conversation) error
}

// NoopStore discards conversations. History persistence is intentionally
// unimplemented; the session log lives only in memory.
type NoopStore struct{}

func (NoopStore) Save(ctx context.Context, conv *Conversation) error {
	return nil
}
