package conversation

import (
	"sync"

	"wellness-assistant/internal/domain"
)

// Transcript is the append-only message log of one session.
type Transcript struct {
	mu       sync.RWMutex
	messages []domain.Message
	nextID   int
}

// NewTranscript returns a transcript pre-populated with existing messages.
// New ids continue after the highest seeded id.
func NewTranscript(seed ...domain.Message) *Transcript {
	t := &Transcript{nextID: 1}
	for _, m := range seed {
		t.messages = append(t.messages, cloneMessage(m))
		if m.ID >= t.nextID {
			t.nextID = m.ID + 1
		}
	}
	return t
}

// Append adds a message and returns it with its assigned id.
func (t *Transcript) Append(sender domain.Sender, text string, options []domain.Option) domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := cloneMessage(domain.Message{
		ID:      t.nextID,
		Text:    text,
		Sender:  sender,
		Options: options,
	})
	t.nextID++
	t.messages = append(t.messages, m)
	return cloneMessage(m)
}

// Messages returns a copy of the full log.
func (t *Transcript) Messages() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneMessages(t.messages)
}

// Since returns a copy of the messages appended after the first n.
func (t *Transcript) Since(n int) []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(t.messages) {
		return nil
	}
	return cloneMessages(t.messages[n:])
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

func cloneMessages(in []domain.Message) []domain.Message {
	out := make([]domain.Message, 0, len(in))
	for _, m := range in {
		out = append(out, cloneMessage(m))
	}
	return out
}

func cloneMessage(m domain.Message) domain.Message {
	if len(m.Options) > 0 {
		m.Options = append([]domain.Option(nil), m.Options...)
	} else {
		m.Options = nil
	}
	return m
}
