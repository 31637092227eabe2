package agent

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

// threadStore holds the per-thread conversation history. Threads are
// append-only within a process and live only in memory; a restart loses
// them. The thread id is the session id the facade hands out.
type threadStore struct {
	mu      sync.RWMutex
	threads map[string][]*schema.Message
}

func newThreadStore() *threadStore {
	return &threadStore{threads: make(map[string][]*schema.Message)}
}

// Append adds msg to the thread and returns a copy of the full history
// including it.
func (t *threadStore) Append(threadID string, msg *schema.Message) []*schema.Message {
	if msg == nil {
		return t.Messages(threadID)
	}
	msgCopy := *msg
	t.mu.Lock()
	t.threads[threadID] = append(t.threads[threadID], &msgCopy)
	history := cloneMessages(t.threads[threadID])
	t.mu.Unlock()
	return history
}

// Messages returns a copy of the thread history.
func (t *threadStore) Messages(threadID string) []*schema.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneMessages(t.threads[threadID])
}

// Len reports the number of messages in the thread.
func (t *threadStore) Len(threadID string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.threads[threadID])
}

func cloneMessages(history []*schema.Message) []*schema.Message {
	cloned := make([]*schema.Message, 0, len(history))
	for _, msg := range history {
		if msg == nil {
			continue
		}
		msgCopy := *msg
		cloned = append(cloned, &msgCopy)
	}
	return cloned
}
