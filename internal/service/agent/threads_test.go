package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestThreadStoreAppendGrows(t *testing.T) {
	store := newThreadStore()

	history := store.Append("thread-1", schema.UserMessage("hello"))
	if len(history) != 1 {
		t.Fatalf("expected 1 message, got %d", len(history))
	}
	history = store.Append("thread-1", schema.AssistantMessage("hi", nil))
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if store.Len("thread-1") != 2 {
		t.Fatalf("unexpected thread length %d", store.Len("thread-1"))
	}

	// Other threads are independent.
	if store.Len("thread-2") != 0 {
		t.Fatalf("expected empty unrelated thread")
	}
}

func TestThreadStoreReturnsCopies(t *testing.T) {
	store := newThreadStore()
	store.Append("thread-1", schema.UserMessage("original"))

	history := store.Messages("thread-1")
	history[0].Content = "mutated"

	fresh := store.Messages("thread-1")
	if fresh[0].Content != "original" {
		t.Fatalf("store content mutated through a returned copy")
	}
}

func TestLastNamedAgent(t *testing.T) {
	user := schema.UserMessage("hello")
	medical := schema.AssistantMessage("diagnosis...", nil)
	medical.Name = medicalAgentName
	offtopic := schema.AssistantMessage("redirect", nil)
	offtopic.Name = offtopicAgentName

	messages := []*schema.Message{user, medical, schema.UserMessage("weather?"), offtopic}
	if got := lastNamedAgent(messages); got != offtopicAgentName {
		t.Fatalf("expected most recent named agent, got %q", got)
	}
	if got := lastNamedAgent([]*schema.Message{user}); got != "" {
		t.Fatalf("expected empty agent for unnamed history, got %q", got)
	}
}

func TestOfftopicInvokeIsCannedRedirect(t *testing.T) {
	input := []*schema.Message{
		schema.UserMessage("fever and cough"),
		schema.AssistantMessage("noted", nil),
		schema.UserMessage("What's the weather like today?"),
	}
	out, err := offtopicInvoke(context.Background(), input)
	if err != nil {
		t.Fatalf("offtopic invoke: %v", err)
	}
	if out.Name != offtopicAgentName {
		t.Fatalf("expected named off-topic message, got %q", out.Name)
	}
	if !strings.Contains(out.Content, "What's the weather like today?") {
		t.Fatalf("redirect must quote the user query: %s", out.Content)
	}
	if !strings.Contains(out.Content, "medical information extraction") {
		t.Fatalf("unexpected redirect text: %s", out.Content)
	}
}
