package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	einoagent "github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/flow/agent/multiagent/host"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	"medextract/internal/service/medical"
)

// ErrNoResponse reports that the supervisor produced no message for a turn.
var ErrNoResponse = errors.New("no response received from medical system")

// ChatResult is what one routed conversation turn yields.
type ChatResult struct {
	Response     string
	AgentUsed    string
	MessageCount int
}

// Router dispatches each conversation turn to either the medical
// specialist or the off-topic handler via a host multi-agent supervisor,
// and owns the per-thread conversation memory. The routing decision itself
// is made by the supervising model, not by code here.
type Router struct {
	supervisor *host.MultiAgent
	threads    *threadStore
}

// NewRouter wires the medical specialist (a react agent over the
// extraction, diagnosis and validation tools) and the off-topic handler
// under one supervisor.
func NewRouter(ctx context.Context, chatModel model.ToolCallingChatModel, svc *medical.Service) (*Router, error) {
	medicalAgent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: medicalTools(svc),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init medical agent: %w", err)
	}

	supervisor, err := host.NewMultiAgent(ctx, &host.MultiAgentConfig{
		Host: host.Host{
			ToolCallingModel: chatModel,
			SystemPrompt:     supervisorPrompt,
		},
		Specialists: []*host.Specialist{
			{
				AgentMeta: host.AgentMeta{
					Name:        medicalAgentName,
					IntendedUse: "medical text extraction, diagnosis generation, treatment plans and any other medical-related queries",
				},
				Invokable: medicalInvoke(medicalAgent),
			},
			{
				AgentMeta: host.AgentMeta{
					Name:        offtopicAgentName,
					IntendedUse: "non-medical questions and general conversation",
				},
				Invokable: offtopicInvoke,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init supervisor: %w", err)
	}

	return &Router{
		supervisor: supervisor,
		threads:    newThreadStore(),
	}, nil
}

// Chat appends the user message to the thread, runs one supervised turn
// and appends the result. The returned message count only grows for a
// given thread id.
func (r *Router) Chat(ctx context.Context, threadID, message string) (*ChatResult, error) {
	history := r.threads.Append(threadID, schema.UserMessage(message))

	out, err := r.supervisor.Generate(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("supervisor turn: %w", err)
	}
	if out == nil {
		return nil, ErrNoResponse
	}
	messages := r.threads.Append(threadID, out)

	return &ChatResult{
		Response:     out.Content,
		AgentUsed:    lastNamedAgent(messages),
		MessageCount: len(messages),
	}, nil
}

func medicalInvoke(agent *react.Agent) compose.Invoke[[]*schema.Message, *schema.Message, einoagent.AgentOption] {
	return func(ctx context.Context, input []*schema.Message, opts ...einoagent.AgentOption) (*schema.Message, error) {
		messages := append([]*schema.Message{schema.SystemMessage(medicalAgentPrompt)}, input...)
		out, err := agent.Generate(ctx, messages)
		if err != nil {
			return nil, err
		}
		out.Name = medicalAgentName
		return out, nil
	}
}

// offtopicInvoke is deterministic: non-medical turns always get the same
// redirect template around the user's query.
func offtopicInvoke(ctx context.Context, input []*schema.Message, opts ...einoagent.AgentOption) (*schema.Message, error) {
	query := lastUserContent(input)
	msg := schema.AssistantMessage(fmt.Sprintf(offtopicTemplateFmt, query), nil)
	msg.Name = offtopicAgentName
	return msg, nil
}

// lastNamedAgent scans the thread from the end for the most recent message
// carrying an agent name.
func lastNamedAgent(messages []*schema.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i] != nil && messages[i].Name != "" {
			return messages[i].Name
		}
	}
	return ""
}

func lastUserContent(messages []*schema.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i] != nil && messages[i].Role == schema.User {
			return messages[i].Content
		}
	}
	return ""
}
