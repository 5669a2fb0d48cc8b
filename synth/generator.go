package synth

import (
	"context"

	"github.com/kbukum/flowsynth/llm"
	"github.com/kbukum/flowsynth/provider"
)

// generation is one prompt with its output budget.
type generation struct {
	prompt Prompt
	budget int
}

// LLMGenerator generates workflow text with a chat-completion provider.
type LLMGenerator struct {
	p provider.RequestResponse[generation, string]
}

// NewLLMGenerator wraps p, usually an llm.Adapter behind provider
// middleware.
func NewLLMGenerator(p provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]) *LLMGenerator {
	return &LLMGenerator{p: provider.Adapt(p, p.Name(), toCompletion, fromCompletion)}
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt Prompt, budget int) (string, error) {
	return g.p.Execute(ctx, generation{prompt: prompt, budget: budget})
}

func (g *LLMGenerator) Name() string { return g.p.Name() }

func (g *LLMGenerator) IsAvailable(ctx context.Context) bool { return g.p.IsAvailable(ctx) }

func toCompletion(_ context.Context, in generation) (llm.CompletionRequest, error) {
	return llm.CompletionRequest{
		SystemPrompt: in.prompt.System,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: in.prompt.User}},
		MaxTokens:    in.budget,
	}, nil
}

func fromCompletion(resp llm.CompletionResponse) (string, error) {
	return resp.Content, nil
}
