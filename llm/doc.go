// Package llm is the text generation client behind the generation-assisted
// synthesizer.
//
// An [Adapter] pairs the shared [httpclient.Client] with a [Dialect] that
// maps the universal [CompletionRequest] and [CompletionResponse] onto one
// provider's wire format. The built-in "anthropic" dialect speaks the
// Messages API.
//
//	adapter, err := llm.New(llm.Config{
//	    APIKey: os.Getenv("ANTHROPIC_API_KEY"),
//	})
//
//	resp, err := adapter.Execute(ctx, llm.CompletionRequest{
//	    SystemPrompt: system,
//	    Messages:     []llm.Message{{Role: llm.RoleUser, Content: user}},
//	})
//
// The adapter implements provider.RequestResponse, so it composes with the
// provider middleware chain.
package llm
