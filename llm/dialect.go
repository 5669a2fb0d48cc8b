package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/flowsynth/httpclient"
)

// Dialect maps universal LLM types to and from one provider's HTTP format.
type Dialect interface {
	// Name returns the dialect identifier, e.g. "anthropic".
	Name() string

	// ChatPath returns the completion endpoint path.
	ChatPath() string

	// Auth returns the credential applied to every request.
	Auth(cfg Config) *httpclient.AuthConfig

	// Headers returns the remaining provider headers sent with every request.
	Headers(cfg Config) map[string]string

	// BuildRequest maps a CompletionRequest to the provider's JSON body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON body to a CompletionResponse.
	ParseResponse(body []byte) (*CompletionResponse, error)

	// ErrorMessage extracts a human-readable message from an error body.
	// Returns "" when the body carries none.
	ErrorMessage(body []byte) string
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the registry. Built-in dialects
// register themselves from init.
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q", name)
	}
	return d, nil
}

// Dialects returns the sorted names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
