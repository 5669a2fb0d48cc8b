// Package httpclient is the outbound HTTP client used to reach text
// generation providers.
//
// It owns URL resolution, default headers, authentication and status code
// classification. Classified errors tell callers whether an upstream
// failure is worth counting against a circuit breaker.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.anthropic.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.APIKeyAuthHeader(key, "x-api-key"),
//	})
//
//	var out messagesResponse
//	resp, err := client.PostJSON(ctx, "/v1/messages", body, &out)
package httpclient
