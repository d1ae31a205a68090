// Package genai provides failure-tolerant access to an external
// generative-text backend: a circuit breaker, a bounded rate-limited request
// queue, and a retry orchestrator with error classification. All state is
// in-memory and process-wide; instances are explicitly constructed and
// injected so tests can create fresh ones per case.
package genai

import (
	"context"
	"time"

	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai/metrics"
)

// Config holds the resilience and backend tunables.
type Config struct {
	LLM LLMConfig

	FailureThreshold int
	ResetTimeout     time.Duration

	Concurrency  int
	RateLimit    int
	RateInterval time.Duration

	InitialDelay time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FailureThreshold: 5,
		ResetTimeout:     time.Minute,
		Concurrency:      2,
		RateLimit:        10,
		RateInterval:     time.Minute,
		InitialDelay:     time.Second,
	}
}

// Client is the single entry point for external generation calls. Every
// call flows retry -> queue -> breaker -> backend, so at most Concurrency
// calls are in flight and the breaker sees every outcome.
type Client struct {
	llm     LLMService
	queue   *RequestQueue
	breaker *CircuitBreaker
	retrier *Retrier
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg *Config, recorder metrics.Recorder) (*Client, error) {
	llm, err := NewLLMService(&cfg.LLM)
	if err != nil {
		return nil, err
	}
	return NewClientWithService(cfg, llm, recorder), nil
}

// NewClientWithService creates a Client around an existing LLMService.
func NewClientWithService(cfg *Config, llm LLMService, recorder metrics.Recorder) *Client {
	return &Client{
		llm:     llm,
		queue:   NewRequestQueue(cfg.Concurrency, cfg.RateLimit, cfg.RateInterval),
		breaker: NewCircuitBreaker(cfg.FailureThreshold, cfg.ResetTimeout),
		retrier: NewRetrier(cfg.InitialDelay, recorder),
	}
}

// Call submits messages through queue and breaker without retrying. Callers
// that need to treat response parsing or validation as retryable wrap Call
// in Do.
func (c *Client) Call(ctx context.Context, messages []Message) (string, error) {
	return c.queue.Add(ctx, func(ctx context.Context) (string, error) {
		return c.breaker.Execute(ctx, func(ctx context.Context) (string, error) {
			return c.llm.Complete(ctx, messages)
		})
	})
}

// Do runs fn under the retry orchestrator, recording one metric record per
// attempt under the given operation name.
func (c *Client) Do(ctx context.Context, operation string, fn func(ctx context.Context) (string, error)) (string, error) {
	return c.retrier.Do(ctx, operation, fn)
}

// Generate submits messages to the backend under the full resilience stack
// and returns the raw response text.
func (c *Client) Generate(ctx context.Context, operation string, messages []Message) (string, error) {
	return c.retrier.Do(ctx, operation, func(ctx context.Context) (string, error) {
		return c.Call(ctx, messages)
	})
}

// Close releases the queue scheduler.
func (c *Client) Close() {
	c.queue.Close()
}
