// Package generation builds prompts for the external generative-text
// backend, sends them through the resilience layer, and parses the JSON it
// returns into validated artifacts.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

// QuestionOptions are the inputs for quiz-question generation.
type QuestionOptions struct {
	Count          int
	Difficulty     string
	TargetLanguage string
	NativeLanguage string
}

// Client turns domain inputs into backend prompts and backend responses into
// validated artifacts. Parsing and shape validation happen inside the retry
// loop, so a malformed response is retried like any other failure.
type Client struct {
	gen    *genai.Client
	logger *slog.Logger
}

// NewClient creates a generation client.
func NewClient(gen *genai.Client, logger *slog.Logger) *Client {
	return &Client{gen: gen, logger: logger}
}

// stripCodeFence removes Markdown code fencing from a raw backend response.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// GenerateQuestions asks the backend for opts.Count mixed-type questions
// over the given words. At most opts.Count returned items are kept
// regardless of how many the backend produced. Fatal after retry exhaustion.
func (c *Client) GenerateQuestions(ctx context.Context, words []*store.Word, opts QuestionOptions) ([]GeneratedQuestion, error) {
	prompt := questionsPrompt(words, opts.Count, opts.Difficulty, opts.TargetLanguage, opts.NativeLanguage)

	var questions []GeneratedQuestion
	_, err := c.gen.Do(ctx, "generate_questions", func(ctx context.Context) (string, error) {
		raw, err := c.gen.Call(ctx, []genai.Message{genai.UserMessage(prompt)})
		if err != nil {
			return "", err
		}

		var parsed []GeneratedQuestion
		if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
			return "", fmt.Errorf("failed to parse questions JSON: %w", err)
		}
		for i := range parsed {
			if err := validateQuestion(&parsed[i]); err != nil {
				return "", err
			}
		}
		if len(parsed) > opts.Count {
			parsed = parsed[:opts.Count]
		}
		questions = parsed
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GenerateSentences asks the backend for three example sentences per word.
// Fatal after retry exhaustion.
func (c *Client) GenerateSentences(ctx context.Context, words []*store.Word, targetLanguage string) ([]WordSentences, error) {
	prompt := sentencesPrompt(words, targetLanguage)

	var sentences []WordSentences
	_, err := c.gen.Do(ctx, "generate_sentences", func(ctx context.Context) (string, error) {
		raw, err := c.gen.Call(ctx, []genai.Message{genai.UserMessage(prompt)})
		if err != nil {
			return "", err
		}

		var parsed []WordSentences
		if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
			return "", fmt.Errorf("failed to parse sentences JSON: %w", err)
		}
		for i := range parsed {
			if err := validateSentences(&parsed[i]); err != nil {
				return "", err
			}
		}
		sentences = parsed
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return sentences, nil
}

// GenerateVocabulary asks the backend for count vocabulary entries on a
// free-text topic. On unrecoverable failure it degrades to an empty list
// instead of failing the caller; the feature is advisory.
func (c *Client) GenerateVocabulary(ctx context.Context, topic string, count int, targetLanguage, nativeLanguage string) []VocabularyEntry {
	prompt := vocabularyPrompt(topic, count, targetLanguage, nativeLanguage)

	var entries []VocabularyEntry
	_, err := c.gen.Do(ctx, "generate_vocabulary", func(ctx context.Context) (string, error) {
		raw, err := c.gen.Call(ctx, []genai.Message{genai.UserMessage(prompt)})
		if err != nil {
			return "", err
		}

		var parsed []VocabularyEntry
		if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
			return "", fmt.Errorf("failed to parse vocabulary JSON: %w", err)
		}
		for i := range parsed {
			if err := validateVocabularyEntry(&parsed[i]); err != nil {
				return "", err
			}
		}
		if len(parsed) > count {
			parsed = parsed[:count]
		}
		entries = parsed
		return raw, nil
	})
	if err != nil {
		c.logger.Warn("vocabulary generation failed, returning empty list",
			slog.String("topic", topic), slog.String("error", err.Error()))
		return []VocabularyEntry{}
	}
	return entries
}

// AnalyzeComplexity asks the backend to score the complexity of arbitrary
// text. On unrecoverable failure it returns the fixed medium fallback
// instead of failing the caller.
func (c *Client) AnalyzeComplexity(ctx context.Context, text string) *ComplexityReport {
	prompt := complexityPrompt(text)

	var report *ComplexityReport
	_, err := c.gen.Do(ctx, "analyze_complexity", func(ctx context.Context) (string, error) {
		raw, err := c.gen.Call(ctx, []genai.Message{genai.UserMessage(prompt)})
		if err != nil {
			return "", err
		}

		var parsed ComplexityReport
		if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
			return "", fmt.Errorf("failed to parse complexity JSON: %w", err)
		}
		if err := validateComplexityReport(&parsed); err != nil {
			return "", err
		}
		report = &parsed
		return raw, nil
	})
	if err != nil {
		c.logger.Warn("complexity analysis failed, returning fallback",
			slog.String("error", err.Error()))
		return FallbackComplexityReport()
	}
	return report
}

// Healthy probes the backend with a trivial prompt. The service is healthy
// iff a non-empty response text comes back; failures are returned, not
// swallowed.
func (c *Client) Healthy(ctx context.Context) error {
	raw, err := c.gen.Call(ctx, []genai.Message{genai.UserMessage("Reply with the single word: ok")})
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty response from generation backend")
	}
	return nil
}
