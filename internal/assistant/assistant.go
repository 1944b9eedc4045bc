// Package assistant calls an OpenAI-compatible chat completion API to
// summarize experiments, explain detected anomalies, draft report
// sections, and look up molar masses. It is a collaborator of the CLI;
// the reagent calculator never depends on it.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/labrec/internal/analysis"
	"github.com/mesh-intelligence/labrec/pkg/types"
)

// Assistant errors.
var (
	ErrNoAPIKey   = errors.New("OPENAI_API_KEY is not set")
	ErrNoRecords  = errors.New("no experiment records")
	ErrEmptyReply = errors.New("model returned an empty reply")
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

const systemPrompt = "You are a laboratory assistant for carbon rod " +
	"exfoliation experiments. Answer concisely and stick to the data given."

// Assistant wraps a chat completion client.
type Assistant struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// New creates an Assistant. apiKey is required; model and baseURL fall
// back to defaults when empty. A nil logger is replaced with a no-op
// logger.
func New(apiKey, model, baseURL string, log *zap.Logger) (*Assistant, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Assistant{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}, nil
}

// complete sends one prompt and returns the reply text.
func (a *Assistant) complete(ctx context.Context, prompt string) (string, error) {
	a.log.Debug("chat completion request",
		zap.String("model", a.model),
		zap.Int("prompt_len", len(prompt)))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// SummarizeExperiments asks the model to summarize the given records.
func (a *Assistant) SummarizeExperiments(ctx context.Context, records []*types.Experiment) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	return a.complete(ctx, summaryPrompt(records))
}

// ExplainAnomalies asks the model for likely causes and remediation for
// the detected anomalies.
func (a *Assistant) ExplainAnomalies(ctx context.Context, anomalies []analysis.Anomaly, records []*types.Experiment) (string, error) {
	if len(anomalies) == 0 {
		return "No anomalies detected.", nil
	}
	return a.complete(ctx, anomalyPrompt(anomalies, records))
}

// DraftReport asks the model for a results-and-discussion draft built
// from the records, their summary, and any anomalies.
func (a *Assistant) DraftReport(ctx context.Context, records []*types.Experiment, summary analysis.Summary, anomalies []analysis.Anomaly) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	return a.complete(ctx, reportPrompt(records, summary, anomalies))
}

// LookupMolarMass asks the model for the molar mass of a chemical formula
// in g/mol. A reply that cannot be parsed as a positive number is an
// explicit error; the previous value is never silently kept.
func (a *Assistant) LookupMolarMass(ctx context.Context, formula string) (float64, error) {
	reply, err := a.complete(ctx, lookupPrompt(formula))
	if err != nil {
		return 0, fmt.Errorf("looking up %s: %w", formula, err)
	}

	mass, err := parseMolarMass(reply)
	if err != nil {
		return 0, fmt.Errorf("looking up %s: %w", formula, err)
	}

	a.log.Info("molar mass lookup",
		zap.String("formula", formula),
		zap.Float64("molar_mass", mass))
	return mass, nil
}

// SaveReport writes report content to dir with a timestamped filename
// and returns the path.
func SaveReport(dir, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", err)
	}

	name := fmt.Sprintf("report_%s.md", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
