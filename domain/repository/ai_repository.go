package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Songmu/retry"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

type AIRepository struct {
	client *openai.Client
	model  string
}

// NewAIRepository returns (nil, nil) when no OpenAI/Azure credentials are
// present; alert ingestion then runs without enrichment.
func NewAIRepository(model string) (*AIRepository, error) {
	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("AZURE_OPENAI_KEY") == "" {
		return nil, nil
	}

	if model == "" {
		model = "gpt-4"
	}
	client, err := newOpenAIClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &AIRepository{
		client: client,
		model:  model,
	}, nil
}

func newOpenAIClient() (*openai.Client, error) {
	if os.Getenv("AZURE_OPENAI_ENDPOINT") != "" {
		return newAzureClient()
	}

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	options := []option.RequestOption{
		option.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
	}

	c := openai.NewClient(options...)
	return &c, nil
}

func newAzureClient() (*openai.Client, error) {
	key := os.Getenv("AZURE_OPENAI_KEY")
	if key == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_KEY is not set")
	}
	var azureOpenAIEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")

	var azureOpenAIAPIVersion = "2025-01-01-preview"

	if os.Getenv("AZURE_OPENAI_API_VERSION") != "" {
		azureOpenAIAPIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
	}

	c := openai.NewClient(
		azure.WithEndpoint(azureOpenAIEndpoint, azureOpenAIAPIVersion),
		azure.WithAPIKey(key),
	)
	return &c, nil
}

// Summarize produces a short operator-facing summary of one alert. The
// detail is rendered with sorted keys so the same alert always yields the
// same prompt.
func (h *AIRepository) Summarize(ctx context.Context, detail map[string]any) (string, error) {
	prompt := fmt.Sprintf(`## Task
You are an incident-response assistant. Summarize the alert below for the
on-call engineer.

## Format
At most 500 characters. Your answer is embedded verbatim into a chat
message, so return only the summary, no structured markup.

## Alert fields
%s`, formatDetail(detail))

	return h.callOpenAIWithRetry(ctx, prompt)
}

func formatDetail(detail map[string]any) string {
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		value, err := json.Marshal(detail[k])
		if err != nil {
			fmt.Fprintf(&b, "%s: %v\n", k, detail[k])
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", k, value)
	}
	return b.String()
}

func (h *AIRepository) callOpenAIWithRetry(ctx context.Context, prompt string) (string, error) {
	var result string
	err := retry.Retry(3, time.Second*3, func() error {
		resp, err := h.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: h.model,
		})
		if err != nil {
			return err
		}

		if len(resp.Choices) == 0 {
			return fmt.Errorf("no response from OpenAI")
		}

		result = resp.Choices[0].Message.Content
		return nil
	})

	return result, err
}
