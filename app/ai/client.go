package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

const summarizeInstruction = "당신은 온라인 상점의 기록 정리 담당자입니다. " +
	"주어진 글을 3~5문장으로 요약하세요. 과장 없이 핵심만 담습니다."

const detailCopyInstruction = "당신은 이커머스 상세페이지 카피라이터입니다. " +
	"상품명과 속성을 바탕으로 다음을 한국어로 작성하세요: " +
	"한 줄 제목, 4~6문장의 본문, 핵심 포인트 3개(글머리 기호)."

// Client generates summaries and product-detail copy through the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: client,
		model:  defaultModel,
	}, nil
}

// Summarize produces a 3-5 sentence summary of text. Empty or
// whitespace-only input returns an empty string without a remote call;
// callers treat an empty result as nothing to write, not as an error.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	return c.generate(ctx, summarizeInstruction, text, 0.2)
}

// GenerateDetailCopy writes product-detail page copy for a product. The
// temperature is higher than Summarize's; detail copy should read fresh,
// not templated.
func (c *Client) GenerateDetailCopy(ctx context.Context, name string, attributes map[string]string) (string, error) {
	var sb strings.Builder
	sb.WriteString("상품명: ")
	sb.WriteString(name)
	sb.WriteString("\n")

	// Stable order so identical inputs build identical prompts
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(attributes[key])
		sb.WriteString("\n")
	}

	return c.generate(ctx, detailCopyInstruction, sb.String(), 0.8)
}

func (c *Client) generate(ctx context.Context, instruction, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(temperature),
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("genai completion failed: %w", err)
	}

	return strings.TrimSpace(result.Text()), nil
}
