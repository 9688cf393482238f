// Package gemini implements biomark.Generator using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/biomark"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.0-flash"

// Generation settings for biomarker extraction.
const (
	Temperature      = 2.0
	TopP             = 0.95
	TopK             = 40
	MaxOutputTokens  = 50000
	ResponseMIMEType = "application/json"
)

// Ensure Generator implements biomark.Generator at compile time.
var _ biomark.Generator = (*Generator)(nil)

// Generator implements biomark.Generator using a single-turn Gemini chat.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// Generate opens a chat seeded with the prompt as user history, sends the
// prompt and returns the reply text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", biomark.Errorf(biomark.EINVALID, "prompt required")
	}

	chat, err := g.client.Chats.Create(ctx, g.model, BuildConfig(), BuildHistory(prompt))
	if err != nil {
		return "", err
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", biomark.Errorf(biomark.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", biomark.Errorf(biomark.EINTERNAL, "gemini returned empty reply")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(Temperature)
	topP := float32(TopP)
	topK := float32(TopK)
	return &genai.GenerateContentConfig{
		Temperature:      &temp,
		TopP:             &topP,
		TopK:             &topK,
		MaxOutputTokens:  MaxOutputTokens,
		ResponseMIMEType: ResponseMIMEType,
	}
}

// BuildHistory returns the chat history that seeds the conversation.
func BuildHistory(prompt string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
}
