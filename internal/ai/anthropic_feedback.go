package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/windoze95/speakify-bot/internal/config"
)

// AnthropicFeedbackProvider implements FeedbackProvider using Claude
// with a forced tool call mirroring the OpenAI submit_feedback schema.
type AnthropicFeedbackProvider struct {
	client  anthropic.Client
	model   anthropic.Model
	prompts *config.Prompts
}

// NewAnthropicFeedbackProvider creates a new Claude feedback provider.
func NewAnthropicFeedbackProvider(apiKey string, prompts *config.Prompts) *AnthropicFeedbackProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicFeedbackProvider{
		client:  client,
		model:   anthropic.ModelClaude3_5Sonnet20241022,
		prompts: prompts,
	}
}

// feedbackTool builds the Claude tool definition for submit_feedback.
func feedbackTool() anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        feedbackFunctionName,
			Description: anthropic.String("Submit structured feedback on the candidate's spoken answer."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type: "object",
				Properties: map[string]interface{}{
					"strengths": map[string]interface{}{
						"type":        "array",
						"description": "What the candidate did well: fluency, vocabulary, grammar, coherence. Two to four short points.",
						"items":       map[string]interface{}{"type": "string"},
					},
					"weaknesses": map[string]interface{}{
						"type":        "array",
						"description": "Concrete problems in the answer and how to fix them. Two to four short points.",
						"items":       map[string]interface{}{"type": "string"},
					},
					"model_answer": map[string]interface{}{
						"type":        "string",
						"description": "An improved answer to the same question at the candidate's level, spoken register, a few sentences.",
					},
				},
			},
		},
	}
}

// GenerateFeedback requests structured feedback on a transcript.
func (p *AnthropicFeedbackProvider) GenerateFeedback(ctx context.Context, question, transcript string) (*Feedback, error) {
	sysPrompt, err := config.RenderPrompt(p.prompts.Feedback.System, nil)
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	userPrompt, err := config.RenderPrompt(p.prompts.Feedback.User, map[string]interface{}{
		"Question":   question,
		"Transcript": transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("render user prompt: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: sysPrompt},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(userPrompt),
				},
			},
		},
		Tools: []anthropic.ToolUnionParam{feedbackTool()},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfToolChoiceTool: &anthropic.ToolChoiceToolParam{
				Name: feedbackFunctionName,
			},
		},
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}

	return extractFeedbackFromToolUse(resp)
}

// extractFeedbackFromToolUse parses the tool-use content block returned
// by Claude.
func extractFeedbackFromToolUse(msg *anthropic.Message) (*Feedback, error) {
	for _, block := range msg.Content {
		if block.Type == "tool_use" {
			raw, err := json.Marshal(block.Input)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal tool input: %w", err)
			}
			var args feedbackFunctionArgument
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("failed to parse feedback tool result: %w", err)
			}
			return &Feedback{
				Strengths:   args.Strengths,
				Weaknesses:  args.Weaknesses,
				ModelAnswer: args.ModelAnswer,
			}, nil
		}
	}
	return nil, errors.New("no tool_use block found in Claude response")
}
