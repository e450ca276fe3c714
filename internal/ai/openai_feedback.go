package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/windoze95/speakify-bot/internal/config"
)

const feedbackFunctionName = "submit_feedback"

// OpenAIFeedbackProvider implements FeedbackProvider using an OpenAI
// chat completion with a forced function call, so the assessment comes
// back as structured JSON instead of free text.
type OpenAIFeedbackProvider struct {
	apiKey  string
	model   string
	prompts *config.Prompts
}

// NewOpenAIFeedbackProvider creates a new OpenAI feedback provider.
func NewOpenAIFeedbackProvider(apiKey string, prompts *config.Prompts) *OpenAIFeedbackProvider {
	return &OpenAIFeedbackProvider{
		apiKey:  apiKey,
		model:   openai.GPT4oMini,
		prompts: prompts,
	}
}

// feedbackFunctionArgument is the JSON structure returned by the
// submit_feedback function call.
type feedbackFunctionArgument struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	ModelAnswer string   `json:"model_answer"`
}

// feedbackFunctionParams defines the submit_feedback parameter schema.
func feedbackFunctionParams() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"strengths": {
				Type:        jsonschema.Array,
				Description: "What the candidate did well: fluency, vocabulary, grammar, coherence. Two to four short points.",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"weaknesses": {
				Type:        jsonschema.Array,
				Description: "Concrete problems in the answer and how to fix them. Two to four short points.",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"model_answer": {
				Type:        jsonschema.String,
				Description: "An improved answer to the same question at the candidate's level, spoken register, a few sentences.",
			},
		},
		Required: []string{"strengths", "weaknesses", "model_answer"},
	}
}

// GenerateFeedback requests structured feedback on a transcript.
func (p *OpenAIFeedbackProvider) GenerateFeedback(ctx context.Context, question, transcript string) (*Feedback, error) {
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

	params := feedbackFunctionParams()
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sysPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Functions: []openai.FunctionDefinition{{
			Name:        feedbackFunctionName,
			Description: "Submit structured feedback on the candidate's spoken answer.",
			Parameters:  &params,
		}},
		FunctionCall: openai.FunctionCall{Name: feedbackFunctionName},
		Temperature:  0.7,
	}

	client := openai.NewClient(p.apiKey)
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.FunctionCall == nil {
		return nil, errors.New("OpenAI API returned no function call")
	}

	var args feedbackFunctionArgument
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.FunctionCall.Arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse feedback arguments: %w", err)
	}
	if args.ModelAnswer == "" && len(args.Strengths) == 0 && len(args.Weaknesses) == 0 {
		return nil, errors.New("OpenAI API returned empty feedback")
	}

	return &Feedback{
		Strengths:   args.Strengths,
		Weaknesses:  args.Weaknesses,
		ModelAnswer: args.ModelAnswer,
	}, nil
}
