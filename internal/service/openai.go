package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

type (
	// OpenAIModel is the ModelClient adapter for the OpenAI chat
	// completion API
	OpenAIModel struct {
		client *openai.Client
	}

	// OpenAIVision is the VisionClient adapter using multimodal chat
	// completions
	OpenAIVision struct {
		client *openai.Client
	}

	// OpenAISpeech is the SpeechClient adapter for the OpenAI audio APIs
	OpenAISpeech struct {
		client *openai.Client
	}
)

const defaultVisionPrompt = "Describe this image."

var ErrNoChoices = errors.New("no choices returned")

// NewOpenAIClient creates the underlying OpenAI client, honoring an
// alternate base URL when one is configured
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	if baseURL == "" {
		return openai.NewClient(apiKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return openai.NewClientWithConfig(cfg)
}

func NewOpenAIModel(client *openai.Client) *OpenAIModel {
	return &OpenAIModel{client: client}
}

// Complete performs a single-turn chat completion
func (m *OpenAIModel) Complete(
	ctx context.Context, req CompletionRequest,
) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func NewOpenAIVision(client *openai.Client) *OpenAIVision {
	return &OpenAIVision{client: client}
}

// Describe sends the image alongside the prompt as a multimodal message
func (v *OpenAIVision) Describe(
	ctx context.Context, model, imageURL, prompt string,
) (string, error) {
	if prompt == "" {
		prompt = defaultVisionPrompt
	}

	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: imageURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func NewOpenAISpeech(client *openai.Client) *OpenAISpeech {
	return &OpenAISpeech{client: client}
}

// Transcribe converts the audio at the given path or URL to text
func (s *OpenAISpeech) Transcribe(
	ctx context.Context, model, audioURL string,
) (string, error) {
	if model == "" {
		model = openai.Whisper1
	}
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: audioURL,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

// Synthesize converts text to speech, returning the audio as a base64
// encoded string
func (s *OpenAISpeech) Synthesize(
	ctx context.Context, model, text string,
) (string, error) {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(model),
		Input: text,
		Voice: openai.VoiceAlloy,
	})
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer func() { _ = resp.Close() }()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}
