package service

import (
	"context"
	"encoding/base64"
	"fmt"
)

type (
	// LocalModel is a deterministic ModelClient used for offline runs and
	// tests. It echoes the prompt under the requested model
	LocalModel struct {
		Responses map[string]string
	}

	// LocalVision is a deterministic VisionClient
	LocalVision struct{}

	// LocalSpeech is a deterministic SpeechClient
	LocalSpeech struct{}
)

func NewLocalModel() *LocalModel {
	return &LocalModel{}
}

// Complete returns the canned response for the prompt when one is
// registered, and a deterministic echo otherwise
func (m *LocalModel) Complete(
	_ context.Context, req CompletionRequest,
) (string, error) {
	if resp, ok := m.Responses[req.Prompt]; ok {
		return resp, nil
	}
	return fmt.Sprintf("%s: %s", req.Model, req.Prompt), nil
}

func NewLocalVision() *LocalVision {
	return &LocalVision{}
}

func (v *LocalVision) Describe(
	_ context.Context, model, imageURL, _ string,
) (string, error) {
	return fmt.Sprintf("%s description of %s", model, imageURL), nil
}

func NewLocalSpeech() *LocalSpeech {
	return &LocalSpeech{}
}

func (s *LocalSpeech) Transcribe(
	_ context.Context, model, audioURL string,
) (string, error) {
	return fmt.Sprintf("%s transcript of %s", model, audioURL), nil
}

func (s *LocalSpeech) Synthesize(
	_ context.Context, _, text string,
) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}
