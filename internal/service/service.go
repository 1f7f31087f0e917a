package service

import (
	"context"
	"errors"
)

type (
	// Services bundles the ports injected into node capabilities. Nil
	// fields fall back to deterministic local implementations
	Services struct {
		Model     ModelClient
		Vision    VisionClient
		Speech    SpeechClient
		Retriever Retriever
		Action    ActionClient
		Tools     Tools
		Secrets   Secrets
	}

	// CompletionRequest describes a single chat completion call
	CompletionRequest struct {
		Model       string
		Prompt      string
		Temperature float64
	}

	// ModelClient produces chat completions
	ModelClient interface {
		Complete(ctx context.Context, req CompletionRequest) (string, error)
	}

	// VisionClient describes images
	VisionClient interface {
		Describe(
			ctx context.Context, model, imageURL, prompt string,
		) (string, error)
	}

	// SpeechClient transcribes and synthesizes audio
	SpeechClient interface {
		Transcribe(ctx context.Context, model, audioURL string) (string, error)
		Synthesize(ctx context.Context, model, text string) (string, error)
	}

	// Retriever fetches context fragments for a query from a collection
	Retriever interface {
		Retrieve(
			ctx context.Context, collection, query string, topK int,
		) ([]string, error)
	}

	// ActionClient performs side-effecting actions on behalf of action
	// nodes
	ActionClient interface {
		Perform(
			ctx context.Context, actionType, action string, input any,
		) (any, error)
	}

	// Tools invokes a named deterministic helper operation
	Tools interface {
		Invoke(ctx context.Context, tool string, input any) (any, error)
	}

	// Secrets resolves named secrets from an external source
	Secrets interface {
		Secret(ctx context.Context, key string) (string, error)
	}
)

var (
	ErrUnknownTool    = errors.New("unknown tool")
	ErrUnknownAction  = errors.New("unknown action type")
	ErrSecretNotFound = errors.New("secret not found")
	ErrNoModelClient  = errors.New("no model client configured")
)

// Defaulted returns a copy of the services with every nil port replaced
// by its local implementation
func (s Services) Defaulted() Services {
	if s.Model == nil {
		s.Model = NewLocalModel()
	}
	if s.Vision == nil {
		s.Vision = NewLocalVision()
	}
	if s.Speech == nil {
		s.Speech = NewLocalSpeech()
	}
	if s.Retriever == nil {
		s.Retriever = NewMemoryRetriever()
	}
	if s.Action == nil {
		s.Action = NewActionRunner("")
	}
	if s.Tools == nil {
		s.Tools = NewToolSet()
	}
	if s.Secrets == nil {
		s.Secrets = StaticSecrets{}
	}
	return s
}
