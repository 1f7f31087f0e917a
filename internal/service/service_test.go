package service_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/internal/service"
)

func TestMemoryRetriever(t *testing.T) {
	r := service.NewMemoryRetriever()
	r.Add("docs",
		"the billing service handles invoices",
		"the auth service issues tokens",
		"invoices are generated nightly",
	)

	fragments, err := r.Retrieve(context.Background(), "docs", "invoices", 2)
	testify.NoError(t, err)
	testify.Len(t, fragments, 2)
	testify.Contains(t, fragments[0], "invoices")
	testify.Contains(t, fragments[1], "invoices")
}

func TestMemoryRetrieverEmptyCollection(t *testing.T) {
	r := service.NewMemoryRetriever()

	fragments, err := r.Retrieve(context.Background(), "missing", "query", 5)
	testify.NoError(t, err)
	testify.Empty(t, fragments)
}

func TestRedisRetriever(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	r := service.NewRedisRetriever(client)

	ctx := context.Background()
	err := r.Add(ctx, "docs",
		"alpha branch deploys on merge",
		"beta branch is frozen",
	)
	testify.NoError(t, err)

	fragments, err := r.Retrieve(ctx, "docs", "beta", 1)
	testify.NoError(t, err)
	testify.Len(t, fragments, 1)
	testify.Contains(t, fragments[0], "beta")
}

func TestToolSet(t *testing.T) {
	tools := service.NewToolSet()
	ctx := context.Background()

	out, err := tools.Invoke(ctx, "uppercase", "hello")
	testify.NoError(t, err)
	testify.Equal(t, "HELLO", out)

	out, err = tools.Invoke(ctx, "echo", 42)
	testify.NoError(t, err)
	testify.Equal(t, 42, out)

	out, err = tools.Invoke(ctx, "length", []any{1, 2, 3})
	testify.NoError(t, err)
	testify.Equal(t, 3, out)

	out, err = tools.Invoke(ctx, "json_parse", `{"k":"v"}`)
	testify.NoError(t, err)
	testify.Equal(t, map[string]any{"k": "v"}, out)

	_, err = tools.Invoke(ctx, "nope", nil)
	testify.ErrorIs(t, err, service.ErrUnknownTool)
}

func TestStaticSecrets(t *testing.T) {
	secrets := service.StaticSecrets{"api_key": "s3cret"}
	ctx := context.Background()

	value, err := secrets.Secret(ctx, "api_key")
	testify.NoError(t, err)
	testify.Equal(t, "s3cret", value)

	_, err = secrets.Secret(ctx, "missing")
	testify.ErrorIs(t, err, service.ErrSecretNotFound)
}

func TestActionRunnerSimulated(t *testing.T) {
	runner := service.NewActionRunner("")
	ctx := context.Background()

	out, err := runner.Perform(ctx, "browser", "open /login", nil)
	testify.NoError(t, err)
	testify.Equal(t, "browser: open /login", out)

	out, err = runner.Perform(ctx, "terminal", "ls", nil)
	testify.NoError(t, err)
	testify.Equal(t, "terminal: ls", out)

	_, err = runner.Perform(ctx, "carrier-pigeon", "fly", nil)
	testify.ErrorIs(t, err, service.ErrUnknownAction)
}

func TestLocalModel(t *testing.T) {
	model := service.NewLocalModel()
	model.Responses = map[string]string{"classify this": "positive"}
	ctx := context.Background()

	out, err := model.Complete(ctx, service.CompletionRequest{
		Model:  "gpt-4",
		Prompt: "classify this",
	})
	testify.NoError(t, err)
	testify.Equal(t, "positive", out)

	out, err = model.Complete(ctx, service.CompletionRequest{
		Model:  "gpt-4",
		Prompt: "other",
	})
	testify.NoError(t, err)
	testify.Equal(t, "gpt-4: other", out)
}

func TestDefaulted(t *testing.T) {
	s := service.Services{}.Defaulted()

	testify.NotNil(t, s.Model)
	testify.NotNil(t, s.Vision)
	testify.NotNil(t, s.Speech)
	testify.NotNil(t, s.Retriever)
	testify.NotNil(t, s.Action)
	testify.NotNil(t, s.Tools)
	testify.NotNil(t, s.Secrets)
}
