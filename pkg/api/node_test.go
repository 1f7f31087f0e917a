package api_test

import (
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/pkg/api"
)

func TestDecodeLLMConfigDefaults(t *testing.T) {
	cfg, err := api.DecodeLLMConfig(api.Args{"prompt": "classify"})
	testify.NoError(t, err)
	testify.Equal(t, api.DefaultModel, cfg.Model)
	testify.Equal(t, "classify", cfg.Prompt)
	testify.Zero(t, cfg.Temperature)
}

func TestDecodeLLMConfigBadTemperature(t *testing.T) {
	_, err := api.DecodeLLMConfig(api.Args{"temperature": 3.5})
	testify.ErrorIs(t, err, api.ErrInvalidTemp)
}

func TestDecodeRAGConfigDefaults(t *testing.T) {
	cfg, err := api.DecodeRAGConfig(api.Args{"collection": "docs"})
	testify.NoError(t, err)
	testify.Equal(t, api.DefaultTopK, cfg.TopK)
	testify.Empty(t, cfg.Query)

	_, err = api.DecodeRAGConfig(api.Args{})
	testify.ErrorIs(t, err, api.ErrCollectionEmpty)

	_, err = api.DecodeRAGConfig(api.Args{
		"collection": "docs",
		"topK":       float64(-1),
	})
	testify.ErrorIs(t, err, api.ErrInvalidTopK)
}

func TestDecodeConditionConfig(t *testing.T) {
	cfg, err := api.DecodeConditionConfig(api.Args{
		"condition": "input.ok",
		"trueNode":  "a",
		"falseNode": "b",
	})
	testify.NoError(t, err)
	testify.Equal(t, api.DefaultConditionLanguage, cfg.Language)
	testify.Equal(t, api.NodeID("a"), cfg.TrueNode)
	testify.Equal(t, api.NodeID("b"), cfg.FalseNode)

	_, err = api.DecodeConditionConfig(api.Args{})
	testify.ErrorIs(t, err, api.ErrConditionEmpty)
}

func TestDecodeVoiceConfig(t *testing.T) {
	cfg, err := api.DecodeVoiceConfig(api.Args{})
	testify.NoError(t, err)
	testify.Equal(t, api.VoiceTranscribe, cfg.Action)

	_, err = api.DecodeVoiceConfig(api.Args{"action": "hum"})
	testify.ErrorIs(t, err, api.ErrInvalidVoiceOp)
}

func TestDecodeActionConfig(t *testing.T) {
	cfg, err := api.DecodeActionConfig(api.Args{
		"actionType": "api",
		"action":     "GET https://example.com",
	})
	testify.NoError(t, err)
	testify.Equal(t, api.ActionAPI, cfg.ActionType)

	_, err = api.DecodeActionConfig(api.Args{"actionType": "fax"})
	testify.ErrorIs(t, err, api.ErrInvalidActionType)
}

func TestDecodeConfigUnknownType(t *testing.T) {
	cfg, err := api.DecodeConfig(&api.Node{ID: "x", Type: "custom"})
	testify.NoError(t, err)
	testify.Nil(t, cfg)
}
