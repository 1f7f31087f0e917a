package api

import (
	"errors"
	"fmt"

	"github.com/flowcore/engine/pkg/util"
)

type (
	// NodeType tags a node with the capability that backs it at runtime.
	// The enumeration is closed for validation purposes but extensible:
	// new variants register under a new tag without engine changes
	NodeType string

	// LLMConfig configures an llm node
	LLMConfig struct {
		Model       string  `json:"model"`
		Prompt      string  `json:"prompt"`
		Temperature float64 `json:"temperature"`
	}

	// ToolConfig configures a tool node
	ToolConfig struct {
		Tool string `json:"tool"`
	}

	// RAGConfig configures a rag node. An empty Query means the node
	// queries with its current input
	RAGConfig struct {
		Query      string `json:"query"`
		Collection string `json:"collection"`
		TopK       int    `json:"topK"`
	}

	// ConditionConfig configures a condition node. TrueNode and FalseNode
	// may be left empty when branch targets are declared through edge
	// handles instead
	ConditionConfig struct {
		Condition string `json:"condition"`
		Language  string `json:"language"`
		TrueNode  NodeID `json:"trueNode"`
		FalseNode NodeID `json:"falseNode"`
	}

	// VisionConfig configures a vision node
	VisionConfig struct {
		Model    string `json:"model"`
		ImageURL string `json:"imageUrl"`
	}

	// VoiceConfig configures a voice node
	VoiceConfig struct {
		Action string `json:"action"`
		Model  string `json:"model"`
	}

	// ActionConfig configures an action node
	ActionConfig struct {
		ActionType string `json:"actionType"`
		Action     string `json:"action"`
	}
)

const (
	NodeEntry     NodeType = "entry"
	NodeExit      NodeType = "exit"
	NodeLLM       NodeType = "llm"
	NodeTool      NodeType = "tool"
	NodeRAG       NodeType = "rag"
	NodeCondition NodeType = "condition"
	NodeVision    NodeType = "vision"
	NodeVoice     NodeType = "voice"
	NodeAction    NodeType = "action"
)

const (
	// DefaultModel is used when an llm or vision node omits its model
	DefaultModel = "gpt-4"

	// DefaultTopK is used when a rag node omits its fragment budget
	DefaultTopK = 5

	// DefaultConditionLanguage is used when a condition node omits the
	// predicate language
	DefaultConditionLanguage = "path"

	VoiceTranscribe = "transcribe"
	VoiceSynthesize = "synthesize"

	ActionBrowser  = "browser"
	ActionTerminal = "terminal"
	ActionAPI      = "api"
)

var (
	ErrConditionEmpty    = errors.New("condition expression empty")
	ErrToolEmpty         = errors.New("tool identifier empty")
	ErrCollectionEmpty   = errors.New("rag collection empty")
	ErrInvalidTopK       = errors.New("rag topK must be positive")
	ErrImageURLEmpty     = errors.New("vision image URL empty")
	ErrInvalidVoiceOp    = errors.New("invalid voice action")
	ErrInvalidActionType = errors.New("invalid action type")
	ErrInvalidTemp       = errors.New("temperature out of range")
)

// BuiltinNodeTypes enumerates the node types shipped with the engine
var BuiltinNodeTypes = util.SetOf(
	NodeEntry,
	NodeExit,
	NodeLLM,
	NodeTool,
	NodeRAG,
	NodeCondition,
	NodeVision,
	NodeVoice,
	NodeAction,
)

var validVoiceOps = util.SetOf(VoiceTranscribe, VoiceSynthesize)

var validActionTypes = util.SetOf(
	ActionBrowser, ActionTerminal, ActionAPI,
)

// DecodeConfig decodes a node's open data mapping into the typed
// configuration for its built-in type, applying documented defaults for
// omitted keys. Unknown (extension) types decode to nil without error;
// their capability decodes its own configuration
func DecodeConfig(n *Node) (any, error) {
	switch n.Type {
	case NodeEntry, NodeExit:
		return nil, nil
	case NodeLLM:
		return DecodeLLMConfig(n.Data)
	case NodeTool:
		return DecodeToolConfig(n.Data)
	case NodeRAG:
		return DecodeRAGConfig(n.Data)
	case NodeCondition:
		return DecodeConditionConfig(n.Data)
	case NodeVision:
		return DecodeVisionConfig(n.Data)
	case NodeVoice:
		return DecodeVoiceConfig(n.Data)
	case NodeAction:
		return DecodeActionConfig(n.Data)
	default:
		return nil, nil
	}
}

// DecodeLLMConfig decodes llm node data, defaulting the model
func DecodeLLMConfig(data Args) (*LLMConfig, error) {
	cfg := &LLMConfig{
		Model:       data.GetString("model", DefaultModel),
		Prompt:      data.GetString("prompt", ""),
		Temperature: data.GetFloat("temperature", 0),
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemp, cfg.Temperature)
	}
	return cfg, nil
}

// DecodeToolConfig decodes tool node data
func DecodeToolConfig(data Args) (*ToolConfig, error) {
	cfg := &ToolConfig{
		Tool: data.GetString("tool", ""),
	}
	if cfg.Tool == "" {
		return nil, ErrToolEmpty
	}
	return cfg, nil
}

// DecodeRAGConfig decodes rag node data, defaulting topK
func DecodeRAGConfig(data Args) (*RAGConfig, error) {
	cfg := &RAGConfig{
		Query:      data.GetString("query", ""),
		Collection: data.GetString("collection", ""),
		TopK:       data.GetInt("topK", DefaultTopK),
	}
	if cfg.Collection == "" {
		return nil, ErrCollectionEmpty
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, cfg.TopK)
	}
	return cfg, nil
}

// DecodeConditionConfig decodes condition node data, defaulting the
// predicate language
func DecodeConditionConfig(data Args) (*ConditionConfig, error) {
	cfg := &ConditionConfig{
		Condition: data.GetString("condition", ""),
		Language:  data.GetString("language", DefaultConditionLanguage),
		TrueNode:  NodeID(data.GetString("trueNode", "")),
		FalseNode: NodeID(data.GetString("falseNode", "")),
	}
	if cfg.Condition == "" {
		return nil, ErrConditionEmpty
	}
	return cfg, nil
}

// DecodeVisionConfig decodes vision node data, defaulting the model
func DecodeVisionConfig(data Args) (*VisionConfig, error) {
	cfg := &VisionConfig{
		Model:    data.GetString("model", DefaultModel),
		ImageURL: data.GetString("imageUrl", ""),
	}
	if cfg.ImageURL == "" {
		return nil, ErrImageURLEmpty
	}
	return cfg, nil
}

// DecodeVoiceConfig decodes voice node data
func DecodeVoiceConfig(data Args) (*VoiceConfig, error) {
	cfg := &VoiceConfig{
		Action: data.GetString("action", VoiceTranscribe),
		Model:  data.GetString("model", ""),
	}
	if !validVoiceOps.Contains(cfg.Action) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVoiceOp, cfg.Action)
	}
	return cfg, nil
}

// DecodeActionConfig decodes action node data
func DecodeActionConfig(data Args) (*ActionConfig, error) {
	cfg := &ActionConfig{
		ActionType: data.GetString("actionType", ""),
		Action:     data.GetString("action", ""),
	}
	if !validActionTypes.Contains(cfg.ActionType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidActionType,
			cfg.ActionType)
	}
	return cfg, nil
}
