package node

import (
	"context"
	"fmt"

	"github.com/flowcore/engine/internal/service"
	"github.com/flowcore/engine/pkg/api"
)

type voiceNode struct {
	id     api.NodeID
	cfg    *api.VoiceConfig
	client service.SpeechClient
}

func (r *Registry) newVoice(n *api.Node) (Capability, error) {
	cfg, err := api.DecodeVoiceConfig(n.Data)
	if err != nil {
		return nil, err
	}
	return &voiceNode{
		id:     n.ID,
		cfg:    cfg,
		client: r.services.Speech,
	}, nil
}

// Execute transcribes or synthesizes the current input and merges the
// result metadata into it
func (v *voiceNode) Execute(
	ctx context.Context, run *RunContext,
) (*Result, error) {
	text := inputText(run.Input)

	var (
		output api.Args
		err    error
	)
	switch v.cfg.Action {
	case api.VoiceTranscribe:
		var transcript string
		transcript, err = v.client.Transcribe(ctx, v.cfg.Model, text)
		output = mergeIntoInput(run.Input, api.Args{
			"voiceAction": api.VoiceTranscribe,
			"transcript":  transcript,
		})
	case api.VoiceSynthesize:
		var audio string
		audio, err = v.client.Synthesize(ctx, v.cfg.Model, text)
		output = mergeIntoInput(run.Input, api.Args{
			"voiceAction": api.VoiceSynthesize,
			"audio":       audio,
		})
	default:
		return nil, fmt.Errorf("%w: %s", api.ErrInvalidVoiceOp, v.cfg.Action)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Output: output,
		Logs:   infoLog(v.id, fmt.Sprintf("voice %s done", v.cfg.Action)),
	}, nil
}
