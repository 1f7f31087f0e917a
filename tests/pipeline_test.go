package tests

import (
	"context"
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/internal/engine"
	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/builder"
)

func TestRetrievalPipeline(t *testing.T) {
	f := builder.NewFlow("pipeline").
		Entry("E1").
		RAG("R1", "kb", "validated", 2).
		LLM("L1", "local", "Answer: {{input}}").
		Tool("T1", "uppercase").
		Exit("X1").
		Edge("E1", "R1").
		Edge("R1", "L1").
		Edge("L1", "T1").
		Edge("T1", "X1").
		Build()

	exec, err := engine.New(f, newScenarioRegistry())
	testify.NoError(t, err)

	res := exec.Execute(context.Background(), "work", api.Options{})
	testify.Equal(t, api.RunSuccess, res.Status)

	out, ok := res.Output.(string)
	testify.True(t, ok)
	testify.Contains(t, out, "ANSWER: WORK")
	testify.Contains(t, out, "FLOWS ARE VALIDATED BEFORE EXECUTION")
}

func TestPromptInterpolatesState(t *testing.T) {
	f := builder.NewFlow("interp").
		Entry("E1").
		LLM("L1", "local", "{{state.user}} asks: {{input}}").
		Exit("X1").
		Edge("E1", "L1").
		Edge("L1", "X1").
		Build()

	exec, err := engine.New(f, newScenarioRegistry())
	testify.NoError(t, err)

	res := exec.Execute(context.Background(), "why?", api.Options{
		InitialState: api.Args{"user": "alice"},
	})
	testify.Equal(t, api.RunSuccess, res.Status)
	testify.Equal(t, "local: alice asks: why?", res.Output)
}

func TestPipelineTrace(t *testing.T) {
	f := builder.NewFlow("trace").
		Entry("E1").
		Tool("T1", "trim").
		Tool("T2", "length").
		Exit("X1").
		Edge("E1", "T1").
		Edge("T1", "T2").
		Edge("T2", "X1").
		Build()

	exec, err := engine.New(f, newScenarioRegistry())
	testify.NoError(t, err)

	res := exec.Execute(context.Background(), "  hello  ", api.Options{})
	testify.Equal(t, api.RunSuccess, res.Status)
	testify.Equal(t, 5, res.Output)
	testify.Equal(t, []api.NodeID{"E1", "T1", "T2", "X1"}, visited(res))

	// each step records the input it saw, before any mutation
	testify.Equal(t, "  hello  ", res.Steps[1].Input)
	testify.Equal(t, "hello", res.Steps[2].Input)
}
