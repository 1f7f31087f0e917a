package util_test

import (
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/pkg/util"
)

func TestSetOfCollapsesDuplicates(t *testing.T) {
	s := util.SetOf("entry", "exit", "entry")
	testify.Len(t, s, 2)
	testify.True(t, s.Contains("entry"))
	testify.True(t, s.Contains("exit"))
	testify.False(t, s.Contains("llm"))
}

func TestSetMembership(t *testing.T) {
	s := util.Set[int]{}
	s.Add(7)
	s.Add(7)
	testify.Len(t, s, 1)

	s.Remove(7)
	testify.False(t, s.Contains(7))

	// removing an absent key is a no-op
	s.Remove(7)
	testify.Empty(t, s)
}
