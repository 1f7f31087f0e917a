package api_test

import (
	"testing"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/pkg/api"
)

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		name string
		in   api.RunID
		want api.RunID
	}{
		{"passthrough", "run-42.v1+a", "run-42.v1+a"},
		{"lowercased", "Run-42", "run-42"},
		{"spaces become hyphens", "my run id", "my-run-id"},
		{"invalid characters dropped", "run/../42!", "run..42"},
		{"trimmed hyphens", " -run- ", "run"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testify.Equal(t, tt.want, api.SanitizeID(tt.in))
		})
	}
}
