package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single term", "rust", []string{"rust"}},
		{"multiple terms", "rust,go", []string{"rust", "go"}},
		{"trims whitespace", "  rust , go  ", []string{"rust", "go"}},
		{"drops empty parts", ", ,rust , go", []string{"rust", "go"}},
		{"empty input", "", nil},
		{"only separators", " , ,, ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTerms(tt.raw))
		})
	}
}
