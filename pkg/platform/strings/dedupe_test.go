package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{
			name:     "trims whitespace",
			input:    []string{"  Anxiety  ", "Depression  ", "  PTSD"},
			expected: []string{"Anxiety", "Depression", "PTSD"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"PTSD", "Anxiety", "PTSD", "Depression", "Anxiety"},
			expected: []string{"PTSD", "Anxiety", "Depression"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"Anxiety", "", "  ", "PTSD"},
			expected: []string{"Anxiety", "PTSD"},
		},
		{
			name:     "preserves case",
			input:    []string{"Anxiety", "anxiety"},
			expected: []string{"Anxiety", "anxiety"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeFold(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{
			name:     "keeps first spelling",
			input:    []string{"Grief Counseling", "grief counseling", "GRIEF COUNSELING"},
			expected: []string{"Grief Counseling"},
		},
		{
			name:     "trims before comparing",
			input:    []string{"  ADHD ", "adhd", "Eating Disorders"},
			expected: []string{"ADHD", "Eating Disorders"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeFold(tt.input))
		})
	}
}
