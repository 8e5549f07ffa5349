package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractString(t *testing.T) {
	list := []any{"user_id", "u-1", "count", 3, 42, "ignored", "dangling"}

	assert.Equal(t, "u-1", ExtractString(list, "user_id"))
	assert.Empty(t, ExtractString(list, "count"), "non-string values are skipped")
	assert.Empty(t, ExtractString(list, "dangling"), "key without value")
	assert.Empty(t, ExtractString(nil, "user_id"))
}

func TestExtractInt(t *testing.T) {
	list := []any{"slots", 5, "user_id", "u-1"}

	v, ok := ExtractInt(list, "slots")
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = ExtractInt(list, "user_id")
	assert.False(t, ok)
}
