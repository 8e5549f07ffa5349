package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minnetherapy/pkg/domain"
	audit "minnetherapy/pkg/platform/audit"
)

func TestEncode(t *testing.T) {
	userID := id.UserID(uuid.New())
	ts := time.Date(2025, 3, 4, 10, 0, 0, 0, time.FixedZone("CST", -6*3600))

	b, err := encode(audit.Event{
		Category:  audit.CategoryOperations,
		Timestamp: ts,
		UserID:    userID,
		Action:    string(audit.EventProviderProfileUpdated),
		RequestID: "req-1",
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "operations", got["category"])
	assert.Equal(t, userID.String(), got["user_id"])
	assert.Equal(t, "provider_profile_updated", got["action"])
	assert.Equal(t, "2025-03-04T16:00:00Z", got["timestamp"])
	assert.NotContains(t, got, "reason")
}

func TestEncode_AnonymousEventOmitsUser(t *testing.T) {
	b, err := encode(audit.Event{Action: string(audit.EventRateLimitExceeded), Subject: "203.0.113.9"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.NotContains(t, got, "user_id")
	assert.Equal(t, "203.0.113.9", got["subject"])
}

func TestNew_RequiresConfiguration(t *testing.T) {
	_, err := New(context.Background(), nil, "audit")
	require.Error(t, err)

	_, err = New(context.Background(), []string{"localhost:9092"}, "")
	require.Error(t, err)
}
