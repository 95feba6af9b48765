package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cokeastorga/astorgayabogados/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "leads.LEAD_CAPTURED", Subject("LEAD_CAPTURED"))
}

func TestStreamConfigCoversLeadSubjects(t *testing.T) {
	cfg := StreamConfig()

	assert.Equal(t, StreamName, cfg.Name)
	assert.Equal(t, []string{"leads.>"}, cfg.Subjects)
	assert.Equal(t, duplicateWindow, cfg.Duplicates)
}

func TestEncodeCarriesKey(t *testing.T) {
	at := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	raw, err := encode(events.LeadEvent{
		Type:       "LEAD_CAPTURED",
		Id:         "a1",
		Data:       map[string]interface{}{"urgency_level": "ALTA"},
		OccurredAt: at,
	})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "LEAD_CAPTURED", doc["type"])
	assert.Equal(t, "a1", doc["key"])
	assert.Equal(t, "ALTA", doc["data"].(map[string]interface{})["urgency_level"])
}
