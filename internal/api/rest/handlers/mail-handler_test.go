package handlers

import (
	"encoding/json"
	"testing"

	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageDropsMalformedEvents(t *testing.T) {
	h := NewMailHandler(services.NewMailService("", "", "", "", "", ""))

	// malformed payloads are discarded, not retried
	assert.NoError(t, h.HandleMessage("{not json"))
}

func TestHandleMessageSkipsEventsWithoutEmail(t *testing.T) {
	h := NewMailHandler(services.NewMailService("", "", "", "", "", ""))

	payload, err := json.Marshal(dto.NotificationEvent{
		Recipient: "22bd1a0501",
		Title:     "Placement Verified",
		Message:   "Congratulations!",
	})
	require.NoError(t, err)

	assert.NoError(t, h.HandleMessage(string(payload)))
}
