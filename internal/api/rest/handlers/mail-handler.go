package handlers

import (
	"encoding/json"

	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/services"
)

// MailHandler consumes notification events off the queue and turns
// them into outbound email. Events without a resolvable address are
// dropped, not retried.
type MailHandler struct {
	mailSvc *services.MailService
}

func NewMailHandler(mailSvc *services.MailService) *MailHandler {
	return &MailHandler{mailSvc: mailSvc}
}

func (h *MailHandler) HandleMessage(message string) error {
	log := logger.Get()

	var event dto.NotificationEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Error().Err(err).Msg("discarding malformed notification event")
		return nil
	}

	if event.Email == "" {
		log.Debug().Str("recipient", event.Recipient).Msg("notification event has no email address, skipping")
		return nil
	}

	return h.mailSvc.SendNotification(event.Email, event.Title, event.Message)
}
