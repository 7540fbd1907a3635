package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper/utils"
	"github.com/placementcell/placement_service/internal/interfaces"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/repository"
	"github.com/placementcell/placement_service/internal/worker"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// feedLimit caps how many notifications the feed returns.
const feedLimit = 20

type NotificationService interface {
	// Dispatch persists the notification and hands the email off to the
	// background queue. The persisted row is the source of truth; a
	// failed publish or send is logged and never surfaces to the caller.
	Dispatch(recipient, title, message, ntype string) error

	Feed(recipient string) (*dto.NotificationFeedResponse, error)

	// MarkRead with a nil id marks everything for the recipient.
	MarkRead(recipient string, id *uint) error
}

type notificationService struct {
	repo       repository.NotificationRepository
	producer   interfaces.ProducerHandler
	pool       *worker.Pool
	adminEmail string
	mailDomain string
	log        zerolog.Logger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	producer interfaces.ProducerHandler,
	pool *worker.Pool,
	adminEmail string,
	mailDomain string,
) NotificationService {
	return &notificationService{
		repo:       repo,
		producer:   producer,
		pool:       pool,
		adminEmail: adminEmail,
		mailDomain: mailDomain,
		log:        logger.Get(),
	}
}

func (s *notificationService) Dispatch(recipient, title, message, ntype string) error {
	recipient = NormalizeRecipient(recipient)
	if recipient == "" || strings.TrimSpace(title) == "" {
		return errors.New("recipient and title are required")
	}

	switch ntype {
	case domain.NotificationInfo, domain.NotificationSuccess,
		domain.NotificationWarning, domain.NotificationError:
	default:
		ntype = domain.NotificationInfo
	}

	n := &domain.Notification{
		Recipient: recipient,
		Title:     strings.TrimSpace(title),
		Message:   message,
		Type:      ntype,
	}
	if err := s.repo.CreateNotification(n); err != nil {
		return err
	}

	event := dto.NotificationEvent{
		Recipient: recipient,
		Email:     s.emailFor(recipient),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal notification event failed")
		return nil
	}

	s.pool.Submit(func(ctx context.Context) error {
		if err := s.producer.PublishMessage([]byte("notification.created"), payload); err != nil {
			s.log.Error().Err(err).Str("recipient", recipient).Msg("publish notification event failed")
		}
		return nil
	})

	return nil
}

func (s *notificationService) Feed(recipient string) (*dto.NotificationFeedResponse, error) {
	recipient = NormalizeRecipient(recipient)
	if recipient == "" {
		return nil, errors.New("recipient is required")
	}

	notifications, err := s.repo.ListRecent(recipient, feedLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(recipient)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.NotificationFeedResponse{
		Notifications: out,
		Unread:        unread,
	}, nil
}

func (s *notificationService) MarkRead(recipient string, id *uint) error {
	recipient = NormalizeRecipient(recipient)
	if recipient == "" {
		return errors.New("recipient is required")
	}

	if id == nil {
		return s.repo.MarkAllRead(recipient)
	}

	if err := s.repo.MarkRead(recipient, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) emailFor(recipient string) string {
	if recipient == domain.RecipientAdmin {
		return s.adminEmail
	}
	return utils.StudentEmail(recipient, s.mailDomain)
}

// NormalizeRecipient maps any casing of the admin channel to its
// canonical name and lowercases student identifiers.
func NormalizeRecipient(r string) string {
	r = strings.TrimSpace(r)
	if strings.EqualFold(r, domain.RecipientAdmin) {
		return domain.RecipientAdmin
	}
	return strings.ToLower(r)
}
