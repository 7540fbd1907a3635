package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type PlacementService interface {
	Submit(studentID string, input dto.PlacementCreateRequest, ip string) (*dto.PlacementResponse, error)
	Edit(studentID string, placementID uint, input dto.PlacementUpdateRequest, ip string) (*dto.PlacementResponse, error)
	Delete(studentID string, placementID uint, ip string) error
	ListMine(studentID string) ([]dto.PlacementResponse, error)
	ListAllPlacements() ([]dto.PlacementResponse, error)
	ListPending(limit, offset int) ([]dto.PlacementResponse, error)

	// Verify applies an admin approve/reject to a placement or to a
	// student's original record. Notification and email failures are
	// logged only; the operation's outcome is defined by the status
	// mutation alone.
	Verify(adminID string, input dto.VerifyRequest, ip string) error
}

type placementService struct {
	placementRepo repository.PlacementRepository
	studentRepo   repository.StudentRepository
	activityRepo  repository.ActivityLogRepository
	notifier      NotificationService
	log           zerolog.Logger
}

func NewPlacementService(
	placementRepo repository.PlacementRepository,
	studentRepo repository.StudentRepository,
	activityRepo repository.ActivityLogRepository,
	notifier NotificationService,
) PlacementService {
	return &placementService{
		placementRepo: placementRepo,
		studentRepo:   studentRepo,
		activityRepo:  activityRepo,
		notifier:      notifier,
		log:           logger.Get(),
	}
}

func (s *placementService) Submit(studentID string, input dto.PlacementCreateRequest, ip string) (*dto.PlacementResponse, error) {
	company := strings.TrimSpace(input.Company)
	if company == "" {
		return nil, errors.New("company is required")
	}
	if input.Salary <= 0 {
		return nil, errors.New("salary must be greater than zero")
	}

	st, err := s.studentRepo.FindByStudentID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if st.Photo == "" {
		return nil, errors.New("upload a profile photo before submitting a placement")
	}

	p := &domain.Placement{
		StudentID:          st.StudentID,
		Company:            company,
		Salary:             input.Salary,
		Logo:               strings.TrimSpace(input.Logo),
		Photo:              st.Photo,
		VerificationStatus: domain.VerifyPending,
	}
	if _, err := s.placementRepo.CreatePlacement(p); err != nil {
		return nil, err
	}

	if err := s.notifier.Dispatch(
		domain.RecipientAdmin,
		"New placement submission",
		fmt.Sprintf("%s submitted a placement at %s.", st.StudentID, company),
		domain.NotificationInfo,
	); err != nil {
		s.log.Error().Err(err).Msg("dispatch submission notification failed")
	}

	s.logActivity(st.StudentID, "placement.submit", fmt.Sprintf("placement %d at %s", p.ID, company), ip)

	resp := toPlacementResponse(p)
	return &resp, nil
}

func (s *placementService) Edit(studentID string, placementID uint, input dto.PlacementUpdateRequest, ip string) (*dto.PlacementResponse, error) {
	p, err := s.placementRepo.FindByID(placementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.StudentID != repository.CanonicalStudentID(studentID) {
		return nil, ErrForbidden
	}

	if input.Company != nil {
		c := strings.TrimSpace(*input.Company)
		if c == "" {
			return nil, errors.New("company cannot be empty")
		}
		p.Company = c
	}
	if input.Salary != nil {
		if *input.Salary <= 0 {
			return nil, errors.New("salary must be greater than zero")
		}
		p.Salary = *input.Salary
	}
	if input.Logo != nil {
		p.Logo = strings.TrimSpace(*input.Logo)
	}
	if input.Photo != nil {
		p.Photo = strings.TrimSpace(*input.Photo)
	}

	// Any content edit drops a prior verified/rejected decision.
	p.VerificationStatus = domain.VerifyPending

	if err := s.placementRepo.SavePlacement(p); err != nil {
		return nil, err
	}

	s.logActivity(p.StudentID, "placement.edit", fmt.Sprintf("placement %d at %s", p.ID, p.Company), ip)

	resp := toPlacementResponse(p)
	return &resp, nil
}

func (s *placementService) Delete(studentID string, placementID uint, ip string) error {
	p, err := s.placementRepo.FindByID(placementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.StudentID != repository.CanonicalStudentID(studentID) {
		return ErrForbidden
	}
	if p.IsOriginal {
		return ErrForbidden
	}

	if err := s.placementRepo.DeletePlacement(p.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logActivity(p.StudentID, "placement.delete", fmt.Sprintf("placement %d at %s", p.ID, p.Company), ip)
	return nil
}

func (s *placementService) ListMine(studentID string) ([]dto.PlacementResponse, error) {
	placements, err := s.placementRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return toPlacementResponses(placements), nil
}

func (s *placementService) ListAllPlacements() ([]dto.PlacementResponse, error) {
	placements, err := s.placementRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toPlacementResponses(placements), nil
}

func (s *placementService) ListPending(limit, offset int) ([]dto.PlacementResponse, error) {
	placements, err := s.placementRepo.ListPending(limit, offset)
	if err != nil {
		return nil, err
	}
	return toPlacementResponses(placements), nil
}

func (s *placementService) Verify(adminID string, input dto.VerifyRequest, ip string) error {
	var status string
	switch domain.VerifyAction(input.Action) {
	case domain.VerifyActionApprove:
		status = domain.VerifyVerified
	case domain.VerifyActionReject:
		status = domain.VerifyRejected
	default:
		return errors.New("invalid action")
	}

	var owner, company, detail string

	switch domain.RecordKind(input.Type) {
	case domain.RecordKindPlacement:
		id64, err := strconv.ParseUint(strings.TrimSpace(input.ID), 10, 64)
		if err != nil {
			return errors.New("invalid placement id")
		}
		p, err := s.placementRepo.FindByID(uint(id64))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.placementRepo.SetVerificationStatus(p.ID, status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		owner = p.StudentID
		company = p.Company
		detail = fmt.Sprintf("placement %d at %s", p.ID, p.Company)

	case domain.RecordKindOriginal:
		st, err := s.studentRepo.FindByStudentID(input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.studentRepo.SetVerificationStatus(st.StudentID, status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		owner = st.StudentID
		company = st.Company
		detail = "original record " + st.StudentID

	default:
		return errors.New("invalid record type")
	}

	// Notify the owning student if they resolve; dispatch failure never
	// fails the verification.
	if _, err := s.studentRepo.FindByStudentID(owner); err == nil {
		title, message, ntype := verifyNotification(status, company)
		if err := s.notifier.Dispatch(owner, title, message, ntype); err != nil {
			s.log.Error().Err(err).Str("recipient", owner).Msg("dispatch verification notification failed")
		}
	}

	s.logActivity(adminID, "verify."+input.Action, detail, ip)
	return nil
}

func verifyNotification(status, company string) (title, message, ntype string) {
	target := "Your placement record"
	if company != "" {
		target = "Your placement at " + company
	}

	if status == domain.VerifyVerified {
		return "Placement Verified",
			fmt.Sprintf("Congratulations! %s has been verified.", target),
			domain.NotificationSuccess
	}
	return "Placement Rejected",
		fmt.Sprintf("%s was rejected. Please review the details and resubmit.", target),
		domain.NotificationError
}

func (s *placementService) logActivity(actor, action, details, ip string) {
	entry := &domain.ActivityLog{
		Actor:   actor,
		Action:  action,
		Details: details,
		IP:      ip,
	}
	if err := s.activityRepo.CreateEntry(entry); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("write activity log failed")
	}
}

func toPlacementResponse(p *domain.Placement) dto.PlacementResponse {
	return dto.PlacementResponse{
		ID:                 p.ID,
		StudentID:          p.StudentID,
		Company:            p.Company,
		Salary:             p.Salary,
		Photo:              p.Photo,
		Logo:               p.Logo,
		VerificationStatus: p.VerificationStatus,
		IsOriginal:         p.IsOriginal,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPlacementResponses(placements []domain.Placement) []dto.PlacementResponse {
	out := make([]dto.PlacementResponse, 0, len(placements))
	for i := range placements {
		out = append(out, toPlacementResponse(&placements[i]))
	}
	return out
}
