package services

import (
	"errors"
	"strings"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/helper"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StudentService interface {
	Login(input dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(studentID string) (*dto.StudentResponse, error)
	ListStudents() ([]dto.StudentResponse, error)
	IsAdmin(studentID string) (bool, error)

	// Admin provisioning and edits.
	CreateStudent(input dto.StudentCreateRequest, ip string) (*dto.StudentResponse, error)
	UpdateStudent(studentID string, input dto.StudentUpdateRequest, ip string) (*dto.StudentResponse, error)

	// SetPhoto stores a freshly uploaded profile photo URL and resets
	// the student's verification status to pending.
	SetPhoto(studentID, url, ip string) error

	// SweepPhotoVerification is the startup consistency pass forcing
	// photo-less students back to pending.
	SweepPhotoVerification() error
}

type studentService struct {
	repo         repository.StudentRepository
	activityRepo repository.ActivityLogRepository
	auth         helper.Auth
	log          zerolog.Logger
}

func NewStudentService(
	repo repository.StudentRepository,
	activityRepo repository.ActivityLogRepository,
	auth helper.Auth,
) StudentService {
	return &studentService{
		repo:         repo,
		activityRepo: activityRepo,
		auth:         auth,
		log:          logger.Get(),
	}
}

func (s *studentService) Login(input dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(input.StudentID) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.New("invalid student id or password")
	}

	st, err := s.repo.FindByStudentID(input.StudentID)
	if err != nil {
		return nil, errors.New("invalid student id or password")
	}

	if err := s.auth.VerifyPassword(input.Password, st.PasswordHash); err != nil {
		return nil, errors.New("invalid student id or password")
	}

	token, err := s.auth.GenerateToken(st.StudentID, st.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:   token,
		Student: toStudentResponse(st),
	}, nil
}

func (s *studentService) GetProfile(studentID string) (*dto.StudentResponse, error) {
	st, err := s.repo.FindByStudentID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toStudentResponse(st)
	return &resp, nil
}

func (s *studentService) ListStudents() ([]dto.StudentResponse, error) {
	students, err := s.repo.ListStudents()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, toStudentResponse(&students[i]))
	}
	return out, nil
}

func (s *studentService) IsAdmin(studentID string) (bool, error) {
	st, err := s.repo.FindByStudentID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return st.Role == domain.RoleAdmin, nil
}

func (s *studentService) CreateStudent(input dto.StudentCreateRequest, ip string) (*dto.StudentResponse, error) {
	id := repository.CanonicalStudentID(input.StudentID)
	name := strings.TrimSpace(input.Name)
	if id == "" || name == "" {
		return nil, errors.New("student id and name are required")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	if existing, err := s.repo.FindByStudentID(id); err == nil && existing != nil {
		return nil, errors.New("student already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	// New accounts start verified; accounts without a photo are forced
	// back to pending, matching the startup sweep.
	status := domain.VerifyVerified
	if strings.TrimSpace(input.Photo) == "" {
		status = domain.VerifyPending
	}

	st := &domain.Student{
		StudentID:          id,
		SNo:                input.SNo,
		Name:               name,
		Photo:              strings.TrimSpace(input.Photo),
		Company:            strings.TrimSpace(input.Company),
		Salary:             input.Salary,
		Logo:               strings.TrimSpace(input.Logo),
		PasswordHash:       string(hashed),
		Role:               domain.RoleStudent,
		VerificationStatus: status,
	}
	if _, err := s.repo.CreateStudent(st); err != nil {
		return nil, err
	}

	s.logActivity(domain.RecipientAdmin, "student.create", "student "+id, ip)

	resp := toStudentResponse(st)
	return &resp, nil
}

func (s *studentService) UpdateStudent(studentID string, input dto.StudentUpdateRequest, ip string) (*dto.StudentResponse, error) {
	st, err := s.repo.FindByStudentID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		n := strings.TrimSpace(*input.Name)
		if n == "" {
			return nil, errors.New("name cannot be empty")
		}
		st.Name = n
	}
	if input.Company != nil {
		st.Company = strings.TrimSpace(*input.Company)
	}
	if input.Salary != nil {
		st.Salary = *input.Salary
	}
	if input.Logo != nil {
		st.Logo = strings.TrimSpace(*input.Logo)
	}

	if err := s.repo.SaveStudent(st); err != nil {
		return nil, err
	}

	s.logActivity(domain.RecipientAdmin, "student.update", "student "+st.StudentID, ip)

	resp := toStudentResponse(st)
	return &resp, nil
}

func (s *studentService) SetPhoto(studentID, url, ip string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("photo url is required")
	}

	st, err := s.repo.FindByStudentID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	st.Photo = strings.TrimSpace(url)
	// A re-upload always sends the record back for re-verification.
	st.VerificationStatus = domain.VerifyPending

	if err := s.repo.SaveStudent(st); err != nil {
		return err
	}

	s.logActivity(st.StudentID, "student.photo", "profile photo updated", ip)
	return nil
}

func (s *studentService) SweepPhotoVerification() error {
	students, err := s.repo.ListStudents()
	if err != nil {
		return err
	}

	swept := 0
	for i := range students {
		st := &students[i]
		if st.Role == domain.RoleAdmin {
			continue
		}
		if st.Photo == "" && st.VerificationStatus != domain.VerifyPending {
			if err := s.repo.SetVerificationStatus(st.StudentID, domain.VerifyPending); err != nil {
				s.log.Error().Err(err).Str("student_id", st.StudentID).Msg("photo sweep update failed")
				continue
			}
			swept++
		}
	}

	if swept > 0 {
		s.log.Info().Int("students", swept).Msg("photo verification sweep forced records back to pending")
	}
	return nil
}

func (s *studentService) logActivity(actor, action, details, ip string) {
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

func toStudentResponse(st *domain.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:                 st.ID,
		StudentID:          st.StudentID,
		SNo:                st.SNo,
		Name:               st.Name,
		Photo:              st.Photo,
		Company:            st.Company,
		Salary:             st.Salary,
		Logo:               st.Logo,
		Role:               st.Role,
		VerificationStatus: st.VerificationStatus,
	}
}
