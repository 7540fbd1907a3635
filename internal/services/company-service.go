package services

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/repository"
	"github.com/placementcell/placement_service/pkg/names"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// logoURLPrefix is where locally synced logo assets are served from.
const logoURLPrefix = "/uploads/logos"

type CompanyService interface {
	ListCompanies() ([]dto.CompanyResponse, error)
	CreateCompany(input dto.CompanyCreateRequest, ip string) (*dto.CompanyResponse, error)
	UpdateCompany(id uint, input dto.CompanyUpdateRequest, ip string) (*dto.CompanyResponse, error)
	DeleteCompany(id uint, ip string) error

	// SyncLogoAssets reconciles the local logo directory against the
	// registry: unmatched files become new companies, and local logo
	// references whose backing file is gone are cleared. Remote URLs
	// are left alone.
	SyncLogoAssets() error

	// MergeDuplicates folds registry entries whose names share a
	// canonical key, preferring the entry that already has a logo.
	MergeDuplicates() error
}

type companyService struct {
	repo         repository.CompanyRepository
	activityRepo repository.ActivityLogRepository
	logoDir      string
	log          zerolog.Logger
}

func NewCompanyService(
	repo repository.CompanyRepository,
	activityRepo repository.ActivityLogRepository,
	logoDir string,
) CompanyService {
	return &companyService{
		repo:         repo,
		activityRepo: activityRepo,
		logoDir:      logoDir,
		log:          logger.Get(),
	}
}

func (s *companyService) ListCompanies() ([]dto.CompanyResponse, error) {
	companies, err := s.repo.ListCompanies()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(&c))
	}
	return out, nil
}

// CreateCompany treats a canonical-key collision as the same entity:
// instead of inserting a duplicate it backfills the existing entry's
// logo when only the new side has one.
func (s *companyService) CreateCompany(input dto.CompanyCreateRequest, ip string) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("company name is required")
	}
	logo := strings.TrimSpace(input.Logo)

	companies, err := s.repo.ListCompanies()
	if err != nil {
		return nil, err
	}
	key := names.Normalize(name)
	for i := range companies {
		if names.Normalize(companies[i].Name) != key {
			continue
		}
		existing := &companies[i]
		if existing.Logo == "" && logo != "" {
			existing.Logo = logo
			if err := s.repo.SaveCompany(existing); err != nil {
				return nil, err
			}
		}
		resp := toCompanyResponse(existing)
		return &resp, nil
	}

	c := &domain.Company{Name: name, Logo: logo}
	if _, err := s.repo.CreateCompany(c); err != nil {
		return nil, err
	}

	s.logActivity("company.create", "company "+name, ip)

	resp := toCompanyResponse(c)
	return &resp, nil
}

func (s *companyService) UpdateCompany(id uint, input dto.CompanyUpdateRequest, ip string) (*dto.CompanyResponse, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		n := strings.TrimSpace(*input.Name)
		if n == "" {
			return nil, errors.New("company name cannot be empty")
		}
		c.Name = n
	}
	if input.Logo != nil {
		c.Logo = strings.TrimSpace(*input.Logo)
	}

	if err := s.repo.SaveCompany(c); err != nil {
		return nil, err
	}

	s.logActivity("company.update", "company "+c.Name, ip)

	resp := toCompanyResponse(c)
	return &resp, nil
}

func (s *companyService) DeleteCompany(id uint, ip string) error {
	if err := s.repo.DeleteCompany(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.logActivity("company.delete", fmt.Sprintf("company id %d", id), ip)
	return nil
}

func (s *companyService) SyncLogoAssets() error {
	if s.logoDir == "" {
		s.log.Debug().Msg("no logo directory configured, skipping sync")
		return nil
	}

	entries, err := os.ReadDir(s.logoDir)
	if err != nil {
		return err
	}

	companies, err := s.repo.ListCompanies()
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		known[names.Normalize(c.Name)] = struct{}{}
	}

	present := make(map[string]struct{}, len(entries))
	added := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		filename := e.Name()
		present[filename] = struct{}{}

		base := strings.TrimSuffix(filename, filepath.Ext(filename))
		key := names.Normalize(base)
		if key == "" {
			continue
		}
		if _, ok := known[key]; ok {
			continue
		}

		c := &domain.Company{
			Name: base,
			Logo: path.Join(logoURLPrefix, filename),
		}
		if _, err := s.repo.CreateCompany(c); err != nil {
			s.log.Error().Err(err).Str("company", base).Msg("create company from logo asset failed")
			continue
		}
		known[key] = struct{}{}
		added++
	}

	// Clear registry references whose backing file is gone. Remote
	// logos are not checked against the local directory.
	cleared := 0
	for i := range companies {
		c := &companies[i]
		if c.Logo == "" || names.IsRemoteURL(c.Logo) {
			continue
		}
		if _, ok := present[filepath.Base(c.Logo)]; ok {
			continue
		}
		c.Logo = ""
		if err := s.repo.SaveCompany(c); err != nil {
			s.log.Error().Err(err).Str("company", c.Name).Msg("clear stale logo failed")
			continue
		}
		cleared++
	}

	s.log.Info().Int("added", added).Int("cleared", cleared).Msg("company logo sync finished")
	return nil
}

func (s *companyService) MergeDuplicates() error {
	companies, err := s.repo.ListCompanies()
	if err != nil {
		return err
	}

	groups := make(map[string][]domain.Company)
	for _, c := range companies {
		key := names.Normalize(c.Name)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], c)
	}

	merged := 0
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		// Keep the entry that already has a logo.
		keeper := group[0]
		for _, c := range group {
			if c.Logo != "" {
				keeper = c
				break
			}
		}

		for _, c := range group {
			if c.ID == keeper.ID {
				continue
			}
			if keeper.Logo == "" && c.Logo != "" {
				keeper.Logo = c.Logo
				if err := s.repo.SaveCompany(&keeper); err != nil {
					s.log.Error().Err(err).Str("company", keeper.Name).Msg("merge logo carry-over failed")
				}
			}
			if err := s.repo.DeleteCompany(c.ID); err != nil {
				s.log.Error().Err(err).Str("company", c.Name).Msg("delete duplicate company failed")
				continue
			}
			merged++
		}
	}

	if merged > 0 {
		s.log.Info().Int("merged", merged).Msg("duplicate companies folded")
	}
	return nil
}

func (s *companyService) logActivity(action, details, ip string) {
	entry := &domain.ActivityLog{
		Actor:   domain.RecipientAdmin,
		Action:  action,
		Details: details,
		IP:      ip,
	}
	if err := s.activityRepo.CreateEntry(entry); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("write activity log failed")
	}
}

func toCompanyResponse(c *domain.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:   c.ID,
		Name: c.Name,
		Logo: c.Logo,
	}
}
