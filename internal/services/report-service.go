package services

import (
	"errors"
	"path"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/repository"
	"github.com/placementcell/placement_service/pkg/names"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// photoURLPrefix is where legacy relative photo paths are served from.
const photoURLPrefix = "/uploads/photos"

// ReportService is a read-only projection over students, placements
// and the company registry, joined on the canonical company-name key.
type ReportService interface {
	Build(filter string) ([]dto.ReportRow, error)
	ExportXLSX(filter string) ([]byte, error)
}

type reportService struct {
	studentRepo   repository.StudentRepository
	placementRepo repository.PlacementRepository
	companyRepo   repository.CompanyRepository
	log           zerolog.Logger
}

func NewReportService(
	studentRepo repository.StudentRepository,
	placementRepo repository.PlacementRepository,
	companyRepo repository.CompanyRepository,
) ReportService {
	return &reportService{
		studentRepo:   studentRepo,
		placementRepo: placementRepo,
		companyRepo:   companyRepo,
		log:           logger.Get(),
	}
}

// Build flattens the data set into one row per (student, placement)
// pair. A student with no placements contributes a single row from
// their original record.
func (s *reportService) Build(filter string) ([]dto.ReportRow, error) {
	if filter != dto.ReportFilterAll && filter != dto.ReportFilterVerified {
		return nil, errors.New("invalid report filter")
	}

	students, err := s.studentRepo.ListStudents()
	if err != nil {
		return nil, err
	}
	placements, err := s.placementRepo.ListAll()
	if err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.ListCompanies()
	if err != nil {
		return nil, err
	}

	registry := buildRegistry(companies)

	byStudent := make(map[string][]domain.Placement)
	for _, p := range placements {
		byStudent[p.StudentID] = append(byStudent[p.StudentID], p)
	}

	var rows []dto.ReportRow
	for i := range students {
		st := &students[i]
		if st.Role == domain.RoleAdmin {
			continue
		}

		subs := byStudent[st.StudentID]
		if len(subs) == 0 {
			if filter == dto.ReportFilterVerified && st.VerificationStatus != domain.VerifyVerified {
				continue
			}
			rows = append(rows, dto.ReportRow{
				SNo:       st.SNo,
				StudentID: st.StudentID,
				Name:      st.Name,
				Company:   st.Company,
				Salary:    st.Salary,
				Status:    st.VerificationStatus,
				Photo:     resolvePhoto(st.Photo),
				Logo:      resolveLogo(st.Company, st.Logo, registry),
				Source:    "original",
			})
			continue
		}

		for _, p := range subs {
			if filter == dto.ReportFilterVerified && p.VerificationStatus != domain.VerifyVerified {
				continue
			}
			photo := p.Photo
			if photo == "" {
				photo = st.Photo
			}
			rows = append(rows, dto.ReportRow{
				SNo:       st.SNo,
				StudentID: st.StudentID,
				Name:      st.Name,
				Company:   p.Company,
				Salary:    p.Salary,
				Status:    p.VerificationStatus,
				Photo:     resolvePhoto(photo),
				Logo:      resolveLogo(p.Company, p.Logo, registry),
				Source:    "submitted",
			})
		}
	}

	return rows, nil
}

func (s *reportService) ExportXLSX(filter string) ([]byte, error) {
	rows, err := s.Build(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Placements"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"S.No", "Student ID", "Name", "Company", "Salary (LPA)", "Status", "Photo", "Logo", "Source"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		values := []interface{}{
			row.SNo, row.StudentID, row.Name, row.Company,
			row.Salary, row.Status, row.Photo, row.Logo, row.Source,
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildRegistry indexes the company registry by canonical key. When two
// entries collide, the one that already has a logo wins.
func buildRegistry(companies []domain.Company) map[string]domain.Company {
	registry := make(map[string]domain.Company, len(companies))
	for _, c := range companies {
		key := names.Normalize(c.Name)
		if key == "" {
			continue
		}
		existing, ok := registry[key]
		if !ok || (existing.Logo == "" && c.Logo != "") {
			registry[key] = c
		}
	}
	return registry
}

// resolveLogo prefers the registry entry for the row's company; the
// row's own stored logo is only trusted when it is a remote URL.
func resolveLogo(company, ownLogo string, registry map[string]domain.Company) string {
	if c, ok := registry[names.Normalize(company)]; ok && c.Logo != "" {
		return c.Logo
	}
	if names.IsRemoteURL(ownLogo) {
		return ownLogo
	}
	return ""
}

// resolvePhoto passes remote URLs through and treats anything else as a
// legacy relative path.
func resolvePhoto(photo string) string {
	if photo == "" {
		return ""
	}
	if names.IsRemoteURL(photo) {
		return photo
	}
	return path.Join(photoURLPrefix, photo)
}
