package services

import (
	"bytes"
	"testing"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type reportFixture struct {
	studentRepo   *fakeStudentRepo
	placementRepo *fakePlacementRepo
	companyRepo   *fakeCompanyRepo
	svc           ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	f := &reportFixture{
		studentRepo:   newFakeStudentRepo(),
		placementRepo: newFakePlacementRepo(),
		companyRepo:   newFakeCompanyRepo(),
	}
	f.svc = NewReportService(f.studentRepo, f.placementRepo, f.companyRepo)

	students := []domain.Student{
		{StudentID: "22BD1A0001", SNo: 1, Name: "Asha Rao", Photo: "https://res.cloudinary.com/demo/asha.jpg",
			Role: domain.RoleStudent, VerificationStatus: domain.VerifyVerified},
		{StudentID: "22BD1A0002", SNo: 2, Name: "Legacy Only", Photo: "legacy.jpg",
			Company: "Infosys", Salary: 4.5, Logo: "https://logos.example/infosys-own.png",
			Role: domain.RoleStudent, VerificationStatus: domain.VerifyVerified},
		{StudentID: "22BD1A0003", SNo: 3, Name: "Pending Legacy", Photo: "",
			Company: "Wipro", Salary: 3.5,
			Role: domain.RoleStudent, VerificationStatus: domain.VerifyPending},
		{StudentID: "ADMIN1", Name: "Admin", Role: domain.RoleAdmin, VerificationStatus: domain.VerifyVerified},
	}
	for i := range students {
		_, err := f.studentRepo.CreateStudent(&students[i])
		require.NoError(t, err)
	}

	placements := []domain.Placement{
		{StudentID: "22BD1A0001", Company: "Google Pvt Ltd.", Salary: 12,
			VerificationStatus: domain.VerifyVerified},
		{StudentID: "22BD1A0001", Company: "Amazon", Salary: 14,
			VerificationStatus: domain.VerifyPending},
	}
	for i := range placements {
		_, err := f.placementRepo.CreatePlacement(&placements[i])
		require.NoError(t, err)
	}

	_, err := f.companyRepo.CreateCompany(&domain.Company{
		Name: "Google", Logo: "https://logos.example/google.png",
	})
	require.NoError(t, err)

	return f
}

func TestBuildFlattensStudentsAndPlacements(t *testing.T) {
	f := newReportFixture(t)

	rows, err := f.svc.Build(dto.ReportFilterAll)
	require.NoError(t, err)

	// two submitted rows + two original rows; the admin contributes none
	require.Len(t, rows, 4)

	byCompany := map[string]dto.ReportRow{}
	for _, r := range rows {
		byCompany[r.Company] = r
	}

	google := byCompany["Google Pvt Ltd."]
	assert.Equal(t, "22BD1A0001", google.StudentID)
	assert.Equal(t, "submitted", google.Source)
	// registry entry wins on the canonical key despite the messy name
	assert.Equal(t, "https://logos.example/google.png", google.Logo)
	// placement has no photo of its own, falls back to the student's
	assert.Equal(t, "https://res.cloudinary.com/demo/asha.jpg", google.Photo)

	infosys := byCompany["Infosys"]
	assert.Equal(t, "original", infosys.Source)
	// no registry match, the row's own remote URL is trusted
	assert.Equal(t, "https://logos.example/infosys-own.png", infosys.Logo)
	// legacy relative photo paths get the serving prefix
	assert.Equal(t, "/uploads/photos/legacy.jpg", infosys.Photo)

	wipro := byCompany["Wipro"]
	assert.Equal(t, domain.VerifyPending, wipro.Status)
	assert.Empty(t, wipro.Logo)
	assert.Empty(t, wipro.Photo)
}

func TestBuildVerifiedFilter(t *testing.T) {
	f := newReportFixture(t)

	rows, err := f.svc.Build(dto.ReportFilterVerified)
	require.NoError(t, err)

	// pending Amazon placement and the pending legacy student drop out
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, domain.VerifyVerified, r.Status)
	}
}

func TestBuildRejectsUnknownFilter(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.svc.Build("everything")
	assert.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	f := newReportFixture(t)

	b, err := f.svc.ExportXLSX(dto.ReportFilterAll)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	wb, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	header, err := wb.GetCellValue("Placements", "A1")
	require.NoError(t, err)
	assert.Equal(t, "S.No", header)

	studentID, err := wb.GetCellValue("Placements", "B2")
	require.NoError(t, err)
	assert.Equal(t, "22BD1A0001", studentID)

	rows, err := wb.GetRows("Placements")
	require.NoError(t, err)
	assert.Len(t, rows, 5) // header + 4 data rows
}
