package dto

const (
	ReportFilterAll      = "all"
	ReportFilterVerified = "verified"
)

// ReportRow is one flattened (student, placement) pair. Source is
// "original" for rows built from the student's legacy record and
// "submitted" for student-submitted placements.
type ReportRow struct {
	SNo       int     `json:"sno"`
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	Company   string  `json:"company"`
	Salary    float64 `json:"salary"`
	Status    string  `json:"status"`
	Photo     string  `json:"photo,omitempty"`
	Logo      string  `json:"logo,omitempty"`
	Source    string  `json:"source"`
}
