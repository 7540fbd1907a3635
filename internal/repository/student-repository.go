package repository

import (
	"errors"
	"strings"

	"github.com/placementcell/placement_service/internal/domain"
	"gorm.io/gorm"
)

type StudentRepository interface {
	CreateStudent(st *domain.Student) (*domain.Student, error)
	FindByStudentID(studentID string) (*domain.Student, error)
	ListStudents() ([]domain.Student, error)
	SaveStudent(st *domain.Student) error
	SetVerificationStatus(studentID string, status string) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// CanonicalStudentID uppercases and trims a student identifier; the
// identifier is the natural key and is matched case-insensitively.
func CanonicalStudentID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (r *studentRepository) CreateStudent(st *domain.Student) (*domain.Student, error) {
	if st == nil {
		return nil, errors.New("nil student")
	}
	st.StudentID = CanonicalStudentID(st.StudentID)

	if err := r.db.Create(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}

func (r *studentRepository) FindByStudentID(studentID string) (*domain.Student, error) {
	var st domain.Student
	err := r.db.Where("student_id = ?", CanonicalStudentID(studentID)).First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *studentRepository) ListStudents() ([]domain.Student, error) {
	var students []domain.Student
	if err := r.db.Order("s_no ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) SaveStudent(st *domain.Student) error {
	if st == nil {
		return errors.New("nil student")
	}
	return r.db.Save(st).Error
}

func (r *studentRepository) SetVerificationStatus(studentID string, status string) error {
	res := r.db.Model(&domain.Student{}).
		Where("student_id = ?", CanonicalStudentID(studentID)).
		Update("verification_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
