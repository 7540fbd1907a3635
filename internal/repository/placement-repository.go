package repository

import (
	"errors"

	"github.com/placementcell/placement_service/internal/domain"
	"gorm.io/gorm"
)

type PlacementRepository interface {
	CreatePlacement(p *domain.Placement) (*domain.Placement, error)
	FindByID(id uint) (*domain.Placement, error)
	ListByStudent(studentID string) ([]domain.Placement, error)
	ListAll() ([]domain.Placement, error)
	ListPending(limit, offset int) ([]domain.Placement, error)
	SavePlacement(p *domain.Placement) error
	DeletePlacement(id uint) error
	SetVerificationStatus(id uint, status string) error
}

type placementRepository struct {
	db *gorm.DB
}

func NewPlacementRepository(db *gorm.DB) PlacementRepository {
	return &placementRepository{db: db}
}

func (r *placementRepository) CreatePlacement(p *domain.Placement) (*domain.Placement, error) {
	if p == nil {
		return nil, errors.New("nil placement")
	}
	p.StudentID = CanonicalStudentID(p.StudentID)

	if err := r.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *placementRepository) FindByID(id uint) (*domain.Placement, error) {
	var p domain.Placement
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *placementRepository) ListByStudent(studentID string) ([]domain.Placement, error) {
	var placements []domain.Placement
	err := r.db.
		Where("student_id = ?", CanonicalStudentID(studentID)).
		Order("created_at DESC").
		Find(&placements).Error
	if err != nil {
		return nil, err
	}
	return placements, nil
}

func (r *placementRepository) ListAll() ([]domain.Placement, error) {
	var placements []domain.Placement
	if err := r.db.Order("student_id ASC, created_at ASC").Find(&placements).Error; err != nil {
		return nil, err
	}
	return placements, nil
}

func (r *placementRepository) ListPending(limit, offset int) ([]domain.Placement, error) {
	var placements []domain.Placement
	err := r.db.
		Where("verification_status = ?", domain.VerifyPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&placements).Error
	if err != nil {
		return nil, err
	}
	return placements, nil
}

func (r *placementRepository) SavePlacement(p *domain.Placement) error {
	if p == nil {
		return errors.New("nil placement")
	}
	return r.db.Save(p).Error
}

func (r *placementRepository) DeletePlacement(id uint) error {
	res := r.db.Delete(&domain.Placement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *placementRepository) SetVerificationStatus(id uint, status string) error {
	res := r.db.Model(&domain.Placement{}).
		Where("id = ?", id).
		Update("verification_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
