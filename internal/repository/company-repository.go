package repository

import (
	"errors"

	"github.com/placementcell/placement_service/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	CreateCompany(c *domain.Company) (*domain.Company, error)
	FindByID(id uint) (*domain.Company, error)
	ListCompanies() ([]domain.Company, error)
	SaveCompany(c *domain.Company) error
	DeleteCompany(id uint) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) CreateCompany(c *domain.Company) (*domain.Company, error) {
	if c == nil {
		return nil, errors.New("nil company")
	}
	if err := r.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *companyRepository) FindByID(id uint) (*domain.Company, error) {
	var c domain.Company
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) ListCompanies() ([]domain.Company, error) {
	var companies []domain.Company
	if err := r.db.Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) SaveCompany(c *domain.Company) error {
	if c == nil {
		return errors.New("nil company")
	}
	return r.db.Save(c).Error
}

func (r *companyRepository) DeleteCompany(id uint) error {
	res := r.db.Delete(&domain.Company{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
