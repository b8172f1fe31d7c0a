package repositories

import (
	"sop-manager/models"

	"gorm.io/gorm"
)

type ShadowingRepository interface {
	Create(obs *models.ShadowingObservation) error
	GetByID(id uint) (*models.ShadowingObservation, error)
	GetAll() ([]models.ShadowingObservation, error)
	GetBySOP(sopID uint) ([]models.ShadowingObservation, error)
	Update(obs *models.ShadowingObservation) error
	Delete(id uint) error
}

type shadowingRepository struct {
	db *gorm.DB
}

func NewShadowingRepository(db *gorm.DB) ShadowingRepository {
	return &shadowingRepository{db: db}
}

func (r *shadowingRepository) Create(obs *models.ShadowingObservation) error {
	return r.db.Create(obs).Error
}

func (r *shadowingRepository) GetByID(id uint) (*models.ShadowingObservation, error) {
	var obs models.ShadowingObservation
	err := r.db.Preload("SOP").First(&obs, id).Error
	return &obs, err
}

func (r *shadowingRepository) GetAll() ([]models.ShadowingObservation, error) {
	var list []models.ShadowingObservation
	err := r.db.Preload("SOP").Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *shadowingRepository) GetBySOP(sopID uint) ([]models.ShadowingObservation, error) {
	var list []models.ShadowingObservation
	err := r.db.Where("sop_id = ?", sopID).Find(&list).Error
	return list, err
}

func (r *shadowingRepository) Update(obs *models.ShadowingObservation) error {
	return r.db.Save(obs).Error
}

func (r *shadowingRepository) Delete(id uint) error {
	return r.db.Delete(&models.ShadowingObservation{}, id).Error
}
