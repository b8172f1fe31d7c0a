package repositories

import (
	"sop-manager/models"

	"gorm.io/gorm"
)

type QuestionnaireRepository interface {
	Create(q *models.Questionnaire) error
	GetByID(id uint) (*models.Questionnaire, error)
	GetAll() ([]models.Questionnaire, error)
	GetBySOP(sopID uint) ([]models.Questionnaire, error)
	Update(q *models.Questionnaire) error
	Delete(id uint) error
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

func (r *questionnaireRepository) Create(q *models.Questionnaire) error {
	return r.db.Create(q).Error
}

func (r *questionnaireRepository) GetByID(id uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	err := r.db.Preload("SOP").First(&q, id).Error
	return &q, err
}

func (r *questionnaireRepository) GetAll() ([]models.Questionnaire, error) {
	var qs []models.Questionnaire
	err := r.db.Preload("SOP").Order("created_at desc").Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) GetBySOP(sopID uint) ([]models.Questionnaire, error) {
	var qs []models.Questionnaire
	err := r.db.Where("sop_id = ?", sopID).Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) Update(q *models.Questionnaire) error {
	return r.db.Save(q).Error
}

func (r *questionnaireRepository) Delete(id uint) error {
	return r.db.Delete(&models.Questionnaire{}, id).Error
}
