package repositories

import (
	"sop-manager/models"

	"gorm.io/gorm"
)

type WorkflowRepository interface {
	ListSteps() ([]models.WorkflowStep, error)
	GetStepByID(id uint) (*models.WorkflowStep, error)
	GetStepByStatusKey(key string) (*models.WorkflowStep, error)
	CreateStep(step *models.WorkflowStep) error
	UpdateStep(step *models.WorkflowStep) error
	DeleteStep(id uint) error
	MaxStepOrder() (int, error)
	ReorderSteps(order []models.WorkflowStepOrder) error

	ListTransitions() ([]models.WorkflowTransition, error)
	FindTransition(from, to string) (*models.WorkflowTransition, error)
	ReplaceTransitions(transitions []models.WorkflowTransition) error
	DeleteTransitionsForStatus(statusKey string) error
}

type workflowRepository struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) ListSteps() ([]models.WorkflowStep, error) {
	var steps []models.WorkflowStep
	err := r.db.Order("step_order asc").Find(&steps).Error
	return steps, err
}

func (r *workflowRepository) GetStepByID(id uint) (*models.WorkflowStep, error) {
	var step models.WorkflowStep
	err := r.db.First(&step, id).Error
	return &step, err
}

func (r *workflowRepository) GetStepByStatusKey(key string) (*models.WorkflowStep, error) {
	var step models.WorkflowStep
	err := r.db.Where("status_key = ?", key).First(&step).Error
	return &step, err
}

func (r *workflowRepository) CreateStep(step *models.WorkflowStep) error {
	return r.db.Create(step).Error
}

func (r *workflowRepository) UpdateStep(step *models.WorkflowStep) error {
	return r.db.Save(step).Error
}

func (r *workflowRepository) DeleteStep(id uint) error {
	return r.db.Delete(&models.WorkflowStep{}, id).Error
}

func (r *workflowRepository) MaxStepOrder() (int, error) {
	var max int
	err := r.db.Model(&models.WorkflowStep{}).
		Select("COALESCE(MAX(step_order), 0)").
		Scan(&max).Error
	return max, err
}

func (r *workflowRepository) ReorderSteps(order []models.WorkflowStepOrder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order {
			err := tx.Model(&models.WorkflowStep{}).
				Where("id = ?", item.ID).
				Update("step_order", item.StepOrder).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workflowRepository) ListTransitions() ([]models.WorkflowTransition, error) {
	var transitions []models.WorkflowTransition
	err := r.db.Find(&transitions).Error
	return transitions, err
}

func (r *workflowRepository) FindTransition(from, to string) (*models.WorkflowTransition, error) {
	var transition models.WorkflowTransition
	err := r.db.Where("from_status = ? AND to_status = ?", from, to).First(&transition).Error
	return &transition, err
}

func (r *workflowRepository) ReplaceTransitions(transitions []models.WorkflowTransition) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.WorkflowTransition{}).Error; err != nil {
			return err
		}
		for i := range transitions {
			transitions[i].ID = 0
			if err := tx.Create(&transitions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workflowRepository) DeleteTransitionsForStatus(statusKey string) error {
	return r.db.Where("from_status = ? OR to_status = ?", statusKey, statusKey).
		Delete(&models.WorkflowTransition{}).Error
}
