package repositories

import (
	"errors"
	"fmt"
	"time"

	"sop-manager/models"

	"gorm.io/gorm"
)

type SOPRepository interface {
	Create(sop *models.SOP) error
	GetByID(id uint) (*models.SOP, error)
	GetList() ([]models.SOP, error)
	Update(sop *models.SOP) error
	Delete(id uint) error
	NextSOPNumber() (string, error)
	UpdateStatus(id uint, status models.SOPStatus) error
	DemoteOverdue(now time.Time) (int64, error)
	CountByStatus(status models.SOPStatus) (int64, error)

	CreateStep(step *models.SOPStep) error
	GetSteps(sopID uint) ([]models.SOPStep, error)
	GetStep(sopID, stepID uint) (*models.SOPStep, error)
	UpdateStep(step *models.SOPStep) error
	DeleteStepAndRenumber(sopID, stepID uint) error
	MaxStepOrder(sopID uint) (int, error)

	CreateResponsibility(resp *models.SOPResponsibility) error
	GetResponsibilities(sopID uint) ([]models.SOPResponsibility, error)
	GetResponsibility(sopID, respID uint) (*models.SOPResponsibility, error)
	UpdateResponsibility(resp *models.SOPResponsibility) error
	DeleteResponsibility(sopID, respID uint) error

	CreateTroubleshootingItem(item *models.SOPTroubleshootingItem) error
	GetTroubleshootingItems(sopID uint) ([]models.SOPTroubleshootingItem, error)
	DeleteTroubleshootingItem(sopID, itemID uint) error

	CreateRevision(rev *models.SOPRevision) error
	GetRevisions(sopID uint) ([]models.SOPRevision, error)

	CountQuestionnairesBySOP() (map[uint]int, error)
	CountShadowingsBySOP() (map[uint]int, error)
}

type sopRepository struct {
	db *gorm.DB
}

func NewSOPRepository(db *gorm.DB) SOPRepository {
	return &sopRepository{db: db}
}

func (r *sopRepository) Create(sop *models.SOP) error {
	return r.db.Create(sop).Error
}

func (r *sopRepository) GetByID(id uint) (*models.SOP, error) {
	var sop models.SOP
	err := r.db.Preload("Creator").
		Preload("Approver").
		Preload("Assignee").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("sop_steps.sort_order")
		}).
		Preload("Responsibilities").
		First(&sop, id).Error
	return &sop, err
}

func (r *sopRepository) GetList() ([]models.SOP, error) {
	var sops []models.SOP
	err := r.db.Preload("Creator").
		Preload("Approver").
		Preload("Assignee").
		Order("created_at desc").
		Find(&sops).Error
	return sops, err
}

func (r *sopRepository) Update(sop *models.SOP) error {
	return r.db.Save(sop).Error
}

// Delete removes the SOP and everything hanging off it. Questionnaires and
// shadowing observations survive with their sop_id cleared.
func (r *sopRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Questionnaire{}).Where("sop_id = ?", id).
			Update("sop_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ShadowingObservation{}).Where("sop_id = ?", id).
			Update("sop_id", nil).Error; err != nil {
			return err
		}

		for _, child := range []interface{}{
			&models.SOPApproval{},
			&models.SOPVersion{},
			&models.SOPTroubleshootingItem{},
			&models.SOPRevision{},
			&models.SOPStep{},
			&models.SOPResponsibility{},
		} {
			if err := tx.Where("sop_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.SOP{}, id).Error
	})
}

// NextSOPNumber assigns document numbers of the form SOP-0001 based on the
// highest number issued so far.
func (r *sopRepository) NextSOPNumber() (string, error) {
	var maxNum int
	err := r.db.Model(&models.SOP{}).
		Select("COALESCE(MAX(CAST(SUBSTRING(sop_number FROM 5) AS INTEGER)), 0)").
		Scan(&maxNum).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SOP-%04d", maxNum+1), nil
}

func (r *sopRepository) UpdateStatus(id uint, status models.SOPStatus) error {
	return r.db.Model(&models.SOP{}).Where("id = ?", id).Update("status", status).Error
}

// DemoteOverdue forces active SOPs past their review due date back to review
// status. Idempotent; invoked lazily on every list read.
func (r *sopRepository) DemoteOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.SOP{}).
		Where("status = ? AND review_due_date IS NOT NULL AND review_due_date < ?", models.StatusActive, now).
		Update("status", models.StatusReview)
	return result.RowsAffected, result.Error
}

func (r *sopRepository) CountByStatus(status models.SOPStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.SOP{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *sopRepository) CreateStep(step *models.SOPStep) error {
	return r.db.Create(step).Error
}

func (r *sopRepository) GetSteps(sopID uint) ([]models.SOPStep, error) {
	var steps []models.SOPStep
	err := r.db.Where("sop_id = ?", sopID).Order("sort_order").Find(&steps).Error
	return steps, err
}

func (r *sopRepository) GetStep(sopID, stepID uint) (*models.SOPStep, error) {
	var step models.SOPStep
	err := r.db.Where("sop_id = ? AND id = ?", sopID, stepID).First(&step).Error
	return &step, err
}

func (r *sopRepository) UpdateStep(step *models.SOPStep) error {
	return r.db.Save(step).Error
}

// DeleteStepAndRenumber removes a step and compacts step_number/sort_order of
// the survivors so both stay dense and 1-based.
func (r *sopRepository) DeleteStepAndRenumber(sopID, stepID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("sop_id = ? AND id = ?", sopID, stepID).Delete(&models.SOPStep{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var steps []models.SOPStep
		if err := tx.Where("sop_id = ?", sopID).Order("sort_order").Find(&steps).Error; err != nil {
			return err
		}
		for i := range steps {
			if err := tx.Model(&models.SOPStep{}).Where("id = ?", steps[i].ID).
				Updates(map[string]interface{}{"step_number": i + 1, "sort_order": i + 1}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sopRepository) MaxStepOrder(sopID uint) (int, error) {
	var max int
	err := r.db.Model(&models.SOPStep{}).
		Where("sop_id = ?", sopID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}

func (r *sopRepository) CreateResponsibility(resp *models.SOPResponsibility) error {
	return r.db.Create(resp).Error
}

func (r *sopRepository) GetResponsibilities(sopID uint) ([]models.SOPResponsibility, error) {
	var resps []models.SOPResponsibility
	err := r.db.Where("sop_id = ?", sopID).Find(&resps).Error
	return resps, err
}

func (r *sopRepository) GetResponsibility(sopID, respID uint) (*models.SOPResponsibility, error) {
	var resp models.SOPResponsibility
	err := r.db.Where("sop_id = ? AND id = ?", sopID, respID).First(&resp).Error
	return &resp, err
}

func (r *sopRepository) UpdateResponsibility(resp *models.SOPResponsibility) error {
	return r.db.Save(resp).Error
}

func (r *sopRepository) DeleteResponsibility(sopID, respID uint) error {
	result := r.db.Where("sop_id = ? AND id = ?", sopID, respID).Delete(&models.SOPResponsibility{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sopRepository) CreateTroubleshootingItem(item *models.SOPTroubleshootingItem) error {
	return r.db.Create(item).Error
}

func (r *sopRepository) GetTroubleshootingItems(sopID uint) ([]models.SOPTroubleshootingItem, error) {
	var items []models.SOPTroubleshootingItem
	err := r.db.Where("sop_id = ?", sopID).Find(&items).Error
	return items, err
}

func (r *sopRepository) DeleteTroubleshootingItem(sopID, itemID uint) error {
	result := r.db.Where("sop_id = ? AND id = ?", sopID, itemID).Delete(&models.SOPTroubleshootingItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sopRepository) CreateRevision(rev *models.SOPRevision) error {
	return r.db.Create(rev).Error
}

func (r *sopRepository) GetRevisions(sopID uint) ([]models.SOPRevision, error) {
	var revs []models.SOPRevision
	err := r.db.Where("sop_id = ?", sopID).Order("revision_date desc").Find(&revs).Error
	return revs, err
}

func (r *sopRepository) CountQuestionnairesBySOP() (map[uint]int, error) {
	return r.countBySOP(&models.Questionnaire{})
}

func (r *sopRepository) CountShadowingsBySOP() (map[uint]int, error) {
	return r.countBySOP(&models.ShadowingObservation{})
}

func (r *sopRepository) countBySOP(model interface{}) (map[uint]int, error) {
	var results []struct {
		SOPID uint `gorm:"column:sop_id"`
		Count int
	}

	err := r.db.Model(model).
		Select("sop_id, COUNT(*) as count").
		Where("sop_id IS NOT NULL").
		Group("sop_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, result := range results {
		counts[result.SOPID] = result.Count
	}
	return counts, nil
}

// IsNotFound reports whether err is the store's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
