package repositories

import (
	"fmt"

	"sop-manager/models"

	"gorm.io/gorm"
)

type SOPVersionRepository interface {
	TakeSnapshot(sopID uint, changeSummary string, createdBy uint) (*models.SOPVersion, error)
	Restore(sopID uint, versionNumber int, actorID uint) (*models.SOPVersion, error)
	List(sopID uint) ([]models.SOPVersion, error)
	GetByNumber(sopID uint, versionNumber int) (*models.SOPVersion, error)
}

type sopVersionRepository struct {
	db *gorm.DB
}

func NewSOPVersionRepository(db *gorm.DB) SOPVersionRepository {
	return &sopVersionRepository{db: db}
}

// TakeSnapshot captures the SOP's full current state as the next version.
// The row lock makes concurrent snapshot requests for the same SOP serialize
// instead of colliding on a version number.
func (r *sopVersionRepository) TakeSnapshot(sopID uint, changeSummary string, createdBy uint) (*models.SOPVersion, error) {
	var version *models.SOPVersion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		sop, err := lockSOPTx(tx, sopID)
		if err != nil {
			return err
		}

		blob, err := encodeSOPStateTx(tx, sop)
		if err != nil {
			return err
		}

		version, err = insertVersionTx(tx, sopID, blob, changeSummary, createdBy)
		return err
	})
	return version, err
}

// Restore overwrites the SOP's mutable fields and replaces its child
// collections wholesale from the target snapshot, keeping the snapshot's
// stable ids, then records the restore as a new version reusing the restored
// blob verbatim. Status is not touched.
func (r *sopVersionRepository) Restore(sopID uint, versionNumber int, actorID uint) (*models.SOPVersion, error) {
	var created *models.SOPVersion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target models.SOPVersion
		err := tx.Where("sop_id = ? AND version_number = ?", sopID, versionNumber).First(&target).Error
		if err != nil {
			if IsNotFound(err) {
				return models.ErrorNotFound{Message: "version not found"}
			}
			return err
		}

		payload, err := models.DecodeSnapshot(target.Snapshot)
		if err != nil {
			return err
		}

		if _, err := lockSOPTx(tx, sopID); err != nil {
			return err
		}

		snap := payload.SOP
		err = tx.Model(&models.SOP{}).Where("id = ?", sopID).Updates(map[string]interface{}{
			"department":                  snap.Department,
			"process_name":                snap.ProcessName,
			"purpose":                     snap.Purpose,
			"scope_applies_to":            snap.ScopeAppliesTo,
			"scope_not_applies_to":        snap.ScopeNotAppliesTo,
			"tools":                       snap.Tools,
			"materials":                   snap.Materials,
			"time_total":                  snap.TimeTotal,
			"time_searching":              snap.TimeSearching,
			"time_changing":               snap.TimeChanging,
			"time_changeover":             snap.TimeChangeover,
			"quality_during":              snap.QualityDuring,
			"quality_final":               snap.QualityFinal,
			"quality_completion_criteria": snap.QualityCompletionCriteria,
			"documentation_required":      snap.DocumentationRequired,
			"documentation_signoff":       snap.DocumentationSignoff,
			"safety_concerns":             snap.SafetyConcerns,
			"troubleshooting":             snap.Troubleshooting,
			"related_documents":           snap.RelatedDocuments,
		}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("sop_id = ?", sopID).Delete(&models.SOPStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sop_id = ?", sopID).Delete(&models.SOPResponsibility{}).Error; err != nil {
			return err
		}

		for i := range payload.Steps {
			step := payload.Steps[i]
			step.SOPID = sopID
			if err := tx.Create(&step).Error; err != nil {
				return err
			}
		}
		for i := range payload.Responsibilities {
			resp := payload.Responsibilities[i]
			resp.SOPID = sopID
			if err := tx.Create(&resp).Error; err != nil {
				return err
			}
		}

		summary := fmt.Sprintf("Restored from version %d", versionNumber)
		created, err = insertVersionTx(tx, sopID, target.Snapshot, summary, actorID)
		return err
	})
	return created, err
}

func (r *sopVersionRepository) List(sopID uint) ([]models.SOPVersion, error) {
	var versions []models.SOPVersion
	err := r.db.Preload("Creator").
		Where("sop_id = ?", sopID).
		Order("version_number desc").
		Find(&versions).Error
	return versions, err
}

func (r *sopVersionRepository) GetByNumber(sopID uint, versionNumber int) (*models.SOPVersion, error) {
	var version models.SOPVersion
	err := r.db.Preload("Creator").
		Where("sop_id = ? AND version_number = ?", sopID, versionNumber).
		First(&version).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "version not found"}
		}
		return nil, err
	}
	return &version, nil
}
