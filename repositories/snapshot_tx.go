package repositories

import (
	"fmt"

	"sop-manager/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockSOPTx loads the SOP row under a row-level lock. Every operation that
// assigns a version number or checks the pending-approval invariant goes
// through this lock so concurrent requests for the same SOP serialize.
func lockSOPTx(tx *gorm.DB, sopID uint) (*models.SOP, error) {
	var sop models.SOP
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sop, sopID).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "SOP not found"}
		}
		return nil, err
	}
	return &sop, nil
}

// encodeSOPStateTx serializes the full current state of an SOP (parent row
// plus ordered steps and responsibilities) into a snapshot blob.
func encodeSOPStateTx(tx *gorm.DB, sop *models.SOP) (string, error) {
	var steps []models.SOPStep
	if err := tx.Where("sop_id = ?", sop.ID).Order("sort_order").Find(&steps).Error; err != nil {
		return "", err
	}

	var resps []models.SOPResponsibility
	if err := tx.Where("sop_id = ?", sop.ID).Find(&resps).Error; err != nil {
		return "", err
	}

	return models.EncodeSnapshot(*sop, steps, resps)
}

// insertVersionTx assigns version_number = max+1 for the SOP, persists the
// immutable version row, and brings the SOP's own version field up to match.
// Must run inside a transaction holding the SOP row lock.
func insertVersionTx(tx *gorm.DB, sopID uint, blob, summary string, createdBy uint) (*models.SOPVersion, error) {
	var current int
	err := tx.Model(&models.SOPVersion{}).
		Where("sop_id = ?", sopID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&current).Error
	if err != nil {
		return nil, err
	}

	next := current + 1
	if summary == "" {
		summary = fmt.Sprintf("Version %d", next)
	}

	creator := createdBy
	version := &models.SOPVersion{
		SOPID:         sopID,
		VersionNumber: next,
		Snapshot:      blob,
		ChangeSummary: summary,
		CreatedBy:     &creator,
	}
	if err := tx.Create(version).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&models.SOP{}).Where("id = ?", sopID).Update("version", next).Error; err != nil {
		return nil, err
	}

	return version, nil
}
