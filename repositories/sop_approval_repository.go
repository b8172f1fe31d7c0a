package repositories

import (
	"time"

	"sop-manager/models"

	"gorm.io/gorm"
)

type SOPApprovalRepository interface {
	Submit(sopID, requestedBy uint) (*models.SOPApproval, error)
	Approve(sopID, approvalID uint, comments string, reviewerID uint, reviewDueDate time.Time) error
	Reject(sopID, approvalID uint, comments string, reviewerID uint) error
	Get(approvalID uint) (*models.SOPApproval, error)
	GetPending(approvalID uint) (*models.SOPApproval, error)
	ListPending() ([]models.SOPApproval, error)
	CountPending() (int64, error)
	HistoryBySOP(sopID uint) ([]models.SOPApproval, error)
}

type sopApprovalRepository struct {
	db *gorm.DB
}

func NewSOPApprovalRepository(db *gorm.DB) SOPApprovalRepository {
	return &sopApprovalRepository{db: db}
}

// Submit runs the whole submit-for-approval sequence in one transaction under
// the SOP row lock: status check, pending-approval check, snapshot creation,
// approval insert, and the status flip to pending_approval. The single
// transaction closes the check-then-act race between concurrent submits.
func (r *sopApprovalRepository) Submit(sopID, requestedBy uint) (*models.SOPApproval, error) {
	var approval *models.SOPApproval
	err := r.db.Transaction(func(tx *gorm.DB) error {
		sop, err := lockSOPTx(tx, sopID)
		if err != nil {
			return err
		}

		if sop.Status != models.StatusDraft && sop.Status != models.StatusReview {
			return models.ErrorInvalidTransition{
				From: sop.Status,
				To:   models.StatusPendingApproval,
				Hint: "SOP must be in draft or review status to submit for approval",
			}
		}

		var pending int64
		err = tx.Model(&models.SOPApproval{}).
			Where("sop_id = ? AND status = ?", sopID, models.ApprovalPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return models.ErrorConflictingApproval{Message: "SOP already has a pending approval request"}
		}

		blob, err := encodeSOPStateTx(tx, sop)
		if err != nil {
			return err
		}
		if _, err := insertVersionTx(tx, sopID, blob, "Submitted for approval", requestedBy); err != nil {
			return err
		}

		approval = &models.SOPApproval{
			SOPID:       sopID,
			RequestedBy: requestedBy,
			Status:      models.ApprovalPending,
		}
		if err := tx.Create(approval).Error; err != nil {
			return err
		}

		return tx.Model(&models.SOP{}).Where("id = ?", sopID).
			Update("status", models.StatusPendingApproval).Error
	})
	if err != nil {
		return nil, err
	}
	return approval, nil
}

// Approve resolves a pending request and activates the SOP. The conditional
// update on status = pending guards against double resolution; zero affected
// rows means the request was already resolved (or never existed).
func (r *sopApprovalRepository) Approve(sopID, approvalID uint, comments string, reviewerID uint, reviewDueDate time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := resolvePendingTx(tx, sopID, approvalID, models.ApprovalApproved, comments, reviewerID); err != nil {
			return err
		}

		return tx.Model(&models.SOP{}).Where("id = ?", sopID).Updates(map[string]interface{}{
			"status":          models.StatusActive,
			"approved_by":     reviewerID,
			"review_due_date": reviewDueDate,
		}).Error
	})
}

// Reject resolves a pending request and sends the SOP back to draft.
func (r *sopApprovalRepository) Reject(sopID, approvalID uint, comments string, reviewerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := resolvePendingTx(tx, sopID, approvalID, models.ApprovalRejected, comments, reviewerID); err != nil {
			return err
		}

		return tx.Model(&models.SOP{}).Where("id = ?", sopID).
			Update("status", models.StatusDraft).Error
	})
}

func resolvePendingTx(tx *gorm.DB, sopID, approvalID uint, decision models.ApprovalStatus, comments string, reviewerID uint) error {
	now := time.Now()
	result := tx.Model(&models.SOPApproval{}).
		Where("id = ? AND sop_id = ? AND status = ?", approvalID, sopID, models.ApprovalPending).
		Updates(map[string]interface{}{
			"status":      decision,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
			"comments":    comments,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.SOPApproval{}).
			Where("id = ? AND sop_id = ?", approvalID, sopID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.ErrorNotFound{Message: "approval request not found"}
		}
		return models.ErrorConflictingApproval{Message: "approval request has already been resolved"}
	}
	return nil
}

func (r *sopApprovalRepository) Get(approvalID uint) (*models.SOPApproval, error) {
	var approval models.SOPApproval
	err := r.db.Preload("SOP").Preload("Requester").First(&approval, approvalID).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "approval request not found"}
		}
		return nil, err
	}
	return &approval, nil
}

func (r *sopApprovalRepository) GetPending(approvalID uint) (*models.SOPApproval, error) {
	var approval models.SOPApproval
	err := r.db.Preload("SOP").Preload("Requester").
		Where("id = ? AND status = ?", approvalID, models.ApprovalPending).
		First(&approval).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "approval request not found"}
		}
		return nil, err
	}
	return &approval, nil
}

func (r *sopApprovalRepository) ListPending() ([]models.SOPApproval, error) {
	var approvals []models.SOPApproval
	err := r.db.Preload("SOP").Preload("Requester").
		Where("status = ?", models.ApprovalPending).
		Order("requested_at desc").
		Find(&approvals).Error
	return approvals, err
}

func (r *sopApprovalRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.SOPApproval{}).
		Where("status = ?", models.ApprovalPending).
		Count(&count).Error
	return count, err
}

func (r *sopApprovalRepository) HistoryBySOP(sopID uint) ([]models.SOPApproval, error) {
	var approvals []models.SOPApproval
	err := r.db.Preload("Requester").Preload("Reviewer").
		Where("sop_id = ?", sopID).
		Order("requested_at desc").
		Find(&approvals).Error
	return approvals, err
}
