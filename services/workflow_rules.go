package services

import (
	"sop-manager/models"
)

// dragTransition is one legal drag-and-drop move on the board. Everything
// else goes through the submit/approve pipeline.
type dragTransition struct {
	from          models.SOPStatus
	to            models.SOPStatus
	requiresAdmin bool
}

var dragTransitions = []dragTransition{
	{from: models.StatusDraft, to: models.StatusReview},
	{from: models.StatusReview, to: models.StatusDraft},
	{from: models.StatusActive, to: models.StatusReview, requiresAdmin: true},
}

// ValidateDragTransition enforces the status state machine for the manual
// drag path:
//   - pending_approval and active are never valid drag targets; they are
//     reached only through submit-for-approval and approval
//   - nothing leaves pending_approval except through approve/reject
//   - active -> review is admin only
//   - non-admins may only drag SOPs they created or are assigned to, and
//     never an active one
func ValidateDragTransition(sop *models.SOP, target models.SOPStatus, actor models.Actor) error {
	if !target.Valid() {
		return models.ErrorValidation{Message: "invalid status value"}
	}

	if target == models.StatusPendingApproval {
		return models.ErrorInvalidTransition{
			From: sop.Status,
			To:   target,
			Hint: "use submit-for-approval to move an SOP into pending approval",
		}
	}

	if target == models.StatusActive {
		return models.ErrorInvalidTransition{
			From: sop.Status,
			To:   target,
			Hint: "SOPs must be approved to become active",
		}
	}

	if sop.Status == models.StatusPendingApproval {
		return models.ErrorInvalidTransition{
			From: sop.Status,
			To:   target,
			Hint: "SOPs pending approval must be approved or rejected through the approval workflow",
		}
	}

	if !actor.IsAdmin() {
		if sop.Status == models.StatusActive {
			return models.ErrorPermissionDenied{Message: "only admins can move active SOPs"}
		}
		if !sop.OwnedOrAssigned(actor.ID) {
			return models.ErrorPermissionDenied{Message: "you can only move SOPs you created or are assigned to"}
		}
	}

	for _, t := range dragTransitions {
		if t.from == sop.Status && t.to == target {
			if t.requiresAdmin && !actor.IsAdmin() {
				return models.ErrorPermissionDenied{Message: "only admins can move active SOPs to review"}
			}
			return nil
		}
	}

	return models.ErrorInvalidTransition{From: sop.Status, To: target}
}

// CanEditInStatus is the per-status edit policy. The admin-editable workflow
// step row wins when one exists for the status; otherwise everything but
// pending_approval is editable.
func CanEditInStatus(status models.SOPStatus, step *models.WorkflowStep) bool {
	if step != nil {
		return step.CanEdit
	}
	return status != models.StatusPendingApproval
}
