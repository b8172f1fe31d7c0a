package services

import (
	"testing"

	"sop-manager/models"

	"github.com/stretchr/testify/assert"
)

func sopInStatus(status models.SOPStatus, createdBy uint) *models.SOP {
	creator := createdBy
	return &models.SOP{ID: 1, Status: status, CreatedBy: &creator}
}

var (
	adminActor = models.Actor{ID: 1, Name: "Admin", Role: models.RoleAdmin}
	ownerActor = models.Actor{ID: 2, Name: "Owner", Role: models.RoleUser}
	otherActor = models.Actor{ID: 3, Name: "Other", Role: models.RoleUser}
)

func TestDragDraftToReviewAllowedForOwner(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusDraft, ownerActor.ID), models.StatusReview, ownerActor)
	assert.NoError(t, err)
}

func TestDragReviewBackToDraftAllowedForOwner(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusReview, ownerActor.ID), models.StatusDraft, ownerActor)
	assert.NoError(t, err)
}

func TestDragToPendingApprovalRejected(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusDraft, ownerActor.ID), models.StatusPendingApproval, adminActor)

	var invalid models.ErrorInvalidTransition
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "submit-for-approval")
}

func TestDragToActiveRejectedEvenForAdmin(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusDraft, ownerActor.ID), models.StatusActive, adminActor)

	var invalid models.ErrorInvalidTransition
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "approved to become active")
}

func TestDragOutOfPendingApprovalRejected(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusPendingApproval, ownerActor.ID), models.StatusDraft, adminActor)

	var invalid models.ErrorInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}

func TestActiveToReviewAdminOnly(t *testing.T) {
	sop := sopInStatus(models.StatusActive, ownerActor.ID)

	assert.NoError(t, ValidateDragTransition(sop, models.StatusReview, adminActor))

	err := ValidateDragTransition(sop, models.StatusReview, ownerActor)
	var denied models.ErrorPermissionDenied
	assert.ErrorAs(t, err, &denied)
}

func TestNonOwnerCannotDrag(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusDraft, ownerActor.ID), models.StatusReview, otherActor)

	var denied models.ErrorPermissionDenied
	assert.ErrorAs(t, err, &denied)
}

func TestAdminCanDragAnySOP(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusDraft, ownerActor.ID), models.StatusReview, adminActor)
	assert.NoError(t, err)
}

func TestAssigneeCanDrag(t *testing.T) {
	sop := sopInStatus(models.StatusDraft, ownerActor.ID)
	assignee := otherActor.ID
	sop.AssignedTo = &assignee

	err := ValidateDragTransition(sop, models.StatusReview, otherActor)
	assert.NoError(t, err)
}

func TestInvalidStatusValueRejected(t *testing.T) {
	err := ValidateDragTransition(sopInStatus(models.StatusDraft, ownerActor.ID), models.SOPStatus("archived"), adminActor)

	var validation models.ErrorValidation
	assert.ErrorAs(t, err, &validation)
}

func TestUnknownPairRejected(t *testing.T) {
	// review -> review is not in the transition table.
	err := ValidateDragTransition(sopInStatus(models.StatusReview, ownerActor.ID), models.StatusReview, adminActor)

	var invalid models.ErrorInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}

func TestCanEditInStatus(t *testing.T) {
	assert.True(t, CanEditInStatus(models.StatusDraft, nil))
	assert.True(t, CanEditInStatus(models.StatusActive, nil))
	assert.False(t, CanEditInStatus(models.StatusPendingApproval, nil))

	// A workflow step row overrides the default policy.
	locked := &models.WorkflowStep{StatusKey: string(models.StatusDraft), CanEdit: false}
	assert.False(t, CanEditInStatus(models.StatusDraft, locked))

	open := &models.WorkflowStep{StatusKey: string(models.StatusPendingApproval), CanEdit: true}
	assert.True(t, CanEditInStatus(models.StatusPendingApproval, open))
}
