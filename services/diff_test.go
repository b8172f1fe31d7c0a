package services

import (
	"testing"

	"sop-manager/models"

	"github.com/stretchr/testify/assert"
)

func snapshotWith(sop models.SOP, steps []models.SOPStep, resps []models.SOPResponsibility) *models.SnapshotPayload {
	return &models.SnapshotPayload{SOP: sop, Steps: steps, Responsibilities: resps}
}

func TestInitialSubmissionChanges(t *testing.T) {
	changes := InitialSubmissionChanges()

	assert.Len(t, changes, 1)
	assert.Equal(t, models.ChangeAdded, changes[0].Type)
	assert.Equal(t, models.CategoryMetadata, changes[0].Category)
	assert.Equal(t, "all", changes[0].Field)
	assert.Equal(t, "Initial submission", changes[0].Label)
}

func TestDiffSnapshotsNoChanges(t *testing.T) {
	sop := models.SOP{Purpose: "Assemble widgets", Tools: "Wrench"}
	steps := []models.SOPStep{{ID: 1, StepNumber: 1, ActionName: "Cut"}}

	changes := DiffSnapshots(
		snapshotWith(sop, steps, nil),
		snapshotWith(sop, steps, nil),
	)

	assert.Empty(t, changes)
}

func TestDiffSnapshotsMetadata(t *testing.T) {
	prev := snapshotWith(models.SOP{Purpose: "Old purpose", Tools: ""}, nil, nil)
	curr := snapshotWith(models.SOP{Purpose: "New purpose", Tools: "Wrench"}, nil, nil)

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 2)

	assert.Equal(t, models.ChangeModified, changes[0].Type)
	assert.Equal(t, "purpose", changes[0].Field)
	assert.Equal(t, "Purpose: Updated", changes[0].Label)
	assert.Equal(t, "Old purpose", changes[0].Before)
	assert.Equal(t, "New purpose", changes[0].After)

	assert.Equal(t, "tools", changes[1].Field)
	assert.Equal(t, "(empty)", changes[1].Before)
	assert.Equal(t, "Wrench", changes[1].After)
}

func TestDiffSnapshotsStepFieldModified(t *testing.T) {
	prev := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 10, StepNumber: 1, ActionName: "Cut"},
	}, nil)
	curr := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 10, StepNumber: 1, ActionName: "Cut and trim"},
	}, nil)

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 1)
	assert.Equal(t, models.ChangeModified, changes[0].Type)
	assert.Equal(t, models.CategoryStep, changes[0].Category)
	assert.Equal(t, "step_1_action_name", changes[0].Field)
	assert.Equal(t, "Step 1: Action Name updated", changes[0].Label)
	assert.Equal(t, "Cut", changes[0].Before)
	assert.Equal(t, "Cut and trim", changes[0].After)
}

func TestDiffSnapshotsStepAddedAndRemoved(t *testing.T) {
	prev := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 1, StepNumber: 1, ActionName: "Prep"},
		{ID: 2, StepNumber: 2, Action: "Sand the edges"},
	}, nil)
	curr := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 1, StepNumber: 1, ActionName: "Prep"},
		{ID: 3, StepNumber: 2, ActionName: "Polish"},
	}, nil)

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 2)

	assert.Equal(t, models.ChangeAdded, changes[0].Type)
	assert.Equal(t, "Step 2: Added", changes[0].Label)
	assert.Equal(t, "Polish", changes[0].After)

	assert.Equal(t, models.ChangeRemoved, changes[1].Type)
	assert.Equal(t, "Step 2: Removed", changes[1].Label)
	assert.Equal(t, "Sand the edges", changes[1].Before)
}

func TestDiffSnapshotsStepReordered(t *testing.T) {
	prev := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 1, StepNumber: 1, ActionName: "Prep"},
		{ID: 2, StepNumber: 2, ActionName: "Cut"},
	}, nil)
	curr := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 2, StepNumber: 1, ActionName: "Cut"},
		{ID: 1, StepNumber: 2, ActionName: "Prep"},
	}, nil)

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 2)
	for _, change := range changes {
		assert.Equal(t, models.ChangeReordered, change.Type)
		assert.Equal(t, models.CategoryStep, change.Category)
	}
	assert.Equal(t, "Step 1: Moved from position 2 to 1", changes[0].Label)
	assert.Equal(t, "Step 2: Moved from position 1 to 2", changes[1].Label)
}

func TestDiffSnapshotsNoReorderWhenSurvivorOrderKept(t *testing.T) {
	// Removing a middle step shifts absolute positions but not the relative
	// order of the survivors, so no reorder items should appear.
	prev := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 1, StepNumber: 1, ActionName: "Prep"},
		{ID: 2, StepNumber: 2, ActionName: "Cut"},
		{ID: 3, StepNumber: 3, ActionName: "Polish"},
	}, nil)
	curr := snapshotWith(models.SOP{}, []models.SOPStep{
		{ID: 1, StepNumber: 1, ActionName: "Prep"},
		{ID: 3, StepNumber: 2, ActionName: "Polish"},
	}, nil)

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 1)
	assert.Equal(t, models.ChangeRemoved, changes[0].Type)
}

func TestDiffSnapshotsResponsibilities(t *testing.T) {
	prev := snapshotWith(models.SOP{}, nil, []models.SOPResponsibility{
		{ID: 1, RoleName: "Operator", ResponsibilityDescription: "Runs the machine"},
		{ID: 2, RoleName: "Supervisor", ResponsibilityDescription: "Signs off"},
	})
	curr := snapshotWith(models.SOP{}, nil, []models.SOPResponsibility{
		{ID: 1, RoleName: "Operator", ResponsibilityDescription: "Runs and cleans the machine"},
		{ID: 3, RoleName: "QA", ResponsibilityDescription: "Inspects output"},
	})

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 3)

	assert.Equal(t, models.ChangeAdded, changes[0].Type)
	assert.Equal(t, "Responsibility: QA added", changes[0].Label)

	assert.Equal(t, models.ChangeRemoved, changes[1].Type)
	assert.Equal(t, "Responsibility: Supervisor removed", changes[1].Label)

	// A changed responsibility yields exactly one combined item.
	assert.Equal(t, models.ChangeModified, changes[2].Type)
	assert.Equal(t, "Responsibility: Operator modified", changes[2].Label)
	assert.Equal(t, "Operator: Runs the machine", changes[2].Before)
	assert.Equal(t, "Operator: Runs and cleans the machine", changes[2].After)
}

func TestDiffSnapshotsOrderingMetadataBeforeStepsBeforeResponsibilities(t *testing.T) {
	prev := snapshotWith(models.SOP{Purpose: "Old"},
		[]models.SOPStep{{ID: 1, StepNumber: 1, ActionName: "Cut"}},
		[]models.SOPResponsibility{{ID: 1, RoleName: "Operator", ResponsibilityDescription: "Runs"}})
	curr := snapshotWith(models.SOP{Purpose: "New"},
		[]models.SOPStep{{ID: 1, StepNumber: 1, ActionName: "Trim"}},
		[]models.SOPResponsibility{{ID: 1, RoleName: "Operator", ResponsibilityDescription: "Runs and logs"}})

	changes := DiffSnapshots(prev, curr)

	assert.Len(t, changes, 3)
	assert.Equal(t, models.CategoryMetadata, changes[0].Category)
	assert.Equal(t, models.CategoryStep, changes[1].Category)
	assert.Equal(t, models.CategoryResponsibility, changes[2].Category)

	// Deterministic for fixed inputs.
	again := DiffSnapshots(prev, curr)
	assert.Equal(t, changes, again)
}
