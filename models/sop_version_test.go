package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshotStripsRelations(t *testing.T) {
	creator := uint(7)
	sop := SOP{
		ID:        1,
		SOPNumber: "SOP-0001",
		Purpose:   "Assemble widgets",
		CreatedBy: &creator,
		Creator:   &User{ID: 7, Name: "Maker"},
		Steps:     []SOPStep{{ID: 99}},
		Responsibilities: []SOPResponsibility{
			{ID: 98},
		},
	}
	steps := []SOPStep{{ID: 10, StepNumber: 1, ActionName: "Cut"}}
	resps := []SOPResponsibility{{ID: 20, RoleName: "Operator"}}

	blob, err := EncodeSnapshot(sop, steps, resps)
	require.NoError(t, err)

	payload, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	assert.Equal(t, "SOP-0001", payload.SOP.SOPNumber)
	assert.Nil(t, payload.SOP.Creator)
	assert.Empty(t, payload.SOP.Steps)
	assert.Empty(t, payload.SOP.Responsibilities)

	require.Len(t, payload.Steps, 1)
	assert.Equal(t, uint(10), payload.Steps[0].ID)
	assert.Equal(t, "Cut", payload.Steps[0].ActionName)

	require.Len(t, payload.Responsibilities, 1)
	assert.Equal(t, "Operator", payload.Responsibilities[0].RoleName)
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot("not json")
	assert.Error(t, err)
}

func TestStepDisplayName(t *testing.T) {
	assert.Equal(t, "Cut", (&SOPStep{ActionName: "Cut", Action: "Cut the board"}).DisplayName())
	assert.Equal(t, "Cut the board", (&SOPStep{Action: "Cut the board"}).DisplayName())
	assert.Equal(t, "", (&SOPStep{}).DisplayName())
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := ErrorInvalidTransition{From: StatusDraft, To: StatusActive, Hint: "SOPs must be approved to become active"}
	assert.Equal(t, "cannot transition from draft to active: SOPs must be approved to become active", err.Error())

	bare := ErrorInvalidTransition{From: StatusReview, To: StatusReview}
	assert.Equal(t, "cannot transition from review to review", bare.Error())
}
