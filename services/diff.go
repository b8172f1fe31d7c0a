package services

import (
	"fmt"
	"strconv"
	"strings"

	"sop-manager/models"
)

type metadataField struct {
	field string
	label string
	get   func(*models.SOP) string
}

// metadataFields is the fixed set of SOP text fields the diff inspects, in
// display order.
var metadataFields = []metadataField{
	{"purpose", "Purpose", func(s *models.SOP) string { return s.Purpose }},
	{"scope_applies_to", "Scope (Applies To)", func(s *models.SOP) string { return s.ScopeAppliesTo }},
	{"scope_not_applies_to", "Scope (Does Not Apply To)", func(s *models.SOP) string { return s.ScopeNotAppliesTo }},
	{"tools", "Tools", func(s *models.SOP) string { return s.Tools }},
	{"materials", "Materials", func(s *models.SOP) string { return s.Materials }},
	{"safety_concerns", "Safety Concerns", func(s *models.SOP) string { return s.SafetyConcerns }},
	{"time_total", "Total Time", func(s *models.SOP) string { return s.TimeTotal }},
	{"time_searching", "Searching Time", func(s *models.SOP) string { return s.TimeSearching }},
	{"time_changing", "Changing Time", func(s *models.SOP) string { return s.TimeChanging }},
	{"time_changeover", "Changeover Time", func(s *models.SOP) string { return s.TimeChangeover }},
	{"quality_during", "Quality During", func(s *models.SOP) string { return s.QualityDuring }},
	{"quality_final", "Quality Final", func(s *models.SOP) string { return s.QualityFinal }},
	{"quality_completion_criteria", "Completion Criteria", func(s *models.SOP) string { return s.QualityCompletionCriteria }},
	{"documentation_required", "Documentation Required", func(s *models.SOP) string { return s.DocumentationRequired }},
	{"documentation_signoff", "Documentation Signoff", func(s *models.SOP) string { return s.DocumentationSignoff }},
	{"related_documents", "Related Documents", func(s *models.SOP) string { return s.RelatedDocuments }},
}

// stepFields are the per-step attributes compared for surviving steps, in
// display order.
var stepFields = []string{
	"action_name",
	"action",
	"who_role",
	"tools_used",
	"time_for_step",
	"standard",
	"common_mistakes",
}

func stepFieldValue(s *models.SOPStep, field string) string {
	switch field {
	case "action_name":
		return s.ActionName
	case "action":
		return s.Action
	case "who_role":
		return s.WhoRole
	case "tools_used":
		return s.ToolsUsed
	case "time_for_step":
		return s.TimeForStep
	case "standard":
		return s.Standard
	case "common_mistakes":
		return s.CommonMistakes
	}
	return ""
}

func stepFieldLabel(field string) string {
	parts := strings.Split(field, "_")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func orEmpty(value string) string {
	if value == "" {
		return "(empty)"
	}
	return value
}

// InitialSubmissionChanges is the designed "nothing to diff against" result
// for a document's first-ever snapshot.
func InitialSubmissionChanges() []models.ChangeItem {
	return []models.ChangeItem{{
		Type:     models.ChangeAdded,
		Category: models.CategoryMetadata,
		Field:    "all",
		Label:    "Initial submission",
	}}
}

// DiffSnapshots produces the ordered list of structural changes between two
// snapshots of the same SOP: metadata fields first, then steps, then
// responsibilities. Output is deterministic for fixed inputs.
func DiffSnapshots(prev, curr *models.SnapshotPayload) []models.ChangeItem {
	changes := []models.ChangeItem{}

	for _, mf := range metadataFields {
		before := mf.get(&prev.SOP)
		after := mf.get(&curr.SOP)
		if before != after {
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeModified,
				Category: models.CategoryMetadata,
				Field:    mf.field,
				Label:    mf.label + ": Updated",
				Before:   orEmpty(before),
				After:    orEmpty(after),
			})
		}
	}

	changes = append(changes, diffSteps(prev.Steps, curr.Steps)...)
	changes = append(changes, diffResponsibilities(prev.Responsibilities, curr.Responsibilities)...)

	return changes
}

// diffSteps matches steps between the two snapshots by stable id. Added and
// removed steps are reported first, then per-field modifications of the
// survivors, then position changes among the survivors.
func diffSteps(prevSteps, currSteps []models.SOPStep) []models.ChangeItem {
	var changes []models.ChangeItem

	prevByID := make(map[uint]*models.SOPStep, len(prevSteps))
	for i := range prevSteps {
		prevByID[prevSteps[i].ID] = &prevSteps[i]
	}
	currByID := make(map[uint]*models.SOPStep, len(currSteps))
	for i := range currSteps {
		currByID[currSteps[i].ID] = &currSteps[i]
	}

	for i := range currSteps {
		step := &currSteps[i]
		if _, ok := prevByID[step.ID]; !ok {
			after := step.DisplayName()
			if after == "" {
				after = "(new step)"
			}
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeAdded,
				Category: models.CategoryStep,
				Field:    fmt.Sprintf("step_%d", step.StepNumber),
				Label:    fmt.Sprintf("Step %d: Added", step.StepNumber),
				After:    after,
			})
		}
	}

	for i := range prevSteps {
		step := &prevSteps[i]
		if _, ok := currByID[step.ID]; !ok {
			before := step.DisplayName()
			if before == "" {
				before = "(step)"
			}
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeRemoved,
				Category: models.CategoryStep,
				Field:    fmt.Sprintf("step_%d", step.StepNumber),
				Label:    fmt.Sprintf("Step %d: Removed", step.StepNumber),
				Before:   before,
			})
		}
	}

	for i := range currSteps {
		currStep := &currSteps[i]
		prevStep, ok := prevByID[currStep.ID]
		if !ok {
			continue
		}
		for _, field := range stepFields {
			before := stepFieldValue(prevStep, field)
			after := stepFieldValue(currStep, field)
			if before != after {
				changes = append(changes, models.ChangeItem{
					Type:     models.ChangeModified,
					Category: models.CategoryStep,
					Field:    fmt.Sprintf("step_%d_%s", currStep.StepNumber, field),
					Label:    fmt.Sprintf("Step %d: %s updated", currStep.StepNumber, stepFieldLabel(field)),
					Before:   orEmpty(before),
					After:    orEmpty(after),
				})
			}
		}
	}

	changes = append(changes, diffStepOrder(prevSteps, currSteps, prevByID, currByID)...)

	return changes
}

// diffStepOrder reports surviving steps whose relative position among the
// common steps changed between the two snapshots.
func diffStepOrder(prevSteps, currSteps []models.SOPStep, prevByID, currByID map[uint]*models.SOPStep) []models.ChangeItem {
	prevPos := make(map[uint]int)
	pos := 0
	for i := range prevSteps {
		if _, ok := currByID[prevSteps[i].ID]; ok {
			pos++
			prevPos[prevSteps[i].ID] = pos
		}
	}

	var changes []models.ChangeItem
	pos = 0
	for i := range currSteps {
		step := &currSteps[i]
		if _, ok := prevByID[step.ID]; !ok {
			continue
		}
		pos++
		if was := prevPos[step.ID]; was != pos {
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeReordered,
				Category: models.CategoryStep,
				Field:    fmt.Sprintf("step_%d_position", step.StepNumber),
				Label:    fmt.Sprintf("Step %d: Moved from position %d to %d", step.StepNumber, was, pos),
				Before:   strconv.Itoa(was),
				After:    strconv.Itoa(pos),
			})
		}
	}
	return changes
}

// diffResponsibilities matches responsibilities by stable id. A changed
// responsibility yields one combined item, not one per field.
func diffResponsibilities(prevResps, currResps []models.SOPResponsibility) []models.ChangeItem {
	var changes []models.ChangeItem

	prevByID := make(map[uint]*models.SOPResponsibility, len(prevResps))
	for i := range prevResps {
		prevByID[prevResps[i].ID] = &prevResps[i]
	}
	currByID := make(map[uint]*models.SOPResponsibility, len(currResps))
	for i := range currResps {
		currByID[currResps[i].ID] = &currResps[i]
	}

	for i := range currResps {
		resp := &currResps[i]
		if _, ok := prevByID[resp.ID]; !ok {
			role := resp.RoleName
			if role == "" {
				role = "New role"
			}
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeAdded,
				Category: models.CategoryResponsibility,
				Field:    fmt.Sprintf("resp_%d", resp.ID),
				Label:    fmt.Sprintf("Responsibility: %s added", role),
				After:    resp.ResponsibilityDescription,
			})
		}
	}

	for i := range prevResps {
		resp := &prevResps[i]
		if _, ok := currByID[resp.ID]; !ok {
			role := resp.RoleName
			if role == "" {
				role = "Role"
			}
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeRemoved,
				Category: models.CategoryResponsibility,
				Field:    fmt.Sprintf("resp_%d", resp.ID),
				Label:    fmt.Sprintf("Responsibility: %s removed", role),
				Before:   resp.ResponsibilityDescription,
			})
		}
	}

	for i := range currResps {
		currResp := &currResps[i]
		prevResp, ok := prevByID[currResp.ID]
		if !ok {
			continue
		}
		if prevResp.RoleName != currResp.RoleName ||
			prevResp.ResponsibilityDescription != currResp.ResponsibilityDescription {
			role := currResp.RoleName
			if role == "" {
				role = "Role"
			}
			changes = append(changes, models.ChangeItem{
				Type:     models.ChangeModified,
				Category: models.CategoryResponsibility,
				Field:    fmt.Sprintf("resp_%d", currResp.ID),
				Label:    fmt.Sprintf("Responsibility: %s modified", role),
				Before:   fmt.Sprintf("%s: %s", prevResp.RoleName, prevResp.ResponsibilityDescription),
				After:    fmt.Sprintf("%s: %s", currResp.RoleName, currResp.ResponsibilityDescription),
			})
		}
	}

	return changes
}
