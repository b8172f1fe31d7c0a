package services

import (
	"time"

	"sop-manager/models"
	"sop-manager/repositories"
)

type SOPService interface {
	List() ([]models.SOPWithCounts, error)
	Get(id uint) (*models.SOPDetail, error)
	Create(actor models.Actor) (*models.SOP, error)
	Update(id uint, req models.UpdateSOPRequest, actor models.Actor) (*models.SOP, error)
	Delete(id uint, actor models.Actor) error
	PatchStatus(id uint, target models.SOPStatus, actor models.Actor) (*models.SOP, error)
	Assign(id uint, userID *uint, actor models.Actor) (*models.SOP, error)

	AddStep(sopID uint, actor models.Actor) (*models.SOPStep, error)
	UpdateStep(sopID, stepID uint, req models.UpdateStepRequest) (*models.SOPStep, error)
	DeleteStep(sopID, stepID uint) error

	AddResponsibility(sopID uint, req models.UpdateResponsibilityRequest) (*models.SOPResponsibility, error)
	UpdateResponsibility(sopID, respID uint, req models.UpdateResponsibilityRequest) (*models.SOPResponsibility, error)
	DeleteResponsibility(sopID, respID uint) error

	AddTroubleshootingItem(sopID uint, req models.CreateTroubleshootingRequest) (*models.SOPTroubleshootingItem, error)
	DeleteTroubleshootingItem(sopID, itemID uint) error
	AddRevision(sopID uint, req models.CreateRevisionRequest) (*models.SOPRevision, error)
}

type sopService struct {
	sopRepo           repositories.SOPRepository
	questionnaireRepo repositories.QuestionnaireRepository
	shadowingRepo     repositories.ShadowingRepository
	workflowRepo      repositories.WorkflowRepository
	userRepo          repositories.UserRepository
}

func NewSOPService(
	sopRepo repositories.SOPRepository,
	questionnaireRepo repositories.QuestionnaireRepository,
	shadowingRepo repositories.ShadowingRepository,
	workflowRepo repositories.WorkflowRepository,
	userRepo repositories.UserRepository,
) SOPService {
	return &sopService{
		sopRepo:           sopRepo,
		questionnaireRepo: questionnaireRepo,
		shadowingRepo:     shadowingRepo,
		workflowRepo:      workflowRepo,
		userRepo:          userRepo,
	}
}

// List returns every SOP with its supporting-record counts. Overdue active
// SOPs are demoted to review first, so the sweep runs on every board read
// without needing a scheduler.
func (s *sopService) List() ([]models.SOPWithCounts, error) {
	if _, err := s.sopRepo.DemoteOverdue(time.Now()); err != nil {
		return nil, err
	}

	sops, err := s.sopRepo.GetList()
	if err != nil {
		return nil, err
	}

	questionnaireCounts, err := s.sopRepo.CountQuestionnairesBySOP()
	if err != nil {
		return nil, err
	}
	shadowingCounts, err := s.sopRepo.CountShadowingsBySOP()
	if err != nil {
		return nil, err
	}

	result := make([]models.SOPWithCounts, 0, len(sops))
	for _, sop := range sops {
		result = append(result, models.SOPWithCounts{
			SOP:                sop,
			QuestionnaireCount: questionnaireCounts[sop.ID],
			ShadowingCount:     shadowingCounts[sop.ID],
		})
	}
	return result, nil
}

func (s *sopService) Get(id uint) (*models.SOPDetail, error) {
	sop, err := s.sopRepo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "SOP not found"}
		}
		return nil, err
	}

	items, err := s.sopRepo.GetTroubleshootingItems(id)
	if err != nil {
		return nil, err
	}
	revisions, err := s.sopRepo.GetRevisions(id)
	if err != nil {
		return nil, err
	}
	questionnaires, err := s.questionnaireRepo.GetBySOP(id)
	if err != nil {
		return nil, err
	}
	shadowings, err := s.shadowingRepo.GetBySOP(id)
	if err != nil {
		return nil, err
	}

	return &models.SOPDetail{
		SOP:                  *sop,
		TroubleshootingItems: items,
		Revisions:            revisions,
		Questionnaires:       questionnaires,
		Shadowings:           shadowings,
	}, nil
}

// Create starts a new SOP in draft at version 1 with a single empty step.
func (s *sopService) Create(actor models.Actor) (*models.SOP, error) {
	number, err := s.sopRepo.NextSOPNumber()
	if err != nil {
		return nil, err
	}

	creator := actor.ID
	sop := &models.SOP{
		SOPNumber: number,
		Status:    models.StatusDraft,
		Version:   1,
		CreatedBy: &creator,
	}
	if err := s.sopRepo.Create(sop); err != nil {
		return nil, err
	}

	step := &models.SOPStep{SOPID: sop.ID, StepNumber: 1, SortOrder: 1}
	if err := s.sopRepo.CreateStep(step); err != nil {
		return nil, err
	}

	return s.getPlain(sop.ID)
}

func (s *sopService) Update(id uint, req models.UpdateSOPRequest, actor models.Actor) (*models.SOP, error) {
	sop, err := s.getPlain(id)
	if err != nil {
		return nil, err
	}

	if !s.canEdit(sop.Status) {
		return nil, models.ErrorPermissionDenied{Message: "SOP cannot be edited in its current status"}
	}

	sop.Department = req.Department
	sop.ProcessName = req.ProcessName
	sop.Purpose = req.Purpose
	sop.ScopeAppliesTo = req.ScopeAppliesTo
	sop.ScopeNotAppliesTo = req.ScopeNotAppliesTo
	sop.Tools = req.Tools
	sop.Materials = req.Materials
	sop.TimeTotal = req.TimeTotal
	sop.TimeSearching = req.TimeSearching
	sop.TimeChanging = req.TimeChanging
	sop.TimeChangeover = req.TimeChangeover
	sop.QualityDuring = req.QualityDuring
	sop.QualityFinal = req.QualityFinal
	sop.QualityCompletionCriteria = req.QualityCompletionCriteria
	sop.DocumentationRequired = req.DocumentationRequired
	sop.DocumentationSignoff = req.DocumentationSignoff
	sop.SafetyConcerns = req.SafetyConcerns
	sop.Troubleshooting = req.Troubleshooting
	sop.RelatedDocuments = req.RelatedDocuments

	if err := s.sopRepo.Update(sop); err != nil {
		return nil, err
	}
	return s.getPlain(id)
}

func (s *sopService) Delete(id uint, actor models.Actor) error {
	sop, err := s.getPlain(id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !sop.OwnedOrAssigned(actor.ID) {
		return models.ErrorPermissionDenied{Message: "you can only delete SOPs you created or are assigned to"}
	}

	return s.sopRepo.Delete(id)
}

// PatchStatus is the drag-and-drop path, gated by the transition rules.
func (s *sopService) PatchStatus(id uint, target models.SOPStatus, actor models.Actor) (*models.SOP, error) {
	sop, err := s.getPlain(id)
	if err != nil {
		return nil, err
	}

	if err := ValidateDragTransition(sop, target, actor); err != nil {
		return nil, err
	}

	if err := s.sopRepo.UpdateStatus(id, target); err != nil {
		return nil, err
	}
	return s.getPlain(id)
}

func (s *sopService) Assign(id uint, userID *uint, actor models.Actor) (*models.SOP, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrorPermissionDenied{Message: "only admins can assign users to SOPs"}
	}

	sop, err := s.getPlain(id)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if _, err := s.userRepo.GetByID(*userID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, models.ErrorValidation{Message: "user not found"}
			}
			return nil, err
		}
	}

	sop.AssignedTo = userID
	if err := s.sopRepo.Update(sop); err != nil {
		return nil, err
	}
	return s.getPlain(id)
}

func (s *sopService) AddStep(sopID uint, actor models.Actor) (*models.SOPStep, error) {
	if _, err := s.getPlain(sopID); err != nil {
		return nil, err
	}

	maxOrder, err := s.sopRepo.MaxStepOrder(sopID)
	if err != nil {
		return nil, err
	}

	step := &models.SOPStep{
		SOPID:      sopID,
		StepNumber: maxOrder + 1,
		SortOrder:  maxOrder + 1,
	}
	if err := s.sopRepo.CreateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *sopService) UpdateStep(sopID, stepID uint, req models.UpdateStepRequest) (*models.SOPStep, error) {
	step, err := s.sopRepo.GetStep(sopID, stepID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "step not found"}
		}
		return nil, err
	}

	step.ActionName = req.ActionName
	step.WhoRole = req.WhoRole
	step.Action = req.Action
	step.ToolsUsed = req.ToolsUsed
	step.TimeForStep = req.TimeForStep
	step.Standard = req.Standard
	step.CommonMistakes = req.CommonMistakes

	if err := s.sopRepo.UpdateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *sopService) DeleteStep(sopID, stepID uint) error {
	err := s.sopRepo.DeleteStepAndRenumber(sopID, stepID)
	if repositories.IsNotFound(err) {
		return models.ErrorNotFound{Message: "step not found"}
	}
	return err
}

func (s *sopService) AddResponsibility(sopID uint, req models.UpdateResponsibilityRequest) (*models.SOPResponsibility, error) {
	if _, err := s.getPlain(sopID); err != nil {
		return nil, err
	}

	resp := &models.SOPResponsibility{
		SOPID:                     sopID,
		RoleName:                  req.RoleName,
		ResponsibilityDescription: req.ResponsibilityDescription,
	}
	if err := s.sopRepo.CreateResponsibility(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *sopService) UpdateResponsibility(sopID, respID uint, req models.UpdateResponsibilityRequest) (*models.SOPResponsibility, error) {
	resp, err := s.sopRepo.GetResponsibility(sopID, respID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "responsibility not found"}
		}
		return nil, err
	}

	resp.RoleName = req.RoleName
	resp.ResponsibilityDescription = req.ResponsibilityDescription

	if err := s.sopRepo.UpdateResponsibility(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *sopService) DeleteResponsibility(sopID, respID uint) error {
	err := s.sopRepo.DeleteResponsibility(sopID, respID)
	if repositories.IsNotFound(err) {
		return models.ErrorNotFound{Message: "responsibility not found"}
	}
	return err
}

func (s *sopService) AddTroubleshootingItem(sopID uint, req models.CreateTroubleshootingRequest) (*models.SOPTroubleshootingItem, error) {
	if _, err := s.getPlain(sopID); err != nil {
		return nil, err
	}

	item := &models.SOPTroubleshootingItem{
		SOPID:         sopID,
		Problem:       req.Problem,
		PossibleCause: req.PossibleCause,
		Solution:      req.Solution,
	}
	if err := s.sopRepo.CreateTroubleshootingItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *sopService) DeleteTroubleshootingItem(sopID, itemID uint) error {
	err := s.sopRepo.DeleteTroubleshootingItem(sopID, itemID)
	if repositories.IsNotFound(err) {
		return models.ErrorNotFound{Message: "troubleshooting item not found"}
	}
	return err
}

func (s *sopService) AddRevision(sopID uint, req models.CreateRevisionRequest) (*models.SOPRevision, error) {
	if _, err := s.getPlain(sopID); err != nil {
		return nil, err
	}

	rev := &models.SOPRevision{
		SOPID:        sopID,
		RevisionDate: req.RevisionDate,
		Description:  req.Description,
		RevisedBy:    req.RevisedBy,
	}
	if err := s.sopRepo.CreateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *sopService) getPlain(id uint) (*models.SOP, error) {
	sop, err := s.sopRepo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "SOP not found"}
		}
		return nil, err
	}
	return sop, nil
}

func (s *sopService) canEdit(status models.SOPStatus) bool {
	step, err := s.workflowRepo.GetStepByStatusKey(string(status))
	if err != nil {
		return CanEditInStatus(status, nil)
	}
	return CanEditInStatus(status, step)
}
