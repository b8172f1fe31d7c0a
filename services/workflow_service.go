package services

import (
	"fmt"

	"sop-manager/models"
	"sop-manager/repositories"
)

type WorkflowService interface {
	ListSteps() ([]models.WorkflowStep, error)
	CreateStep(req models.CreateWorkflowStepRequest) (*models.WorkflowStep, error)
	UpdateStep(id uint, req models.UpdateWorkflowStepRequest) (*models.WorkflowStep, error)
	DeleteStep(id uint) error
	ReorderSteps(order []models.WorkflowStepOrder) error

	ListTransitions() ([]models.WorkflowTransition, error)
	ReplaceTransitions(transitions []models.WorkflowTransition) error
	CanTransition(from, to models.SOPStatus, actor models.Actor) bool
}

type workflowService struct {
	workflowRepo repositories.WorkflowRepository
	sopRepo      repositories.SOPRepository
}

func NewWorkflowService(workflowRepo repositories.WorkflowRepository, sopRepo repositories.SOPRepository) WorkflowService {
	return &workflowService{workflowRepo: workflowRepo, sopRepo: sopRepo}
}

func (s *workflowService) ListSteps() ([]models.WorkflowStep, error) {
	return s.workflowRepo.ListSteps()
}

func (s *workflowService) CreateStep(req models.CreateWorkflowStepRequest) (*models.WorkflowStep, error) {
	if _, err := s.workflowRepo.GetStepByStatusKey(req.StatusKey); err == nil {
		return nil, models.ErrorValidation{Message: fmt.Sprintf("workflow step %q already exists", req.StatusKey)}
	} else if !repositories.IsNotFound(err) {
		return nil, err
	}

	maxOrder, err := s.workflowRepo.MaxStepOrder()
	if err != nil {
		return nil, err
	}

	canEdit := true
	if req.CanEdit != nil {
		canEdit = *req.CanEdit
	}

	step := &models.WorkflowStep{
		StepOrder:        maxOrder + 1,
		StatusKey:        req.StatusKey,
		DisplayLabel:     req.DisplayLabel,
		Color:            req.Color,
		RequiresApproval: req.RequiresApproval,
		CanEdit:          canEdit,
	}
	if err := s.workflowRepo.CreateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *workflowService) UpdateStep(id uint, req models.UpdateWorkflowStepRequest) (*models.WorkflowStep, error) {
	step, err := s.workflowRepo.GetStepByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "workflow step not found"}
		}
		return nil, err
	}

	if req.DisplayLabel != nil {
		step.DisplayLabel = *req.DisplayLabel
	}
	if req.Color != nil {
		step.Color = *req.Color
	}
	if req.RequiresApproval != nil {
		step.RequiresApproval = *req.RequiresApproval
	}
	if req.CanEdit != nil {
		step.CanEdit = *req.CanEdit
	}

	if err := s.workflowRepo.UpdateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

// DeleteStep removes a custom workflow step. Steps still holding SOPs and the
// initial/final anchors of the board cannot be removed.
func (s *workflowService) DeleteStep(id uint) error {
	step, err := s.workflowRepo.GetStepByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.ErrorNotFound{Message: "workflow step not found"}
		}
		return err
	}

	if step.IsInitial || step.IsFinal {
		return models.ErrorValidation{Message: "initial and final workflow steps cannot be deleted"}
	}

	count, err := s.sopRepo.CountByStatus(models.SOPStatus(step.StatusKey))
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrorValidation{Message: fmt.Sprintf("%d SOPs are still in status %q", count, step.StatusKey)}
	}

	if err := s.workflowRepo.DeleteStep(id); err != nil {
		return err
	}
	return s.workflowRepo.DeleteTransitionsForStatus(step.StatusKey)
}

func (s *workflowService) ReorderSteps(order []models.WorkflowStepOrder) error {
	if len(order) == 0 {
		return models.ErrorValidation{Message: "order must not be empty"}
	}
	return s.workflowRepo.ReorderSteps(order)
}

func (s *workflowService) ListTransitions() ([]models.WorkflowTransition, error) {
	return s.workflowRepo.ListTransitions()
}

func (s *workflowService) ReplaceTransitions(transitions []models.WorkflowTransition) error {
	for _, t := range transitions {
		if t.FromStatus == "" || t.ToStatus == "" {
			return models.ErrorValidation{Message: "transitions require from_status and to_status"}
		}
	}
	return s.workflowRepo.ReplaceTransitions(transitions)
}

// CanTransition consults the stored transition table; unknown pairs are
// denied, admin-only rows are denied for regular users.
func (s *workflowService) CanTransition(from, to models.SOPStatus, actor models.Actor) bool {
	transition, err := s.workflowRepo.FindTransition(string(from), string(to))
	if err != nil {
		return false
	}
	if transition.RequiresAdmin && !actor.IsAdmin() {
		return false
	}
	return true
}
