package services

import (
	"strings"
	"time"

	"sop-manager/models"
	"sop-manager/repositories"
)

type ApprovalService interface {
	Submit(sopID uint, actor models.Actor) (*models.SOPApproval, error)
	Approve(approvalID uint, comments string, actor models.Actor) error
	Reject(approvalID uint, comments string, actor models.Actor) error
	ListPending() ([]models.ApprovalSummary, error)
	PendingDetail(approvalID uint) (*models.ApprovalSummary, error)
	CountPending() (int64, error)
	Changes(approvalID uint) (*models.ApprovalChanges, error)
	HistoryBySOP(sopID uint) ([]models.SOPApproval, error)
}

type approvalService struct {
	approvalRepo repositories.SOPApprovalRepository
	sopRepo      repositories.SOPRepository
	versionRepo  repositories.SOPVersionRepository
	settingRepo  repositories.SettingRepository
	diffService  DiffService
}

func NewApprovalService(
	approvalRepo repositories.SOPApprovalRepository,
	sopRepo repositories.SOPRepository,
	versionRepo repositories.SOPVersionRepository,
	settingRepo repositories.SettingRepository,
	diffService DiffService,
) ApprovalService {
	return &approvalService{
		approvalRepo: approvalRepo,
		sopRepo:      sopRepo,
		versionRepo:  versionRepo,
		settingRepo:  settingRepo,
		diffService:  diffService,
	}
}

// Submit sends an SOP into the approval queue. Non-admins may only submit
// SOPs they created or are assigned to; the repository enforces the status
// and single-pending invariants atomically.
func (s *approvalService) Submit(sopID uint, actor models.Actor) (*models.SOPApproval, error) {
	sop, err := s.sopRepo.GetByID(sopID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "SOP not found"}
		}
		return nil, err
	}

	if !actor.IsAdmin() && !sop.OwnedOrAssigned(actor.ID) {
		return nil, models.ErrorPermissionDenied{Message: "you can only submit SOPs you created or are assigned to"}
	}

	return s.approvalRepo.Submit(sopID, actor.ID)
}

// Approve resolves a pending request, activates the SOP, and schedules the
// next review using the configured review period.
func (s *approvalService) Approve(approvalID uint, comments string, actor models.Actor) error {
	if !actor.IsAdmin() {
		return models.ErrorPermissionDenied{Message: "only admins can approve SOPs"}
	}

	approval, err := s.approvalRepo.Get(approvalID)
	if err != nil {
		return err
	}

	days, err := s.settingRepo.GetInt(models.SettingReviewPeriodDays, models.DefaultReviewPeriodDays)
	if err != nil {
		return err
	}
	reviewDue := time.Now().AddDate(0, 0, days)

	return s.approvalRepo.Approve(approval.SOPID, approvalID, comments, actor.ID, reviewDue)
}

// Reject resolves a pending request and returns the SOP to draft. Comments
// are mandatory so the author knows what to fix.
func (s *approvalService) Reject(approvalID uint, comments string, actor models.Actor) error {
	if !actor.IsAdmin() {
		return models.ErrorPermissionDenied{Message: "only admins can reject SOPs"}
	}

	if strings.TrimSpace(comments) == "" {
		return models.ErrorValidation{Message: "comments are required when rejecting an SOP"}
	}

	approval, err := s.approvalRepo.Get(approvalID)
	if err != nil {
		return err
	}

	return s.approvalRepo.Reject(approval.SOPID, approvalID, comments, actor.ID)
}

// ListPending builds the review queue: each pending request with its SOP
// identity and precomputed change information against the prior version.
func (s *approvalService) ListPending() ([]models.ApprovalSummary, error) {
	approvals, err := s.approvalRepo.ListPending()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ApprovalSummary, 0, len(approvals))
	for i := range approvals {
		summary, err := s.buildSummary(&approvals[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// PendingDetail is one pending request with its full change list.
func (s *approvalService) PendingDetail(approvalID uint) (*models.ApprovalSummary, error) {
	approval, err := s.approvalRepo.GetPending(approvalID)
	if err != nil {
		return nil, err
	}
	summary, err := s.buildSummary(approval)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *approvalService) buildSummary(approval *models.SOPApproval) (models.ApprovalSummary, error) {
	summary := models.ApprovalSummary{
		ID:          approval.ID,
		SOPID:       approval.SOPID,
		RequestedAt: approval.RequestedAt,
	}
	if approval.Requester != nil {
		summary.RequestedBy = models.UserRef{ID: approval.Requester.ID, Name: approval.Requester.Name}
	}
	if approval.SOP != nil {
		summary.SOPNumber = approval.SOP.SOPNumber
		summary.ProcessName = approval.SOP.ProcessName
		summary.Department = approval.SOP.Department
		summary.Version = approval.SOP.Version

		changes, err := s.diffService.ComputeChanges(approval.SOPID, approval.SOP.Version)
		if err != nil {
			return summary, err
		}
		summary.ChangeCount = len(changes)
		summary.Changes = changes

		version, err := s.versionRepo.GetByNumber(approval.SOPID, approval.SOP.Version)
		if err != nil {
			return summary, err
		}
		summary.ChangeSummary = version.ChangeSummary
	}
	return summary, nil
}

func (s *approvalService) CountPending() (int64, error) {
	return s.approvalRepo.CountPending()
}

// Changes returns the raw diff for one approval request, computed from the
// snapshot taken at submit time against its predecessor.
func (s *approvalService) Changes(approvalID uint) (*models.ApprovalChanges, error) {
	approval, err := s.approvalRepo.Get(approvalID)
	if err != nil {
		return nil, err
	}

	version := 1
	if approval.SOP != nil {
		version = approval.SOP.Version
	}

	changes, err := s.diffService.ComputeChanges(approval.SOPID, version)
	if err != nil {
		return nil, err
	}

	previous := version - 1
	if previous < 0 {
		previous = 0
	}

	return &models.ApprovalChanges{
		ApprovalID:      approval.ID,
		SOPID:           approval.SOPID,
		Version:         version,
		PreviousVersion: previous,
		Changes:         changes,
	}, nil
}

func (s *approvalService) HistoryBySOP(sopID uint) ([]models.SOPApproval, error) {
	if _, err := s.sopRepo.GetByID(sopID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "SOP not found"}
		}
		return nil, err
	}
	return s.approvalRepo.HistoryBySOP(sopID)
}
