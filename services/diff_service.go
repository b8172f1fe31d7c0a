package services

import (
	"errors"

	"sop-manager/models"
	"sop-manager/repositories"
)

type DiffService interface {
	ComputeChanges(sopID uint, versionNumber int) ([]models.ChangeItem, error)
}

type diffService struct {
	versionRepo repositories.SOPVersionRepository
}

func NewDiffService(versionRepo repositories.SOPVersionRepository) DiffService {
	return &diffService{versionRepo: versionRepo}
}

// ComputeChanges compares snapshot versionNumber against versionNumber-1 for
// the same SOP. With no prior snapshot the result is the single synthetic
// initial-submission item.
func (s *diffService) ComputeChanges(sopID uint, versionNumber int) ([]models.ChangeItem, error) {
	curr, err := s.versionRepo.GetByNumber(sopID, versionNumber)
	if err != nil {
		return nil, err
	}

	if versionNumber <= 1 {
		return InitialSubmissionChanges(), nil
	}

	prev, err := s.versionRepo.GetByNumber(sopID, versionNumber-1)
	if err != nil {
		var notFound models.ErrorNotFound
		if errors.As(err, &notFound) {
			return InitialSubmissionChanges(), nil
		}
		return nil, err
	}

	prevPayload, err := models.DecodeSnapshot(prev.Snapshot)
	if err != nil {
		return nil, err
	}
	currPayload, err := models.DecodeSnapshot(curr.Snapshot)
	if err != nil {
		return nil, err
	}

	return DiffSnapshots(prevPayload, currPayload), nil
}
