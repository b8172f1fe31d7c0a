package services

import (
	"sop-manager/models"
	"sop-manager/repositories"
)

type VersionService interface {
	List(sopID uint) ([]models.SOPVersion, error)
	Get(sopID uint, versionNumber int) (*models.SOPVersion, error)
	Create(sopID uint, changeSummary string, actor models.Actor) (*models.SOPVersion, error)
	Restore(sopID uint, versionNumber int, actor models.Actor) (*models.SOPVersion, error)
	Changes(sopID uint, versionNumber int) ([]models.ChangeItem, error)
}

type versionService struct {
	versionRepo repositories.SOPVersionRepository
	sopRepo     repositories.SOPRepository
	diffService DiffService
}

func NewVersionService(versionRepo repositories.SOPVersionRepository, sopRepo repositories.SOPRepository, diffService DiffService) VersionService {
	return &versionService{
		versionRepo: versionRepo,
		sopRepo:     sopRepo,
		diffService: diffService,
	}
}

func (s *versionService) List(sopID uint) ([]models.SOPVersion, error) {
	if err := s.requireSOP(sopID); err != nil {
		return nil, err
	}
	return s.versionRepo.List(sopID)
}

func (s *versionService) Get(sopID uint, versionNumber int) (*models.SOPVersion, error) {
	if err := s.requireSOP(sopID); err != nil {
		return nil, err
	}
	return s.versionRepo.GetByNumber(sopID, versionNumber)
}

// Create takes a manual snapshot of the SOP's current state.
func (s *versionService) Create(sopID uint, changeSummary string, actor models.Actor) (*models.SOPVersion, error) {
	if err := s.requireSOP(sopID); err != nil {
		return nil, err
	}
	return s.versionRepo.TakeSnapshot(sopID, changeSummary, actor.ID)
}

func (s *versionService) Restore(sopID uint, versionNumber int, actor models.Actor) (*models.SOPVersion, error) {
	if err := s.requireSOP(sopID); err != nil {
		return nil, err
	}
	return s.versionRepo.Restore(sopID, versionNumber, actor.ID)
}

// Changes returns the structural diff of a version against its predecessor.
func (s *versionService) Changes(sopID uint, versionNumber int) ([]models.ChangeItem, error) {
	if err := s.requireSOP(sopID); err != nil {
		return nil, err
	}
	return s.diffService.ComputeChanges(sopID, versionNumber)
}

func (s *versionService) requireSOP(sopID uint) error {
	if _, err := s.sopRepo.GetByID(sopID); err != nil {
		if repositories.IsNotFound(err) {
			return models.ErrorNotFound{Message: "SOP not found"}
		}
		return err
	}
	return nil
}
