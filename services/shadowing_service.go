package services

import (
	"sop-manager/models"
	"sop-manager/repositories"
)

type ShadowingService interface {
	List() ([]models.ShadowingObservation, error)
	Get(id uint) (*models.ShadowingObservation, error)
	Create(obs *models.ShadowingObservation) (*models.ShadowingObservation, error)
	Update(id uint, updated *models.ShadowingObservation) (*models.ShadowingObservation, error)
	Delete(id uint) error
}

type shadowingService struct {
	shadowingRepo repositories.ShadowingRepository
	sopRepo       repositories.SOPRepository
}

func NewShadowingService(shadowingRepo repositories.ShadowingRepository, sopRepo repositories.SOPRepository) ShadowingService {
	return &shadowingService{shadowingRepo: shadowingRepo, sopRepo: sopRepo}
}

func (s *shadowingService) List() ([]models.ShadowingObservation, error) {
	return s.shadowingRepo.GetAll()
}

func (s *shadowingService) Get(id uint) (*models.ShadowingObservation, error) {
	obs, err := s.shadowingRepo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "shadowing observation not found"}
		}
		return nil, err
	}
	return obs, nil
}

func (s *shadowingService) Create(obs *models.ShadowingObservation) (*models.ShadowingObservation, error) {
	if err := s.requireSOP(obs.SOPID); err != nil {
		return nil, err
	}
	if err := s.shadowingRepo.Create(obs); err != nil {
		return nil, err
	}
	return obs, nil
}

func (s *shadowingService) Update(id uint, updated *models.ShadowingObservation) (*models.ShadowingObservation, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireSOP(updated.SOPID); err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.SOP = nil

	if err := s.shadowingRepo.Update(updated); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *shadowingService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.shadowingRepo.Delete(id)
}

func (s *shadowingService) requireSOP(sopID *uint) error {
	if sopID == nil {
		return nil
	}
	if _, err := s.sopRepo.GetByID(*sopID); err != nil {
		if repositories.IsNotFound(err) {
			return models.ErrorValidation{Message: "SOP not found"}
		}
		return err
	}
	return nil
}
