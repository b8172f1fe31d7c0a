package services

import (
	"sop-manager/models"
	"sop-manager/repositories"
)

type QuestionnaireService interface {
	List() ([]models.Questionnaire, error)
	Get(id uint) (*models.Questionnaire, error)
	Create(q *models.Questionnaire) (*models.Questionnaire, error)
	Update(id uint, updated *models.Questionnaire) (*models.Questionnaire, error)
	Delete(id uint) error
}

type questionnaireService struct {
	questionnaireRepo repositories.QuestionnaireRepository
	sopRepo           repositories.SOPRepository
}

func NewQuestionnaireService(questionnaireRepo repositories.QuestionnaireRepository, sopRepo repositories.SOPRepository) QuestionnaireService {
	return &questionnaireService{questionnaireRepo: questionnaireRepo, sopRepo: sopRepo}
}

func (s *questionnaireService) List() ([]models.Questionnaire, error) {
	return s.questionnaireRepo.GetAll()
}

func (s *questionnaireService) Get(id uint) (*models.Questionnaire, error) {
	q, err := s.questionnaireRepo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "questionnaire not found"}
		}
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) Create(q *models.Questionnaire) (*models.Questionnaire, error) {
	if err := s.requireSOP(q.SOPID); err != nil {
		return nil, err
	}
	if err := s.questionnaireRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) Update(id uint, updated *models.Questionnaire) (*models.Questionnaire, error) {
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

	if err := s.questionnaireRepo.Update(updated); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *questionnaireService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.questionnaireRepo.Delete(id)
}

func (s *questionnaireService) requireSOP(sopID *uint) error {
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
