package services

import (
	"strconv"

	"sop-manager/models"
	"sop-manager/repositories"
)

type SettingService interface {
	GetAll() (map[string]string, error)
	Set(key, value string) error
	ReviewPeriodDays() (int, error)
}

type settingService struct {
	settingRepo repositories.SettingRepository
}

func NewSettingService(settingRepo repositories.SettingRepository) SettingService {
	return &settingService{settingRepo: settingRepo}
}

func (s *settingService) GetAll() (map[string]string, error) {
	return s.settingRepo.GetAll()
}

func (s *settingService) Set(key, value string) error {
	if key == "" {
		return models.ErrorValidation{Message: "setting key is required"}
	}
	if key == models.SettingReviewPeriodDays {
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 {
			return models.ErrorValidation{Message: "review_period_days must be a positive integer"}
		}
	}
	return s.settingRepo.Set(key, value)
}

func (s *settingService) ReviewPeriodDays() (int, error) {
	return s.settingRepo.GetInt(models.SettingReviewPeriodDays, models.DefaultReviewPeriodDays)
}
