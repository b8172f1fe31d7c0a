package services

import (
	"sop-manager/models"
	"sop-manager/repositories"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	List() ([]models.User, error)
	Get(id uint) (*models.User, error)
	Create(req models.CreateUserRequest) (*models.User, error)
	Update(id uint, req models.UpdateUserRequest) (*models.User, error)
	ResetPassword(id uint, newPassword string) error
	Deactivate(id uint) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Create(req models.CreateUserRequest) (*models.User, error) {
	inUse, err := s.userRepo.EmailInUse(req.Email, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, models.ErrorValidation{Message: "email is already registered"}
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, models.ErrorValidation{Message: "role must be user or admin"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
		Role:     role,
		Active:   true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		inUse, err := s.userRepo.EmailInUse(*req.Email, id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, models.ErrorValidation{Message: "email is already registered"}
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			return nil, models.ErrorValidation{Message: "role must be user or admin"}
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ResetPassword(id uint, newPassword string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(id, string(hash))
}

func (s *userService) Deactivate(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	user.Active = false
	return s.userRepo.Update(user)
}
