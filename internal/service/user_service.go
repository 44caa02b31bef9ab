package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// UserRepository описывает зависимости UserService от слоя хранилища.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService инкапсулирует работу с профилями пользователей.
type UserService struct {
	repo UserRepository
}

// UpdateProfileInput содержит изменяемые поля профиля.
// Nil означает "поле не трогать".
type UpdateProfileInput struct {
	Name         *string
	Password     *string
	ProfileImage *string
	Skills       []string
	Portfolio    []string
	HourlyRate   *float64
	CompanyName  *string
	Bio          *string
	Location     *string
}

// NewUserService создаёт сервис пользователей.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetUser возвращает пользователя по идентификатору.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("пользователь не найден")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile обновляет профиль пользователя.
// Набор доступных полей зависит от роли: фрилансер управляет навыками,
// портфолио и ставкой, клиент названием компании. Чужие поля отклоняются.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRoleFields(user.Role, in); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Name = strings.TrimSpace(*in.Name)
	}

	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
		}
		user.PasswordHash = string(hash)
	}

	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}

	if in.Skills != nil {
		if err := validation.ValidateSkills(in.Skills); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Skills = in.Skills
	}

	if in.Portfolio != nil {
		user.Portfolio = in.Portfolio
	}

	if in.HourlyRate != nil {
		if err := validation.ValidateHourlyRate(*in.HourlyRate); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.HourlyRate = *in.HourlyRate
	}

	if in.CompanyName != nil {
		user.CompanyName = strings.TrimSpace(*in.CompanyName)
	}

	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Bio = *in.Bio
	}

	if in.Location != nil {
		if err := validation.ValidateLocation(*in.Location); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Location = *in.Location
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("пользователь не найден")
		}
		return nil, err
	}

	return user, nil
}

// checkRoleFields отклоняет поля, недоступные роли пользователя.
func (s *UserService) checkRoleFields(role string, in UpdateProfileInput) error {
	if role == models.RoleAdmin {
		return nil
	}

	if role != models.RoleFreelancer {
		if in.Skills != nil || in.Portfolio != nil || in.HourlyRate != nil {
			return apperror.Forbidden("навыки, портфолио и почасовая ставка доступны только фрилансеру")
		}
	}

	if role != models.RoleClient {
		if in.CompanyName != nil {
			return apperror.Forbidden("название компании доступно только клиенту")
		}
	}

	return nil
}

// ListUsers возвращает всех пользователей. Только для админа.
func (s *UserService) ListUsers(ctx context.Context, callerRole string) ([]models.User, error) {
	if callerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.repo.List(ctx)
}

// DeleteUser удаляет пользователя вместе с его ставками.
// Удалять может сам пользователь или админ.
func (s *UserService) DeleteUser(ctx context.Context, callerID uuid.UUID, callerRole string, targetID uuid.UUID) error {
	if callerID != targetID && callerRole != models.RoleAdmin {
		return apperror.ErrForbidden
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.NotFound("пользователь не найден")
		}
		return err
	}

	return nil
}
