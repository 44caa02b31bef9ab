package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// ProjectRepository описывает зависимости ProjectService от слоя хранилища.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectService инкапсулирует бизнес-логику проектов.
type ProjectService struct {
	repo ProjectRepository
}

// CreateProjectInput содержит данные нового проекта.
type CreateProjectInput struct {
	Title          string
	Description    string
	Budget         float64
	Deadline       models.Date
	SkillsRequired []string
}

// UpdateProjectInput содержит изменяемые поля проекта.
// Nil означает "поле не трогать".
type UpdateProjectInput struct {
	Title          *string
	Description    *string
	Budget         *float64
	Deadline       *models.Date
	SkillsRequired []string
}

// NewProjectService создаёт сервис проектов.
func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// CreateProject создаёт проект со статусом "open". Только для клиента.
func (s *ProjectService) CreateProject(ctx context.Context, clientID uuid.UUID, clientRole string, in CreateProjectInput) (*models.Project, error) {
	if clientRole != models.RoleClient {
		return nil, apperror.Forbidden("создавать проекты может только клиент")
	}

	if err := validation.ValidateProjectTitle(in.Title); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateProjectDescription(in.Description); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateBudget(in.Budget); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if in.Deadline.IsZero() || !in.Deadline.After(models.Today()) {
		return nil, apperror.Validation("срок сдачи должен быть в будущем")
	}
	if err := validation.ValidateSkills(in.SkillsRequired); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	project := &models.Project{
		ClientID:       clientID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Budget:         in.Budget,
		Deadline:       in.Deadline,
		SkillsRequired: in.SkillsRequired,
		Status:         models.ProjectStatusOpen,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetProject возвращает проект по идентификатору.
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.NotFound("проект не найден")
		}
		return nil, err
	}
	return project, nil
}

// ListProjects возвращает все проекты.
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.repo.List(ctx)
}

// ListClientProjects возвращает проекты клиента.
func (s *ProjectService) ListClientProjects(ctx context.Context, clientID uuid.UUID) ([]models.Project, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// UpdateProject обновляет проект. Доступно владельцу-клиенту, пока
// проект открыт, и админу всегда.
func (s *ProjectService) UpdateProject(ctx context.Context, callerID uuid.UUID, callerRole string, projectID uuid.UUID, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if callerRole != models.RoleAdmin {
		if project.ClientID != callerID {
			return nil, apperror.Forbidden("проект принадлежит другому клиенту")
		}
		if project.Status != models.ProjectStatusOpen {
			return nil, apperror.InvalidState("редактировать можно только открытый проект")
		}
	}

	if in.Title != nil {
		if err := validation.ValidateProjectTitle(*in.Title); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		project.Title = strings.TrimSpace(*in.Title)
	}

	if in.Description != nil {
		if err := validation.ValidateProjectDescription(*in.Description); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		project.Description = strings.TrimSpace(*in.Description)
	}

	if in.Budget != nil {
		if err := validation.ValidateBudget(*in.Budget); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		project.Budget = *in.Budget
	}

	if in.Deadline != nil {
		if !in.Deadline.After(models.Today()) {
			return nil, apperror.Validation("срок сдачи должен быть в будущем")
		}
		project.Deadline = *in.Deadline
	}

	if in.SkillsRequired != nil {
		if err := validation.ValidateSkills(in.SkillsRequired); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		project.SkillsRequired = in.SkillsRequired
	}

	if err := s.repo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.NotFound("проект не найден")
		}
		return nil, err
	}

	return project, nil
}

// DeleteProject удаляет проект вместе со ставками на него.
// Доступно владельцу-клиенту и админу.
func (s *ProjectService) DeleteProject(ctx context.Context, callerID uuid.UUID, callerRole string, projectID uuid.UUID) error {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	if callerRole != models.RoleAdmin && project.ClientID != callerID {
		return apperror.Forbidden("проект принадлежит другому клиенту")
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return apperror.NotFound("проект не найден")
		}
		return err
	}

	return nil
}
