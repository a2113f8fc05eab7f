package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
}

// NewProjectService creates the project scope service.
func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, orgID, name string) (*domain.Project, error) {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           name,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, orgID, id string) (*domain.Project, error) {
	p, err := s.projects.GetScoped(ctx, id, orgID)
	if err != nil {
		return nil, asServiceErr(err, "project "+id)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, orgID string) ([]*domain.Project, error) {
	return s.projects.ListByOrg(ctx, orgID)
}
