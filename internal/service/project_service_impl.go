package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	clock    Clock
	ids      IDGenerator
	observer UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	clock Clock,
	ids IDGenerator,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		tasks:    tasks,
		clock:    clock,
		ids:      ids,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) CreateProject(ctx context.Context, createdBy string, in ProjectInput) (p *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"created_by": createdBy}
	defer func() { observe(ctx, s.observer, "project-create", startedAt, fields, &err) }()

	if err = domain.ValidateName("project", in.Name); err != nil {
		return nil, err
	}
	p = &domain.Project{
		ID:          s.ids.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: domain.NonEmptyPtr(in.Description),
		CreatedBy:   createdBy,
		Status:      domain.ProjectActive,
		CreatedAt:   s.clock.Now(),
	}
	if err = s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	fields["project_id"] = p.ID
	return p, nil
}

func (s *projectService) UpdateProject(ctx context.Context, id string, in ProjectInput) (p *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observe(ctx, s.observer, "project-update", startedAt, fields, &err) }()

	if err = domain.ValidateName("project", in.Name); err != nil {
		return nil, err
	}
	p, err = s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "project not found")
	}
	p.Name = strings.TrimSpace(in.Name)
	if in.Description != nil {
		p.Description = domain.NonEmptyPtr(in.Description)
	}
	if err = s.projects.Update(ctx, p); err != nil {
		return nil, notFoundAs(err, "project not found")
	}
	return p, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) CreateTask(ctx context.Context, in TaskInput) (t *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": in.ProjectID}
	defer func() { observe(ctx, s.observer, "task-create", startedAt, fields, &err) }()

	if err = domain.ValidateName("task", in.Name); err != nil {
		return nil, err
	}
	if _, err = s.projects.GetByID(ctx, in.ProjectID); err != nil {
		return nil, notFoundAs(err, "project not found")
	}
	t = &domain.Task{
		ID:          s.ids.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: domain.NonEmptyPtr(in.Description),
		ProjectID:   in.ProjectID,
		Status:      domain.ProjectActive,
		CreatedAt:   s.clock.Now(),
	}
	if err = s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	fields["task_id"] = t.ID
	return t, nil
}

func (s *projectService) UpdateTask(ctx context.Context, id string, in TaskInput) (t *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": id}
	defer func() { observe(ctx, s.observer, "task-update", startedAt, fields, &err) }()

	if err = domain.ValidateName("task", in.Name); err != nil {
		return nil, err
	}
	t, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "task not found")
	}
	if in.ProjectID != "" && in.ProjectID != t.ProjectID {
		if _, err = s.projects.GetByID(ctx, in.ProjectID); err != nil {
			return nil, notFoundAs(err, "project not found")
		}
		t.ProjectID = in.ProjectID
	}
	t.Name = strings.TrimSpace(in.Name)
	if in.Description != nil {
		t.Description = domain.NonEmptyPtr(in.Description)
	}
	if err = s.tasks.Update(ctx, t); err != nil {
		return nil, notFoundAs(err, "task not found")
	}
	fields["project_id"] = t.ProjectID
	return t, nil
}

func (s *projectService) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.List(ctx, projectID)
}
