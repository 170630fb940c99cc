package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskforge/backend/internal/authz"
	"github.com/taskforge/backend/internal/domain"
)

const projectListLimit = 100

type ProjectService struct {
	projects domain.ProjectRepository
	tasks    domain.TaskRepository
	activity *ActivityService
	logger   *slog.Logger
}

func NewProjectService(projects domain.ProjectRepository, tasks domain.TaskRepository, activity *ActivityService, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		activity: activity,
		logger:   logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.PostDate.IsZero() {
		input.PostDate = time.Now()
	}
	return s.projects.Create(ctx, input)
}

// sameWorkspace reports whether an entity belongs to the workspace the
// caller's role was resolved in. Membership is workspace-scoped, so an entity
// of another workspace is invisible here, not merely forbidden.
func sameWorkspace(entityWorkspaceID *string, workspaceID string) bool {
	return entityWorkspaceID != nil && *entityWorkspaceID == workspaceID
}

// Get returns one project, enforcing the caller's project scope. A CLIENT
// bound to another project sees ErrForbidden, not ErrNotFound, because the
// project's existence is not a secret inside the workspace. A project of a
// different workspace is ErrNotFound.
func (s *ProjectService) Get(ctx context.Context, role domain.Role, memberProjectID *string, workspaceID, id string) (*domain.Project, error) {
	if !authz.CanAccessProject(role, memberProjectID, id) {
		return nil, domain.ErrForbidden
	}
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sameWorkspace(project.WorkspaceID, workspaceID) {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

// List returns the projects visible to the caller. CLIENT members see only
// their bound project, the privileged tier sees the workspace's projects and
// everyone else sees the workspace projects they work on.
func (s *ProjectService) List(ctx context.Context, role domain.Role, memberProjectID *string, userID, workspaceID string) ([]domain.Project, error) {
	if role == domain.RoleClient {
		if memberProjectID == nil {
			return nil, nil
		}
		return s.projects.FindByIDs(ctx, []string{*memberProjectID})
	}
	if !authz.Privileged(role) {
		projects, err := s.projects.FindForAssignee(ctx, userID, projectListLimit)
		if err != nil {
			return nil, err
		}
		scoped := projects[:0]
		for _, project := range projects {
			if sameWorkspace(project.WorkspaceID, workspaceID) {
				scoped = append(scoped, project)
			}
		}
		return scoped, nil
	}
	return s.projects.FindAll(ctx, &workspaceID, projectListLimit)
}

func (s *ProjectService) Update(ctx context.Context, workspaceID, id string, input domain.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sameWorkspace(project.WorkspaceID, workspaceID) {
		return nil, domain.ErrNotFound
	}
	return s.projects.Update(ctx, id, input)
}

func (s *ProjectService) Delete(ctx context.Context, actor *domain.User, workspaceID, id string) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !sameWorkspace(project.WorkspaceID, workspaceID) {
		return domain.ErrNotFound
	}

	s.activity.LogProjectDeleted(ctx, actor, project)

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", id, "actor_id", actor.ID)
	return nil
}

// BulkDelete removes the requested projects that belong to the workspace.
// IDs of other workspaces are silently skipped, matching what a not-found
// single delete would report.
func (s *ProjectService) BulkDelete(ctx context.Context, actor *domain.User, workspaceID string, ids []string) (int64, error) {
	projects, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	scoped := make([]string, 0, len(projects))
	for i := range projects {
		if !sameWorkspace(projects[i].WorkspaceID, workspaceID) {
			continue
		}
		scoped = append(scoped, projects[i].ID)
		s.activity.LogProjectDeleted(ctx, actor, &projects[i])
	}
	if len(scoped) == 0 {
		return 0, nil
	}

	count, err := s.projects.DeleteByIDs(ctx, scoped)
	if err != nil {
		return 0, err
	}

	s.logger.Info("projects bulk deleted", "count", count, "actor_id", actor.ID)
	return count, nil
}

// MetricDelta is one analytics figure with its change against the previous
// month.
type MetricDelta struct {
	Count      int `json:"count"`
	Difference int `json:"difference"`
}

type ProjectAnalytics struct {
	Tasks     MetricDelta `json:"tasks"`
	Assigned  MetricDelta `json:"assigned"`
	Completed MetricDelta `json:"completed"`
	Overdue   MetricDelta `json:"overdue"`
}

// Analytics compares this calendar month's task counts against last month's
// for one project, scoped to the caller for the "assigned" figure.
func (s *ProjectService) Analytics(ctx context.Context, role domain.Role, memberProjectID *string, workspaceID, projectID, userID string) (*ProjectAnalytics, error) {
	if !authz.CanAccessProject(role, memberProjectID, projectID) {
		return nil, domain.ErrForbidden
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !sameWorkspace(project.WorkspaceID, workspaceID) {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	prevMonth := monthStart.AddDate(0, -1, 0)

	current, err := s.tasks.WindowStats(ctx, projectID, userID, monthStart, nextMonth, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.tasks.WindowStats(ctx, projectID, userID, prevMonth, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &ProjectAnalytics{
		Tasks:     MetricDelta{Count: current.Total, Difference: current.Total - previous.Total},
		Assigned:  MetricDelta{Count: current.Assigned, Difference: current.Assigned - previous.Assigned},
		Completed: MetricDelta{Count: current.Completed, Difference: current.Completed - previous.Completed},
		Overdue:   MetricDelta{Count: current.Overdue, Difference: current.Overdue - previous.Overdue},
	}, nil
}
