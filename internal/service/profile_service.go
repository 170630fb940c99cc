package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taskforge/backend/internal/bulkimport"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/password"
)

// ProfileService manages user profiles: registration, directory-only
// profiles from bulk import and the cascading profile deletion.
type ProfileService struct {
	users         domain.UserRepository
	members       domain.MemberRepository
	workspaces    domain.WorkspaceRepository
	tasks         domain.TaskRepository
	notifications domain.NotificationRepository
	invitations   domain.InvitationRepository
	sessions      *SessionService
	activity      *ActivityService
	logger        *slog.Logger
}

type ProfileServiceConfig struct {
	Users         domain.UserRepository
	Members       domain.MemberRepository
	Workspaces    domain.WorkspaceRepository
	Tasks         domain.TaskRepository
	Notifications domain.NotificationRepository
	Invitations   domain.InvitationRepository
	Sessions      *SessionService
	Activity      *ActivityService
	Logger        *slog.Logger
}

func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	return &ProfileService{
		users:         cfg.Users,
		members:       cfg.Members,
		workspaces:    cfg.Workspaces,
		tasks:         cfg.Tasks,
		notifications: cfg.Notifications,
		invitations:   cfg.Invitations,
		sessions:      cfg.Sessions,
		activity:      cfg.Activity,
		logger:        cfg.Logger,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user with login access.
func (s *ProfileService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, domain.CreateUserInput{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *ProfileService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *ProfileService) Update(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, id, input)
}

// Delete removes a profile and everything hanging off it. The order matters:
// sessions go first so the account cannot act mid-deletion, and tasks are
// unassigned rather than deleted.
func (s *ProfileService) Delete(ctx context.Context, actor *domain.User, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.sessions.InvalidateUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.members.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.invitations.DeleteByEmail(ctx, user.Email); err != nil {
		return err
	}
	if _, err := s.notifications.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.tasks.UnassignUser(ctx, userID); err != nil {
		return err
	}

	s.activity.LogProfileDeleted(ctx, actor, user)

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("profile deleted", "user_id", userID, "actor_id", actor.ID)
	return nil
}

// RowError reports why one uploaded line was rejected.
type RowError struct {
	Line    int    `json:"line"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk upload. A batch with failures still creates
// the valid rows.
type ImportResult struct {
	Created int           `json:"created"`
	Failed  int           `json:"failed"`
	Errors  []RowError    `json:"errors,omitempty"`
	Users   []domain.User `json:"users"`
}

// BulkImport creates directory-only profiles from parsed upload rows. Each
// row succeeds or fails independently; conflicts inside the file and against
// the store both surface as per-row errors.
func (s *ProfileService) BulkImport(ctx context.Context, rows []bulkimport.Row) (*ImportResult, error) {
	var names, emails, mobiles []string
	for _, row := range rows {
		if row.Name != "" {
			names = append(names, row.Name)
		}
		if row.Email != "" {
			emails = append(emails, row.Email)
		}
		if row.MobileNo != "" {
			mobiles = append(mobiles, row.MobileNo)
		}
	}

	conflicts, err := s.users.FindConflicts(ctx, names, emails, mobiles)
	if err != nil {
		return nil, err
	}

	workspace, err := s.workspaces.FindFirst(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	result := &ImportResult{}
	seenNames := make(map[string]bool)
	seenEmails := make(map[string]bool)
	seenMobiles := make(map[string]bool)

	for _, row := range rows {
		if msg := s.validateRow(row, conflicts, seenNames, seenEmails, seenMobiles); msg != "" {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: row.Line, Name: row.Name, Message: msg})
			continue
		}

		seenNames[row.Name] = true
		seenEmails[row.Email] = true
		if row.MobileNo != "" {
			seenMobiles[row.MobileNo] = true
		}

		var hash string
		if row.Password != "" {
			if hash, err = password.Hash(row.Password); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, RowError{Line: row.Line, Name: row.Name, Message: "failed to hash password"})
				continue
			}
		}

		user, err := s.users.Create(ctx, domain.CreateUserInput{
			Name:          row.Name,
			Email:         row.Email,
			PasswordHash:  hash,
			Native:        row.Native,
			MobileNo:      row.MobileNo,
			Experience:    row.Experience,
			Skills:        row.Skills,
			Designation:   row.Designation,
			Department:    row.Department,
			DateOfBirth:   row.DateOfBirth,
			DateOfJoining: row.DateOfJoining,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: row.Line, Name: row.Name, Message: importErrorMessage(err)})
			continue
		}

		if workspace != nil {
			role := domain.RoleEmployee
			if row.Password != "" && row.Role != "" {
				role = domain.Role(row.Role)
			}
			_, err := s.members.Create(ctx, domain.CreateMemberInput{
				UserID:      user.ID,
				WorkspaceID: workspace.ID,
				Role:        role,
			})
			if err != nil {
				s.logger.Warn("imported profile without membership", "user_id", user.ID, "error", err)
			}
		}

		result.Created++
		result.Users = append(result.Users, *user)
	}

	s.logger.Info("bulk import finished", "created", result.Created, "failed", result.Failed)
	return result, nil
}

func (s *ProfileService) validateRow(row bulkimport.Row, conflicts *domain.UserConflicts, seenNames, seenEmails, seenMobiles map[string]bool) string {
	switch {
	case row.Name == "":
		return "name is required"
	case row.Email == "" || !strings.Contains(row.Email, "@"):
		return "a valid email is required"
	case row.Password != "" && len(row.Password) < 6:
		return "password must be at least 6 characters"
	case row.Password != "" && row.Role != "" && !domain.Role(row.Role).Valid():
		return "unknown role " + row.Role
	case seenNames[row.Name]:
		return "duplicate name in file"
	case seenEmails[row.Email]:
		return "duplicate email in file"
	case row.MobileNo != "" && seenMobiles[row.MobileNo]:
		return "duplicate mobile number in file"
	case conflicts.Names[row.Name]:
		return "name already exists"
	case conflicts.Emails[row.Email]:
		return "email already exists"
	case row.MobileNo != "" && conflicts.Mobiles[row.MobileNo]:
		return "mobile number already exists"
	}
	return ""
}

func importErrorMessage(err error) string {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return err.Error()
	}
	return "failed to create profile"
}
