package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/email"
	"github.com/taskforge/backend/internal/invite"
)

const invitationTTL = 7 * 24 * time.Hour

// InvitationService issues signed invitation links and turns accepted ones
// into memberships.
type InvitationService struct {
	invitations domain.InvitationRepository
	members     domain.MemberRepository
	users       domain.UserRepository
	signer      *invite.Signer
	sender      email.Sender
	notifier    *NotificationService
	appOrigin   string
	logger      *slog.Logger
}

type InvitationServiceConfig struct {
	Invitations domain.InvitationRepository
	Members     domain.MemberRepository
	Users       domain.UserRepository
	Signer      *invite.Signer
	Sender      email.Sender
	Notifier    *NotificationService
	AppOrigin   string
	Logger      *slog.Logger
}

func NewInvitationService(cfg InvitationServiceConfig) *InvitationService {
	return &InvitationService{
		invitations: cfg.Invitations,
		members:     cfg.Members,
		users:       cfg.Users,
		signer:      cfg.Signer,
		sender:      cfg.Sender,
		notifier:    cfg.Notifier,
		appOrigin:   cfg.AppOrigin,
		logger:      cfg.Logger,
	}
}

// Invite creates an invitation row and mails a signed accept link. CLIENT
// invitations must carry a project binding.
func (s *InvitationService) Invite(ctx context.Context, actor *domain.User, workspaceID, inviteeEmail string, role domain.Role, projectID *string) (*domain.Invitation, error) {
	if !role.Valid() || inviteeEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == domain.RoleClient && projectID == nil {
		return nil, domain.ErrInvalidInput
	}
	if role != domain.RoleClient {
		projectID = nil
	}

	invitation, err := s.invitations.Create(ctx, domain.CreateInvitationInput{
		Email:       inviteeEmail,
		WorkspaceID: workspaceID,
		Role:        role,
		ProjectID:   projectID,
		InvitedBy:   actor.ID,
		ExpiresAt:   time.Now().Add(invitationTTL),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.signer.Sign(invitation)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/invitations/accept?token=%s", s.appOrigin, token)
	err = s.sender.Send(email.Message{
		To:      invitation.Email,
		Subject: "You have been invited to a workspace",
		Body:    actor.Name + " invited you to join their workspace.\n\nAccept here: " + link,
	})
	if err != nil {
		// the invitation stands; the link can be re-sent
		s.logger.Error("failed to send invitation email", "invitation_id", invitation.ID, "error", err)
	}

	return invitation, nil
}

// Accept verifies the signed token and creates the membership for the
// logged-in user. The email on the account must match the invitation.
func (s *InvitationService) Accept(ctx context.Context, user *domain.User, rawToken string) (*domain.Member, error) {
	claims, err := s.signer.Verify(rawToken)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	invitation, err := s.invitations.FindByID(ctx, claims.InvitationID)
	if err != nil {
		return nil, err
	}

	if invitation.AcceptedAt != nil {
		return nil, domain.ErrConflict
	}
	if invitation.Expired(time.Now()) {
		return nil, domain.ErrInvalidInput
	}
	if !strings.EqualFold(invitation.Email, user.Email) {
		return nil, domain.ErrForbidden
	}

	if err := s.invitations.MarkAccepted(ctx, invitation.ID); err != nil {
		return nil, err
	}

	member, err := s.members.Create(ctx, domain.CreateMemberInput{
		UserID:      user.ID,
		WorkspaceID: invitation.WorkspaceID,
		Role:        invitation.Role,
		ProjectID:   invitation.ProjectID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	s.notifier.NotifyInviteAccepted(ctx, invitation.InvitedBy, user.Email)

	s.logger.Info("invitation accepted",
		"invitation_id", invitation.ID,
		"workspace_id", invitation.WorkspaceID,
		"user_id", user.ID,
	)
	return member, nil
}
