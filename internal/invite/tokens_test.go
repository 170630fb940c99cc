package invite

import (
	"errors"
	"testing"
	"time"

	"github.com/taskforge/backend/internal/domain"
)

func testInvitation(expiresAt time.Time) *domain.Invitation {
	projectID := "project-1"
	return &domain.Invitation{
		ID:          "inv-1",
		Email:       "client@example.com",
		WorkspaceID: "ws-1",
		Role:        domain.RoleClient,
		ProjectID:   &projectID,
		ExpiresAt:   expiresAt,
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer := NewSigner("test-signing-key")

	token, err := signer.Sign(testInvitation(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.InvitationID != "inv-1" {
		t.Errorf("InvitationID = %s, want inv-1", claims.InvitationID)
	}
	if claims.Email != "client@example.com" {
		t.Errorf("Email = %s", claims.Email)
	}
	if claims.Role != domain.RoleClient {
		t.Errorf("Role = %s", claims.Role)
	}
	if claims.ProjectID == nil || *claims.ProjectID != "project-1" {
		t.Errorf("ProjectID = %v, want project-1", claims.ProjectID)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer := NewSigner("test-signing-key")

	token, err := signer.Sign(testInvitation(time.Now().Add(-time.Minute)))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token should fail verification, got %v", err)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	token, err := NewSigner("key-a").Sign(testInvitation(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := NewSigner("key-b").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign signature should fail verification, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewSigner("key").Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}
