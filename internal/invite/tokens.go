package invite

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/backend/internal/domain"
)

var ErrInvalidToken = errors.New("invalid invitation token")

// Claims is the signed payload mailed to an invitee. The invitation row is
// the source of truth; the token only proves the link was issued by us.
type Claims struct {
	InvitationID string      `json:"invitationId"`
	Email        string      `json:"email"`
	WorkspaceID  string      `json:"workspaceId"`
	Role         domain.Role `json:"role"`
	ProjectID    *string     `json:"projectId,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies invitation tokens with an HMAC key.
type Signer struct {
	key []byte
}

func NewSigner(key string) *Signer {
	return &Signer{key: []byte(key)}
}

func (s *Signer) Sign(invitation *domain.Invitation) (string, error) {
	claims := Claims{
		InvitationID: invitation.ID,
		Email:        invitation.Email,
		WorkspaceID:  invitation.WorkspaceID,
		Role:         invitation.Role,
		ProjectID:    invitation.ProjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   invitation.Email,
			ExpiresAt: jwt.NewNumericDate(invitation.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign invitation token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.InvitationID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
