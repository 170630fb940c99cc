package handler

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/cookie"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/response"
	"github.com/taskforge/backend/internal/service"
)

type AuthHandler struct {
	sessions *service.SessionService
	profiles *service.ProfileService
	cookies  *cookie.Policy
	logger   *slog.Logger
}

type AuthHandlerConfig struct {
	Sessions *service.SessionService
	Profiles *service.ProfileService
	Cookies  *cookie.Policy
	Logger   *slog.Logger
}

func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		sessions: cfg.Sessions,
		profiles: cfg.Profiles,
		cookies:  cfg.Cookies,
		logger:   cfg.Logger,
	}
}

func (h *AuthHandler) Register(app fiber.Router) {
	auth := app.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/register", h.RegisterUser)
}

func (h *AuthHandler) RegisterProtected(app fiber.Router) {
	auth := app.Group("/auth")
	auth.Post("/logout", h.Logout)
	auth.Get("/current", h.Current)
	auth.Patch("/profile", h.UpdateProfile)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "email and password are required")
	}

	session, user, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return HandleDomainError(c, err)
	}

	// the cookie is only set once the session is stored
	sessionCookie := h.cookies.Set(session.Token, time.Until(session.ExpiresAt))
	c.Cookie(&sessionCookie)

	return response.OK(c, ToUserResponse(user))
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "Account"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	user, err := h.profiles.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, ToUserResponse(user))
}

// Logout godoc
// @Summary End the current session
// @Description Tears down the session and clears the cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookies.Name())
	h.sessions.Logout(c.Context(), token, GetUserFromContext(c))

	// three deletion layers so the cookie dies regardless of which
	// attribute set it was originally written with
	for _, layer := range []fiber.Cookie{h.cookies.Delete(), h.cookies.DeleteWithoutDomain(), h.cookies.ExpireNow()} {
		deletion := layer
		c.Cookie(&deletion)
	}

	return response.OK(c, map[string]string{"message": "logged out"})
}

// Current godoc
// @Summary Get the logged-in user
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/current [get]
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}
	return response.OK(c, ToUserResponse(user))
}

type updateProfileRequest struct {
	Native      *string  `json:"native"`
	MobileNo    *string  `json:"mobileNo"`
	Experience  *int     `json:"experience"`
	Skills      []string `json:"skills"`
	Designation *string  `json:"designation"`
	Department  *string  `json:"department"`
	ImageURL    *string  `json:"imageUrl"`
}

// UpdateProfile godoc
// @Summary Update the logged-in user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body updateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Router /auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	updated, err := h.profiles.Update(c.Context(), user.ID, domain.UpdateProfileInput{
		Native:      req.Native,
		MobileNo:    req.MobileNo,
		Experience:  req.Experience,
		Skills:      req.Skills,
		Designation: req.Designation,
		Department:  req.Department,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, ToUserResponse(updated))
}

type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Native        string     `json:"native,omitempty"`
	MobileNo      string     `json:"mobileNo,omitempty"`
	Experience    *int       `json:"experience,omitempty"`
	Skills        []string   `json:"skills,omitempty"`
	Designation   string     `json:"designation,omitempty"`
	Department    string     `json:"department,omitempty"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	DateOfJoining *time.Time `json:"dateOfJoining,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Native:        user.Native,
		MobileNo:      user.MobileNo,
		Experience:    user.Experience,
		Skills:        user.Skills,
		Designation:   user.Designation,
		Department:    user.Department,
		DateOfBirth:   user.DateOfBirth,
		DateOfJoining: user.DateOfJoining,
		ImageURL:      user.ImageURL,
		CreatedAt:     user.CreatedAt,
	}
}
