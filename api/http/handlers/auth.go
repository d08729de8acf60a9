package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fintrack/api/http/presenter"
	"github.com/artem13815/fintrack/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  auth.UserView `json:"user"`
	Token string        `json:"token"`
}

type userResponse struct {
	User auth.UserView `json:"user"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Register(c.UserContext(), req.Email, req.Password, req.FullName)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, authResponse{User: result.User, Token: result.Token})
}

// Login handles user login.
// @Summary Login
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, authResponse{User: result.User, Token: result.Token})
}

// Me returns the signed-in user.
// @Summary Current user
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	user, err := h.useCase.Profile(c.UserContext(), id.UserID)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, userResponse{User: user})
}

// identity reads what the auth middleware stored; a route mounted without
// the middleware gets ErrInvalidToken.
func identity(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return id, nil
}
