package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fintrack/api/http/presenter"
	"github.com/artem13815/fintrack/pkg/auth"
)

// PasswordHandler exposes the update (signed-in) and reset (by e-mail) flows.
type PasswordHandler struct {
	useCase auth.PasswordUseCase
}

func NewPasswordHandler(useCase auth.PasswordUseCase) *PasswordHandler {
	return &PasswordHandler{useCase: useCase}
}

type verifyUpdateRequest struct {
	Code string `json:"code"`
}

type updatePasswordRequest struct {
	CurrentPassword  string `json:"currentPassword"`
	NewPassword      string `json:"newPassword"`
	VerificationCode string `json:"verificationCode"`
}

type requestResetRequest struct {
	Email string `json:"email"`
}

type verifyResetRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// RequestUpdate mails a code to the signed-in user.
// @Summary Request password update code
// @Tags    password
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/password/request-update [post]
func (h *PasswordHandler) RequestUpdate(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	if err := h.useCase.RequestUpdateCode(c.UserContext(), id.UserID); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, "verification code sent")
}

// VerifyUpdate checks a code without consuming it.
// @Summary Verify password update code
// @Tags    password
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body verifyUpdateRequest true "code"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/password/verify-code-update [post]
func (h *PasswordHandler) VerifyUpdate(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	var req verifyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.VerifyUpdateCode(c.UserContext(), id.UserID, req.Code); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, "code is valid")
}

// Update sets a new password after checking the current one and the code.
// @Summary Update password
// @Tags    password
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body updatePasswordRequest true "passwords and code"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/password/update [put]
func (h *PasswordHandler) Update(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	err = h.useCase.CompletePasswordUpdate(c.UserContext(), id.UserID, req.CurrentPassword, req.NewPassword, req.VerificationCode)
	if err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, "password updated")
}

// RequestReset mails a reset code to a registered address.
// @Summary Request password reset code
// @Tags    password
// @Accept  json
// @Produce json
// @Param   input body requestResetRequest true "email"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/password/request-reset [post]
func (h *PasswordHandler) RequestReset(c *fiber.Ctx) error {
	var req requestResetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.RequestReset(c.UserContext(), req.Email); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, "verification code sent")
}

// VerifyReset checks a reset code without consuming it.
// @Summary Verify password reset code
// @Tags    password
// @Accept  json
// @Produce json
// @Param   input body verifyResetRequest true "email and code"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/password/verify-code-reset [post]
func (h *PasswordHandler) VerifyReset(c *fiber.Ctx) error {
	var req verifyResetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.VerifyResetCode(c.UserContext(), req.Email, req.Code); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, "code is valid")
}

// Reset sets a new password for the address the code was sent to.
// @Summary Reset password
// @Tags    password
// @Accept  json
// @Produce json
// @Param   input body resetPasswordRequest true "email, code and new password"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/password/reset [post]
func (h *PasswordHandler) Reset(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.CompleteReset(c.UserContext(), req.Email, req.Code, req.NewPassword); err != nil {
		return presenter.DomainError(c, err)
	}
	return presenter.OK(c, "password reset")
}
