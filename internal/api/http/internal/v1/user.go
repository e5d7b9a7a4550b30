package v1

import (
	"errors"
	"net/http"

	"github.com/crime-alert/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/verify-otp", h.verifyOtp)
		authGroup.POST("/login", h.login)
		authGroup.POST("/resend-otp", h.resendOtp)
		authGroup.POST("/forgot-password", h.forgotPassword)
		authGroup.POST("/reset-password", h.resetPassword)
		authGroup.POST("/delete-unverified", h.deleteUnverified)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Phone    string `json:"phone" binding:"required,phonenumber"`
	Dob      string `json:"dob" binding:"required"`
}

// @Summary Register a new account
// @Tags auth
// @Description Creates an unverified account and emails a one-time verification code
// @Accept json
// @Produce json
// @Param input body registerRequest true "account info"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	err := h.services.Users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Dob:      req.Dob,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrInvalidPhone),
			errors.Is(err, service.ErrInvalidDob),
			errors.Is(err, service.ErrUnderage),
			errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrUserAlreadyExists):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	newMessageResponse(c, http.StatusCreated, "registration successful, otp sent to your email")
}

type verifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

// @Summary Verify email with OTP
// @Tags auth
// @Description Confirms the account email; three wrong codes cancel the registration
// @Accept json
// @Produce json
// @Param input body verifyOtpRequest true "email and code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/verify-otp [post]
func (h *Handler) verifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	err := h.services.Users.VerifyOtp(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrAlreadyVerified),
			errors.Is(err, service.ErrMaxOtpAttempts),
			errors.Is(err, service.ErrInvalidOtp):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	newMessageResponse(c, http.StatusOK, "email verified successfully")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// @Summary Log in
// @Tags auth
// @Description Exchanges email and password for a signed access token
// @Accept json
// @Produce json
// @Param input body loginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	token, err := h.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotVerified):
			newErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: token.AccessToken,
		ExpiresIn:   int64(token.TTL.Seconds()),
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Resend verification OTP
// @Tags auth
// @Description Issues a fresh code for an unverified account and emails it
// @Accept json
// @Produce json
// @Param input body emailRequest true "account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/resend-otp [post]
func (h *Handler) resendOtp(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	err := h.services.Users.ResendVerificationOtp(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrAlreadyVerified):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "failed to send otp email")
		}
		return
	}

	newMessageResponse(c, http.StatusOK, "otp resent to your email")
}

// @Summary Request a password reset OTP
// @Tags auth
// @Description Emails a reset code; works for verified and unverified accounts alike
// @Accept json
// @Produce json
// @Param input body emailRequest true "account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/forgot-password [post]
func (h *Handler) forgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	err := h.services.Users.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "failed to send otp email")
		}
		return
	}

	newMessageResponse(c, http.StatusOK, "password reset otp sent to your email")
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// @Summary Reset password with OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param input body resetPasswordRequest true "email, code and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	err := h.services.Users.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrInvalidOtp):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	newMessageResponse(c, http.StatusOK, "password reset successfully")
}

type deleteUnverifiedRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,phonenumber"`
}

// @Summary Delete an unverified account
// @Tags auth
// @Description Removes a stale unverified account so its email and phone can be reused
// @Accept json
// @Produce json
// @Param input body deleteUnverifiedRequest true "email and phone of the unverified account"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/delete-unverified [post]
func (h *Handler) deleteUnverified(c *gin.Context) {
	var req deleteUnverifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	err := h.services.Users.DeleteUnverified(c.Request.Context(), req.Email, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnverifiedUserNotFound):
			newErrorResponse(c, http.StatusNotFound, err.Error())
		default:
			newErrorResponse(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	newMessageResponse(c, http.StatusOK, "unverified account deleted")
}
