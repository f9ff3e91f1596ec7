package auth

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/httperror"
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Authenticator exchanges credentials for a backend bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type LoginHandler struct {
	authenticator Authenticator
}

func NewLoginHandler(authenticator Authenticator) *LoginHandler {
	return &LoginHandler{
		authenticator: authenticator,
	}
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	User         string `json:"user"`
	Notification string `json:"notification"`
}

func (h LoginHandler) Handle(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		return nil, httperror.BadRequest(
			"auth.login.validation_failed",
			"Username and password are required",
			nil,
		)
	}

	token, err := h.authenticator.Login(ctx, req.Username, req.Password)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode < 500 {
			return nil, httperror.Unauthorized(
				"auth.login.rejected",
				"Invalid username or password",
				nil,
			)
		}

		return nil, httperror.BadGateway(
			"auth.login.unavailable",
			"Sign-in is unavailable, try again later",
			nil,
		)
	}

	return &LoginResponse{
		Token:        token,
		User:         req.Username,
		Notification: "Signed in",
	}, nil
}
