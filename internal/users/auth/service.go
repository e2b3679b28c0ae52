// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/mailer"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/internal/platform/validate"
	"github.com/joycdecor/joycdecor/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs and verifies access tokens. [sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Service implements the account use cases.
type Service struct {
	users   UserRepository
	resets  ResetTokenRepository
	tokens  TokenProvider
	mailer  mailer.Mailer
	siteURL string
	logger  *slog.Logger
}

// NewService wires the account use cases. siteURL is the storefront origin
// that hosts the /reset-password page.
func NewService(
	users UserRepository,
	resets ResetTokenRepository,
	tokens TokenProvider,
	mail mailer.Mailer,
	siteURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:   users,
		resets:  resets,
		tokens:  tokens,
		mailer:  mail,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll an account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register validates, hashes and persists a member account.

Parameters:
  - context: context.Context
  - input: RegisterInput; Name falls back to the email local part

Returns:
  - *User: the created account
  - error: VALIDATION_ERROR, or CONFLICT "User already exists"
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	return service.create(context, input, sec.RoleMember)
}

// CreateAdmin enrolls an account with catalog management rights. It is only
// reachable from the operator CLI and the admin-only users route.
func (service *Service) CreateAdmin(context context.Context, input RegisterInput) (*User, error) {
	return service.create(context, input, sec.RoleAdmin)
}

func (service *Service) create(context context.Context, input RegisterInput, role sec.UserRole) (*User, error) {
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	validator.Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldName, input.Name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultName(email)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID), slog.String("role", string(role)))
	return user, nil
}

// # Authentication Flow

// LoginResult is the token and the profile of the signed-in user.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

/*
Login verifies credentials and issues a seven day access token.

Unknown email and wrong password both fail with the same UNAUTHORIZED message.
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Name, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Verify resolves a bearer token into the identity it carries.
func (service *Service) Verify(context context.Context, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, validate.RequiredError(FieldToken, "Token missing")
	}

	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return Identity{}, apperr.Unauthorized("Invalid or expired token")
	}
	return Identity{UserID: claims.UserID, Role: sec.UserRole(claims.Role)}, nil
}

// ListUsers returns every account for the admin console.
func (service *Service) ListUsers(context context.Context) ([]*User, error) {
	return service.users.List(context)
}

// # Password Recovery

/*
RequestPasswordReset emails a one hour reset link to a known address.

It returns nil for unknown addresses and for mail delivery failures alike, so
the response never reveals whether an account exists. Only the SHA-256 digest
of the token is stored.
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return validate.RequiredError(FieldEmail, "Email is required")
	}

	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil
		}
		return err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.resets.Set(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return apperr.Internal(err)
	}

	message, err := service.resetMessage(user.Email, token)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.mailer.Send(context, message); err != nil {
		service.logger.ErrorContext(context, "password_reset_mail_failed",
			slog.String("user_id", user.ID), slog.Any("error", err))
		return nil
	}

	service.logger.InfoContext(context, "password_reset_requested", slog.String("user_id", user.ID))
	return nil
}

/*
ResetPassword sets a new password for the owner of a reset token.

The token is single use. An unknown or expired token is a VALIDATION_ERROR
on the token field.
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token).
		Required(FieldPassword, newPassword).
		MinLen(FieldPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	tokenHash := sec.HashToken(token)
	userID, err := service.resets.Get(context, tokenHash)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return validate.RequiredError(FieldToken, "Invalid or expired reset token")
		}
		return apperr.Internal(err)
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	if err := service.resets.Delete(context, tokenHash); err != nil {
		service.logger.WarnContext(context, "reset_token_delete_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(context, "password_reset_completed", slog.String("user_id", userID))
	return nil
}

// # Email Templates

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>JoycDecor</h1>
    <p>Premium Event Decorations</p>
    <h2>Password Reset Request</h2>
    <p>Hello,</p>
    <p>You requested to reset your password for your JoycDecor account. Click the link below to set a new password:</p>
    <p><a href="{{.Link}}">Reset Your Password</a></p>
    <p>Or copy and paste this link in your browser:</p>
    <p style="word-break: break-all;">{{.Link}}</p>
    <p><strong>This link will expire in 1 hour.</strong></p>
    <p>If you didn't request this password reset, please ignore this email. Your account remains secure.</p>
    <p>Thank you,<br>The JoycDecor Team</p>
  </div>
</body>
</html>`))

// ResetLink is the storefront page that accepts a reset token.
func (service *Service) ResetLink(token string) string {
	return service.siteURL + "/reset-password?token=" + token
}

func (service *Service) resetMessage(to, token string) (mailer.Message, error) {
	var body strings.Builder
	if err := resetTemplate.Execute(&body, struct{ Link string }{Link: service.ResetLink(token)}); err != nil {
		return mailer.Message{}, fmt.Errorf("auth: render reset email: %w", err)
	}
	return mailer.Message{
		To:      to,
		Subject: "Reset Your Password - JoycDecor",
		HTML:    body.String(),
	}, nil
}
