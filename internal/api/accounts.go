package api

import (
	"context"
	"regexp"

	"go-recruitart-client/internal/models"
)

type LoginRequest struct {
	LoginType string `json:"login_type"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	FullName        string `json:"full_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type sendOTPRequest struct {
	Mobile  string `json:"mobile"`
	OTPType string `json:"otp_type"`
}

type verifyOTPRequest struct {
	Mobile  string `json:"mobile"`
	OTPCode string `json:"otp_code"`
	OTPType string `json:"otp_type"`
}

// AuthResult is the normalized outcome of any credential endpoint.
// Tokens is nil when the server did not mint any (plain register acks).
type AuthResult struct {
	Identity *models.Identity
	Tokens   *models.Tokens
}

// Profile is the normalized /accounts/profile/ response. The endpoint
// returns either a bare identity or a {user, applications} envelope.
type Profile struct {
	Identity     *models.Identity
	Applications []models.Application
}

// authEnvelope covers every credential response shape the backend produces:
// identity at top level, under "user" or under "data.user"; tokens nested
// under "tokens" or flat "access"/"refresh".
type authEnvelope struct {
	models.Identity
	User *models.Identity `json:"user"`
	Data *struct {
		User *models.Identity `json:"user"`
	} `json:"data"`
	Tokens       *models.Tokens       `json:"tokens"`
	Access       string               `json:"access"`
	Refresh      string               `json:"refresh"`
	Applications []models.Application `json:"applications"`
}

// normalize flattens the envelope, priority: user > data.user > top level.
func (e *authEnvelope) normalize() *AuthResult {
	res := &AuthResult{}

	switch {
	case e.User != nil:
		res.Identity = e.User
	case e.Data != nil && e.Data.User != nil:
		res.Identity = e.Data.User
	case e.Identity.ID != 0 || e.Identity.Email != "":
		top := e.Identity
		res.Identity = &top
	}

	switch {
	case e.Tokens != nil && e.Tokens.Access != "":
		res.Tokens = e.Tokens
	case e.Access != "":
		res.Tokens = &models.Tokens{Access: e.Access, Refresh: e.Refresh}
	}
	return res
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	req := LoginRequest{LoginType: "email", Email: email, Password: password}
	var env authEnvelope
	if err := c.postJSON(ctx, "/accounts/login/", req, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var env authEnvelope
	if err := c.postJSON(ctx, "/accounts/register/", req, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

func (c *Client) SendOTP(ctx context.Context, mobile, purpose string) error {
	return c.postJSON(ctx, "/accounts/otp/send/", sendOTPRequest{Mobile: mobile, OTPType: purpose}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, mobile, code, purpose string) (*AuthResult, error) {
	req := verifyOTPRequest{Mobile: mobile, OTPCode: code, OTPType: purpose}
	var env authEnvelope
	if err := c.postJSON(ctx, "/accounts/otp/verify/", req, &env); err != nil {
		return nil, err
	}
	return env.normalize(), nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/accounts/logout/", nil, nil)
}

func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var env authEnvelope
	if err := c.get(ctx, "/accounts/profile/", nil, &env); err != nil {
		return nil, err
	}
	res := env.normalize()
	return &Profile{Identity: res.Identity, Applications: env.Applications}, nil
}

func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.Identity, error) {
	var env authEnvelope
	if err := c.putJSON(ctx, "/accounts/profile/", fields, &env); err != nil {
		return nil, err
	}
	return env.normalize().Identity, nil
}

var digitsOnly = regexp.MustCompile(`^\+?\d+$`)

// ForgotPassword starts a password reset. Digits-only input (an optional
// leading +) is sent as a mobile number, anything else as an email.
func (c *Client) ForgotPassword(ctx context.Context, emailOrMobile string) error {
	body := map[string]string{"email": emailOrMobile}
	if digitsOnly.MatchString(emailOrMobile) {
		body = map[string]string{"mobile": emailOrMobile}
	}
	return c.postJSON(ctx, "/accounts/password/reset/", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, mobile, otpCode, newPassword string) error {
	body := map[string]string{
		"mobile":       mobile,
		"otp_code":     otpCode,
		"new_password": newPassword,
	}
	return c.postJSON(ctx, "/accounts/password/reset/confirm/", body, nil)
}
