package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/and161185/atns-client/internal/errs"
	"github.com/and161185/atns-client/internal/model"
	"go.uber.org/zap"
)

// Login exchanges credentials for a token and starts the session.
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return model.LoginResponse{}, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return model.LoginResponse{}, errs.ErrNoToken
	}
	c.store.Login(resp.ProfileID, resp.Username, resp.Token, resp.RefreshToken, resp.Roles)
	c.log.Info("logged in", zap.Int64("profile_id", resp.ProfileID), zap.Strings("roles", resp.Roles))
	return resp, nil
}

// Logout ends the session locally. The backend keeps no server-side session.
func (c *Client) Logout() {
	c.store.Logout()
}

type emailReq struct {
	Email string `json:"email"`
}

// RegisterInit sends a registration OTP to a whitelisted email.
func (c *Client) RegisterInit(ctx context.Context, email string) (model.Ack, error) {
	return c.ack(ctx, "/auth/register/init", emailReq{Email: email})
}

// ResendOTP asks for a fresh registration OTP.
func (c *Client) ResendOTP(ctx context.Context, email string) (model.Ack, error) {
	return c.ack(ctx, "/auth/register/resend-otp", emailReq{Email: email})
}

// VerifyEmail submits the registration OTP.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) (model.VerifyEmailResponse, error) {
	var resp model.VerifyEmailResponse
	body := struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}{email, code}
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/auth/register/verify-email", body, &resp); err != nil {
		return resp, fmt.Errorf("verify email: %w", err)
	}
	return resp, nil
}

// RegisterComplete creates the account and logs straight into it.
func (c *Client) RegisterComplete(ctx context.Context, email, username, password string) (model.RegisterCompleteResponse, error) {
	var resp model.RegisterCompleteResponse
	body := struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{email, username, password}
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/auth/register/complete", body, &resp); err != nil {
		return resp, fmt.Errorf("complete registration: %w", err)
	}
	u := resp.User
	if u == nil || u.Token == "" {
		return resp, errs.ErrNoToken
	}
	c.store.Login(u.ProfileID, u.Username, u.Token, u.RefreshToken, u.Roles)
	return resp, nil
}

// ForgotPasswordInit sends a password-reset OTP.
func (c *Client) ForgotPasswordInit(ctx context.Context, email string) (model.Ack, error) {
	return c.ack(ctx, "/auth/forgot-password/init", emailReq{Email: email})
}

// ForgotPasswordVerify resets the password using the OTP.
func (c *Client) ForgotPasswordVerify(ctx context.Context, email, code, newPassword string) (model.Ack, error) {
	return c.ack(ctx, "/auth/forgot-password/verify", struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}{email, code, newPassword})
}

// ChangePassword changes the logged-in user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (model.Ack, error) {
	return c.ack(ctx, "/auth/change-password", struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}{oldPassword, newPassword})
}

// ChangeEmailInit sends an OTP to the new address.
func (c *Client) ChangeEmailInit(ctx context.Context, newEmail string) (model.Ack, error) {
	return c.ack(ctx, "/auth/change-email/init", emailReq{Email: newEmail})
}

// ChangeEmailVerify confirms the new address.
func (c *Client) ChangeEmailVerify(ctx context.Context, newEmail, code string) (model.Ack, error) {
	return c.ack(ctx, "/auth/change-email/verify", struct {
		NewEmail string `json:"newEmail"`
		Code     string `json:"code"`
	}{newEmail, code})
}

func (c *Client) ack(ctx context.Context, path string, body any) (model.Ack, error) {
	var resp model.Ack
	if err := c.gw.DoJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return resp, fmt.Errorf("%s: %w", strings.TrimPrefix(path, "/auth/"), err)
	}
	return resp, nil
}
