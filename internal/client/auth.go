package client

import (
	"context"
	"net/http"

	"go-couture-api/internal/auth"
)

func (c *Client) Login(ctx context.Context, email, password string) (auth.TokenResponse, error) {
	cl, err := jsonCall(http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{Email: email, Password: password})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	var out auth.TokenResponse
	_, err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	cl, err := jsonCall(http.MethodPost, "/api/v1/auth/refresh", auth.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	var out auth.TokenResponse
	_, err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	cl, err := jsonCall(http.MethodPost, "/api/v1/auth/logout", auth.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	cl.admin = true
	_, err = c.do(ctx, cl, nil)
	return err
}

func (c *Client) Me(ctx context.Context) (auth.AuthResponse, error) {
	var out auth.AuthResponse
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/api/v1/auth/me", admin: true}, &out)
	return out, err
}
