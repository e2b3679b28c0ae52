// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"

	"github.com/joycdecor/joycdecor/internal/users/auth"
)

// Login exchanges credentials for a session token.
func (client *Client) Login(context context.Context, email, password string) (*auth.LoginResult, error) {
	request, err := jsonCall(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var result auth.LoginResult
	if err := client.do(context, request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify resolves token into the identity it carries.
func (client *Client) Verify(context context.Context, token string) (auth.Identity, error) {
	request, err := jsonCall(http.MethodPost, "/auth/verify", map[string]string{"token": token})
	if err != nil {
		return auth.Identity{}, err
	}

	var identity auth.Identity
	if err := client.do(context, request, &identity); err != nil {
		return auth.Identity{}, err
	}
	return identity, nil
}

// CreateAdmin registers another admin account. The session must be admin.
func (client *Client) CreateAdmin(context context.Context, input auth.RegisterInput) (*auth.User, error) {
	request, err := jsonCall(http.MethodPost, "/users/admins", input)
	if err != nil {
		return nil, err
	}

	var user auth.User
	if err := client.do(context, request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users lists every account. The session must be admin.
func (client *Client) Users(context context.Context) ([]*auth.User, error) {
	var users []*auth.User
	if err := client.do(context, call{method: http.MethodGet, path: "/users"}, &users); err != nil {
		return nil, err
	}
	return users, nil
}
