// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/mailer"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/internal/users/auth"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemoryUsers() *memoryUsers { return &memoryUsers{users: map[string]*auth.User{}} }

func (repository *memoryUsers) Create(ctx context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, existing := range repository.users {
		if existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *memoryUsers) FindByID(ctx context.Context, id string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if user, ok := repository.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, user := range repository.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUsers) List(ctx context.Context) ([]*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	users := []*auth.User{}
	for _, user := range repository.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (repository *memoryUsers) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

type memoryResets struct {
	tokens map[string]string
}

func (repository *memoryResets) Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	repository.tokens[tokenHash] = userID
	return nil
}

func (repository *memoryResets) Get(ctx context.Context, tokenHash string) (string, error) {
	if userID, ok := repository.tokens[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (repository *memoryResets) Delete(ctx context.Context, tokenHash string) error {
	delete(repository.tokens, tokenHash)
	return nil
}

// fakeTokens encodes claims in plain text: "uid|name|role".
type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error) {
	return strings.Join([]string{userID, name, role}, "|"), nil
}

func (fakeTokens) VerifyToken(token string) (*sec.AuthClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, errors.New("bad token")
	}
	return &sec.AuthClaims{UserID: parts[0], Name: parts[1], Role: parts[2]}, nil
}

type recordingMailer struct {
	sent    []mailer.Message
	failing bool
}

func (recorder *recordingMailer) Send(ctx context.Context, message mailer.Message) error {
	if recorder.failing {
		return errors.New("smtp down")
	}
	recorder.sent = append(recorder.sent, message)
	return nil
}

type fixture struct {
	service *auth.Service
	users   *memoryUsers
	resets  *memoryResets
	mail    *recordingMailer
}

func newFixture() fixture {
	users := newMemoryUsers()
	resets := &memoryResets{tokens: map[string]string{}}
	mail := &recordingMailer{}
	service := auth.NewService(users, resets, fakeTokens{}, mail, "https://joycdecor.in/", discard)
	return fixture{service: service, users: users, resets: resets, mail: mail}
}
