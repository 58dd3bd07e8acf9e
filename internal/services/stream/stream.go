// Package stream mirrors local user identity into the Stream chat
// directory. The chat provider keeps its own copy of id, name and avatar;
// this adapter keeps that copy eventually consistent.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	streamchat "github.com/GetStream/stream-chat-go/v5"
)

var ErrDisabled = errors.New("stream: chat service is disabled")

// Service is the chat-directory boundary. Callers must treat UpsertUser as
// best-effort: a directory outage never fails signup or onboarding.
type Service interface {
	// UpsertUser creates or updates the user's record in the chat directory.
	UpsertUser(ctx context.Context, id, name, image string) error

	// CreateToken mints a chat token for the given user so the frontend can
	// connect to the chat provider as that identity.
	CreateToken(userID string) (string, error)

	// Enabled reports whether a chat client is configured.
	Enabled() bool
}

type service struct {
	client *streamchat.Client
}

// NewService builds the Stream adapter from STREAM_API_KEY and
// STREAM_API_SECRET. Missing credentials disable the adapter rather than
// failing startup; local auth keeps working without the chat directory.
func NewService(logger *slog.Logger) Service {
	apiKey := os.Getenv("STREAM_API_KEY")
	apiSecret := os.Getenv("STREAM_API_SECRET")
	if apiKey == "" || apiSecret == "" {
		logger.Warn("stream credentials not set, chat sync disabled")
		return &service{}
	}

	client, err := streamchat.NewClient(apiKey, apiSecret)
	if err != nil {
		logger.Error("stream client init failed, chat sync disabled", "error", err)
		return &service{}
	}

	return &service{client: client}
}

func (s *service) UpsertUser(ctx context.Context, id, name, image string) error {
	if s.client == nil {
		return nil
	}

	_, err := s.client.UpsertUser(ctx, &streamchat.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	if err != nil {
		return fmt.Errorf("upserting stream user: %w", err)
	}
	return nil
}

func (s *service) CreateToken(userID string) (string, error) {
	if s.client == nil {
		return "", ErrDisabled
	}

	// Zero expiry: chat tokens do not expire, matching the provider default.
	token, err := s.client.CreateToken(userID, time.Time{})
	if err != nil {
		return "", fmt.Errorf("creating stream token: %w", err)
	}
	return token, nil
}

func (s *service) Enabled() bool {
	return s.client != nil
}
