package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riya-sharma-12/LangSync/internal/app"
	"github.com/riya-sharma-12/LangSync/internal/sdk/middleware"
	"github.com/riya-sharma-12/LangSync/internal/sdk/models"
	"github.com/riya-sharma-12/LangSync/internal/sdk/mongodb"
	"github.com/riya-sharma-12/LangSync/internal/services/hash"
	"github.com/riya-sharma-12/LangSync/internal/services/jwt"
	"github.com/riya-sharma-12/LangSync/internal/services/sentry"
)

// fakeStore is an in-memory mongodb.Service. It mirrors the real store's
// contract: unique emails, hashing at the point of entry, password excluded
// from id lookups.
type fakeStore struct {
	mu     sync.Mutex
	hash   *hash.HashService
	users  map[string]models.User // keyed by hex id
	emails map[string]string      // email -> hex id

	updateCalls int
	failWith    error
}

func newFakeStore(hs *hash.HashService) *fakeStore {
	return &fakeStore{
		hash:   hs,
		users:  make(map[string]models.User),
		emails: make(map[string]string),
	}
}

func (f *fakeStore) Health() map[string]string       { return map[string]string{"status": "up"} }
func (f *fakeStore) Close(ctx context.Context) error { return nil }

func (f *fakeStore) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return models.User{}, mongodb.ErrDBNotFound
	}
	user.Password = ""
	return user, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.emails[email]
	if !ok {
		return models.User{}, mongodb.ErrDBNotFound
	}
	return f.users[id], nil
}

func (f *fakeStore) CreateUser(ctx context.Context, nu models.NewUser) (models.User, error) {
	if f.failWith != nil {
		return models.User{}, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.emails[nu.Email]; exists {
		return models.User{}, mongodb.ErrDBDuplicatedEntry
	}

	hashed, err := f.hash.HashPassword(nu.Password)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   nu.FullName,
		Email:      nu.Email,
		Password:   hashed,
		ProfilePic: nu.ProfilePic,
		Friends:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.users[user.ID.Hex()] = user
	f.emails[user.Email] = user.ID.Hex()
	return user, nil
}

func (f *fakeStore) UpdateUserProfile(ctx context.Context, userID string, up models.OnboardUser) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++

	user, ok := f.users[userID]
	if !ok {
		return models.User{}, mongodb.ErrDBNotFound
	}

	user.FullName = up.FullName
	user.Bio = up.Bio
	user.NativeLanguage = up.NativeLanguage
	user.LearningLanguage = up.LearningLanguage
	user.Location = up.Location
	user.IsOnboarded = true
	user.UpdatedAt = time.Now().UTC()
	f.users[userID] = user

	user.Password = ""
	return user, nil
}

// fakeChat records identity upserts; err simulates a directory outage.
type fakeChat struct {
	err     error
	upserts chan string
}

func newFakeChat(err error) *fakeChat {
	return &fakeChat{err: err, upserts: make(chan string, 8)}
}

func (f *fakeChat) UpsertUser(ctx context.Context, id, name, image string) error {
	f.upserts <- id
	return f.err
}

func (f *fakeChat) CreateToken(userID string) (string, error) {
	return "chat-token-" + userID, nil
}

func (f *fakeChat) Enabled() bool { return true }

type fixture struct {
	router *gin.Engine
	store  *fakeStore
	chat   *fakeChat
	tokens *jwt.TokenService
}

func newFixture(t *testing.T, chatErr error) *fixture {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "handler-test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SENTRY_DSN", "")

	tokens, err := jwt.NewTokenService()
	require.NoError(t, err)

	hs := hash.NewHashService()
	store := newFakeStore(hs)
	chat := newFakeChat(chatErr)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gin.SetMode(gin.TestMode)
	a := app.NewApp(store, hs, tokens, chat, sentry.NewSentryService(), logger)

	return &fixture{
		router: a.RegisterRoutes(),
		store:  store,
		chat:   chat,
		tokens: tokens,
	}
}

func (fx *fixture) do(t *testing.T, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}

	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)
	return rec
}

func (fx *fixture) signup(t *testing.T, email, password, fullName string) models.User {
	t.Helper()

	rec := fx.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"email": email, "password": password, "fullName": fullName,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	fx.waitForSync(t)

	user, err := fx.store.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}

// waitForSync waits until the fire-and-forget chat sync has fired.
func (fx *fixture) waitForSync(t *testing.T) string {
	t.Helper()
	select {
	case id := <-fx.chat.upserts:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chat identity sync")
		return ""
	}
}

var errChatDown = errors.New("chat directory unreachable")
