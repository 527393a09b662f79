package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazhets/internal/adapter/api"
	"mazhets/internal/adapter/api/handler"
	apimiddleware "mazhets/internal/adapter/api/middleware"
	"mazhets/internal/adapter/api/router"
	"mazhets/internal/adapter/repository"
	domainrepo "mazhets/internal/domain/repository"
	"mazhets/internal/infrastructure/kvstore"
	"mazhets/internal/usecase"
)

type apiFixture struct {
	echo        *echo.Echo
	sessionRepo domainrepo.SessionRepository
}

// newAPIFixture assembles the full route table against an in-memory
// store, the same wiring the server entrypoint does. The remote listing
// backend is left unconfigured so the merged view is local-only.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	redis := miniredis.RunT(t)
	kv := kvstore.NewStoreFromAddr(redis.Addr(), "")
	t.Cleanup(func() { kv.Close() })

	localListingRepo := repository.NewKVListingRepository(kv)
	remoteListingRepo := repository.NewPostgresListingRepository(nil)
	chatRepo := repository.NewKVChatRepository(kv)
	savedRepo := repository.NewKVSavedRepository(kv)
	sessionRepo := repository.NewKVSessionRepository(kv)

	listingUseCase := usecase.NewListingUseCase(localListingRepo, remoteListingRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, nil, time.Hour, 2*time.Hour)
	t.Cleanup(chatUseCase.Close)
	savedUseCase := usecase.NewSavedUseCase(savedRepo, listingUseCase, nil)

	e := echo.New()
	e.Validator = api.NewValidator()

	sessionMiddleware := apimiddleware.NewSessionMiddleware(sessionRepo)

	router.SetupHealthRouter(e, handler.NewHealthHandler())
	router.SetupListingRouter(e, handler.NewListingHandler(listingUseCase), sessionMiddleware)
	router.SetupChatRouter(e, handler.NewChatHandler(chatUseCase), sessionMiddleware)
	router.SetupSavedRouter(e, handler.NewSavedHandler(savedUseCase), sessionMiddleware)
	router.SetupSessionRouter(e, handler.NewSessionHandler(sessionRepo))

	return &apiFixture{echo: e, sessionRepo: sessionRepo}
}

func (f *apiFixture) request(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestPublishThenBrowse(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/v1/listings",
		`{"title":"Leather sofa","price":"$120","category":"Furniture","images":["file:///sofa.jpg"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	rec = f.request(t, http.MethodGet, "/v1/listings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env = decodeEnvelope(t, rec)
	var result usecase.BrowseResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "Leather sofa", result.Listings[0].Title)
	assert.Equal(t, int64(12000), result.Listings[0].PriceCents)
	assert.Equal(t, []string{"All", "Furniture"}, result.Categories)
}

func TestPublishRejectsMissingTitle(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/v1/listings", `{"images":["file:///a.jpg"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSignedOutSessionBlocksGuardedActions(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/v1/session/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, target := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/v1/listings", `{"title":"Sofa","images":["a.jpg"]}`},
		{http.MethodPost, "/v1/saved/p1/toggle", ""},
		{http.MethodPost, "/v1/chats/105/messages", `{"text":"Hi"}`},
	} {
		rec := f.request(t, target.method, target.path, target.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", target.method, target.path)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	}

	// Browsing stays open while signed out.
	rec = f.request(t, http.MethodGet, "/v1/listings", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Signing back in lifts the guard.
	rec = f.request(t, http.MethodPost, "/v1/session/login", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.request(t, http.MethodPost, "/v1/saved/p1/toggle", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionDefaultsToSignedIn(t *testing.T) {
	f := newAPIFixture(t)

	assert.True(t, f.sessionRepo.LoggedIn(context.Background()))

	rec := f.request(t, http.MethodGet, "/v1/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"logged_in":true`)
}

func TestSavedToggleAndStatus(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/v1/saved/p1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saved":false`)

	rec = f.request(t, http.MethodPost, "/v1/saved/p1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saved":true`)

	rec = f.request(t, http.MethodGet, "/v1/saved/p1/status", "")
	assert.Contains(t, rec.Body.String(), `"saved":true`)

	rec = f.request(t, http.MethodPost, "/v1/saved/p1/toggle", "")
	assert.Contains(t, rec.Body.String(), `"saved":false`)
}

func TestChatDirectoryAndTranscript(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/v1/chats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "FurniShop")
	assert.Contains(t, rec.Body.String(), "Tech Store")

	// Opening a thread with an unknown seller creates its directory
	// entry with an empty transcript.
	rec = f.request(t, http.MethodGet, "/v1/chats/300/messages?sellerName=Garden+Goods", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)))

	rec = f.request(t, http.MethodGet, "/v1/chats", "")
	assert.Contains(t, rec.Body.String(), "Garden Goods")

	rec = f.request(t, http.MethodPost, "/v1/chats/300/messages", `{"text":"Do you deliver?"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Do you deliver?")
}

func TestSendMessageRequiresText(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/v1/chats/105/messages", `{"seller_name":"FurniShop"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestQuickReplies(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/v1/chats/quick-replies", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Is this still available?")
}

func TestStorefrontSortValidation(t *testing.T) {
	f := newAPIFixture(t)

	// An unknown sort value falls back to the default ordering instead
	// of erroring.
	rec := f.request(t, http.MethodGet, "/v1/stores/101/listings?sort=bogus", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
