//go:build unit

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestAccessToken    = "stale-access-token"
	TestFreshToken     = "fresh-access-token"
	TestRefreshToken   = "0f1e2d3c4b5a69788796a5b4c3d2e1f0"
	TestBearerPrefix   = "Bearer "
	TestProtectedPath  = "/auth/profile"
	TestProfileUpdated = "Amsterdam"
)

func TestClient_AttachesAccessToken(t *testing.T) {
	var seenAuthorization string
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuthorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	apiClient := New(testServer.URL)
	apiClient.Session().Set(TestAccessToken, TestRefreshToken, nil)

	resp, err := apiClient.Do(context.Background(), http.MethodGet, "/services", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, TestBearerPrefix+TestAccessToken, seenAuthorization)
}

func TestClient_RetriesOnceAfterRefresh(t *testing.T) {
	var (
		protectedCalls int32
		refreshCalls   int32
	)

	mux := http.NewServeMux()
	mux.HandleFunc(TestProtectedPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedCalls, 1)
		if r.Header.Get("Authorization") != TestBearerPrefix+TestFreshToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&ProfileResponse{
			User: &User{Id: "user-1", Location: TestProfileUpdated},
		})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)

		var payload refreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, TestRefreshToken, payload.RefreshToken)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&AccessTokenResponse{Token: TestFreshToken})
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL)
	apiClient.Session().Set(TestAccessToken, TestRefreshToken, nil)

	updatedUser, err := apiClient.UpdateProfile(context.Background(), &UpdateProfileRequest{
		Location: TestProfileUpdated,
	})

	require.NoError(t, err)
	assert.Equal(t, TestProfileUpdated, updatedUser.Location)
	assert.EqualValues(t, 2, protectedCalls)
	assert.EqualValues(t, 1, refreshCalls)
	assert.Equal(t, TestFreshToken, apiClient.Session().AccessToken())
}

func TestClient_TearsDownSessionWhenRefreshFails(t *testing.T) {
	var (
		protectedCalls int32
		expiredHooks   int32
	)

	mux := http.NewServeMux()
	mux.HandleFunc(TestProtectedPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid refresh token"})
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL, WithSessionExpiredHook(func() {
		atomic.AddInt32(&expiredHooks, 1)
	}))
	apiClient.Session().Set(TestAccessToken, TestRefreshToken, &User{Id: "user-1"})

	_, err := apiClient.UpdateProfile(context.Background(), &UpdateProfileRequest{})

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 1, protectedCalls)
	assert.EqualValues(t, 1, expiredHooks)
	assert.Empty(t, apiClient.Session().AccessToken())
	assert.Empty(t, apiClient.Session().RefreshToken())
	assert.Nil(t, apiClient.Session().User())
}

func TestClient_TearsDownImmediatelyWithoutRefreshToken(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc(TestProtectedPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL)
	apiClient.Session().Set(TestAccessToken, "", &User{Id: "user-1"})

	_, err := apiClient.Do(context.Background(), http.MethodPut, TestProtectedPath, nil)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 0, refreshCalls)
	assert.Nil(t, apiClient.Session().User())
}

func TestClient_PropagatesOtherStatusesUnchanged(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/services/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL)
	apiClient.Session().Set(TestAccessToken, TestRefreshToken, nil)

	resp, err := apiClient.Do(context.Background(), http.MethodGet, "/services/missing", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, 0, refreshCalls)
	assert.Equal(t, TestAccessToken, apiClient.Session().AccessToken())
}

func TestClient_ConcurrentExpiriesShareOneRefresh(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc(TestProtectedPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != TestBearerPrefix+TestFreshToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&AccessTokenResponse{Token: TestFreshToken})
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL)
	apiClient.Session().Set(TestAccessToken, TestRefreshToken, nil)

	var waitGroup sync.WaitGroup
	for i := 0; i < 8; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()

			resp, err := apiClient.Do(context.Background(), http.MethodPut, TestProtectedPath, nil)
			assert.NoError(t, err)
			if resp != nil {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				resp.Body.Close()
			}
		}()
	}
	waitGroup.Wait()

	assert.EqualValues(t, 1, refreshCalls)
}

func TestClient_LoginPopulatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var payload LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&AuthResponse{
			Token:        TestFreshToken,
			RefreshToken: TestRefreshToken,
			User:         &User{Id: "user-1", Email: payload.Email},
		})
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL)

	authResponse, err := apiClient.Login(context.Background(), &LoginRequest{
		Email:    "test@test.com",
		Password: "12345678",
	})

	require.NoError(t, err)
	assert.Equal(t, TestFreshToken, authResponse.Token)
	assert.Equal(t, TestFreshToken, apiClient.Session().AccessToken())
	assert.Equal(t, TestRefreshToken, apiClient.Session().RefreshToken())
	assert.Equal(t, "test@test.com", apiClient.Session().User().Email)
}

func TestClient_LoginFailurePropagatesAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	})

	testServer := httptest.NewServer(mux)
	defer testServer.Close()

	apiClient := New(testServer.URL)

	_, err := apiClient.Login(context.Background(), &LoginRequest{
		Email:    "test@test.com",
		Password: "wrong",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Empty(t, apiClient.Session().AccessToken())
}
