//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/integrationtest"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/go-petr/snapledger/pkg/tokenpkg"
	"github.com/go-petr/snapledger/pkg/web"
)

func TestRenewAccessTokenAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	tokenMaker, err := tokenpkg.NewMaker(server.Config.TokenType, server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewMaker(%v) returned error: %v", server.Config.TokenType, err)
	}

	duration := server.Config.RefreshTokenDuration

	type requestBody struct {
		RefreshToken string `json:"refresh_token"`
	}

	seedSession := func(t *testing.T, tokenAccountID, sessionAccountID string, blocked bool) string {
		t.Helper()

		refreshToken, payload, err := tokenMaker.CreateToken(tokenAccountID, duration)
		if err != nil {
			t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v", tokenAccountID, duration, err)
		}

		integrationtest.SeedSession(t, server.DB, domain.CreateSessionParams{
			ID:           payload.ID,
			AccountID:    sessionAccountID,
			RefreshToken: refreshToken,
			UserAgent:    "Mozilla/5.0",
			ClientIP:     "123.123.123.123",
			IsBlocked:    blocked,
			ExpiresAt:    payload.ExpiredAt,
		})

		return refreshToken
	}

	testCases := []struct {
		name           string
		requestBody    func(t *testing.T) requestBody
		wantStatusCode int
		checkData      func(t *testing.T, res web.Response)
		wantError      string
	}{
		{
			name: "OK",
			requestBody: func(t *testing.T) requestBody {
				accountID := randompkg.AccountID()
				return requestBody{RefreshToken: seedSession(t, accountID, accountID, false)}
			},
			wantStatusCode: http.StatusOK,
			checkData: func(t *testing.T, got web.Response) {
				t.Helper()

				if _, err := tokenMaker.VerifyToken(got.AccessToken); err != nil {
					t.Errorf("tokenMaker.VerifyToken(got.AccessToken) returned error: %v", err)
				}
			},
		},
		{
			name: "ErrExpiredToken",
			requestBody: func(t *testing.T) requestBody {
				refreshToken, _, err := tokenMaker.CreateToken(randompkg.AccountID(), -time.Minute)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken returned error: %v", err)
				}

				return requestBody{RefreshToken: refreshToken}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "ErrSessionNotFound",
			requestBody: func(t *testing.T) requestBody {
				refreshToken, _, err := tokenMaker.CreateToken(randompkg.AccountID(), duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken returned error: %v", err)
				}

				return requestBody{RefreshToken: refreshToken}
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrSessionNotFound.Error(),
		},
		{
			name: "ErrBlockedSession",
			requestBody: func(t *testing.T) requestBody {
				accountID := randompkg.AccountID()
				return requestBody{RefreshToken: seedSession(t, accountID, accountID, true)}
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrBlockedSession.Error(),
		},
		{
			name: "ErrInvalidSessionAccount",
			requestBody: func(t *testing.T) requestBody {
				return requestBody{RefreshToken: seedSession(t, randompkg.AccountID(), randompkg.AccountID(), false)}
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrInvalidSessionAccount.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody(t))
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res web.Response
			if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.checkData == nil {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(t, res)
			}
		})
	}
}

func TestRevokeSessionAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	tokenMaker, err := tokenpkg.NewMaker(server.Config.TokenType, server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewMaker(%v) returned error: %v", server.Config.TokenType, err)
	}

	accountID := randompkg.AccountID()

	refreshToken, payload, err := tokenMaker.CreateToken(accountID, server.Config.RefreshTokenDuration)
	if err != nil {
		t.Fatalf("tokenMaker.CreateToken(%v) returned error: %v", accountID, err)
	}

	integrationtest.SeedSession(t, server.DB, domain.CreateSessionParams{
		ID:           payload.ID,
		AccountID:    accountID,
		RefreshToken: refreshToken,
		ExpiresAt:    payload.ExpiredAt,
	})

	post := func(path string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
		if err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}

		req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		if err != nil {
			t.Fatalf("Creating request error: %v", err)
		}

		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		return w
	}

	if w := post("/sessions"); w.Code != http.StatusOK {
		t.Fatalf("renew before revoke: status %v, want %v", w.Code, http.StatusOK)
	}

	if w := post("/sessions/revoke"); w.Code != http.StatusNoContent {
		t.Fatalf("revoke: status %v, want %v", w.Code, http.StatusNoContent)
	}

	if w := post("/sessions/revoke"); w.Code != http.StatusNoContent {
		t.Errorf("second revoke: status %v, want %v", w.Code, http.StatusNoContent)
	}

	w := post("/sessions")
	if w.Code != http.StatusForbidden {
		t.Fatalf("renew after revoke: status %v, want %v", w.Code, http.StatusForbidden)
	}

	var res web.Response
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if res.Error != domain.ErrBlockedSession.Error() {
		t.Errorf("res.Error = %q, want %q", res.Error, domain.ErrBlockedSession.Error())
	}
}
