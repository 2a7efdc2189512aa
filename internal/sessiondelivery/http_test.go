package sessiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/errorspkg"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/go-petr/snapledger/pkg/tokenpkg"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

const (
	renewPath  = "/sessions"
	revokePath = "/sessions/revoke"
)

func serve(t *testing.T, service *MockService, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	server := gin.New()

	h := NewHandler(service)
	server.POST(renewPath, h.RenewAccessToken)
	server.POST(revokePath, h.Revoke)

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	return w
}

func TestRenewAccessToken(t *testing.T) {
	t.Parallel()

	refreshToken := randompkg.String(40)
	accessToken := randompkg.String(40)
	expiresAt := time.Now().Add(15 * time.Minute).UTC()

	testCases := []struct {
		name           string
		body           any
		buildStubs     func(service *MockService)
		wantStatusCode int
		want           web.Response
	}{
		{
			name: "OK",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), refreshToken).
					Times(1).
					Return(accessToken, expiresAt, nil)
			},
			wantStatusCode: http.StatusOK,
			want:           web.Response{AccessToken: accessToken, AccessTokenExpiresAt: &expiresAt},
		},
		{
			name: "RequiredRefreshToken",
			body: map[string]string{},
			buildStubs: func(service *MockService) {
				service.EXPECT().RenewAccessToken(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			want:           web.Response{Error: "RefreshToken field is required", Kind: "validation"},
		},
		{
			name: "MalformedBody",
			body: []int{1, 2},
			buildStubs: func(service *MockService) {
				service.EXPECT().RenewAccessToken(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			want:           web.Response{Error: "invalid request body", Kind: "validation"},
		},
		{
			name: "ErrBlockedSession",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), refreshToken).
					Times(1).
					Return("", time.Time{}, domain.ErrBlockedSession)
			},
			wantStatusCode: http.StatusForbidden,
			want:           web.Response{Error: domain.ErrBlockedSession.Error(), Kind: "permission_denied"},
		},
		{
			name: "ErrExpiredToken",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), refreshToken).
					Times(1).
					Return("", time.Time{}, tokenpkg.ErrExpiredToken)
			},
			wantStatusCode: http.StatusUnauthorized,
			want:           web.Response{Error: tokenpkg.ErrExpiredToken.Error(), Kind: "unauthenticated"},
		},
		{
			name: "InternalServiceError",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					RenewAccessToken(gomock.Any(), refreshToken).
					Times(1).
					Return("", time.Time{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			want:           web.Response{Error: "internal", Kind: "internal"},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := NewMockService(gomock.NewController(t))
			tc.buildStubs(service)

			w := serve(t, service, renewPath, tc.body)
			require.Equal(t, tc.wantStatusCode, w.Code)

			var got web.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

			if diff := cmp.Diff(tc.want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("POST %s response mismatch (-want +got):\n%s", renewPath, diff)
			}
		})
	}
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	refreshToken := randompkg.String(40)

	testCases := []struct {
		name           string
		body           any
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().Revoke(gomock.Any(), refreshToken).Times(1).Return(nil)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "RequiredRefreshToken",
			body: map[string]string{"refresh_token": ""},
			buildStubs: func(service *MockService) {
				service.EXPECT().Revoke(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "RefreshToken field is required",
		},
		{
			name: "ErrSessionNotFound",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().Revoke(gomock.Any(), refreshToken).Times(1).Return(domain.ErrSessionNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrSessionNotFound.Error(),
		},
		{
			name: "ErrInvalidSessionAccount",
			body: map[string]string{"refresh_token": refreshToken},
			buildStubs: func(service *MockService) {
				service.EXPECT().Revoke(gomock.Any(), refreshToken).Times(1).Return(domain.ErrInvalidSessionAccount)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrInvalidSessionAccount.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := NewMockService(gomock.NewController(t))
			tc.buildStubs(service)

			w := serve(t, service, revokePath, tc.body)
			require.Equal(t, tc.wantStatusCode, w.Code)

			if tc.wantStatusCode == http.StatusNoContent {
				require.Zero(t, w.Body.Len())
				return
			}

			var got web.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			require.Equal(t, tc.wantError, got.Error)
		})
	}
}
