package pindelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/internal/middleware"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/go-petr/snapledger/pkg/tokenpkg"
	"github.com/go-petr/snapledger/pkg/web"
	"github.com/golang/mock/gomock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHandler(t *testing.T) {
	key := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(key)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", key, err)
	}

	accountID := randompkg.AccountID()
	pin := randompkg.Pin()
	newPin := randompkg.Pin()

	testCases := []struct {
		name           string
		method         string
		requestBody    any
		authorize      bool
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "SetPinOK",
			method:      http.MethodPost,
			requestBody: map[string]string{"pin": pin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().SetPin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin)).Times(1).Return(nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:        "SetPinAlreadySet",
			method:      http.MethodPost,
			requestBody: map[string]string{"pin": pin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().SetPin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin)).
					Times(1).
					Return(domain.ErrPinAlreadySet)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrPinAlreadySet.Error(),
		},
		{
			name:        "SetPinInvalidFormat",
			method:      http.MethodPost,
			requestBody: map[string]string{"pin": "12a4"},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().SetPin(gomock.Any(), gomock.Eq(accountID), gomock.Eq("12a4")).
					Times(1).
					Return(domain.ErrInvalidPinFormat)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidPinFormat.Error(),
		},
		{
			name:        "SetPinRequired",
			method:      http.MethodPost,
			requestBody: map[string]string{},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().SetPin(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Pin field is required",
		},
		{
			name:        "SetPinNoAuthorization",
			method:      http.MethodPost,
			requestBody: map[string]string{"pin": pin},
			buildStubs: func(service *MockService) {
				service.EXPECT().SetPin(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:        "VerifyPinOK",
			method:      "VERIFY",
			requestBody: map[string]string{"pin": pin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().VerifyPin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin)).Times(1).Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "VerifyPinDenied",
			method:      "VERIFY",
			requestBody: map[string]string{"pin": pin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().VerifyPin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin)).
					Times(1).
					Return(domain.ErrPinDenied)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrPinDenied.Error(),
		},
		{
			name:        "VerifyPinLocked",
			method:      "VERIFY",
			requestBody: map[string]string{"pin": pin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().VerifyPin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin)).
					Times(1).
					Return(domain.ErrPinLocked)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrPinLocked.Error(),
		},
		{
			name:        "ChangePinOK",
			method:      http.MethodPut,
			requestBody: map[string]string{"current_pin": pin, "new_pin": newPin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().ChangePin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin), gomock.Eq(newPin)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "ChangePinMissingNewPin",
			method:      http.MethodPut,
			requestBody: map[string]string{"current_pin": pin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().ChangePin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "NewPin field is required",
		},
		{
			name:        "ChangePinDenied",
			method:      http.MethodPut,
			requestBody: map[string]string{"current_pin": pin, "new_pin": newPin},
			authorize:   true,
			buildStubs: func(service *MockService) {
				service.EXPECT().ChangePin(gomock.Any(), gomock.Eq(accountID), gomock.Eq(pin), gomock.Eq(newPin)).
					Times(1).
					Return(domain.ErrPinDenied)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrPinDenied.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/pin", handler.SetPin)
			server.POST("/pin/verify", handler.VerifyPin)
			server.PUT("/pin", handler.ChangePin)

			method, url := tc.method, "/pin"
			if method == "VERIFY" {
				method, url = http.MethodPost, "/pin/verify"
			}

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(method, url, bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if tc.authorize {
				if err := middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, accountID, time.Minute); err != nil {
					t.Fatalf("middleware.AddAuthorization returned error: %v", err)
				}
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &pinData{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
			}

			if tc.wantError == "" && !res.Data.(*pinData).HasPin {
				t.Errorf("res.Data=%+v, want has_pin", res.Data)
			}
		})
	}
}
