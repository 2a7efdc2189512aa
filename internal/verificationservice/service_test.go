package verificationservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-petr/snapledger/internal/domain"
	"github.com/go-petr/snapledger/pkg/pinpkg"
	"github.com/go-petr/snapledger/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	ttl        = 5 * time.Minute
	codeLength = 6
)

func TestStart(t *testing.T) {
	t.Parallel()

	accountID := randompkg.AccountID()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		repo := NewMockRepo(ctrl)
		sender := NewMockCodeSender(ctrl)

		var (
			stored domain.Verification
			sent   string
		)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Times(1).
			DoAndReturn(func(_ context.Context, v domain.Verification) error {
				stored = v
				return nil
			})
		sender.EXPECT().SendCode(gomock.Any(), gomock.Eq(accountID), gomock.Any()).
			Times(1).
			DoAndReturn(func(_ context.Context, _, code string) error {
				sent = code
				return nil
			})

		got, err := New(repo, sender, ttl, codeLength).Start(context.Background(), accountID)
		require.NoError(t, err)

		require.Equal(t, stored.ID, got.ID)
		require.Equal(t, accountID, stored.AccountID)
		require.WithinDuration(t, time.Now().Add(ttl), got.ExpiresAt, time.Second)
		require.Len(t, sent, codeLength)
		require.NoError(t, pinpkg.Check(sent, stored.CodeHash))
	})

	t.Run("ConcurrentStartsGetDistinctIDs", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		repo := NewMockRepo(ctrl)
		sender := NewMockCodeSender(ctrl)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).Return(nil)
		sender.EXPECT().SendCode(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).Return(nil)

		s := New(repo, sender, ttl, codeLength)

		first, err := s.Start(context.Background(), accountID)
		require.NoError(t, err)

		second, err := s.Start(context.Background(), accountID)
		require.NoError(t, err)

		require.NotEqual(t, first.ID, second.ID)
	})

	t.Run("SenderFailed", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		repo := NewMockRepo(ctrl)
		sender := NewMockCodeSender(ctrl)

		errGateway := errors.New("gateway down")

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(nil)
		sender.EXPECT().SendCode(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(errGateway)

		_, err := New(repo, sender, ttl, codeLength).Start(context.Background(), accountID)
		require.ErrorIs(t, err, errGateway)
	})

	t.Run("EmptyAccountID", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		repo := NewMockRepo(ctrl)
		sender := NewMockCodeSender(ctrl)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := New(repo, sender, ttl, codeLength).Start(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrInvalidAccountID)
	})
}

func TestComplete(t *testing.T) {
	t.Parallel()

	accountID := randompkg.AccountID()
	id := uuid.New()

	hash, err := pinpkg.Hash("123456")
	require.NoError(t, err)

	pending := domain.Verification{
		ID:        id,
		AccountID: accountID,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(ttl),
	}

	testCases := []struct {
		name       string
		code       string
		buildStubs func(repo *MockRepo)
		want       string
		wantErr    error
	}{
		{
			name: "OK",
			code: "123456",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Consume(gomock.Any(), gomock.Eq(id)).Times(1).Return(pending, nil)
			},
			want: accountID,
		},
		{
			name: "Mismatch",
			code: "654321",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Consume(gomock.Any(), gomock.Eq(id)).Times(1).Return(pending, nil)
			},
			wantErr: domain.ErrVerificationMismatch,
		},
		{
			name: "ExpiredOrUsed",
			code: "123456",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Consume(gomock.Any(), gomock.Eq(id)).
					Times(1).
					Return(domain.Verification{}, domain.ErrVerificationNotFound)
			},
			wantErr: domain.ErrVerificationNotFound,
		},
		{
			name: "MalformedCode",
			code: "12",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Consume(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidVerificationCode,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			sender := NewMockCodeSender(ctrl)

			tc.buildStubs(repo)

			got, err := New(repo, sender, ttl, codeLength).Complete(context.Background(), id, tc.code)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLogSender(t *testing.T) {
	t.Parallel()

	require.NoError(t, LogSender{}.SendCode(context.Background(), "acc", "123456"))
}
