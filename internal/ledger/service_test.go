package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerd/internal/ledger"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params ledger.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: ledger.CreateParams{
					Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
					Amount:      decimal.RequireFromString("42.50"),
					Direction:   ledger.DirectionExpense,
					Description: "Groceries",
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "NegativeAmountRejected",
			args: args{
				params: ledger.CreateParams{
					Amount:    decimal.RequireFromString("-10"),
					Direction: ledger.DirectionExpense,
				},
			},
			wantErr: ledger.ErrNegativeAmount,
		},
		{
			name: "RepoError",
			args: args{
				params: ledger.CreateParams{
					Amount:    decimal.RequireFromString("10"),
					Direction: ledger.DirectionIncome,
				},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Correct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	categoryID := uuid.New()
	verified := true

	params := ledger.CorrectionParams{
		CategoryID: &categoryID,
		Verified:   &verified,
	}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().CorrectTransaction(gomock.Any(), id, params).Return(nil)
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&ledger.Transaction{
		ID:         id,
		CategoryID: &categoryID,
		Verified:   true,
	}, nil)

	svc := ledger.NewService(repo)

	got, err := svc.Correct(context.Background(), id, params)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, &categoryID, got.CategoryID)
}

func TestService_Correct_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().CorrectTransaction(gomock.Any(), id, gomock.Any()).Return(ledger.ErrNotFound)

	svc := ledger.NewService(repo)

	_, err := svc.Correct(context.Background(), id, ledger.CorrectionParams{})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	direction := ledger.DirectionExpense
	filter := ledger.ListFilter{Direction: &direction}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), filter).Return([]*ledger.Transaction{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}, nil)

	svc := ledger.NewService(repo)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
