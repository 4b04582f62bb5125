package seller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cachemocks "github.com/vfg2006/lead-crm-api/infrastructure/cache/mocks"
	"github.com/vfg2006/lead-crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockSellerRepository, *cachemocks.MockStatsCache) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSellerRepository(ctrl)
	statsCache := cachemocks.NewMockStatsCache(ctrl)

	return &Service{
		sellerRepo: repo,
		statsCache: statsCache,
		now:        func() time.Time { return fixedNow },
	}, repo, statsCache
}

func assertSellerErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var sellerErr *SellerError
	require.True(t, errors.As(err, &sellerErr), "esperado *SellerError, obtido %T", err)
	assert.Equal(t, code, sellerErr.Code)
}

func TestService_CreateSeller(t *testing.T) {
	ctx := context.Background()

	t.Run("Nome obrigatório", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.CreateSeller(ctx, domain.CreateSellerRequest{Name: " "})
		assertSellerErrorCode(t, err, apiErrors.ErrMissingRequiredData)
	})

	t.Run("Ativo por padrão", func(t *testing.T) {
		service, repo, statsCache := newTestService(t)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, seller *domain.Seller) (*domain.Seller, error) {
				assert.Equal(t, "Ana", seller.Name)
				assert.True(t, seller.Active)
				assert.Equal(t, fixedNow, seller.CreatedAt)
				seller.ID = 1
				return seller, nil
			})
		statsCache.EXPECT().Invalidate(ctx).Return(nil)

		seller, err := service.CreateSeller(ctx, domain.CreateSellerRequest{Name: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, 1, seller.ID)
	})

	t.Run("Inativo quando informado", func(t *testing.T) {
		service, repo, statsCache := newTestService(t)
		inactive := false

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, seller *domain.Seller) (*domain.Seller, error) {
				assert.False(t, seller.Active)
				return seller, nil
			})
		statsCache.EXPECT().Invalidate(ctx).Return(nil)

		_, err := service.CreateSeller(ctx, domain.CreateSellerRequest{Name: "Bruno", Active: &inactive})
		require.NoError(t, err)
	})
}

func TestService_UpdateSeller(t *testing.T) {
	ctx := context.Background()

	t.Run("Patch vazio busca o vendedor", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().GetByID(ctx, 3).Return(&domain.Seller{ID: 3}, nil)

		seller, err := service.UpdateSeller(ctx, domain.UpdateSellerRequest{ID: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, seller.ID)
	})

	t.Run("Nome nulo é rejeitado", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.UpdateSeller(ctx, domain.UpdateSellerRequest{ID: 3, Name: domain.NullField[string]()})
		assertSellerErrorCode(t, err, apiErrors.ErrInvalidRequest)
	})

	t.Run("Vendedor inexistente", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		req := domain.UpdateSellerRequest{ID: 3, Active: domain.NewField(false)}
		repo.EXPECT().Update(ctx, req, fixedNow).Return(nil, nil)

		_, err := service.UpdateSeller(ctx, req)
		assertSellerErrorCode(t, err, apiErrors.ErrSellerNotFound)
	})
}

func TestService_DeleteSeller(t *testing.T) {
	ctx := context.Background()

	t.Run("Remove e invalida estatísticas", func(t *testing.T) {
		service, repo, statsCache := newTestService(t)
		repo.EXPECT().Delete(ctx, 4, fixedNow).Return(&domain.Seller{ID: 4, Name: "Ana"}, nil)
		statsCache.EXPECT().Invalidate(ctx).Return(nil)

		seller, err := service.DeleteSeller(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, "Ana", seller.Name)
	})

	t.Run("Vendedor inexistente", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().Delete(ctx, 4, fixedNow).Return(nil, nil)

		_, err := service.DeleteSeller(ctx, 4)
		assertSellerErrorCode(t, err, apiErrors.ErrSellerNotFound)
	})

	t.Run("Falha no banco", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().Delete(ctx, 4, fixedNow).Return(nil, errors.New("tx aborted"))

		_, err := service.DeleteSeller(ctx, 4)
		assertSellerErrorCode(t, err, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_ListSellers(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestService(t)

	repo.EXPECT().List(ctx, true).Return([]*domain.Seller{{ID: 1, Name: "Ana", Active: true}}, nil)

	sellers, err := service.ListSellers(ctx, true)
	require.NoError(t, err)
	assert.Len(t, sellers, 1)
}
