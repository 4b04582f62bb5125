package seller

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/infrastructure/cache"
	"github.com/vfg2006/lead-crm-api/infrastructure/repository"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
)

type SellerService interface {
	ListSellers(ctx context.Context, onlyActive bool) ([]*domain.Seller, error)
	GetSeller(ctx context.Context, id int) (*domain.Seller, error)
	CreateSeller(ctx context.Context, req domain.CreateSellerRequest) (*domain.Seller, error)
	UpdateSeller(ctx context.Context, req domain.UpdateSellerRequest) (*domain.Seller, error)
	DeleteSeller(ctx context.Context, id int) (*domain.Seller, error)
}

type Service struct {
	sellerRepo repository.SellerRepository
	statsCache cache.StatsCache
	now        func() time.Time
}

func NewService(sellerRepo repository.SellerRepository, statsCache cache.StatsCache) SellerService {
	return &Service{
		sellerRepo: sellerRepo,
		statsCache: statsCache,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListSellers(ctx context.Context, onlyActive bool) ([]*domain.Seller, error) {
	sellers, err := s.sellerRepo.List(ctx, onlyActive)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar vendedores")
		return nil, NewSellerError(err, apiErrors.ErrDatabaseOperation, 0, "Erro ao listar vendedores")
	}

	return sellers, nil
}

func (s *Service) GetSeller(ctx context.Context, id int) (*domain.Seller, error) {
	seller, err := s.sellerRepo.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("seller_id", id).Error("Erro ao buscar vendedor")
		return nil, NewSellerError(err, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar vendedor")
	}

	if seller == nil {
		return nil, notFound(id)
	}

	return seller, nil
}

func (s *Service) CreateSeller(ctx context.Context, req domain.CreateSellerRequest) (*domain.Seller, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewSellerError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, 0, "Nome é obrigatório")
	}

	now := s.now()
	seller := &domain.Seller{
		Name:      name,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    req.Active == nil || *req.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.sellerRepo.Create(ctx, seller)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar vendedor")
		return nil, NewSellerError(err, apiErrors.ErrDatabaseOperation, 0, "Erro ao criar vendedor")
	}

	s.invalidateStatistics(ctx)

	return created, nil
}

func (s *Service) UpdateSeller(ctx context.Context, req domain.UpdateSellerRequest) (*domain.Seller, error) {
	if req.IsEmpty() {
		return s.GetSeller(ctx, req.ID)
	}

	if req.Name.Set && (req.Name.Null || strings.TrimSpace(req.Name.Value) == "") {
		return nil, NewSellerError(ErrInvalidField, apiErrors.ErrInvalidRequest, req.ID, "name não pode ser vazio")
	}
	if req.Active.Set && req.Active.Null {
		return nil, NewSellerError(ErrInvalidField, apiErrors.ErrInvalidRequest, req.ID, "active não pode ser nulo")
	}

	seller, err := s.sellerRepo.Update(ctx, req, s.now())
	if err != nil {
		logrus.WithError(err).WithField("seller_id", req.ID).Error("Erro ao atualizar vendedor")
		return nil, NewSellerError(err, apiErrors.ErrDatabaseOperation, req.ID, "Erro ao atualizar vendedor")
	}

	if seller == nil {
		return nil, notFound(req.ID)
	}

	s.invalidateStatistics(ctx)

	return seller, nil
}

// DeleteSeller remove o vendedor; os leads vinculados ficam sem vendedor
func (s *Service) DeleteSeller(ctx context.Context, id int) (*domain.Seller, error) {
	seller, err := s.sellerRepo.Delete(ctx, id, s.now())
	if err != nil {
		logrus.WithError(err).WithField("seller_id", id).Error("Erro ao remover vendedor")
		return nil, NewSellerError(err, apiErrors.ErrDatabaseOperation, id, "Erro ao remover vendedor")
	}

	if seller == nil {
		return nil, notFound(id)
	}

	s.invalidateStatistics(ctx)

	return seller, nil
}

func (s *Service) invalidateStatistics(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("Falha ao invalidar cache de estatísticas")
	}
}

func notFound(id int) *SellerError {
	return NewSellerError(ErrSellerNotFound, apiErrors.ErrSellerNotFound, id, "Vendedor não encontrado")
}
