package lead

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/infrastructure/cache"
	"github.com/vfg2006/lead-crm-api/infrastructure/repository"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/utils"
)

type LeadService interface {
	ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.LeadListResponse, error)
	GetLead(ctx context.Context, id int) (*domain.Lead, error)
	CreateLead(ctx context.Context, req domain.CreateLeadRequest) (*domain.Lead, error)
	UpdateLead(ctx context.Context, req domain.UpdateLeadRequest) (*domain.Lead, error)
	UpdateLeadStatus(ctx context.Context, id int, status string) (*domain.Lead, error)
	GetStatistics(ctx context.Context) (*domain.LeadStatistics, error)
	RefreshStatistics(ctx context.Context) (*domain.LeadStatistics, error)
}

type Service struct {
	leadRepo   repository.LeadRepository
	statsCache cache.StatsCache
	cfg        *config.Config
	now        func() time.Time
}

func NewService(leadRepo repository.LeadRepository, statsCache cache.StatsCache, cfg *config.Config) LeadService {
	return &Service{
		leadRepo:   leadRepo,
		statsCache: statsCache,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.LeadListResponse, error) {
	filter = filter.Normalize()

	// Contagem e página são consultas independentes, pequenas divergências entre elas são aceitas
	total, err := s.leadRepo.Count(ctx, filter)
	if err != nil {
		return nil, s.queryError(err, "Erro ao contar leads")
	}

	leads, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		return nil, s.queryError(err, "Erro ao listar leads")
	}

	return &domain.LeadListResponse{
		Data: leads,
		Pagination: domain.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: utils.CeilDiv(total, filter.Limit),
		},
	}, nil
}

func (s *Service) GetLead(ctx context.Context, id int) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("lead_id", id).Error("Erro ao buscar lead")
		return nil, NewLeadErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar lead")
	}

	if lead == nil {
		return nil, NewLeadErrorWithID(ErrLeadNotFound, apiErrors.ErrLeadNotFound, id, "Lead não encontrado")
	}

	return lead, nil
}

func (s *Service) CreateLead(ctx context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	whatsapp := strings.TrimSpace(req.WhatsApp)

	if name == "" || email == "" || whatsapp == "" {
		return nil, NewLeadError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, email e whatsapp são obrigatórios")
	}

	status := domain.LeadStatusNew
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}
	if !domain.IsValidLeadStatus(status) {
		return nil, invalidStatusError(status)
	}

	consent := s.cfg.Leads.DefaultLGPDConsent
	if req.LGPDConsent != nil {
		consent = *req.LGPDConsent
	}

	now := s.now()
	lead := &domain.Lead{
		Name:        name,
		Email:       email,
		WhatsApp:    whatsapp,
		Profession:  blankToNil(req.Profession),
		Difficulty:  blankToNil(req.Difficulty),
		Region:      blankToNil(req.Region),
		Status:      &status,
		SellerID:    req.SellerID,
		IsCustomer:  req.IsCustomer != nil && *req.IsCustomer,
		Notes:       blankToNil(req.Notes),
		UTMSource:   blankToNil(req.UTMSource),
		UTMMedium:   blankToNil(req.UTMMedium),
		UTMCampaign: blankToNil(req.UTMCampaign),
		UserAgent:   blankToNil(req.UserAgent),
		LGPDConsent: consent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if consent {
		lead.LGPDConsentDate = &now
		lead.LGPDConsentIP = blankToNil(req.ConsentIP)
	}

	created, err := s.leadRepo.Create(ctx, lead)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar lead")
		return nil, NewLeadError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar lead")
	}

	s.invalidateStatistics(ctx)

	return created, nil
}

func (s *Service) UpdateLead(ctx context.Context, req domain.UpdateLeadRequest) (*domain.Lead, error) {
	if req.IsEmpty() {
		return s.GetLead(ctx, req.ID)
	}

	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.Update(ctx, req, s.now())
	if err != nil {
		logrus.WithError(err).WithField("lead_id", req.ID).Error("Erro ao atualizar lead")
		return nil, NewLeadErrorWithID(err, apiErrors.ErrDatabaseOperation, req.ID, "Erro ao atualizar lead")
	}

	if lead == nil {
		return nil, NewLeadErrorWithID(ErrLeadNotFound, apiErrors.ErrLeadNotFound, req.ID, "Lead não encontrado")
	}

	s.invalidateStatistics(ctx)

	return lead, nil
}

func validateUpdate(req domain.UpdateLeadRequest) error {
	required := []struct {
		name  string
		field domain.Field[string]
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"whatsapp", req.WhatsApp},
	}
	for _, r := range required {
		if r.field.Set && (r.field.Null || strings.TrimSpace(r.field.Value) == "") {
			return NewLeadErrorWithID(ErrInvalidField, apiErrors.ErrInvalidRequest, req.ID, r.name+" não pode ser vazio")
		}
	}

	if req.IsCustomer.Set && req.IsCustomer.Null {
		return NewLeadErrorWithID(ErrInvalidField, apiErrors.ErrInvalidRequest, req.ID, "is_customer não pode ser nulo")
	}

	if req.Status.Set && !req.Status.Null && !domain.IsValidLeadStatus(req.Status.Value) {
		return invalidStatusError(req.Status.Value)
	}

	return nil
}

func (s *Service) UpdateLeadStatus(ctx context.Context, id int, status string) (*domain.Lead, error) {
	if status == "" {
		return nil, NewLeadErrorWithID(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, id, "Status é obrigatório")
	}
	if !domain.IsValidLeadStatus(status) {
		return nil, invalidStatusError(status)
	}

	lead, err := s.leadRepo.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		logrus.WithError(err).WithField("lead_id", id).Error("Erro ao atualizar status do lead")
		return nil, NewLeadErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao atualizar status do lead")
	}

	if lead == nil {
		return nil, NewLeadErrorWithID(ErrLeadNotFound, apiErrors.ErrLeadNotFound, id, "Lead não encontrado")
	}

	s.invalidateStatistics(ctx)

	return lead, nil
}

// GetStatistics serve do cache quando disponível e recalcula em caso de ausência
func (s *Service) GetStatistics(ctx context.Context) (*domain.LeadStatistics, error) {
	cached, err := s.statsCache.Get(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao ler estatísticas do cache")
	}
	if cached != nil {
		return cached, nil
	}

	return s.RefreshStatistics(ctx)
}

// RefreshStatistics recalcula as estatísticas e atualiza o cache. Se uma escrita
// invalidar o cache durante o cálculo, o resultado é devolvido mas não gravado.
func (s *Service) RefreshStatistics(ctx context.Context) (*domain.LeadStatistics, error) {
	generation, genErr := s.statsCache.Generation(ctx)
	if genErr != nil {
		logrus.WithError(genErr).Warn("Falha ao ler geração do cache de estatísticas")
	}

	stats, err := s.computeStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return stats, nil
	}

	err = s.statsCache.Set(ctx, stats, generation)
	switch {
	case errors.Is(err, cache.ErrStaleStatistics):
		logrus.Debug("Estatísticas invalidadas durante o cálculo, cache não atualizado")
	case err != nil:
		logrus.WithError(err).Warn("Falha ao gravar estatísticas no cache")
	}

	return stats, nil
}

func (s *Service) computeStatistics(ctx context.Context) (*domain.LeadStatistics, error) {
	total, err := s.leadRepo.CountAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao contar leads para estatísticas")
		return nil, NewLeadError(err, apiErrors.ErrDatabaseOperation, "Erro ao calcular estatísticas")
	}

	stats := &domain.LeadStatistics{Total: total}

	groups := []struct {
		column string
		target *map[string]int
	}{
		{"profession", &stats.ByProfession},
		{"difficulty", &stats.ByDifficulty},
		{"region", &stats.ByRegion},
	}
	for _, g := range groups {
		counts, err := s.leadRepo.CountGroupedBy(ctx, g.column)
		if err != nil {
			logrus.WithError(err).WithField("column", g.column).Error("Erro ao agrupar leads para estatísticas")
			return nil, NewLeadError(err, apiErrors.ErrDatabaseOperation, "Erro ao calcular estatísticas")
		}
		*g.target = counts
	}

	since := s.now().AddDate(0, 0, -domain.RecentLeadsWindowDays)
	stats.RecentLeads, err = s.leadRepo.CountCreatedSince(ctx, since)
	if err != nil {
		logrus.WithError(err).Error("Erro ao contar leads recentes")
		return nil, NewLeadError(err, apiErrors.ErrDatabaseOperation, "Erro ao calcular estatísticas")
	}

	// Vendedores e clientes são complementares: uma falha aqui não derruba o restante
	stats.BySeller, err = s.leadRepo.CountBySeller(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao buscar estatísticas por vendedor, retornando vazio")
		stats.BySeller = map[string]int{}
	}

	stats.ByCustomerStatus, err = s.leadRepo.CountByCustomerStatus(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao buscar estatísticas de clientes, considerando todos não clientes")
		stats.ByCustomerStatus = domain.CustomerStatusCount{Customers: 0, NonCustomers: total}
	}

	return stats, nil
}

// Falhas ao invalidar só são registradas, o TTL limita a defasagem
func (s *Service) invalidateStatistics(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("Falha ao invalidar cache de estatísticas")
	}
}

func (s *Service) queryError(err error, details string) error {
	if errors.Is(err, domain.ErrInvalidFilter) {
		return NewLeadError(ErrInvalidFilter, apiErrors.ErrInvalidFormat, err.Error())
	}

	logrus.WithError(err).Error(details)
	return NewLeadError(err, apiErrors.ErrDatabaseOperation, details)
}

func invalidStatusError(status string) *LeadError {
	return NewLeadError(
		ErrInvalidStatus,
		apiErrors.ErrInvalidRequest,
		"Status inválido: "+status+". Use um de: "+strings.Join(domain.LeadStatuses, ", "),
	)
}

func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
