package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-crm-api/internal/domain"
)

var baseTime = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestLeadRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newTestConnection(t))

	consentDate := baseTime
	lead := newTestLead("ana", baseTime)
	lead.Profession = stringPtr("dev")
	lead.UTMSource = stringPtr("instagram")
	lead.UserAgent = stringPtr("Mozilla/5.0")
	lead.LGPDConsent = true
	lead.LGPDConsentDate = &consentDate
	lead.LGPDConsentIP = stringPtr("203.0.113.7")

	created, err := repo.Create(ctx, lead)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ana", created.Name)
	assert.Equal(t, "dev", *created.Profession)
	assert.Nil(t, created.Difficulty)
	assert.Nil(t, created.SellerID)
	assert.False(t, created.IsCustomer)
	assert.True(t, created.LGPDConsent)
	require.NotNil(t, created.LGPDConsentDate)
	assert.True(t, created.LGPDConsentDate.Equal(baseTime))
	assert.True(t, created.CreatedAt.Equal(baseTime))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "instagram", *got.UTMSource)
	assert.Equal(t, "Mozilla/5.0", *got.UserAgent)
	assert.True(t, got.UpdatedAt.Equal(baseTime))

	missing, err := repo.GetByID(ctx, created.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLeadRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newTestConnection(t))

	for i, name := range []string{"ana", "bruno", "carla", "daniel", "elisa"} {
		lead := newTestLead(name, baseTime.Add(time.Duration(i)*time.Hour))
		if i%2 == 0 {
			lead.Profession = stringPtr("dev")
		}
		_, err := repo.Create(ctx, lead)
		require.NoError(t, err)
	}

	t.Run("Paginação ordena do mais recente para o mais antigo", func(t *testing.T) {
		filter := domain.LeadFilter{Page: 1, Limit: 2}

		total, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, 5, total)

		page1, err := repo.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page1, 2)
		assert.Equal(t, "elisa", page1[0].Name)
		assert.Equal(t, "daniel", page1[1].Name)

		filter.Page = 3
		page3, err := repo.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page3, 1)
		assert.Equal(t, "ana", page3[0].Name)
	})

	t.Run("Filtro afeta contagem, listagem e exportação igualmente", func(t *testing.T) {
		filter := domain.LeadFilter{Profession: "dev", Page: 1, Limit: 50}

		total, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		listed, err := repo.List(ctx, filter)
		require.NoError(t, err)
		exported, err := repo.ListAll(ctx, filter)
		require.NoError(t, err)

		assert.Equal(t, 3, total)
		assert.Len(t, listed, 3)
		assert.Len(t, exported, 3)
	})

	t.Run("Busca ignora maiúsculas e minúsculas", func(t *testing.T) {
		leads, err := repo.ListAll(ctx, domain.LeadFilter{Search: "CARLA"})
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "carla", leads[0].Name)
	})

	t.Run("Intervalo de datas inclui o dia final inteiro", func(t *testing.T) {
		total, err := repo.Count(ctx, domain.LeadFilter{DateFrom: "2024-06-10", DateTo: "2024-06-10"})
		require.NoError(t, err)
		assert.Equal(t, 5, total)

		total, err = repo.Count(ctx, domain.LeadFilter{DateFrom: "2024-06-11"})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("Filtro inválido não executa consulta", func(t *testing.T) {
		_, err := repo.Count(ctx, domain.LeadFilter{SellerID: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	})
}

func TestLeadRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newTestConnection(t))

	lead := newTestLead("ana", baseTime)
	lead.Profession = stringPtr("dev")
	lead.Notes = stringPtr("ligar amanhã")
	created, err := repo.Create(ctx, lead)
	require.NoError(t, err)

	later := baseTime.Add(time.Hour)
	updated, err := repo.Update(ctx, domain.UpdateLeadRequest{
		ID:         created.ID,
		Name:       domain.NewField("Ana Maria"),
		Profession: domain.NullField[string](),
		SellerID:   domain.NewField(4),
		IsCustomer: domain.NewField(true),
	}, later)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Nil(t, updated.Profession)
	assert.Equal(t, intPtr(4), updated.SellerID)
	assert.True(t, updated.IsCustomer)
	assert.Equal(t, "ligar amanhã", *updated.Notes)
	assert.Equal(t, created.Email, updated.Email)
	assert.True(t, updated.UpdatedAt.Equal(later))
	assert.True(t, updated.CreatedAt.Equal(baseTime))

	missing, err := repo.Update(ctx, domain.UpdateLeadRequest{ID: 999, Name: domain.NewField("x")}, later)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLeadRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newTestConnection(t))

	created, err := repo.Create(ctx, newTestLead("ana", baseTime))
	require.NoError(t, err)

	later := baseTime.Add(2 * time.Hour)
	updated, err := repo.UpdateStatus(ctx, created.ID, domain.LeadStatusNegotiation, later)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.LeadStatusNegotiation, *updated.Status)
	assert.True(t, updated.UpdatedAt.Equal(later))

	missing, err := repo.UpdateStatus(ctx, 999, domain.LeadStatusLost, later)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLeadRepository_Statistics(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	leads := NewLeadRepository(conn)
	sellers := NewSellerRepository(conn)

	ana, err := sellers.Create(ctx, &domain.Seller{Name: "Ana", Active: true, CreatedAt: baseTime, UpdatedAt: baseTime})
	require.NoError(t, err)
	bruno, err := sellers.Create(ctx, &domain.Seller{Name: "Bruno", Active: false, CreatedAt: baseTime, UpdatedAt: baseTime})
	require.NoError(t, err)
	_, err = sellers.Create(ctx, &domain.Seller{Name: "Carla", Active: true, CreatedAt: baseTime, UpdatedAt: baseTime})
	require.NoError(t, err)

	fixtures := []struct {
		name       string
		age        time.Duration
		profession *string
		region     *string
		sellerID   *int
		customer   bool
	}{
		{"l1", 0, stringPtr("dev"), stringPtr("sul"), &ana.ID, true},
		{"l2", 24 * time.Hour, stringPtr("dev"), nil, &ana.ID, false},
		{"l3", 3 * 24 * time.Hour, stringPtr("design"), stringPtr("norte"), &bruno.ID, false},
		{"l4", 10 * 24 * time.Hour, nil, stringPtr("sul"), nil, true},
		{"l5", 30 * 24 * time.Hour, nil, nil, nil, false},
	}
	for _, f := range fixtures {
		lead := newTestLead(f.name, baseTime.Add(-f.age))
		lead.Profession = f.profession
		lead.Region = f.region
		lead.SellerID = f.sellerID
		lead.IsCustomer = f.customer
		_, err := leads.Create(ctx, lead)
		require.NoError(t, err)
	}

	total, err := leads.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	byProfession, err := leads.CountGroupedBy(ctx, "profession")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"dev": 2, "design": 1}, byProfession)

	byRegion, err := leads.CountGroupedBy(ctx, "region")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sul": 2, "norte": 1}, byRegion)

	byDifficulty, err := leads.CountGroupedBy(ctx, "difficulty")
	require.NoError(t, err)
	assert.Empty(t, byDifficulty)

	_, err = leads.CountGroupedBy(ctx, "email")
	assert.Error(t, err)

	recent, err := leads.CountCreatedSince(ctx, baseTime.AddDate(0, 0, -domain.RecentLeadsWindowDays))
	require.NoError(t, err)
	assert.Equal(t, 3, recent)

	bySeller, err := leads.CountBySeller(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Ana": 2, "Carla": 0}, bySeller)

	customers, err := leads.CountByCustomerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusCount{Customers: 2, NonCustomers: 3}, customers)
}
