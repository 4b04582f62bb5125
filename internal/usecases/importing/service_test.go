package importing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead/mocks"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockLeadService) {
	ctrl := gomock.NewController(t)
	leadService := mocks.NewMockLeadService(ctrl)
	return &Service{leadService: leadService}, leadService
}

func TestService_ImportCSV_MapsColumns(t *testing.T) {
	service, leadService := newTestService(t)

	csvData := "ID,Nome,Email,WhatsApp,Profissão,Dificuldade,Região,Status\n" +
		"99,Ana Souza,ana@example.com,11999990000,Dentista,Agenda,Sudeste,contato\n"

	leadService.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
			assert.Equal(t, "Ana Souza", req.Name)
			assert.Equal(t, "ana@example.com", req.Email)
			assert.Equal(t, "11999990000", req.WhatsApp)
			require.NotNil(t, req.Profession)
			assert.Equal(t, "Dentista", *req.Profession)
			require.NotNil(t, req.Difficulty)
			assert.Equal(t, "Agenda", *req.Difficulty)
			require.NotNil(t, req.Region)
			assert.Equal(t, "Sudeste", *req.Region)
			require.NotNil(t, req.Status)
			assert.Equal(t, "contato", *req.Status)
			require.NotNil(t, req.LGPDConsent)
			assert.True(t, *req.LGPDConsent)
			assert.Nil(t, req.SellerID)
			return &domain.Lead{ID: 1, Name: req.Name}, nil
		})

	result, err := service.ImportCSV(context.Background(), csvData)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	assert.NotNil(t, result.Errors)
}

func TestService_ImportCSV_DefaultsAndOptionalColumns(t *testing.T) {
	service, leadService := newTestService(t)

	csvData := "id,nome,email,whatsapp\n" +
		",Bruno,bruno@example.com,11888880000\n"

	leadService.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
			assert.Nil(t, req.Profession)
			assert.Nil(t, req.Difficulty)
			assert.Nil(t, req.Region)
			require.NotNil(t, req.Status)
			assert.Equal(t, domain.LeadStatusNew, *req.Status)
			return &domain.Lead{ID: 2}, nil
		})

	result, err := service.ImportCSV(context.Background(), csvData)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestService_ImportCSV_PartialFailureNumbering(t *testing.T) {
	service, leadService := newTestService(t)

	// Linha 1 cabeçalho, linha 3 em branco, linha 5 com poucos campos
	csvData := "ID,Nome,Email,WhatsApp\n" +
		"1,Ana,ana@example.com,111\n" +
		"\n" +
		"2,,sem-nome@example.com,222\n" +
		"3,Carla\n" +
		"4,Duda,duda@example.com,444,,,,desconhecido\n" +
		"5,Eva,eva@example.com,555\n"

	gomock.InOrder(
		leadService.EXPECT().
			CreateLead(gomock.Any(), gomock.Any()).
			Return(&domain.Lead{ID: 1}, nil),
		leadService.EXPECT().
			CreateLead(gomock.Any(), gomock.Any()).
			Return(nil, lead.NewLeadError(lead.ErrInvalidStatus, apiErrors.ErrInvalidRequest, "Status inválido: desconhecido")),
		leadService.EXPECT().
			CreateLead(gomock.Any(), gomock.Any()).
			Return(&domain.Lead{ID: 5}, nil),
	)

	result, err := service.ImportCSV(context.Background(), csvData)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{
		"Linha 4: Nome, email ou whatsapp ausente",
		"Linha 5: Dados insuficientes",
		"Linha 6: Status inválido: desconhecido",
	}, result.Errors)
}

func TestService_ImportCSV_QuotedFields(t *testing.T) {
	service, leadService := newTestService(t)

	csvData := "ID,Nome,Email,WhatsApp,Profissão\n" +
		"1,\"Silva, Ana \"\"Aninha\"\"\",ana@example.com,111,\"Médica\nPediatra\"\n" +
		"2,Bia,bia@example.com,222\n" +
		"3,Cris\n"

	var names []string
	leadService.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
			names = append(names, req.Name)
			if req.Profession != nil {
				assert.Equal(t, "Médica\nPediatra", *req.Profession)
			}
			return &domain.Lead{}, nil
		}).
		Times(2)

	result, err := service.ImportCSV(context.Background(), csvData)

	require.NoError(t, err)
	assert.Equal(t, []string{`Silva, Ana "Aninha"`, "Bia"}, names)
	// O campo com quebra de linha ocupa as linhas 2 e 3 do arquivo
	assert.Equal(t, []string{"Linha 5: Dados insuficientes"}, result.Errors)
}

func TestService_ImportCSV_UncodedCreateError(t *testing.T) {
	service, leadService := newTestService(t)

	leadService.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("conexão perdida"))

	result, err := service.ImportCSV(context.Background(), "h\n1,Ana,ana@example.com,111\n")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, []string{"Linha 2: conexão perdida"}, result.Errors)
}

func TestService_ImportCSV_HeaderOnly(t *testing.T) {
	service, _ := newTestService(t)

	result, err := service.ImportCSV(context.Background(), "\n\n   \nID,Nome,Email,WhatsApp\n\n")

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Empty(t, result.Errors)
}

func TestService_ImportCSV_EmptyInput(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ImportCSV(context.Background(), "  \n ")

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, apiErrors.ErrMissingRequiredData, importErr.Code)
	assert.ErrorIs(t, err, ErrMissingCSVData)
}

func TestService_ImportCSV_CanceledContext(t *testing.T) {
	service, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.ImportCSV(ctx, "h\n1,Ana,ana@example.com,111\n")

	assert.ErrorIs(t, err, ErrCanceled)
}

func TestService_ImportCSV_UnterminatedQuoteOnlyAffectsItsLine(t *testing.T) {
	service, leadService := newTestService(t)

	csvData := "ID,Nome,Email,WhatsApp\n" +
		"1,Ana,ana@example.com,111\n" +
		"2,\"Bia,bia@example.com,118\n" +
		"3,Caio,caio@example.com,333\n" +
		"4,Duda,duda@example.com,444\n" +
		"5,Eva,eva@example.com,555\n"

	var names []string
	leadService.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
			names = append(names, req.Name)
			return &domain.Lead{}, nil
		}).
		Times(4)

	result, err := service.ImportCSV(context.Background(), csvData)

	require.NoError(t, err)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, []string{"Ana", "Caio", "Duda", "Eva"}, names)
	assert.Equal(t, []string{"Linha 3: Aspas não fechadas"}, result.Errors)
}

func TestService_ImportCSV_SeparatorOnlyLineIsReported(t *testing.T) {
	service, leadService := newTestService(t)

	csvData := "ID,Nome,Email,WhatsApp\r\n" +
		",,,\r\n" +
		"2,Bia,bia@example.com,222\r\n"

	leadService.EXPECT().
		CreateLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateLeadRequest) (*domain.Lead, error) {
			assert.Equal(t, "222", req.WhatsApp)
			return &domain.Lead{}, nil
		})

	result, err := service.ImportCSV(context.Background(), csvData)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"Linha 2: Nome, email ou whatsapp ausente"}, result.Errors)
}
