package exporting

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/infrastructure/repository"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	xlsxSheetName = "Leads"
)

// Header é a primeira linha de toda exportação de leads
var Header = []string{
	"ID",
	"Nome",
	"Email",
	"WhatsApp",
	"Profissão",
	"Dificuldade",
	"Região",
	"Status",
	"UTM Source",
	"UTM Medium",
	"UTM Campaign",
	"Criado em",
	"Atualizado em",
}

type Exporter interface {
	ExportCSV(ctx context.Context, filter domain.LeadFilter) (string, error)
	ExportXLSX(ctx context.Context, filter domain.LeadFilter) ([]byte, error)
}

type Service struct {
	leadRepo repository.LeadRepository
	location *time.Location
}

func NewService(leadRepo repository.LeadRepository, cfg *config.Config) Exporter {
	location := cfg.Export.Location
	if location == nil {
		location = time.UTC
	}

	return &Service{
		leadRepo: leadRepo,
		location: location,
	}
}

// ExportCSV retorna todos os leads do filtro, sem paginação. Sem resultados retorna "".
func (s *Service) ExportCSV(ctx context.Context, filter domain.LeadFilter) (string, error) {
	leads, err := s.fetch(ctx, filter, FormatCSV)
	if err != nil {
		return "", err
	}

	if len(leads) == 0 {
		return "", nil
	}

	return EncodeCSV(leads, s.location)
}

// ExportXLSX gera uma planilha com as mesmas colunas do CSV. Sem resultados retorna nil.
func (s *Service) ExportXLSX(ctx context.Context, filter domain.LeadFilter) ([]byte, error) {
	leads, err := s.fetch(ctx, filter, FormatXLSX)
	if err != nil {
		return nil, err
	}

	if len(leads) == 0 {
		return nil, nil
	}

	data, err := encodeXLSX(leads, s.location)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar planilha de leads")
		return nil, NewExportError(ErrEncoding, apiErrors.ErrInternalServer, FormatXLSX, "Erro ao gerar planilha")
	}

	return data, nil
}

func (s *Service) fetch(ctx context.Context, filter domain.LeadFilter, format string) ([]*domain.Lead, error) {
	leads, err := s.leadRepo.ListAll(ctx, filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFilter) {
			return nil, NewExportError(ErrInvalidFilter, apiErrors.ErrInvalidFormat, format, err.Error())
		}

		logrus.WithError(err).WithField("format", format).Error("Erro ao buscar leads para exportação")
		return nil, NewExportError(err, apiErrors.ErrDatabaseOperation, format, "Erro ao exportar leads")
	}

	logrus.WithFields(logrus.Fields{"format": format, "rows": len(leads)}).Info("Exportação de leads gerada")

	return leads, nil
}

// EncodeCSV escreve cabeçalho e linhas separadas por \n. Só campos com vírgula, aspas
// ou quebra de linha são envolvidos em aspas, com as aspas internas duplicadas.
func EncodeCSV(leads []*domain.Lead, location *time.Location) (string, error) {
	var buf strings.Builder

	writeCSVRecord(&buf, Header)
	for _, lead := range leads {
		buf.WriteByte('\n')
		writeCSVRecord(&buf, leadRecord(lead, location))
	}

	return buf.String(), nil
}

func writeCSVRecord(buf *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escapeCSVField(field))
	}
}

func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func leadRecord(lead *domain.Lead, location *time.Location) []string {
	return []string{
		strconv.Itoa(lead.ID),
		lead.Name,
		lead.Email,
		lead.WhatsApp,
		valueOrEmpty(lead.Profession),
		valueOrEmpty(lead.Difficulty),
		valueOrEmpty(lead.Region),
		valueOrEmpty(lead.Status),
		valueOrEmpty(lead.UTMSource),
		valueOrEmpty(lead.UTMMedium),
		valueOrEmpty(lead.UTMCampaign),
		utils.FormatBRDateTime(lead.CreatedAt, location),
		utils.FormatBRDateTime(lead.UpdatedAt, location),
	}
}

func encodeXLSX(leads []*domain.Lead, location *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(Header), 1)
	_ = f.SetCellStyle(xlsxSheetName, "A1", lastHeaderCell, style)

	for i, lead := range leads {
		record := leadRecord(lead, location)
		row := make([]interface{}, len(record))
		row[0] = lead.ID
		for j := 1; j < len(record); j++ {
			row[j] = record[j]
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(xlsxSheetName, "B", "D", 28)
	_ = f.SetColWidth(xlsxSheetName, "L", "M", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
