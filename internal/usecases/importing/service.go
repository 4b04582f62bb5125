package importing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
)

const minimumFields = 3

// Posição das colunas no arquivo; a coluna 0 (ID da exportação) é ignorada
const (
	colName = iota + 1
	colEmail
	colWhatsApp
	colProfession
	colDifficulty
	colRegion
	colStatus
)

type Importer interface {
	ImportCSV(ctx context.Context, csvData string) (*domain.ImportResult, error)
}

type Service struct {
	leadService lead.LeadService
}

func NewService(leadService lead.LeadService) Importer {
	return &Service{leadService: leadService}
}

// ImportCSV insere uma linha por vez, sem transação. Linhas com problema entram em
// Errors como "Linha N: ..." onde N é a linha no arquivo original (cabeçalho = 1).
// Campos entre aspas podem ocupar várias linhas; aspas nunca fechadas invalidam só a
// linha em que abriram e a leitura segue na linha seguinte.
func (s *Service) ImportCSV(ctx context.Context, csvData string) (*domain.ImportResult, error) {
	if strings.TrimSpace(csvData) == "" {
		return nil, NewImportError(ErrMissingCSVData, apiErrors.ErrMissingRequiredData, 0, "csvData é obrigatório")
	}

	lines := strings.Split(csvData, "\n")
	result := &domain.ImportResult{Errors: []string{}}
	headerSeen := false

	for i := 0; i < len(lines); {
		if err := ctx.Err(); err != nil {
			logrus.WithError(err).WithField("imported", result.Imported).Warn("Importação interrompida")
			return nil, NewImportError(ErrCanceled, apiErrors.ErrInternalServer, i+1, "Importação interrompida")
		}

		line := i + 1
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		text, next, closed := logicalRecord(lines, i)
		if !closed {
			i++
			if !headerSeen {
				headerSeen = true
				continue
			}
			result.Errors = append(result.Errors, lineError(line, "Aspas não fechadas"))
			continue
		}
		i = next

		if !headerSeen {
			headerSeen = true
			continue
		}

		record, err := parseRecord(text)
		if err != nil {
			result.Errors = append(result.Errors, lineError(line, "Formato inválido"))
			continue
		}

		if message := s.importRecord(ctx, record); message != "" {
			result.Errors = append(result.Errors, lineError(line, message))
			continue
		}
		result.Imported++
	}

	logrus.WithFields(logrus.Fields{
		"imported": result.Imported,
		"errors":   len(result.Errors),
	}).Info("Importação de leads concluída")

	return result, nil
}

// logicalRecord junta as linhas físicas a partir de start enquanto houver aspas abertas.
// Retorna o texto do registro, o índice da próxima linha e se as aspas fecharam.
func logicalRecord(lines []string, start int) (string, int, bool) {
	text := strings.TrimSuffix(lines[start], "\r")
	quotes := strings.Count(text, `"`)

	end := start + 1
	for quotes%2 == 1 && end < len(lines) {
		next := strings.TrimSuffix(lines[end], "\r")
		text += "\n" + next
		quotes += strings.Count(next, `"`)
		end++
	}

	return text, end, quotes%2 == 0
}

// parseRecord lê exatamente um registro; sobra de conteúdo é formato inválido
func parseRecord(text string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	record, err := reader.Read()
	if err != nil {
		return nil, err
	}
	if _, err := reader.Read(); !errors.Is(err, io.EOF) {
		return nil, errors.New("mais de um registro na linha")
	}

	return record, nil
}

// importRecord retorna a mensagem de erro da linha, vazia quando o lead foi criado
func (s *Service) importRecord(ctx context.Context, record []string) string {
	if len(record) < minimumFields {
		return "Dados insuficientes"
	}

	consent := true
	req := domain.CreateLeadRequest{
		Name:        column(record, colName),
		Email:       column(record, colEmail),
		WhatsApp:    column(record, colWhatsApp),
		Profession:  optionalColumn(record, colProfession),
		Difficulty:  optionalColumn(record, colDifficulty),
		Region:      optionalColumn(record, colRegion),
		LGPDConsent: &consent,
	}

	if req.Name == "" || req.Email == "" || req.WhatsApp == "" {
		return "Nome, email ou whatsapp ausente"
	}

	status := column(record, colStatus)
	if status == "" {
		status = domain.LeadStatusNew
	}
	req.Status = &status

	if _, err := s.leadService.CreateLead(ctx, req); err != nil {
		var coded apiErrors.CodedError
		if errors.As(err, &coded) {
			return coded.ErrorMessage()
		}
		return err.Error()
	}

	return ""
}

func lineError(line int, message string) string {
	return fmt.Sprintf("Linha %d: %s", line, message)
}

func column(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func optionalColumn(record []string, index int) *string {
	value := column(record, index)
	if value == "" {
		return nil
	}
	return &value
}
