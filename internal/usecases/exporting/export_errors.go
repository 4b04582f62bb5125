package exporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilter     = errors.New("filtro inválido")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrEncoding          = errors.New("erro ao gerar arquivo de exportação")
)

// ExportError é um erro com contexto adicional para exportações
type ExportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Format  string // Formato solicitado
	Details string // Detalhes adicionais
}

func (e *ExportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func (e *ExportError) ErrorCode() string {
	return e.Code
}

func (e *ExportError) ErrorMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewExportError(err error, code, format, details string) *ExportError {
	return &ExportError{
		Err:     err,
		Code:    code,
		Format:  format,
		Details: details,
	}
}
