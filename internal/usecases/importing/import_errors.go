package importing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCSVData = errors.New("conteúdo CSV ausente")
	ErrCanceled       = errors.New("importação interrompida")
)

// ImportError é um erro que impede a importação como um todo.
// Falhas de linha não usam este tipo, elas vão para ImportResult.Errors.
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Line    int    // Linha em que a importação parou (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func (e *ImportError) ErrorCode() string {
	return e.Code
}

func (e *ImportError) ErrorMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewImportError(err error, code string, line int, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    code,
		Line:    line,
		Details: details,
	}
}
