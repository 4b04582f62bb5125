package lead

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de leads
var (
	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidStatus       = errors.New("status inválido")
	ErrInvalidFilter       = errors.New("filtro inválido")
	ErrInvalidField        = errors.New("campo inválido")

	ErrLeadNotFound = errors.New("lead não encontrado")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// LeadError é um erro com contexto adicional para leads
type LeadError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	LeadID  int    // ID do lead envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *LeadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *LeadError) Unwrap() error {
	return e.Err
}

func (e *LeadError) ErrorCode() string {
	return e.Code
}

func (e *LeadError) ErrorMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

// NewLeadError cria um novo LeadError
func NewLeadError(err error, code string, details string) *LeadError {
	return &LeadError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewLeadErrorWithID cria um novo LeadError com o ID do lead
func NewLeadErrorWithID(err error, code string, leadID int, details string) *LeadError {
	return &LeadError{
		Err:     err,
		Code:    code,
		LeadID:  leadID,
		Details: details,
	}
}
