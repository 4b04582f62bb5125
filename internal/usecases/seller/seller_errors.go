package seller

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidField        = errors.New("campo inválido")
	ErrSellerNotFound      = errors.New("vendedor não encontrado")
)

// SellerError é um erro com contexto adicional para vendedores
type SellerError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	SellerID int    // ID do vendedor envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

func (e *SellerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SellerError) Unwrap() error {
	return e.Err
}

func (e *SellerError) ErrorCode() string {
	return e.Code
}

func (e *SellerError) ErrorMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewSellerError(err error, code string, sellerID int, details string) *SellerError {
	return &SellerError{
		Err:      err,
		Code:     code,
		SellerID: sellerID,
		Details:  details,
	}
}
