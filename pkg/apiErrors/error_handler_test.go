package apiErrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodedError struct {
	code    string
	message string
}

func (e *fakeCodedError) Error() string        { return e.message }
func (e *fakeCodedError) ErrorCode() string    { return e.code }
func (e *fakeCodedError) ErrorMessage() string { return e.message }

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{"Credenciais inválidas", ErrInvalidCredentials, http.StatusUnauthorized},
		{"Muitas tentativas", ErrTooManyAttempts, http.StatusTooManyRequests},
		{"Formato inválido", ErrInvalidFormat, http.StatusBadRequest},
		{"Lead não encontrado", ErrLeadNotFound, http.StatusNotFound},
		{"Vendedor não encontrado", ErrSellerNotFound, http.StatusNotFound},
		{"Banco de dados", ErrDatabaseOperation, http.StatusInternalServerError},
		{"Código desconhecido vira 500", "XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestWriteFromError(t *testing.T) {
	t.Run("Erro com código preserva código e mensagem", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("contexto: %w", &fakeCodedError{code: ErrLeadNotFound, message: "Lead não encontrado"})

		WriteFromError(rec, err, "fallback")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrLeadNotFound)
		assert.Contains(t, rec.Body.String(), "Lead não encontrado")
	})

	t.Run("Erro genérico não vaza detalhes internos", func(t *testing.T) {
		rec := httptest.NewRecorder()

		WriteFromError(rec, errors.New("pq: connection refused"), "Erro ao processar")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.Contains(t, rec.Body.String(), "Erro ao processar")
	})
}
