package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "unauthorized", err: fmt.Errorf("consultas: %w", ErrUnauthorized), want: "Acesso não autorizado"},
		{name: "fetch failed", err: fmt.Errorf("consultas: %w", ErrFetchFailed), want: "Erro de conexão com o servidor"},
		{name: "user error", err: NewUserError("Informe o período", ErrInvalidConfig), want: "Informe o período"},
		{name: "anything else", err: errors.New("boom"), want: "Ocorreu um erro inesperado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError("Sem dados", ErrNothingToExport)
	assert.Equal(t, "Sem dados: no consultations to export", err.Error())
	assert.ErrorIs(t, err, ErrNothingToExport)

	bare := NewUserError("Sem dados", nil)
	assert.Equal(t, "Sem dados", bare.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("400"), Retryable: false}))
	assert.False(t, IsRetryable(ErrUnauthorized))
}
