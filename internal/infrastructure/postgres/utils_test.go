package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/landed-cost-api/internal/domain"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"único", &pgconn.PgError{Code: "23505", ConstraintName: "products_company_id_sku_key"}, domain.ErrDuplicate},
		{"llave foránea envuelta", fmt.Errorf("batch: %w", &pgconn.PgError{Code: "23503"}), domain.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "users_role_check"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, writeError("create", tt.err), tt.want)
		})
	}

	other := errors.New("conexión cerrada")
	err := writeError("create product", other)
	assert.ErrorIs(t, err, other)
	assert.EqualError(t, err, "create product: conexión cerrada")
}
