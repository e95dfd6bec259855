package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var _ repository.DocumentCounterRepository = (*DocumentCounterRepo)(nil)

// DocumentCounterRepo entrega consecutivos de documento sobre PostgreSQL.
type DocumentCounterRepo struct {
	q Querier
}

// NewDocumentCounterRepository construye el contador de documentos.
func NewDocumentCounterRepository(q Querier) *DocumentCounterRepo {
	return &DocumentCounterRepo{q: q}
}

// Next devuelve el siguiente consecutivo para (prefijo, día).
// El upsert-incremento con RETURNING hace el incremento en el motor:
// dos llamadas concurrentes jamás reciben el mismo valor.
func (r *DocumentCounterRepo) Next(prefix string, day time.Time) (int64, error) {
	var value int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO document_counters (prefix, day, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, day) DO UPDATE SET value = document_counters.value + 1
		RETURNING value`,
		prefix, day.Format("2006-01-02")).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next document counter: %w", err)
	}
	return value, nil
}
