package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de consecutivos sobre la tabla document_sequences.
// Una sola fila por (prefix, period); el upsert con RETURNING incrementa y lee
// en una sentencia atómica, así dos transacciones concurrentes nunca reciben
// el mismo valor (la segunda espera el row lock de la primera).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el siguiente consecutivo para prefix+period.
func (r *SequenceRepo) Next(prefix, period string) (int, error) {
	const query = `
		INSERT INTO document_sequences (prefix, period, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, period)
		DO UPDATE SET last_seq = document_sequences.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, prefix, period).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence %s-%s: %w", prefix, period, err)
	}
	return seq, nil
}
