package repository

// SequenceRepository contador atómico de consecutivos por prefijo y periodo (YYYYMM).
// Next incrementa y devuelve el siguiente valor en una sola sentencia, de modo que
// dos llamadores concurrentes nunca observen el mismo número.
type SequenceRepository interface {
	Next(prefix, period string) (int, error)
}
