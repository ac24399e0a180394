// Package numbering genera los consecutivos legibles de documentos:
// {PREFIX}-{YYYYMM}-{SEQ}, con PREFIX fijo por tipo (ORD, QUO, DEL),
// YYYYMM el año-mes UTC y SEQ un contador con relleno a 4 dígitos.
//
// El siguiente SEQ sale de un contador atómico por prefijo+periodo
// (repository.SequenceRepository); valores >= 10000 desbordan el relleno
// pero siguen siendo válidos. La comparación de orden entre números solo
// es correcta numéricamente sobre SEQ, no lexicográficamente.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var (
	prefixPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	numberPattern = regexp.MustCompile(`^([A-Z]{3})-(\d{6})-(\d{4,})$`)
)

// Generator produce números de documento para un prefijo fijo.
type Generator struct {
	prefix string
}

// NewGenerator construye un generador. El prefijo debe ser tres letras mayúsculas.
func NewGenerator(prefix string) (*Generator, error) {
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("numbering: prefijo inválido %q (se esperan 3 letras mayúsculas)", prefix)
	}
	return &Generator{prefix: prefix}, nil
}

// Prefix devuelve el prefijo configurado.
func (g *Generator) Prefix() string { return g.prefix }

// Period devuelve el periodo YYYYMM en UTC para el instante dado.
func Period(t time.Time) string {
	return t.UTC().Format("200601")
}

// Next deriva el siguiente número para el periodo de now usando el contador atómico.
func (g *Generator) Next(seqs repository.SequenceRepository, now time.Time) (string, error) {
	period := Period(now)
	seq, err := seqs.Next(g.prefix, period)
	if err != nil {
		return "", fmt.Errorf("numbering: siguiente consecutivo %s-%s: %w", g.prefix, period, err)
	}
	return Format(g.prefix, period, seq), nil
}

// Format arma el número {PREFIX}-{YYYYMM}-{SEQ} con relleno a 4 dígitos.
func Format(prefix, period string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, period, seq)
}

// Parse descompone un número almacenado. Un valor malformado retorna error:
// el generador nunca adivina sobre datos corruptos (riesgo de duplicados).
func Parse(number string) (prefix, period string, seq int, err error) {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(number))
	if m == nil {
		return "", "", 0, fmt.Errorf("numbering: número malformado %q", number)
	}
	seq, err = strconv.Atoi(m[3])
	if err != nil {
		return "", "", 0, fmt.Errorf("numbering: secuencia inválida en %q: %w", number, err)
	}
	return m[1], m[2], seq, nil
}
