package numbering_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain/numbering"
)

// fakeSequences contador en memoria por prefijo+periodo.
type fakeSequences struct {
	counters map[string]int
	err      error
}

func (f *fakeSequences) Next(prefix, period string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counters == nil {
		f.counters = map[string]int{}
	}
	key := prefix + "-" + period
	f.counters[key]++
	return f.counters[key], nil
}

func TestNewGenerator_ValidaPrefijo(t *testing.T) {
	for _, p := range []string{"ORD", "QUO", "DEL"} {
		g, err := numbering.NewGenerator(p)
		require.NoError(t, err)
		assert.Equal(t, p, g.Prefix())
	}
	for _, p := range []string{"", "OR", "ORDE", "ord", "O1D", "ORD-"} {
		_, err := numbering.NewGenerator(p)
		assert.Error(t, err, "prefijo %q debe rechazarse", p)
	}
}

func TestGenerator_NumerosSecuencialesEnElMismoMes(t *testing.T) {
	g, err := numbering.NewGenerator("ORD")
	require.NoError(t, err)

	seqs := &fakeSequences{}
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	first, err := g.Next(seqs, now)
	require.NoError(t, err)
	second, err := g.Next(seqs, now)
	require.NoError(t, err)

	assert.Equal(t, "ORD-202501-0001", first)
	assert.Equal(t, "ORD-202501-0002", second)
}

func TestGenerator_NLlamadasSonEstrictamenteCrecientesYUnicas(t *testing.T) {
	g, err := numbering.NewGenerator("QUO")
	require.NoError(t, err)

	seqs := &fakeSequences{}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	prev := 0
	for i := 0; i < 50; i++ {
		num, err := g.Next(seqs, now)
		require.NoError(t, err)
		require.False(t, seen[num], "número repetido %s", num)
		seen[num] = true

		_, _, seq, err := numbering.Parse(num)
		require.NoError(t, err)
		assert.Equal(t, prev+1, seq, "la secuencia debe crecer de a 1")
		prev = seq
	}
}

func TestGenerator_ElPeriodoReiniciaPorMes(t *testing.T) {
	g, err := numbering.NewGenerator("DEL")
	require.NoError(t, err)

	seqs := &fakeSequences{}
	enero := time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)
	febrero := time.Date(2025, 2, 1, 0, 1, 0, 0, time.UTC)

	n1, err := g.Next(seqs, enero)
	require.NoError(t, err)
	n2, err := g.Next(seqs, febrero)
	require.NoError(t, err)

	assert.Equal(t, "DEL-202501-0001", n1)
	assert.Equal(t, "DEL-202502-0001", n2, "cada mes arranca en 0001")
}

func TestGenerator_PeriodoEnUTC(t *testing.T) {
	// 31 de enero 23:00 en UTC-5 ya es 1 de febrero en UTC.
	bogota := time.FixedZone("COT", -5*3600)
	local := time.Date(2025, 1, 31, 23, 0, 0, 0, bogota)
	assert.Equal(t, "202502", numbering.Period(local))
}

func TestGenerator_ErrorDelContadorSePropaga(t *testing.T) {
	g, err := numbering.NewGenerator("ORD")
	require.NoError(t, err)

	seqs := &fakeSequences{err: fmt.Errorf("conexión perdida")}
	_, err = g.Next(seqs, time.Now())
	assert.Error(t, err)
}

func TestFormat_RellenoYDesborde(t *testing.T) {
	assert.Equal(t, "ORD-202501-0007", numbering.Format("ORD", "202501", 7))
	assert.Equal(t, "ORD-202501-9999", numbering.Format("ORD", "202501", 9999))
	// >= 10000 desborda el relleno pero sigue siendo un número válido.
	assert.Equal(t, "ORD-202501-10000", numbering.Format("ORD", "202501", 10000))
}

func TestParse_RoundTrip(t *testing.T) {
	prefix, period, seq, err := numbering.Parse("QUO-202412-0042")
	require.NoError(t, err)
	assert.Equal(t, "QUO", prefix)
	assert.Equal(t, "202412", period)
	assert.Equal(t, 42, seq)

	// El desborde del relleno también se parsea.
	_, _, seq, err = numbering.Parse("ORD-202501-10001")
	require.NoError(t, err)
	assert.Equal(t, 10001, seq)
}

func TestParse_MalformadoFallaRuidosamente(t *testing.T) {
	// Un valor almacenado corrupto debe producir error, nunca un número adivinado
	// (adivinar arriesga duplicados).
	malformed := []string{
		"",
		"ORD-202501",
		"ORD-202501-",
		"ORD-202501-ABC",
		"ORD-2025-0001",
		"ORDEN-202501-0001",
		"ord-202501-0001",
		"ORD_202501_0001",
		"ORD-202501-001", // secuencia de menos de 4 dígitos
	}
	for _, s := range malformed {
		_, _, _, err := numbering.Parse(s)
		assert.Error(t, err, "Parse(%q) debe fallar", s)
	}
}
