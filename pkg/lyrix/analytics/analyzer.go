package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/lyrix/pkg/lyrix/features"
)

// Analyzer aggregates feature vectors across a corpus.
// It is not safe for concurrent use.
type Analyzer struct {
	names []string
	rows  [][]float64
}

// NewAnalyzer creates an empty analyzer over the standard feature columns.
func NewAnalyzer() *Analyzer {
	return &Analyzer{names: features.FeatureNames}
}

// Process consumes one sample's features.
func (a *Analyzer) Process(f features.Features) {
	a.rows = append(a.rows, f.Vector())
}

// TotalSamples returns the number of processed samples.
func (a *Analyzer) TotalSamples() int {
	return len(a.rows)
}

// ColumnStats summarizes a single feature column.
type ColumnStats struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Stats exposes the aggregated corpus summary.
type Stats struct {
	TotalSamples int           `json:"total_samples"`
	Columns      []ColumnStats `json:"columns"`
	// Correlation is the Pearson correlation between columns, in column
	// order. It is nil with fewer than two samples.
	Correlation [][]float64 `json:"correlation,omitempty"`
}

// Column returns the stats for the named column.
func (s Stats) Column(name string) (ColumnStats, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}

// Matrix returns the samples × features matrix, or nil when empty.
func (a *Analyzer) Matrix() *mat.Dense {
	if len(a.rows) == 0 {
		return nil
	}
	m := mat.NewDense(len(a.rows), len(a.names), nil)
	for i, row := range a.rows {
		m.SetRow(i, row)
	}
	return m
}

// Snapshot computes column statistics and the correlation matrix.
// Undefined values (zero variance, single sample) are reported as 0.
func (a *Analyzer) Snapshot() Stats {
	stats := Stats{
		TotalSamples: len(a.rows),
		Columns:      make([]ColumnStats, len(a.names)),
	}
	for j, name := range a.names {
		stats.Columns[j].Name = name
	}

	m := a.Matrix()
	if m == nil {
		return stats
	}

	for j := range a.names {
		col := mat.Col(nil, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		stats.Columns[j].Mean = finite(mean)
		stats.Columns[j].StdDev = finite(std)
		stats.Columns[j].Min = floats.Min(col)
		stats.Columns[j].Max = floats.Max(col)
	}

	if len(a.rows) < 2 {
		return stats
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, m, nil)
	n := corr.SymmetricDim()
	stats.Correlation = make([][]float64, n)
	for i := 0; i < n; i++ {
		stats.Correlation[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			stats.Correlation[i][j] = finite(corr.At(i, j))
		}
	}
	return stats
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
