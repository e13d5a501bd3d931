package inference

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopRow(company, cpu string) Row {
	return Row{
		Categorical("Company", company),
		Categorical("TypeName", "Notebook"),
		Numeric("Ram", 8),
		Numeric("Weight", 1.5),
		Numeric("Touchscreen", 0),
		Numeric("Ips", 0),
		Numeric("ppi", math.Sqrt(1920*1920+1080*1080)/15.6),
		Categorical("Cpu brand", cpu),
		Numeric("HDD", 0),
		Numeric("SSD", 256),
		Categorical("Gpu brand", "Intel"),
		Categorical("os", "Windows"),
	}
}

func TestLoadPipeline(t *testing.T) {
	p, err := LoadPipeline(filepath.Join("testdata", "pipe.json"))
	require.NoError(t, err)

	assert.Equal(t, "linear-test-1", p.Version())
	assert.Equal(t, []string{"Company", "TypeName", "Ram", "Weight", "Touchscreen", "Ips", "ppi", "Cpu brand", "HDD", "SSD", "Gpu brand", "os"}, p.Columns())
	assert.Equal(t, 18, p.encoder.Width())

	cols := p.Columns()
	cols[0] = "mutated"
	assert.Equal(t, "Company", p.Columns()[0])
}

func TestLoadPipelineMissingFile(t *testing.T) {
	_, err := LoadPipeline(filepath.Join(t.TempDir(), "pipe.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPredictLogPrice(t *testing.T) {
	p, err := LoadPipeline(filepath.Join("testdata", "pipe.json"))
	require.NoError(t, err)

	got, err := p.PredictLogPrice(laptopRow("Dell", "Intel"))
	require.NoError(t, err)

	ppi := math.Sqrt(1920*1920+1080*1080) / 15.6
	want := 9.5 + 0.1 + 0.2 + 0.05*8 - 0.05*1.5 + 0.002*ppi + 0.001*256
	assert.InDelta(t, want, got, 1e-9)
	assert.Equal(t, int64(42762), int64(math.Floor(math.Exp(got))))
}

func TestPredictLogPriceDeterministic(t *testing.T) {
	p, err := LoadPipeline(filepath.Join("testdata", "pipe.json"))
	require.NoError(t, err)

	a, err := p.PredictLogPrice(laptopRow("HP", "Intel Core i7"))
	require.NoError(t, err)
	b, err := p.PredictLogPrice(laptopRow("HP", "Intel Core i7"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPredictLogPriceUnknownCategory(t *testing.T) {
	p, err := LoadPipeline(filepath.Join("testdata", "pipe.json"))
	require.NoError(t, err)

	_, err = p.PredictLogPrice(laptopRow("Acme", "Intel"))
	require.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), `"Acme"`)
	assert.Contains(t, err.Error(), `"Company"`)
}

func TestPredictLogPriceSchemaMismatch(t *testing.T) {
	p, err := LoadPipeline(filepath.Join("testdata", "pipe.json"))
	require.NoError(t, err)

	t.Run("swapped columns", func(t *testing.T) {
		row := laptopRow("Dell", "Intel")
		row[2], row[3] = row[3], row[2]
		_, err := p.PredictLogPrice(row)
		require.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("missing column", func(t *testing.T) {
		row := laptopRow("Dell", "Intel")[:11]
		_, err := p.PredictLogPrice(row)
		require.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("numeric where categorical expected", func(t *testing.T) {
		row := laptopRow("Dell", "Intel")
		row[0] = Numeric("Company", 1)
		_, err := p.PredictLogPrice(row)
		require.Error(t, err)
	})
}

func TestParsePipelineRejects(t *testing.T) {
	base, err := os.ReadFile(filepath.Join("testdata", "pipe.json"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		replace [2]string
		wantErr string
	}{
		{"format", [2]string{`"laptopgenius.pipeline/v1"`, `"sklearn.pickle"`}, "unsupported pipeline format"},
		{"transform", [2]string{`"target_transform": "log"`, `"target_transform": "log1p"`}, "unsupported target transform"},
		{"coef width", [2]string{`"coef": [0.1, `, `"coef": [`}, "17 coefficients for input width 18"},
		{"encoder column", [2]string{`{"name": "os"`, `{"name": "OS"`}, `"OS" is not an input column`},
		{"drop mode", [2]string{`"drop": "first"`, `"drop": "if_binary"`}, "unsupported encoder drop"},
		{"regressor type", [2]string{`"type": "linear"`, `"type": "svr"`}, `unsupported regressor type "svr"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(string(base), tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, string(base), doc, "fixture replacement did not apply")
			_, err := ParsePipeline([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err = ParsePipeline([]byte("not json"))
	assert.Error(t, err)
}
