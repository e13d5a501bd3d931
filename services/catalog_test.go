package services

import (
	"errors"
	"testing"

	"laptop-price-api/inference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOptions(t *testing.T) {
	catalog, err := NewOptionCatalog(testArtifacts(t).Reference)
	require.NoError(t, err)

	opts := catalog.ListOptions()
	assert.Equal(t, []string{"Dell", "Apple", "HP"}, opts.Companies)
	assert.Equal(t, []string{"Notebook", "Ultrabook", "Gaming"}, opts.LaptopTypes)
	assert.Equal(t, []string{"Windows", "Mac", "Others/No OS/Linux"}, opts.OSOptions)
	assert.Equal(t, []int{2, 4, 6, 8, 12, 16, 24, 32, 64}, opts.Ram)
	assert.Equal(t, []int{0, 128, 256, 512, 1024, 2048}, opts.HDD)
	assert.Equal(t, []int{0, 8, 128, 256, 512, 1024}, opts.SSD)
	assert.Len(t, opts.ScreenSizes, 13)
	assert.Len(t, opts.Weights, 16)
	assert.Len(t, opts.Resolutions, 9)

	assert.Equal(t, "0.9 kg (Ultra-light)", opts.Weights[0].Label)
	assert.Equal(t, "4.0 kg (Desktop Replacement)", opts.Weights[len(opts.Weights)-1].Label)
	assert.Equal(t, "15.6 inch", opts.ScreenSizes[8].Label)
	assert.Equal(t, 15.6, opts.ScreenSizes[8].Value)
}

func TestListOptionsIsolatedFromCallers(t *testing.T) {
	catalog, err := NewOptionCatalog(testArtifacts(t).Reference)
	require.NoError(t, err)

	first := catalog.ListOptions()
	first.Companies[0] = "Mutated"
	first.Ram[0] = -1
	first.Weights[0].Label = "Mutated"
	first.Resolutions = append(first.Resolutions[:0], "1x1")

	second := catalog.ListOptions()
	assert.Equal(t, "Dell", second.Companies[0])
	assert.Equal(t, 2, second.Ram[0])
	assert.Equal(t, "0.9 kg (Ultra-light)", second.Weights[0].Label)
	assert.Equal(t, "1920x1080", second.Resolutions[0])
	assert.Equal(t, second, catalog.ListOptions())
}

type missingColumns struct{}

func (missingColumns) DistinctValues(column string) ([]string, error) {
	return nil, inference.ErrUnknownColumn
}

func TestNewOptionCatalogMissingColumn(t *testing.T) {
	_, err := NewOptionCatalog(missingColumns{})

	var serr *StartupError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "option catalog", serr.Component)
	assert.ErrorIs(t, err, inference.ErrUnknownColumn)
}

func TestLoadArtifactStoreMissingFiles(t *testing.T) {
	_, err := LoadArtifactStore(testArtifactsConfig("missing.json", "df.csv"))
	var serr *StartupError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "trained pipeline", serr.Component)

	_, err = LoadArtifactStore(testArtifactsConfig("pipe.json", "missing.csv"))
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "reference table", serr.Component)
}
