package source

import (
	"context"
	"testing"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	dataset *domain.Dataset
}

func (s staticLoader) Load(context.Context) (*domain.Dataset, error) {
	return s.dataset, nil
}

func TestRegistry(t *testing.T) {
	static := func(domain.DatasetProfile) (Loader, error) {
		return staticLoader{dataset: &domain.Dataset{}}, nil
	}

	t.Run("register and create", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("memory", static))

		loader, err := r.Create(domain.DatasetProfile{Name: "test", Kind: "memory"})
		require.NoError(t, err)
		dataset, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, dataset)
	})

	t.Run("rejects invalid registrations", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.Register("", static))
		assert.Error(t, r.Register("memory", nil))
		require.NoError(t, r.Register("memory", static))
		assert.Error(t, r.Register("memory", static))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewRegistry().Create(domain.DatasetProfile{Name: "x", Kind: "parquet"})
		assert.ErrorContains(t, err, `"parquet" is not registered`)
	})

	t.Run("default kinds", func(t *testing.T) {
		kinds := NewDefaultRegistry(nil).ListKinds()
		assert.Equal(t, []domain.SourceKind{
			domain.SourceKindCSV,
			domain.SourceKindDatabricks,
			domain.SourceKindDuckDB,
			domain.SourceKindSnowflake,
		}, kinds)
	})
}
