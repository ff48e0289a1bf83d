package bpe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-dataprep/pkg/bpe"
)

func TestNewCustomConfigEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := bpe.NewCustomConfig("", 0, "", "")
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Equal(t, "default", cfg.ReprID())
}

func TestNewCustomConfigMissingID(t *testing.T) {
	t.Parallel()

	_, err := bpe.NewCustomConfig("", 1000, "", "")
	require.ErrorIs(t, err, bpe.ErrIDMustBeSet)
}

func TestNewCustomConfigNegativeMerges(t *testing.T) {
	t.Parallel()

	_, err := bpe.NewCustomConfig("java", -1, "", "")
	require.Error(t, err)
}

func TestReprID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     string
		merges int
		want   string
	}{
		{name: "all merges", id: "java", want: "bpe_java"},
		{name: "limited merges", id: "java", merges: 5000, want: "bpe_java_5000"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := bpe.NewCustomConfig(tc.id, tc.merges, "merges.txt", "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.ReprID())
		})
	}
}
