package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCasaAtual(t *testing.T) {
	may10 := timePtr(2023, 5, 10)
	may11 := timePtr(2023, 5, 11)

	tests := []struct {
		name     string
		latestSF *time.Time
		latestCD *time.Time
		want     string
	}{
		{"camara strictly newer", may10, may11, model.HouseCamara},
		{"senado newer", may11, may10, model.HouseSenado},
		{"tie stays with senado", may10, may10, model.HouseSenado},
		{"only camara", nil, may10, model.HouseCamara},
		{"only senado", may10, nil, model.HouseSenado},
		{"no activity", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCasaAtual(tt.latestSF, tt.latestCD))
		})
	}
}

func TestEarliestOf(t *testing.T) {
	may10 := timePtr(2023, 5, 10)
	may11 := timePtr(2023, 5, 11)

	assert.Equal(t, may10, earliestOf(may10, may11))
	assert.Equal(t, may10, earliestOf(may11, may10))
	assert.Equal(t, may10, earliestOf(may10, nil))
	assert.Equal(t, may10, earliestOf(nil, may10))
	assert.Nil(t, earliestOf(nil, nil))

	// Equal dates keep the first argument.
	assert.Same(t, may10, earliestOf(may10, timePtr(2023, 5, 10)))
}

func TestNullDate(t *testing.T) {
	assert.Nil(t, nullDate(sql.NullTime{}))

	loc := time.FixedZone("BRT", -3*60*60)
	got := nullDate(sql.NullTime{
		Time:  time.Date(2023, 5, 10, 18, 45, 12, 0, loc),
		Valid: true,
	})
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC), *got)
}
