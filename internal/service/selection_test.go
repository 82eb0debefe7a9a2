package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/pautaaberta/pauta/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propositionWithDate(id int64, date *time.Time) model.Proposition {
	p := model.Proposition{ID: id, Tipo: "PL", Numero: int(id), Ano: 2023}
	if date != nil {
		p.DataApresentacao = sql.NullTime{Time: *date, Valid: true}
	}
	return p
}

func TestPickFeaturedEarliestDate(t *testing.T) {
	props := []model.Proposition{
		propositionWithDate(1, timePtr(2023, 5, 10)),
		propositionWithDate(2, timePtr(2021, 1, 2)),
		propositionWithDate(3, timePtr(2022, 12, 31)),
	}

	pick := pickFeatured(props)
	require.NotNil(t, pick)
	assert.Equal(t, int64(2), pick.ID)
}

func TestPickFeaturedTieKeepsLowestID(t *testing.T) {
	date := timePtr(2023, 5, 10)
	props := []model.Proposition{
		propositionWithDate(4, date),
		propositionWithDate(7, date),
	}

	pick := pickFeatured(props)
	require.NotNil(t, pick)
	assert.Equal(t, int64(4), pick.ID)
}

func TestPickFeaturedSkipsUndated(t *testing.T) {
	props := []model.Proposition{
		propositionWithDate(1, nil),
		propositionWithDate(2, timePtr(2023, 5, 10)),
	}

	pick := pickFeatured(props)
	require.NotNil(t, pick)
	assert.Equal(t, int64(2), pick.ID)
}

func TestPickFeaturedFallbackWithoutDates(t *testing.T) {
	props := []model.Proposition{
		propositionWithDate(5, nil),
		propositionWithDate(9, nil),
	}

	pick := pickFeatured(props)
	require.NotNil(t, pick)
	assert.Equal(t, int64(5), pick.ID)
}

func TestPickFeaturedEmpty(t *testing.T) {
	assert.Nil(t, pickFeatured(nil))
	assert.Nil(t, pickFeatured([]model.Proposition{}))
}
