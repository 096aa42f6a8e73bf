package helper_test

import (
	"database/sql"
	"testing"
	"time"

	"go-couture-api/internal/shared/database/helper"

	"github.com/stretchr/testify/assert"
)

func TestNumericToFloat64(t *testing.T) {
	v, err := helper.NumericToFloat64("15000.50")
	assert.NoError(t, err)
	assert.Equal(t, 15000.5, v)

	_, err = helper.NumericToFloat64("abc")
	assert.Error(t, err)
}

func TestFloat64ToDecimalExact(t *testing.T) {
	assert.Equal(t, "0.1", helper.Float64ToDecimalExact(0.1).String())
	assert.Equal(t, "25000", helper.Float64ToDecimalExact(25000).String())
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, helper.RawStringToNull("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, helper.RawStringToNull("x"))

	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, fallback, helper.NullTimeOr(sql.NullTime{}, fallback))

	assert.NotNil(t, helper.EmptyIfNil(nil))
	assert.Len(t, helper.EmptyIfNil(nil), 0)
}
