package helper

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RawStringToNull treats the empty string as NULL.
func RawStringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func NullTimeOr(t sql.NullTime, fallback time.Time) time.Time {
	if !t.Valid {
		return fallback
	}
	return t.Time
}

// Float64ToDecimalExact goes through the shortest string form so a NUMERIC
// column receives exactly what the caller typed.
func Float64ToDecimalExact(f float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(f, 'f', -1, 64))
}

// NumericToFloat64 converts a NUMERIC column scanned as text.
func NumericToFloat64(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// EmptyIfNil keeps JSON output as [] for NULL or missing array columns.
func EmptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
