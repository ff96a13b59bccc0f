package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs Errors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidator_CollectsAllFailures(t *testing.T) {
	v := New()
	v.Required("name", "")
	v.Required("email", "nope").Email("email", "nope")
	v.Range("discount", 150, 0, 100)

	errs := v.Err()
	require.Len(t, errs, 3)
	assert.ElementsMatch(t, []string{"name", "email", "discount"}, fields(errs))
}

func TestValidator_PassingChainReturnsNil(t *testing.T) {
	v := New()
	v.Required("name", "Lyan")
	v.Email("email", "hello@example.com")
	v.Phone("phone", "+251 911 000 000")
	v.OneOf("category", "premium", []string{"basic", "premium"})
	v.Date("event_date", "2026-10-03")
	v.TimeOfDay("event_time", "18:30")

	assert.Nil(t, v.Err())
}

func TestValidator_Email(t *testing.T) {
	assert.Nil(t, New().Email("email", "a.b+c@sub.example.co").Err())
	assert.NotNil(t, New().Email("email", "missing-at.example.com").Err())
	// Empty is skipped; pair with Required when the field is mandatory
	assert.Nil(t, New().Email("email", "").Err())
}

func TestValidator_Phone(t *testing.T) {
	assert.Nil(t, New().Phone("phone", "+251911000000").Err())
	assert.Nil(t, New().Phone("phone", "(251) 911-000-000").Err())
	assert.NotNil(t, New().Phone("phone", "12").Err())
	assert.NotNil(t, New().Phone("phone", "not a number").Err())
}

func TestValidator_Date(t *testing.T) {
	assert.Nil(t, New().Date("d", "2026-02-28").Err())
	assert.NotNil(t, New().Date("d", "2026-02-30").Err())
	assert.NotNil(t, New().Date("d", "03/10/2026").Err())
}

func TestValidator_FutureDate(t *testing.T) {
	assert.Nil(t, New().FutureDate("d", time.Now().Add(24*time.Hour)).Err())
	assert.NotNil(t, New().FutureDate("d", time.Now().Add(-time.Minute)).Err())
}

func TestValidator_TimeOfDay(t *testing.T) {
	assert.Nil(t, New().TimeOfDay("t", "00:00").Err())
	assert.Nil(t, New().TimeOfDay("t", "23:59").Err())
	assert.NotNil(t, New().TimeOfDay("t", "24:00").Err())
	assert.NotNil(t, New().TimeOfDay("t", "9:00").Err())
}

func TestValidator_MinInt_ZeroSkipped(t *testing.T) {
	// Zero means "not provided" for optional counters
	assert.Nil(t, New().MinInt("guests", 0, 1).Err())
	assert.NotNil(t, New().MinInt("guests", -5, 1).Err())
}

func TestErrors_ErrorString(t *testing.T) {
	errs := Errors{
		{Field: "name", Message: "is required"},
		{Field: "price", Message: "must be at least 0"},
	}
	assert.Equal(t, "validation failed: name: is required; price: must be at least 0", errs.Error())
}
