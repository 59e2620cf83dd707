package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalFlatJSON(t *testing.T) {
	body := `{
		"type": "booking",
		"name": "Thandi Dlamini",
		"email": "thandi@example.com",
		"guests": 2,
		"checkin": "2030-05-01",
		"checkout": "2030-05-04",
		"room": null
	}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, TypeBooking, rec.Type)
	assert.Equal(t, "Thandi Dlamini", rec.Get("name"))
	assert.Equal(t, "2", rec.Get("guests"), "numeric values are coerced to strings")
	assert.Equal(t, "", rec.Get("room"), "null collapses to empty string")
	assert.False(t, rec.Has("room"))
	assert.True(t, rec.Has("checkin"))
}

func TestRecord_UnmarshalMissingType(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &rec))

	_, err := ParseType(string(rec.Type))
	assert.Error(t, err)
}

func TestRecord_MarshalRoundTrip(t *testing.T) {
	rec := NewRecord(TypeReview)
	rec.Set("name", "Sipho")
	rec.Set("satisfaction", "5")
	rec.Set("recommend", "yes")

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var flat map[string]string
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "review", flat["type"])
	assert.Equal(t, "Sipho", flat["name"])

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.Type, back.Type)
	assert.Equal(t, rec.Fields, back.Fields)
}

func TestParseType(t *testing.T) {
	for _, ok := range []string{"booking", "review"} {
		_, err := ParseType(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "Booking", "complaint"} {
		_, err := ParseType(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefinitionFor(t *testing.T) {
	def, err := DefinitionFor(TypeBooking)
	require.NoError(t, err)
	assert.Equal(t, "booking-form", def.ID)

	spec, ok := def.Spec("checkin")
	require.True(t, ok)
	assert.Equal(t, FieldDate, spec.Type)
	assert.True(t, spec.Required)

	spec, ok = def.Spec("phone")
	require.True(t, ok)
	assert.False(t, spec.Required)

	_, err = DefinitionFor(Type("complaint"))
	assert.Error(t, err)
}
