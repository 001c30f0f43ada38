package decode

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string
	Count   int64
	Ratio   float64
	Seed    bool
	Added   time.Time
	Range   []int64
	Level   int
	Label   string
	Private bool
}

var sampleTable = []Field[sample]{
	String("name", func(s *sample) *string { return &s.Name }),
	Int("count", func(s *sample) *int64 { return &s.Count }),
	Float("ratio", func(s *sample) *float64 { return &s.Ratio }),
	Bool("is_seed", func(s *sample) *bool { return &s.Seed }).Or(false),
	Epoch("added_on", func(s *sample) *time.Time { return &s.Added }),
	IntList("piece_range", func(s *sample) *[]int64 { return &s.Range }).Or(nil),
	Int("level", func(s *sample) *int { return &s.Level }).Or(int64(7)),
	Enum("label", func(s *sample) *string { return &s.Label }, func(v string) string {
		if v == "" {
			return "none"
		}
		return v
	}),
	Bool("private", func(s *sample) *bool { return &s.Private }).Or(true),
}

func parse(t *testing.T, payload string) any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewBufferString(payload))
	dec.UseNumber()

	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestObject(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected sample
		reason   Reason
		field    string
	}{
		{
			name:    "all_fields",
			payload: `{"name":"debian.iso","count":3,"ratio":1.5,"is_seed":true,"added_on":1700000000,"piece_range":[0,12],"level":1,"label":"linux","private":false}`,
			expected: sample{
				Name: "debian.iso", Count: 3, Ratio: 1.5, Seed: true,
				Added: time.Unix(1700000000, 0).UTC(), Range: []int64{0, 12}, Level: 1, Label: "linux",
			},
		},
		{
			name:     "optional_defaults",
			payload:  `{"name":"a","count":0,"ratio":0,"added_on":0,"label":""}`,
			expected: sample{Name: "a", Level: 7, Label: "none", Private: true},
		},
		{
			name:     "negative_epoch_is_unset",
			payload:  `{"name":"a","count":0,"ratio":2,"added_on":-1,"label":"x","is_seed":false}`,
			expected: sample{Name: "a", Ratio: 2, Level: 7, Label: "x", Private: true},
		},
		{
			name:     "integral_float_for_int",
			payload:  `{"name":"a","count":4.0,"ratio":1,"added_on":1,"label":"x"}`,
			expected: sample{Name: "a", Count: 4, Ratio: 1, Added: time.Unix(1, 0).UTC(), Level: 7, Label: "x", Private: true},
		},
		{
			name:    "required_missing",
			payload: `{"count":1,"ratio":1,"added_on":1,"label":"x"}`,
			reason:  FieldMissing,
			field:   "name",
		},
		{
			name:    "required_null",
			payload: `{"name":null,"count":1,"ratio":1,"added_on":1,"label":"x"}`,
			reason:  FieldMissing,
			field:   "name",
		},
		{
			name:    "string_for_int",
			payload: `{"name":"a","count":"3","ratio":1,"added_on":1,"label":"x"}`,
			reason:  FieldTypeMismatch,
			field:   "count",
		},
		{
			name:    "fraction_for_int",
			payload: `{"name":"a","count":3.5,"ratio":1,"added_on":1,"label":"x"}`,
			reason:  FieldTypeMismatch,
			field:   "count",
		},
		{
			name:    "int64_overflow",
			payload: `{"name":"a","count":9223372036854775808,"ratio":1,"added_on":1,"label":"x"}`,
			reason:  FieldTypeMismatch,
			field:   "count",
		},
		{
			name:    "number_for_bool",
			payload: `{"name":"a","count":1,"ratio":1,"added_on":1,"label":"x","is_seed":1}`,
			reason:  FieldTypeMismatch,
			field:   "is_seed",
		},
		{
			name:    "bad_list_element",
			payload: `{"name":"a","count":1,"ratio":1,"added_on":1,"label":"x","piece_range":[0,"b"]}`,
			reason:  FieldTypeMismatch,
			field:   "piece_range",
		},
		{
			name:    "first_failure_in_table_order",
			payload: `{"name":1,"ratio":1,"added_on":1,"label":"x"}`,
			reason:  FieldTypeMismatch,
			field:   "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := AsObject(parse(t, tt.payload))
			require.NoError(t, err)

			got, err := Object(obj, sampleTable)
			if tt.reason != 0 {
				require.Error(t, err)
				assert.True(t, IsReason(err, tt.reason), "reason: %v", err)

				var de *Error
				require.ErrorAs(t, err, &de)
				assert.Equal(t, tt.field, de.Field)
				assert.Equal(t, -1, de.Index)
				assert.Equal(t, sample{}, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestArray(t *testing.T) {
	t.Run("preserves_order", func(t *testing.T) {
		got, err := Array(parse(t, `[
			{"name":"b","count":2,"ratio":0,"added_on":0,"label":"x"},
			{"name":"a","count":1,"ratio":0,"added_on":0,"label":"y"}
		]`), sampleTable)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].Name)
		assert.Equal(t, "a", got[1].Name)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Array(parse(t, `[]`), sampleTable)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("not_an_array", func(t *testing.T) {
		_, err := Array(parse(t, `{"name":"a"}`), sampleTable)
		assert.True(t, IsReason(err, MalformedPayload))
	})

	t.Run("element_not_object", func(t *testing.T) {
		_, err := Array(parse(t, `[{"name":"a","count":1,"ratio":0,"added_on":0,"label":"x"}, 5]`), sampleTable)

		var de *Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, MalformedPayload, de.Reason)
		assert.Equal(t, 1, de.Index)
	})

	t.Run("element_failure_fails_all", func(t *testing.T) {
		got, err := Array(parse(t, `[
			{"name":"a","count":1,"ratio":0,"added_on":0,"label":"x"},
			{"name":"b","ratio":0,"added_on":0,"label":"x"}
		]`), sampleTable)
		assert.Nil(t, got)

		var de *Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, FieldMissing, de.Reason)
		assert.Equal(t, "count", de.Field)
		assert.Equal(t, 1, de.Index)
		assert.Contains(t, de.Error(), "element 1")
	})
}

func TestAsIntRange(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int64
		wantErr  bool
	}{
		{name: "max", value: json.Number("9223372036854775807"), expected: math.MaxInt64},
		{name: "min", value: json.Number("-9223372036854775808"), expected: math.MinInt64},
		{name: "just_above_max", value: json.Number("9223372036854775808"), wantErr: true},
		{name: "exponent_above_max", value: json.Number("1e19"), wantErr: true},
		{name: "below_min", value: json.Number("-9223372036854777856"), wantErr: true},
		{name: "float_min", value: float64(-0x1p63), expected: math.MinInt64},
		{name: "float_two_pow_63", value: float64(0x1p63), wantErr: true},
		{name: "exponent_integral", value: json.Number("1e3"), expected: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asInt(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAsObject(t *testing.T) {
	_, err := AsObject(parse(t, `[1,2]`))
	assert.True(t, IsReason(err, MalformedPayload))
	assert.Contains(t, err.Error(), "got array")

	_, err = AsObject(nil)
	assert.Contains(t, err.Error(), "got null")
}

func TestEpochTime(t *testing.T) {
	assert.True(t, EpochTime(0).IsZero())
	assert.True(t, EpochTime(-1).IsZero())
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), EpochTime(1700000000))
	assert.False(t, EpochTime(1).IsZero())
}

func TestUnknownKeys(t *testing.T) {
	obj, err := AsObject(parse(t, `{"name":"a","count":1,"zeta":1,"alpha":true}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, UnknownKeys(obj, sampleTable))
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "field missing", FieldMissing.String())
	assert.Equal(t, "field type mismatch", FieldTypeMismatch.String())
	assert.Equal(t, "malformed payload", MalformedPayload.String())
	assert.Equal(t, "field missing: hash", Missing("hash").Error())
}
