package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func personSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"name", "email"},
		Properties: map[string]Property{
			"name":  {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(100)},
			"email": {Type: "string", Format: "email"},
			"age":   {Type: "number", Minimum: floatPtr(0), Maximum: floatPtr(150)},
			"state": {Type: "string", MinLength: intPtr(2), MaxLength: intPtr(2)},
			"plan":  {Type: "string", Enum: []string{"basic", "premium"}},
			"ein":   {Type: "string", Pattern: strPtr(`^\d{2}-?\d{7}$`)},
			"tags":  {Type: "array", MinItems: intPtr(1), MaxItems: intPtr(3), Items: &Property{Type: "string"}},
			"score": {Type: "number", Nullable: true, Minimum: floatPtr(0), Maximum: floatPtr(100)},
			"address": {Type: "object", Required: []string{"city"}, Properties: map[string]Property{
				"city": {Type: "string"},
				"zip":  {Type: "string"},
			}},
		},
		AdditionalProperties: false,
	}
}

func TestValidateInput_Valid(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":  "Jane Doe",
		"email": "jane@x.com",
		"age":   float64(34),
		"state": "TX",
		"plan":  "basic",
		"ein":   "12-3456789",
		"tags":  []interface{}{"new"},
		"address": map[string]interface{}{
			"city": "Austin",
		},
	}, personSchema())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_RequiredFieldMissing(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"name": "Jane"}, personSchema())

	require.False(t, result.Valid)
	require.True(t, result.HasErrors("email"))
	assert.Equal(t, "REQUIRED_FIELD_MISSING", result.GetErrorsForField("email")[0].Code)
}

func TestValidateInput_RequiredFieldNull(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":  "Jane",
		"email": nil,
	}, personSchema())

	require.False(t, result.Valid)
	assert.Equal(t, "REQUIRED_FIELD_NULL", result.GetErrorsForField("email")[0].Code)
}

func TestValidateInput_FieldConstraints(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    interface{}
		wantCode string
	}{
		{"wrong type", "name", float64(7), "INVALID_TYPE"},
		{"too short", "name", "", "MIN_LENGTH_VIOLATION"},
		{"bad email", "email", "not-an-email", "INVALID_EMAIL"},
		{"state too long", "state", "TEX", "MAX_LENGTH_VIOLATION"},
		{"below minimum", "age", float64(-1), "MINIMUM_VIOLATION"},
		{"above maximum", "age", float64(151), "MAXIMUM_VIOLATION"},
		{"bad enum", "plan", "gold", "INVALID_ENUM_VALUE"},
		{"bad pattern", "ein", "123456789X", "PATTERN_MISMATCH"},
		{"too few items", "tags", []interface{}{}, "MIN_ITEMS_VIOLATION"},
		{"too many items", "tags", []interface{}{"a", "b", "c", "d"}, "MAX_ITEMS_VIOLATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]interface{}{
				"name":  "Jane",
				"email": "jane@x.com",
			}
			input[tt.field] = tt.value

			result := ValidateInput(input, personSchema())

			require.False(t, result.Valid, "expected invalid for %s", tt.name)
			errs := result.GetErrorsForField(tt.field)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantCode, errs[0].Code)
		})
	}
}

func TestValidateInput_ExtraFieldRejected(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":    "Jane",
		"email":   "jane@x.com",
		"surpise": "yes",
	}, personSchema())

	require.False(t, result.Valid)
	assert.Equal(t, "EXTRA_FIELD", result.GetErrorsForField("surpise")[0].Code)
}

func TestValidateInput_NullableFieldAcceptsNull(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":  "Jane",
		"email": "jane@x.com",
		"score": nil,
	}, personSchema())

	assert.True(t, result.Valid)
}

func TestValidateInput_NonNullableOptionalRejectsNull(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":  "Jane",
		"email": "jane@x.com",
		"age":   nil,
	}, personSchema())

	require.False(t, result.Valid)
	assert.Equal(t, "NULL_NOT_ALLOWED", result.GetErrorsForField("age")[0].Code)
}

func TestValidateInput_NestedObject(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":    "Jane",
		"email":   "jane@x.com",
		"address": map[string]interface{}{"zip": "73301"},
	}, personSchema())

	require.False(t, result.Valid)
	errs := result.GetErrorsForField("address")
	require.NotEmpty(t, errs)
	assert.Equal(t, "address.city", errs[0].Field)
	assert.Equal(t, "REQUIRED_FIELD_MISSING", errs[0].Code)
}

func TestValidateInput_ArrayItemType(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"name":  "Jane",
		"email": "jane@x.com",
		"tags":  []interface{}{"ok", float64(3)},
	}, personSchema())

	require.False(t, result.Valid)
	errs := result.GetErrorsForField("tags")
	require.NotEmpty(t, errs)
	assert.Equal(t, "tags[1]", errs[0].Field)
	assert.Equal(t, "INVALID_TYPE", errs[0].Code)
}

func TestValidateOutput_BoundaryValues(t *testing.T) {
	schema := JSONSchema{
		Type:     "object",
		Required: []string{"score"},
		Properties: map[string]Property{
			"score": {Type: "number", Minimum: floatPtr(0), Maximum: floatPtr(100)},
		},
	}

	for _, tt := range []struct {
		score float64
		valid bool
	}{
		{0, true},
		{100, true},
		{-1, false},
		{101, false},
	} {
		result := ValidateOutput(map[string]interface{}{"score": tt.score}, schema)
		assert.Equal(t, tt.valid, result.Valid, "score %v", tt.score)
	}
}

func TestToFloat_CoercesNumericKinds(t *testing.T) {
	for _, v := range []interface{}{float64(5), float32(5), int(5), int32(5), int64(5)} {
		f, ok := toFloat(v)
		assert.True(t, ok)
		assert.InDelta(t, 5, f, 0.001)
	}

	_, ok := toFloat("5")
	assert.False(t, ok)
}

func TestValidateEmailAndPhone(t *testing.T) {
	assert.True(t, ValidateEmail("jane@x.com"))
	assert.False(t, ValidateEmail("jane@x"))
	assert.True(t, ValidatePhone("+1 (512) 555-0117"))
	assert.False(t, ValidatePhone("abc"))
}
