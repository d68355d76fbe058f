package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Value
	}{
		{"true", domain.Bool(true)},
		{"false", domain.Bool(false)},
		{"True", domain.String("True")},
		{"42", domain.Number(42)},
		{"-1.5", domain.Number(-1.5)},
		{"1e3", domain.Number(1000)},
		{"12abc", domain.String("12abc")},
		{"", domain.String("")},
		{"NaN", domain.String("NaN")},
		{"Inf", domain.String("Inf")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Coerce(tt.raw))
		})
	}
}

func TestValueOf(t *testing.T) {
	v, err := domain.ValueOf(7)
	require.NoError(t, err)
	assert.Equal(t, domain.Number(7), v)

	v, err = domain.ValueOf(uint8(3))
	require.NoError(t, err)
	assert.Equal(t, domain.Number(3), v)

	v, err = domain.ValueOf("x")
	require.NoError(t, err)
	assert.Equal(t, domain.String("x"), v)

	_, err = domain.ValueOf([]string{"nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestValue_Equality(t *testing.T) {
	assert.Equal(t, domain.Number(1), domain.Number(1))
	assert.NotEqual(t, domain.Number(1), domain.String("1"))
	assert.NotEqual(t, domain.Bool(true), domain.String("true"))
	assert.True(t, domain.NewDecision("a", domain.Number(1)).Same(domain.NewDecision("a", domain.Number(1))))
	assert.False(t, domain.NewDecision("a", domain.Number(1)).Same(domain.NewDecision("a", domain.Number(2))))
}

func TestValue_JSON(t *testing.T) {
	d := domain.NewDecision("a", domain.Number(1.5))
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"a","value":1.5}`, string(data))

	var back domain.Decision
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	var flag domain.Value
	require.NoError(t, json.Unmarshal([]byte(`true`), &flag))
	assert.Equal(t, domain.Bool(true), flag)

	var bad domain.Value
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &bad))
}

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "1", domain.Number(1).Text())
	assert.Equal(t, "0.25", domain.Number(0.25).Text())
	assert.Equal(t, "false", domain.Bool(false).Text())
	assert.Equal(t, "hi", domain.String("hi").Text())
}

func TestValue_Validate(t *testing.T) {
	assert.NoError(t, domain.Number(1.5).Validate())
	assert.NoError(t, domain.String("héllo").Validate())
	assert.NoError(t, domain.Bool(false).Validate())

	assert.ErrorIs(t, domain.Number(math.NaN()).Validate(), domain.ErrInvalidValue)
	assert.ErrorIs(t, domain.Number(math.Inf(-1)).Validate(), domain.ErrInvalidValue)
	assert.ErrorIs(t, domain.String("k\xff").Validate(), domain.ErrInvalidValue)

	_, err := domain.ValueOf("k\xff")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestDecision_Validate(t *testing.T) {
	assert.NoError(t, domain.NewDecision("a", domain.Number(1)).Validate())

	err := domain.NewDecision("k\xff", domain.Number(1)).Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	err = domain.NewDecision("a", domain.Number(math.NaN())).Validate()
	require.ErrorIs(t, err, domain.ErrInvalidValue)
	var e *domain.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "a", e.Key)
}
