package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams_FieldEquivalence(t *testing.T) {
	got := NewParams(100000, 100, 0.3, 1.0/14.0, 500, 150)
	want := Params{
		N:        100000,
		Beta:     0.3,
		Gamma0:   1.0 / 14.0,
		Capacity: 500,
		DT:       1,
		Steps:    150,
		S0:       99900,
		I0:       100,
		R0:       0,
	}
	assert.Equal(t, want, got)
}

func TestParamsValidate_AcceptsReferenceScenario(t *testing.T) {
	p := NewParams(1000, 10, 0.3, 0.1, 50, 100)
	assert.NoError(t, p.Validate())
}

func TestParamsValidate_RejectsInvalidFields(t *testing.T) {
	valid := NewParams(1000, 10, 0.3, 0.1, 50, 100)

	cases := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero population", func(p *Params) { p.N = 0 }, "N"},
		{"negative beta", func(p *Params) { p.Beta = -0.1 }, "Beta"},
		{"zero gamma", func(p *Params) { p.Gamma0 = 0 }, "Gamma0"},
		{"gamma overshoots under dt", func(p *Params) { p.Gamma0 = 0.8; p.DT = 2 }, "Gamma0"},
		{"negative capacity", func(p *Params) { p.Capacity = -1 }, "Capacity"},
		{"zero dt", func(p *Params) { p.DT = 0 }, "DT"},
		{"zero steps", func(p *Params) { p.Steps = 0 }, "Steps"},
		{"negative infected", func(p *Params) { p.I0 = -5 }, "I0"},
		{"compartments do not sum to N", func(p *Params) { p.S0 = 500 }, "S0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "expected ErrInvalidParameter class, got %v", err)

			var perr *ParameterError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.field, perr.Field)
		})
	}
}

func TestParamsWithBeta_DoesNotMutateOriginal(t *testing.T) {
	p := NewParams(1000, 10, 0.3, 0.1, 50, 100)
	q := p.WithBeta(0.15)

	assert.Equal(t, 0.3, p.Beta)
	assert.Equal(t, 0.15, q.Beta)
	assert.Equal(t, p.Steps, q.Steps)
}

func TestBasicReproduction(t *testing.T) {
	p := NewParams(1000, 10, 0.3, 0.1, 50, 100)
	assert.InDelta(t, 3.0, p.BasicReproduction(), 1e-12)
}
