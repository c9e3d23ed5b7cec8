package apply

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fishbones/internal/registry"
	"github.com/mesh-intelligence/fishbones/pkg/fieldwrap"
)

type tank struct {
	Name     string
	Capacity float64
	Vented   bool
	Stages   int
	Note     *string
	serial   string
}

func TestApply(t *testing.T) {
	a := NewApplier(registry.New())
	tk := &tank{}

	err := a.Apply(tk, map[string]any{
		"Name":     "LF-400",
		"Capacity": 400.0,
		"Vented":   true,
		"serial":   "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, &tank{Name: "LF-400", Capacity: 400, Vented: true, serial: "abc"}, tk)
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]any
		wantField string
		wantErr   error
	}{
		{
			name:      "unknown field",
			values:    map[string]any{"Missing": 1},
			wantField: "Missing",
			wantErr:   fieldwrap.ErrFieldNotFound,
		},
		{
			name:      "int into float field",
			values:    map[string]any{"Capacity": 400},
			wantField: "Capacity",
			wantErr:   fieldwrap.ErrTypeMismatch,
		},
		{
			name:      "stops at first failure in name order",
			values:    map[string]any{"Vented": "yes", "Name": 1},
			wantField: "Name",
			wantErr:   fieldwrap.ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewApplier(registry.New()).Apply(&tank{}, tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestApplyNilTarget(t *testing.T) {
	a := NewApplier(nil)
	assert.ErrorIs(t, a.Apply(nil, map[string]any{"Name": "x"}), fieldwrap.ErrInvalidArgument)

	_, err := a.Capture(nil, []string{"Name"})
	assert.ErrorIs(t, err, fieldwrap.ErrInvalidArgument)

	assert.ErrorIs(t, a.Restore(nil, nil), fieldwrap.ErrInvalidArgument)
}

func TestCapture(t *testing.T) {
	a := NewApplier(registry.New())
	tk := &tank{Name: "FL-T100", Capacity: 100, Stages: 2, serial: "s"}

	got, err := a.Capture(tk, []string{"Name", "Capacity", "Stages", "serial"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Name":     "FL-T100",
		"Capacity": 100.0,
		"Stages":   2,
		"serial":   "s",
	}, got)

	_, err = a.Capture(tk, []string{"Nope"})
	assert.ErrorIs(t, err, fieldwrap.ErrFieldNotFound)
}

func TestEncodeRestoreRoundTrip(t *testing.T) {
	a := NewApplier(registry.New())
	note := "radial"
	src := &tank{Name: "Oscar-B", Capacity: 6.5, Vented: true, Stages: 3, Note: &note, serial: "z9"}
	names := []string{"Name", "Capacity", "Vented", "Stages", "Note", "serial"}

	captured, err := a.Capture(src, names)
	require.NoError(t, err)
	raw, err := Encode(captured)
	require.NoError(t, err)

	dst := &tank{}
	require.NoError(t, a.Restore(dst, raw))
	assert.Equal(t, src, dst)
}

func TestRestoreTypeMismatch(t *testing.T) {
	a := NewApplier(registry.New())
	dst := &tank{Stages: 1}

	err := a.Restore(dst, map[string]json.RawMessage{"Stages": json.RawMessage(`"three"`)})
	assert.ErrorIs(t, err, fieldwrap.ErrTypeMismatch)
	assert.Equal(t, 1, dst.Stages)
}

func TestDecodeNull(t *testing.T) {
	d, err := fieldwrap.Lookup(typeOfTank, "Note")
	require.NoError(t, err)

	v, err := Decode(d, json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, v)
}

var typeOfTank = reflect.TypeFor[tank]()
