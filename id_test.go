package unicart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
		str     string
	}{
		{name: "int", value: 42, str: "42"},
		{name: "int64", value: int64(7), str: "7"},
		{name: "uint", value: uint(3), str: "3"},
		{name: "string", value: "sku-9", str: "sku-9"},
		{name: "numeric string stays a string", value: "1", str: "1"},
		{name: "float64 rejected", value: 1.0, wantErr: true},
		{name: "float32 rejected", value: float32(2.5), wantErr: true},
		{name: "bool rejected", value: true, wantErr: true},
		{name: "nil rejected", value: nil, wantErr: true},
		{name: "empty string rejected", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewID(tt.value)
			if tt.wantErr {
				var creation *ItemCreationError
				require.ErrorAs(t, err, &creation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.str, id.String())
			assert.False(t, id.IsZero())
		})
	}
}

func TestID_NumericAndStringDistinct(t *testing.T) {
	numeric, err := NewID(1)
	require.NoError(t, err)
	str, err := NewID("1")
	require.NoError(t, err)

	// 1 and "1" must not collide as map keys.
	assert.NotEqual(t, numeric, str)
	assert.Equal(t, int64(1), numeric.Value())
	assert.Equal(t, "1", str.Value())
}
