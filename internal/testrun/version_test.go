package testrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"Python 3.11.4", Version{3, 11}, false},
		{"Python 3.8.0b1", Version{3, 8}, false},
		{"Python 2.7.18\n", Version{2, 7}, false},
		{"3.12", Version{3, 12}, false},
		{"no digits here", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion_AtLeast(t *testing.T) {
	v := Version{Major: 3, Minor: 11}

	assert.True(t, v.AtLeast(3, 11))
	assert.True(t, v.AtLeast(3, 10))
	assert.True(t, v.AtLeast(2, 99))
	assert.False(t, v.AtLeast(3, 12))
	assert.False(t, v.AtLeast(4, 0))
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "3.11", Version{3, 11}.String())
}
