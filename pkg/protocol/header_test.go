package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionParts(t *testing.T) {
	assert.Equal(t, uint8(1), Major(ProtocolVersion))
	assert.Equal(t, uint8(0), Minor(ProtocolVersion))
	assert.Equal(t, "1.0", FormatVersion(ProtocolVersion))
	assert.Equal(t, "2.3", FormatVersion(0x0203))
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		version uint16
		wantErr bool
	}{
		{"current", ProtocolVersion, false},
		{"newer minor", 0x01ff, false},
		{"older major", 0x0000, true},
		{"newer major", 0x0200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersion(tt.version)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedVersion)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadVersion(t *testing.T) {
	v, err := ReadVersion(AppendVersion(nil))
	require.NoError(t, err)
	assert.Equal(t, ProtocolVersion, v)

	_, err = ReadVersion([]byte{0x01})
	assert.ErrorIs(t, err, ErrTruncatedInput)

	v, err = ReadVersion([]byte{0x03, 0x01, 0xff})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Equal(t, uint16(0x0301), v)
}
