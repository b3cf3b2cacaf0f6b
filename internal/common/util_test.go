package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "refresh token size", size: 32},
		{name: "short", size: 4},
		{name: "zero", size: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MakeRandHexString(tt.size)
			require.NoError(t, err)
			assert.Len(t, s, tt.size*2)

			raw, err := hex.DecodeString(s)
			require.NoError(t, err)
			assert.Len(t, raw, tt.size)
		})
	}
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateRandByteArray(t *testing.T) {
	for _, size := range []int{0, 12, 16, 32} {
		buf := GenerateRandByteArray(size)
		require.NotNil(t, buf)
		assert.Len(t, buf, size)
	}

	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, make([]byte, 32), a, "buffer must be filled")
}

func TestWipeByteArray(t *testing.T) {
	password := []byte("Passw0rd!")
	WipeByteArray(password)
	assert.Equal(t, make([]byte, len("Passw0rd!")), password)

	empty := []byte{}
	WipeByteArray(empty)
	assert.Empty(t, empty)
}
