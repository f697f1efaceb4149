package credstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordCodec(t *testing.T) {
	tests := []struct {
		scheme  string
		want    PasswordCodec
		wantErr bool
	}{
		{"", PlainCodec{}, false},
		{SchemePlain, PlainCodec{}, false},
		{SchemeBcrypt, BcryptCodec{}, false},
		{"md5", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			got, err := NewPasswordCodec(tt.scheme)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlainCodec(t *testing.T) {
	c := PlainCodec{}
	stored, err := c.Encode("secret1")
	require.NoError(t, err)
	assert.Equal(t, "secret1", stored)
	assert.True(t, c.Matches(stored, "secret1"))
	assert.False(t, c.Matches(stored, "Secret1"))
}

func TestBcryptCodec(t *testing.T) {
	c := BcryptCodec{Cost: 4}
	stored, err := c.Encode("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored)
	assert.True(t, c.Matches(stored, "secret1"))
	assert.False(t, c.Matches(stored, "secret2"))
	assert.False(t, c.Matches("not-a-hash", "secret1"))
}
