package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{name: "min cost", cost: bcrypt.MinCost},
		{name: "default cost", cost: bcrypt.DefaultCost},
		{name: "max cost", cost: bcrypt.MaxCost},
		{name: "too low", cost: bcrypt.MinCost - 1, wantErr: true},
		{name: "too high", cost: bcrypt.MaxCost + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewPasswordHasher(tt.cost)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCost)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	passwords := []string{"Secret#123", "пароль-Кириллицей1!", "a"}
	for _, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash, "хеш не должен совпадать с паролем")
		assert.True(t, h.Verify(p, hash))
		assert.False(t, h.Verify(p+"x", hash))
	}
}

func TestPasswordHasher_SaltIsRandom(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("Secret#123")
	require.NoError(t, err)
	second, err := h.Hash("Secret#123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("Secret#123", first))
	assert.True(t, h.Verify("Secret#123", second))
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("")
	require.Error(t, err)
	assert.Empty(t, hash)
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	h := newTestHasher(t)

	assert.False(t, h.Verify("Secret#123", ""))
	assert.False(t, h.Verify("Secret#123", "not-a-bcrypt-hash"))
}
