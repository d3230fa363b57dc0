package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-32-bytes-should-be-long-enough"

func TestSignAndVerify(t *testing.T) {
	raw, err := Sign(secret, "user-123", 2*time.Minute, map[string]interface{}{"email": "ops@vendorhub.local"})
	require.NoError(t, err)

	tok, err := NewHMACVerifier(secret).Verify(context.Background(), raw)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "user-123", claims["sub"])
	require.Equal(t, "ops@vendorhub.local", claims["email"])
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := Sign("secret-one-32-bytes-xxxxxxxxxxxxxxxx", "u1", time.Minute, nil)
	require.NoError(t, err)

	_, err = NewHMACVerifier("secret-two-32-bytes-yyyyyyyyyyyyyyyy").Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	raw, err := Sign(secret, "u2", -time.Minute, nil)
	require.NoError(t, err)

	_, err = NewHMACVerifier(secret).Verify(context.Background(), raw)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "u3",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewHMACVerifier(secret).Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u4"}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewHMACVerifier(secret).Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestSignRequiresSecret(t *testing.T) {
	_, err := Sign("", "u1", time.Minute, nil)
	require.Error(t, err)
}
