package utils_test

import (
	"testing"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "agencydesk-test"
)

func TestParseAndValidateJWT_AcceptsAccessToken(t *testing.T) {
	userID := uuid.NewString()
	tokenString, err := utils.GenerateJWT(userID, testSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParseAndValidateJWT_RejectsPendingTwoFactorToken(t *testing.T) {
	// A pending token proves the password only; it must not pass as a full
	// access token even though the signature and expiry are valid.
	tokenString, err := utils.GenerateTwoFactorPendingJWT(uuid.NewString(), testSecret, 5*time.Minute, testIssuer)
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "not a valid access token")
}

func TestParseTwoFactorPendingJWT_RejectsAccessToken(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), testSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	claims, err := utils.ParseTwoFactorPendingJWT(tokenString, testSecret)

	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseTwoFactorPendingJWT_AcceptsPendingToken(t *testing.T) {
	userID := uuid.NewString()
	tokenString, err := utils.GenerateTwoFactorPendingJWT(userID, testSecret, 5*time.Minute, testIssuer)
	require.NoError(t, err)

	claims, err := utils.ParseTwoFactorPendingJWT(tokenString, testSecret)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
}

func TestParseAndValidateJWT_RejectsWrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), testSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, "a-completely-different-secret")

	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseAndValidateJWT_RejectsExpiredToken(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), testSecret, -time.Minute, testIssuer)
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, testSecret)

	require.Error(t, err)
	assert.Nil(t, claims)
}
