package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeDateIDToken(t *testing.T) {
	createdAt := time.Date(2025, 3, 12, 9, 15, 30, 987654321, time.UTC)
	id := "7f0c2a1e-3d4b-4a56-9c1d-0e2f3a4b5c6d"

	token := EncodeDateIDToken(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeDateIDToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Created at time should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// IDs may contain the separator themselves; everything after the first
	// separator belongs to the ID.
	token = EncodeDateIDToken(createdAt, "weird|id")
	_, decodedID, err = DecodeDateIDToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "weird|id", decodedID)
}

func TestDecodeDateIDTokenError(t *testing.T) {
	_, _, err := DecodeDateIDToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 encoded date without separator
	_, _, err = DecodeDateIDToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err, "Should return an error for missing separator")
	assert.Contains(t, err.Error(), "split")

	// Base64 encoded "notadate|some-id"
	_, _, err = DecodeDateIDToken("bm90YWRhdGV8c29tZS1pZA==")
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse")
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	now := time.Now().UTC()
	token := EncodeDateBasedToken(now)
	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err)
	assert.True(t, now.Equal(decoded), "Date should match after decode")

	_, err = DecodeDateBasedToken("not base64!")
	assert.Error(t, err)
}
