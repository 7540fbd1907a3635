package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken("22BD1A0501", "student")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "22BD1A0501", user.StudentID)
	assert.Equal(t, "student", user.Role)

	// "Bearer <token>" form is accepted too
	user, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "22BD1A0501", user.StudentID)
}

func TestVerifyTokenRejectsBadInput(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)

	token, err := auth.GenerateToken("22BD1A0501", "student")
	require.NoError(t, err)

	other := SetupAuth("different-secret")
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresStudentID(t *testing.T) {
	auth := SetupAuth("test-secret")
	_, err := auth.GenerateToken("", "student")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	auth := SetupAuth("test-secret")
	assert.NoError(t, auth.VerifyPassword("secret123", string(hash)))
	assert.Error(t, auth.VerifyPassword("wrong", string(hash)))
}
