package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	id := Identity{UserID: "u-1", RoleID: "r-1", Role: "operador"}
	tok, err := Generate(testSecret, id, "backoffice-test", 60)
	require.NoError(t, err)

	got, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, Identity{UserID: "u-1", Role: "admin"}, "backoffice-test", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, Identity{UserID: "u-1", Role: "admin"}, "backoffice-test", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := Generate("", Identity{UserID: "u-1"}, "x", 60)
	assert.Error(t, err)
}
