package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testEmail  = "kasir@pos.test"
	testIssuer = "pos-api-test"
)

func TestGenerateAndParse_ConEmailYRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "cashier", testIssuer, 480)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "cashier", claims.Role)

	// 8 horas de vigencia
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 8*time.Hour, ttl)
}

func TestParse_TokenExpiradoConFirmaValida(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe rechazarse aunque la firma sea válida")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testEmail, "admin", testIssuer, 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestState_GenerateAndVerify(t *testing.T) {
	state, err := pkgjwt.GenerateState(testSecret, "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, pkgjwt.VerifyState(testSecret, state))

	expired, err := pkgjwt.GenerateState(testSecret, "nonce-2", -time.Minute)
	require.NoError(t, err)
	assert.Error(t, pkgjwt.VerifyState(testSecret, expired))
}

func TestState_NoAceptaTokenDeSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "admin", testIssuer, 60)
	require.NoError(t, err)
	assert.Error(t, pkgjwt.VerifyState(testSecret, tok), "un token de sesión no es un state OAuth")
}

func TestParse_RechazaStateOAuth(t *testing.T) {
	state, err := pkgjwt.GenerateState(testSecret, "nonce", 10*time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, state)
	assert.Error(t, err, "un state OAuth no autentica peticiones")
}

func TestGenerate_AudienciaDeAcceso(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "cashier", testIssuer, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{pkgjwt.AudienceAccess}, []string(claims.Audience))
}
