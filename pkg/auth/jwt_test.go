package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secreto-de-prueba", time.Hour)

	token, err := svc.Generate(7, "mgarcia", "medico", "María García")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "mgarcia", claims.Username)
	assert.Equal(t, "medico", claims.Role)
	assert.Equal(t, "María García", claims.Name)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secreto-a", time.Hour).Generate(1, "admin", "admin", "Administrador")
	require.NoError(t, err)

	_, err = NewJWTService("secreto-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secreto", -time.Minute)

	token, err := svc.Generate(1, "admin", "admin", "Administrador")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("secreto", time.Hour)

	_, err := svc.Validate("no-es-un-token")
	assert.Error(t, err)
}
