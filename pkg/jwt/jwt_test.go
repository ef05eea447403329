package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/landed-cost-api/pkg/jwt"
)

var bodeguero = jwt.Identity{UserID: "user-1", CompanyID: "company-1", Role: "bodeguero"}

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secret", "landed-cost-api", 5*time.Minute, bodeguero)
	require.NoError(t, err)

	id, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, bodeguero, id)
}

func TestParse_Rechazos(t *testing.T) {
	valid, err := jwt.Generate("secret", "landed-cost-api", 5*time.Minute, bodeguero)
	require.NoError(t, err)
	expired, err := jwt.Generate("secret", "landed-cost-api", -time.Minute, bodeguero)
	require.NoError(t, err)
	noCompany, err := jwt.Generate("secret", "landed-cost-api", 5*time.Minute, jwt.Identity{UserID: "user-1"})
	require.NoError(t, err)
	// HS512 con el mismo secreto: solo se acepta HS256
	otherAlg, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "user-1",
		CompanyID:        "company-1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	// sin exp
	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		UserID:    "user-1",
		CompanyID: "company-1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"firma incorrecta", "otro", valid},
		{"expirado", "secret", expired},
		{"sin empresa", "secret", noCompany},
		{"algoritmo distinto", "secret", otherAlg},
		{"sin vencimiento", "secret", noExp},
		{"basura", "secret", "x.y.z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwt.Parse(tt.secret, tt.token)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "i", time.Minute, bodeguero)
	assert.Error(t, err)
	_, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
