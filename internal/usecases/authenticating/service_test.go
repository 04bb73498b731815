package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-data-api/internal/config"
	"github.com/vfg2006/agency-data-api/internal/domain"
)

func newTestService(secret string, now time.Time) *Service {
	service := NewService(&config.Config{Auth: config.Auth{Secret: secret, Enabled: true}}).(*Service)
	service.now = func() time.Time { return now }
	return service
}

func TestService_ValidateToken(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	issuer := newTestService("segredo", now)

	token, err := issuer.GenerateToken(domain.Claims{UserID: "u-1", UserName: "Ana", UserRoleID: domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name      string
		validator *Service
		token     string
		expected  error
	}{
		{
			name:      "Token válido",
			validator: issuer,
			token:     token,
		},
		{
			name:      "Token expirado",
			validator: newTestService("segredo", now.Add(2*time.Hour)),
			token:     token,
			expected:  ErrExpiredToken,
		},
		{
			name:      "Segredo diferente",
			validator: newTestService("outro", now),
			token:     token,
			expected:  ErrInvalidToken,
		},
		{
			name:      "Token malformado",
			validator: issuer,
			token:     "abc.def",
			expected:  ErrInvalidToken,
		},
		{
			name:      "Sem segredo configurado",
			validator: newTestService("", now),
			token:     token,
			expected:  ErrMissingSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.validator.ValidateToken(tt.token)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u-1", claims.UserID)
			assert.Equal(t, "u-1", claims.Subject)
			assert.True(t, claims.IsAdmin())
		})
	}
}

func TestService_RejectsOtherSigningMethods(t *testing.T) {
	service := newTestService("segredo", time.Now())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{UserID: "u-1", UserRoleID: domain.RoleAdmin})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
