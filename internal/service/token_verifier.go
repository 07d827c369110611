package service

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier valida access tokens HS256 emitidos por el proveedor de identidad.
// El servicio no emite tokens.
type TokenVerifier struct {
	secret   []byte
	audience string
	issuer   string
}

// Claims son los claims que el API usa del access token; Subject es el id de usuario.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

// NewTokenVerifier crea un verificador; audience e issuer vacíos no se comprueban.
func NewTokenVerifier(secret, audience, issuer string) *TokenVerifier {
	return &TokenVerifier{
		secret:   []byte(secret),
		audience: strings.TrimSpace(audience),
		issuer:   strings.TrimSpace(issuer),
	}
}

func (v *TokenVerifier) Verify(accessToken string) (Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	_, err := jwt.NewParser(opts...).ParseWithClaims(accessToken, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}
