package auth

import (
	"fmt"
	"time"

	"github.com/Daskott/raksha/server/auth/key"
	"github.com/Daskott/raksha/shared"
	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const TOKEN_TYPE = "bearer"

var ErrNoPublicKey = errors.New("tokens are signed with a shared secret, no public key to publish")

type RakshaTokenClaims struct {
	jwt.StandardClaims
}

// TokenIssuer signs and verifies access tokens. Tokens are RS256 signed when a key pair
// is configured, HS256 with the shared secret otherwise.
type TokenIssuer struct {
	secret  []byte
	keyPair *key.KeyPair
	expiry  time.Duration
}

func NewTokenIssuer(config shared.AuthConfig) (*TokenIssuer, error) {
	issuer := &TokenIssuer{
		secret: []byte(config.SecretKey),
		expiry: time.Duration(config.AccessTokenExpireMinutes) * time.Minute,
	}

	if config.PrivateKeyPem != "" {
		keyPair, err := key.NewKeyPairFromRSAPrivateKeyPem([]byte(config.PrivateKeyPem))
		if err != nil {
			return nil, err
		}
		issuer.keyPair = keyPair
	}

	if issuer.keyPair == nil && len(issuer.secret) == 0 {
		return nil, errors.New("NewTokenIssuer: a secret key or private key pem is required")
	}

	return issuer, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// EncodeJWT returns a signed token whose subject is the user's id
func (issuer *TokenIssuer) EncodeJWT(userID string) (string, error) {
	now := time.Now()
	claims := RakshaTokenClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(issuer.expiry).Unix(),
		},
	}

	if issuer.keyPair != nil {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		token.Header["kid"] = issuer.keyPair.Kid
		return token.SignedString(issuer.keyPair.PrivateKey)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(issuer.secret)
}

func (issuer *TokenIssuer) DecodeJWT(tokenString string) (*RakshaTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RakshaTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the alg is what you expect:
		if issuer.keyPair != nil {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return issuer.keyPair.PublicKey, nil
		}

		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return issuer.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*RakshaTokenClaims)
	if !ok || tokenClaims.Subject == "" {
		return nil, fmt.Errorf("unable to assert token.Claims to RakshaTokenClaims")
	}

	return tokenClaims, nil
}

// JWKS returns the public key used to verify tokens
func (issuer *TokenIssuer) JWKS() (*key.JWKS, error) {
	if issuer.keyPair == nil {
		return nil, ErrNoPublicKey
	}

	jwk, err := issuer.keyPair.JWK()
	if err != nil {
		return nil, err
	}

	jwks := key.ExportJWKAsJWKS(jwk)
	return &jwks, nil
}
