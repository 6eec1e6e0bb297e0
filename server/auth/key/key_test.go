package key

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyPairFromRSAPrivateKeyPem(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.Nil(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)})

	keyPair, err := NewKeyPairFromRSAPrivateKeyPem(pemBytes)
	require.Nil(t, err)
	assert.Equal(t, KEY_ID, keyPair.Kid)
	assert.True(t, privateKey.PublicKey.Equal(keyPair.PublicKey))

	_, err = NewKeyPairFromRSAPrivateKeyPem([]byte("not a key"))
	assert.NotNil(t, err)
}

func TestJWKRoundTrip(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.Nil(t, err)
	keyPair := NewKeyPair(privateKey)

	jwkKey, err := keyPair.JWK()
	require.Nil(t, err)
	assert.Equal(t, KEY_ID, jwkKey.KeyID())

	publicKey, err := PublicKeyFromJWK(jwkKey)
	require.Nil(t, err)
	assert.True(t, keyPair.PublicKey.Equal(publicKey))

	jwks, err := json.Marshal(ExportJWKAsJWKS(jwkKey))
	require.Nil(t, err)
	assert.Contains(t, string(jwks), `"kid":"raksha-key-id"`)
	assert.Contains(t, string(jwks), `"kty":"RSA"`)
}
