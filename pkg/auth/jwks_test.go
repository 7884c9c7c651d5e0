package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderGetKey(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(priv.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	p := NewProvider(srv.URL)

	t.Run("Should fetch and decode the key", func(t *testing.T) {
		key, err := p.GetKey(context.Background(), "k1")
		require.NoError(t, err)
		pub, err := key.PublicKey()
		require.NoError(t, err)
		assert.Equal(t, priv.PublicKey.N, pub.N)
		assert.Equal(t, priv.PublicKey.E, pub.E)
	})

	t.Run("Should serve cached keys without refetching", func(t *testing.T) {
		before := hits.Load()
		_, err := p.GetKey(context.Background(), "k1")
		require.NoError(t, err)
		assert.Equal(t, before, hits.Load())
	})

	t.Run("Should report unknown kid", func(t *testing.T) {
		_, err := p.GetKey(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})
}
