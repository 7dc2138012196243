package clickhouse

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

// writeCerts writes a throwaway CA and a client cert/key pair signed by it.
func writeCerts(t *testing.T) *fs.Dir {
	t.Helper()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "sqlfixture test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	require.NoError(t, err)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	leaf := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "sqlfixture"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leaf, caTmpl, &key.PublicKey, caKey)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	encode := func(kind string, der []byte) string {
		return string(pem.EncodeToMemory(&pem.Block{Type: kind, Bytes: der}))
	}

	return fs.NewDir(t, "certs",
		fs.WithFile("ca.crt", encode("CERTIFICATE", caDER)),
		fs.WithFile("tls.crt", encode("CERTIFICATE", leafDER)),
		fs.WithFile("tls.key", encode("EC PRIVATE KEY", keyDER)),
		fs.WithFile("empty.crt", "not a certificate\n"),
	)
}

func TestGetTLSConfig(t *testing.T) {
	dir := writeCerts(t)

	valid := TLSSettings{
		Enabled:  true,
		CAFile:   dir.Join("ca.crt"),
		CertFile: dir.Join("tls.crt"),
		KeyFile:  dir.Join("tls.key"),
	}

	t.Run("valid settings", func(t *testing.T) {
		cfg, err := GetTLSConfig(valid)
		require.NoError(t, err)
		require.Len(t, cfg.Certificates, 1)
		require.NotNil(t, cfg.RootCAs)
		require.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	})

	tests := []struct {
		name   string
		modify func(*TLSSettings)
		errMsg string
	}{
		{"missing cert", func(s *TLSSettings) { s.CertFile = dir.Join("bogus.crt") }, "unable to load cert/key pair"},
		{"missing key", func(s *TLSSettings) { s.KeyFile = dir.Join("bogus.key") }, "unable to load cert/key pair"},
		{"key does not match cert", func(s *TLSSettings) { s.KeyFile = dir.Join("ca.crt") }, "unable to load cert/key pair"},
		{"missing CA file", func(s *TLSSettings) { s.CAFile = dir.Join("bogus.crt") }, "unable to load CA file"},
		{"CA file without certificates", func(s *TLSSettings) { s.CAFile = dir.Join("empty.crt") }, "no certificates found in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := valid
			tt.modify(&settings)

			cfg, err := GetTLSConfig(settings)
			require.ErrorContains(t, err, tt.errMsg)
			require.Nil(t, cfg)
		})
	}
}
