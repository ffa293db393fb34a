package fetch

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/ocsp"
)

func newTestCert(t *testing.T, notAfter time.Time) (*x509.Certificate, crypto.Signer) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(0x1A2B),
		Subject: pkix.Name{
			CommonName:   "www.example.pl",
			Organization: []string{"Urzad Miasta"},
			Country:      []string{"PL"},
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              notAfter,
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		DNSNames:              []string{"www.example.pl"},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate() error = %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("ParseCertificate() error = %v", err)
	}
	return cert, key
}

// TestTLSInfoFromState tests certificate extraction and expiry warnings.
func TestTLSInfoFromState(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("certificate expiring soon", func(t *testing.T) {
		t.Parallel()
		cert, _ := newTestCert(t, now.Add(10*24*time.Hour+time.Hour))
		info := tlsInfoFromState(tls.ConnectionState{
			Version:          tls.VersionTLS13,
			PeerCertificates: []*x509.Certificate{cert},
		}, now)

		if info.ProtocolVersion != "TLSv1.3" {
			t.Errorf("ProtocolVersion = %q", info.ProtocolVersion)
		}
		if info.DaysToExpiry != 10 {
			t.Errorf("DaysToExpiry = %d, expected 10", info.DaysToExpiry)
		}
		if !info.ExpiresSoon {
			t.Error("expected ExpiresSoon")
		}
		if len(info.Issues) != 1 || info.Issues[0] != "Certificate expires soon (10 days)" {
			t.Errorf("Issues = %v", info.Issues)
		}
		if info.Certificate.Subject["commonName"] != "www.example.pl" {
			t.Errorf("Subject = %v", info.Certificate.Subject)
		}
		if info.Certificate.Subject["organizationName"] != "Urzad Miasta" {
			t.Errorf("Subject = %v", info.Certificate.Subject)
		}
		if info.Certificate.SerialNumber != "1A2B" {
			t.Errorf("SerialNumber = %q", info.Certificate.SerialNumber)
		}
	})

	t.Run("long-lived certificate", func(t *testing.T) {
		t.Parallel()
		cert, _ := newTestCert(t, now.Add(365*24*time.Hour))
		info := tlsInfoFromState(tls.ConnectionState{
			Version:          tls.VersionTLS12,
			PeerCertificates: []*x509.Certificate{cert},
		}, now)
		if info.ExpiresSoon || len(info.Issues) != 0 {
			t.Errorf("unexpected issues: %v", info.Issues)
		}
		if info.OCSPStapled {
			t.Error("expected no OCSP staple")
		}
	})

	t.Run("no peer certificates", func(t *testing.T) {
		t.Parallel()
		info := tlsInfoFromState(tls.ConnectionState{Version: 0x0300}, now)
		if info.Certificate != nil {
			t.Error("expected nil certificate")
		}
		if info.ProtocolVersion != "Unknown" {
			t.Errorf("ProtocolVersion = %q", info.ProtocolVersion)
		}
	})
}

// TestOCSPStatus tests stapled response parsing.
func TestOCSPStatus(t *testing.T) {
	t.Parallel()

	issuer, key := newTestCert(t, time.Now().Add(365*24*time.Hour))

	newResponse := func(status int) []byte {
		t.Helper()
		tmpl := ocsp.Response{
			Status:       status,
			SerialNumber: big.NewInt(42),
			ThisUpdate:   time.Now().Add(-time.Hour),
			NextUpdate:   time.Now().Add(time.Hour),
		}
		if status == ocsp.Revoked {
			tmpl.RevokedAt = time.Now().Add(-time.Minute)
		}
		raw, err := ocsp.CreateResponse(issuer, issuer, tmpl, key)
		if err != nil {
			t.Fatalf("CreateResponse() error = %v", err)
		}
		return raw
	}

	testCases := []struct {
		name     string
		raw      []byte
		expected string
	}{
		{"good", newResponse(ocsp.Good), OCSPGood},
		{"revoked", newResponse(ocsp.Revoked), OCSPRevoked},
		{"unknown", newResponse(ocsp.Unknown), OCSPUnknown},
		{"garbage", []byte("not ocsp"), OCSPUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ocspStatus(tc.raw, issuer); got != tc.expected {
				t.Errorf("ocspStatus() = %q, expected %q", got, tc.expected)
			}
		})
	}

	t.Run("revoked staple adds issue", func(t *testing.T) {
		t.Parallel()
		info := tlsInfoFromState(tls.ConnectionState{
			Version:          tls.VersionTLS13,
			PeerCertificates: []*x509.Certificate{issuer, issuer},
			OCSPResponse:     newResponse(ocsp.Revoked),
		}, time.Now())
		if !info.OCSPStapled || info.OCSPStatus != OCSPRevoked {
			t.Errorf("OCSP = %v %q", info.OCSPStapled, info.OCSPStatus)
		}
		if len(info.Issues) != 1 {
			t.Errorf("Issues = %v", info.Issues)
		}
	})
}

// TestInspectTLS tests a real handshake against a local TLS server.
func TestInspectTLS(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}

	pool := x509.NewCertPool()
	pool.AddCert(server.Certificate())

	t.Run("trusted", func(t *testing.T) {
		t.Parallel()
		client, err := NewClient(WithRootCAs(pool))
		if err != nil {
			t.Fatal(err)
		}
		info, err := client.InspectTLS(t.Context(), host, port, 5*time.Second)
		if err != nil {
			t.Fatalf("InspectTLS() error = %v", err)
		}
		if info.Certificate == nil {
			t.Fatal("expected certificate")
		}
		if info.DaysToExpiry <= 0 {
			t.Errorf("DaysToExpiry = %d", info.DaysToExpiry)
		}
	})

	t.Run("untrusted", func(t *testing.T) {
		t.Parallel()
		client, err := NewClient()
		if err != nil {
			t.Fatal(err)
		}
		_, err = client.InspectTLS(t.Context(), host, port, 5*time.Second)
		if !errors.Is(err, ErrTLSInspection) {
			t.Errorf("expected ErrTLSInspection, got %v", err)
		}
		var verifyErr *tls.CertificateVerificationError
		if !errors.As(err, &verifyErr) {
			t.Errorf("expected a certificate verification failure, got %v", err)
		}
	})

	t.Run("closed port", func(t *testing.T) {
		t.Parallel()
		client, err := NewClient()
		if err != nil {
			t.Fatal(err)
		}
		_, err = client.InspectTLS(t.Context(), "127.0.0.1", 1, time.Second)
		if !errors.Is(err, ErrTLSInspection) {
			t.Errorf("expected ErrTLSInspection, got %v", err)
		}
	})
}

// TestDaysUntil tests floor semantics for expired certificates.
func TestDaysUntil(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		at       time.Time
		expected int
	}{
		{now.Add(36 * time.Hour), 1},
		{now.Add(23 * time.Hour), 0},
		{now.Add(-time.Hour), -1},
		{now.Add(-49 * time.Hour), -3},
	}
	for _, tc := range testCases {
		if got := DaysUntil(tc.at, now); got != tc.expected {
			t.Errorf("DaysUntil(%v) = %d, expected %d", tc.at, got, tc.expected)
		}
	}
}
