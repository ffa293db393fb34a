package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math"
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ocsp"

	"github.com/nao1215/siteaudit/internal/model"
)

// expiryWarningDays is the remaining validity below which a certificate is
// reported as expiring soon.
const expiryWarningDays = 30

// OCSP status values reported for a stapled response.
const (
	OCSPGood    = "good"
	OCSPRevoked = "revoked"
	OCSPUnknown = "unknown"
)

// InspectTLS performs a dedicated TLS handshake with host:port using SNI and
// system (or configured) roots, then extracts certificate data.
// A verification failure is returned as an error; the caller records it as
// an SSL issue rather than aborting the audit.
func (c *Client) InspectTLS(ctx context.Context, host string, port int, timeout time.Duration) (*model.TLSInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	rawConn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTLSInspection, err)
	}
	defer rawConn.Close()

	conn := tls.Client(rawConn, &tls.Config{
		ServerName: host,
		RootCAs:    c.rootCAs,
		MinVersion: tls.VersionTLS10, //nolint:gosec // old versions are reported, not refused
	})
	if err := conn.HandshakeContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTLSInspection, err)
	}
	defer conn.Close()

	return tlsInfoFromState(conn.ConnectionState(), time.Now()), nil
}

// tlsInfoFromState extracts the leaf certificate, expiry and OCSP data.
func tlsInfoFromState(state tls.ConnectionState, now time.Time) *model.TLSInfo {
	info := &model.TLSInfo{
		ProtocolVersion: TLSVersionName(state.Version),
		Issues:          []string{},
	}
	if len(state.PeerCertificates) == 0 {
		return info
	}

	leaf := state.PeerCertificates[0]
	info.Certificate = &model.CertificateInfo{
		Subject:      nameToMap(leaf.Subject),
		Issuer:       nameToMap(leaf.Issuer),
		Version:      leaf.Version,
		SerialNumber: fmt.Sprintf("%X", leaf.SerialNumber),
		NotBefore:    leaf.NotBefore.UTC(),
		NotAfter:     leaf.NotAfter.UTC(),
		DNSNames:     leaf.DNSNames,
	}

	info.DaysToExpiry = DaysUntil(leaf.NotAfter, now)
	info.ExpiresSoon = info.DaysToExpiry < expiryWarningDays
	if info.ExpiresSoon {
		info.Issues = append(info.Issues, fmt.Sprintf("Certificate expires soon (%d days)", info.DaysToExpiry))
	}

	if len(state.OCSPResponse) > 0 {
		info.OCSPStapled = true
		var issuer *x509.Certificate
		if len(state.PeerCertificates) > 1 {
			issuer = state.PeerCertificates[1]
		}
		info.OCSPStatus = ocspStatus(state.OCSPResponse, issuer)
		if info.OCSPStatus == OCSPRevoked {
			info.Issues = append(info.Issues, "Certificate revoked (OCSP)")
		}
	}
	return info
}

// ocspStatus parses a stapled OCSP response. The issuer may be nil, in which
// case the signature is not verified.
func ocspStatus(raw []byte, issuer *x509.Certificate) string {
	resp, err := ocsp.ParseResponse(raw, issuer)
	if err != nil {
		return OCSPUnknown
	}
	switch resp.Status {
	case ocsp.Good:
		return OCSPGood
	case ocsp.Revoked:
		return OCSPRevoked
	default:
		return OCSPUnknown
	}
}

// DaysUntil returns whole days from now until t, rounded toward negative
// infinity so an expired certificate yields a negative number.
func DaysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}

// TLSVersionName returns the conventional protocol name, e.g. "TLSv1.3".
func TLSVersionName(version uint16) string {
	switch version {
	case tls.VersionTLS10:
		return "TLSv1"
	case tls.VersionTLS11:
		return "TLSv1.1"
	case tls.VersionTLS12:
		return "TLSv1.2"
	case tls.VersionTLS13:
		return "TLSv1.3"
	default:
		return "Unknown"
	}
}

// nameToMap flattens a distinguished name into long attribute names.
func nameToMap(name pkix.Name) map[string]string {
	m := make(map[string]string)
	set := func(key string, values []string) {
		if len(values) > 0 {
			m[key] = values[0]
		}
	}
	if name.CommonName != "" {
		m["commonName"] = name.CommonName
	}
	set("organizationName", name.Organization)
	set("organizationalUnitName", name.OrganizationalUnit)
	set("countryName", name.Country)
	set("stateOrProvinceName", name.Province)
	set("localityName", name.Locality)
	return m
}
