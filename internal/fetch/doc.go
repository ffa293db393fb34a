// Package fetch retrieves audited pages and inspects their TLS endpoints.
//
// A Client measures load and DNS time, caps body size and follows up to ten
// redirects. It can route traffic through an http(s) or SOCKS5 proxy, or
// through an EmbeddedTor daemon started with tornago. InspectTLS performs a
// separate handshake to read the certificate, its expiry and any stapled OCSP
// response.
package fetch
