package config

import (
	"encoding/base32"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	onionSuffix  = ".onion"
	onionVersion = 0x03

	// onionV3Chars is the base32 length of a v3 address without the suffix.
	onionV3Chars = 56
)

var onionChecksumPrefix = []byte(".onion checksum")

// IsOnionHost reports whether host is in the .onion namespace.
func IsOnionHost(host string) bool {
	return strings.HasSuffix(strings.ToLower(host), onionSuffix)
}

// ValidateOnionHost checks that host is a v3 onion address with a correct
// checksum. v2 addresses have not resolved since 2021 and are rejected.
func ValidateOnionHost(host string) error {
	name, ok := strings.CutSuffix(strings.ToLower(host), onionSuffix)
	if !ok {
		return ErrInvalidOnionAddress
	}
	// Subdomains of an onion service are allowed; only the last label is the key.
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if len(name) != onionV3Chars {
		return ErrInvalidOnionAddress
	}

	decoded, err := base32.StdEncoding.DecodeString(strings.ToUpper(name))
	if err != nil || len(decoded) != 35 {
		return ErrInvalidOnionAddress
	}

	pubkey, checksum, version := decoded[:32], decoded[32:34], decoded[34]
	if version != onionVersion {
		return ErrInvalidOnionAddress
	}
	want := onionChecksum(pubkey)
	if checksum[0] != want[0] || checksum[1] != want[1] {
		return ErrInvalidOnionAddress
	}
	return nil
}

// onionChecksum is the first two bytes of SHA3-256(".onion checksum" || pubkey || version).
func onionChecksum(pubkey []byte) []byte {
	data := make([]byte, 0, len(onionChecksumPrefix)+len(pubkey)+1)
	data = append(data, onionChecksumPrefix...)
	data = append(data, pubkey...)
	data = append(data, onionVersion)
	sum := sha3.Sum256(data)
	return sum[:2]
}
