package qcrypto

//
// Algorithm catalog
//

import "crypto"

// Algorithm identifies one of the three AEAD suites that QUIC version 1
// permits for packet protection, per RFC 9001 section 5.3.
type Algorithm int

const (
	// AlgAES128GCM is AEAD_AES_128_GCM with a SHA-256 key schedule.
	AlgAES128GCM Algorithm = iota

	// AlgAES256GCM is AEAD_AES_256_GCM with a SHA-384 key schedule.
	AlgAES256GCM

	// AlgChaCha20Poly1305 is AEAD_CHACHA20_POLY1305 with a SHA-256 key schedule.
	AlgChaCha20Poly1305
)

// String returns a human-readable algorithm name. It is used for logging
// and test failure messages only; it is never parsed back and is not part
// of any wire format.
func (a Algorithm) String() string {
	switch a {
	case AlgAES128GCM:
		return "AES_128_GCM"
	case AlgAES256GCM:
		return "AES_256_GCM"
	case AlgChaCha20Poly1305:
		return "CHACHA20_POLY1305"
	default:
		return "UNKNOWN_ALGORITHM"
	}
}

// KeyLen returns the AEAD key length, in bytes, for the algorithm.
func (a Algorithm) KeyLen() int {
	switch a {
	case AlgAES128GCM:
		return 16
	case AlgAES256GCM:
		return 32
	case AlgChaCha20Poly1305:
		return 32
	default:
		return 0
	}
}

// NonceLen returns the AEAD nonce/IV length, in bytes. All three QUIC v1
// suites use a 12-byte nonce.
func (a Algorithm) NonceLen() int {
	return 12
}

// TagLen returns the AEAD authentication tag length, in bytes.
//
// A build compiled with the qcrypto_fuzzing_disable_auth tag overrides this
// to return 0, disabling authentication so that fuzzers can explore payload
// parsing without needing to forge valid tags. See algorithm_fuzz_disabled.go. This
// is a build-time toggle, never a runtime choice.
func (a Algorithm) TagLen() int {
	return tagLen(a)
}

// PRKLen returns the length, in bytes, of a PRK produced by HKDF-Extract
// for this algorithm's hash.
func (a Algorithm) PRKLen() int {
	switch a {
	case AlgAES128GCM:
		return 32
	case AlgAES256GCM:
		return 48
	case AlgChaCha20Poly1305:
		return 32
	default:
		return 0
	}
}

// Hash returns the hash function used by this algorithm's HKDF key schedule.
func (a Algorithm) Hash() crypto.Hash {
	switch a {
	case AlgAES128GCM:
		return crypto.SHA256
	case AlgAES256GCM:
		return crypto.SHA384
	case AlgChaCha20Poly1305:
		return crypto.SHA256
	default:
		return 0
	}
}
