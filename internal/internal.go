// Package internal contains internal implementation details shared by the
// qcrypto package: scrubbing helpers for key material that must not
// outlive the struct that owns it.
package internal

// Zero overwrites every byte of b with zero. It is used to scrub key
// bytes, IVs, and derived secrets before the struct holding them becomes
// eligible for garbage collection.
//
// Zero is best-effort: Go's garbage collector may have already copied the
// underlying array (e.g. during a slice append elsewhere), so this is not a
// substitute for a constant-time, copy-free primitive implementation. The
// primitive's own hardening is delegated to crypto/aes, crypto/cipher and
// golang.org/x/crypto.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
