//go:build !qcrypto_fuzzing_disable_auth

package qcrypto

// tagLen is the normal (authenticating) tag-length table. All three QUIC v1
// suites use a 16-byte tag.
func tagLen(a Algorithm) int {
	switch a {
	case AlgAES128GCM, AlgAES256GCM, AlgChaCha20Poly1305:
		return 16
	default:
		return 0
	}
}
