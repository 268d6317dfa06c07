//go:build qcrypto_fuzzing_disable_auth

package qcrypto

// tagLen, in a fuzzing build, reports zero for every algorithm, disabling
// AEAD authentication so a fuzzer can explore payload framing without
// needing to forge a valid tag. This table is selected only by the
// qcrypto_fuzzing_disable_auth build tag and must never ship in a release
// build.
func tagLen(a Algorithm) int {
	return 0
}
