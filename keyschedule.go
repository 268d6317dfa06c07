package qcrypto

//
// Key-schedule derivations
//
// Each of these is HKDF-Expand-Label over a PRK seeded with the traffic
// secret; none of them truncate or pad the algorithm hash, and each fails
// with ErrCryptoFail if asked to produce less than the required length.
//

// DerivePacketKey derives the AEAD packet key for alg from secret, using
// the "quic key" label. len(out) must equal alg.KeyLen().
func DerivePacketKey(alg Algorithm, secret, out []byte) error {
	if len(out) != alg.KeyLen() {
		return newCryptoFail("derive_pkt_key: output buffer has wrong length")
	}
	prk := PRKFromSecret(alg, secret)
	return prk.ExpandLabel(out, "quic key")
}

// DerivePacketIV derives the AEAD packet IV for alg from secret, using the
// "quic iv" label. len(out) must equal alg.NonceLen().
func DerivePacketIV(alg Algorithm, secret, out []byte) error {
	if len(out) != alg.NonceLen() {
		return newCryptoFail("derive_pkt_iv: output buffer has wrong length")
	}
	prk := PRKFromSecret(alg, secret)
	return prk.ExpandLabel(out, "quic iv")
}

// DeriveHeaderProtectionKey derives the header-protection key for alg from
// secret, using the "quic hp" label. len(out) must equal alg.KeyLen().
func DeriveHeaderProtectionKey(alg Algorithm, secret, out []byte) error {
	if len(out) != alg.KeyLen() {
		return newCryptoFail("derive_hdr_key: output buffer has wrong length")
	}
	prk := PRKFromSecret(alg, secret)
	return prk.ExpandLabel(out, "quic hp")
}

// DeriveNextSecret derives the next-generation traffic secret for alg from
// the current secret, using the "quic ku" label (the RFC 9001 section 6
// key-update procedure). len(out) must equal len(secret).
func DeriveNextSecret(alg Algorithm, secret, out []byte) error {
	if len(out) != len(secret) {
		return newCryptoFail("derive_next_secret: output buffer has wrong length")
	}
	prk := PRKFromSecret(alg, secret)
	return prk.ExpandLabel(out, "quic ku")
}
