package qcrypto

//
// PRK and HKDF-Expand-Label
//

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

// tls13LabelPrefix is prepended to every label inside an HkdfLabel, as
// required by TLS 1.3 (RFC 8446 section 7.1).
const tls13LabelPrefix = "tls13 "

// PRK is a pseudo-random key: the algorithm it was derived for, plus the
// byte string HKDF-Extract (or a "less-safe" caller) produced. Its length
// is alg.PRKLen() when produced by [ExtractPRK].
type PRK struct {
	alg    Algorithm
	secret []byte
}

// ExtractPRK invokes HKDF-Extract with alg's hash, producing a PRK of
// length alg.PRKLen().
func ExtractPRK(alg Algorithm, salt, secret []byte) *PRK {
	out := hkdf.Extract(alg.Hash().New, secret, salt)
	return &PRK{alg: alg, secret: out}
}

// PRKFromSecret stores secret verbatim as a PRK, without running
// HKDF-Extract. This is the "less-safe" constructor: it exists because TLS
// 1.3 traffic secrets are themselves the output of a prior HKDF extraction,
// and re-extracting them would be wrong. Use it only when the input is
// already a traffic secret, never when it is raw keying material.
func PRKFromSecret(alg Algorithm, secret []byte) *PRK {
	return &PRK{alg: alg, secret: secret}
}

// Bytes returns the raw PRK bytes. Callers must not retain slices derived
// from this beyond the lifetime of the owning facade.
func (p *PRK) Bytes() []byte {
	return p.secret
}

// Alg returns the algorithm this PRK was derived for.
func (p *PRK) Alg() Algorithm {
	return p.alg
}

// Expand invokes HKDF-Expand over the concatenation of info fragments,
// writing exactly len(out) bytes into out. It fails with [ErrCryptoFail]
// when len(out) exceeds 255*alg.PRKLen(), the maximum HKDF-Expand output,
// or when the underlying HKDF reader returns a short read.
func (p *PRK) Expand(out []byte, info ...[]byte) error {
	maxLen := 255 * p.alg.PRKLen()
	if len(out) > maxLen {
		return newCryptoFail("HKDF-Expand output too long")
	}
	joined := make([]byte, 0, infoLen(info))
	for _, frag := range info {
		joined = append(joined, frag...)
	}
	reader := hkdf.Expand(p.alg.Hash().New, p.secret, joined)
	if _, err := io.ReadFull(reader, out); err != nil {
		return newCryptoFail("HKDF-Expand failed")
	}
	return nil
}

// ExpandLabel constructs the TLS 1.3 HkdfLabel structure for label and
// expands it into out:
//
//	be16(len(out)) || u8(len("tls13 ")+len(label)) || "tls13 " || label || u8(0)
//
// The trailing u8(0) is the empty-context byte; qcrypto's key schedule
// never uses a non-empty HkdfLabel context.
func (p *PRK) ExpandLabel(out []byte, label string) error {
	lengthField := make([]byte, 2)
	binary.BigEndian.PutUint16(lengthField, uint16(len(out)))
	labelLenField := []byte{byte(len(tls13LabelPrefix) + len(label))}
	contextLenField := []byte{0x00}
	return p.Expand(out,
		lengthField,
		labelLenField,
		[]byte(tls13LabelPrefix),
		[]byte(label),
		contextLenField,
	)
}

func infoLen(frags [][]byte) int {
	n := 0
	for _, f := range frags {
		n += len(f)
	}
	return n
}
