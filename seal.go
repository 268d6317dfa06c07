package qcrypto

//
// Seal facade
//

import (
	"github.com/bassosimone/qcrypto/internal"
)

// Seal bundles an algorithm, a retained traffic secret, an owned
// header-protection key and an owned packet key, and implements the
// sealing half of one direction of QUIC packet protection. The traffic
// secret is kept solely to seed DeriveNextPacketKey.
type Seal struct {
	alg       Algorithm
	secret    []byte
	hpKey     *HeaderProtectionKey
	packetKey *PacketKey
	logger    Logger
	keyPhase  uint64
}

// SealOption configures a [Seal] at construction time.
type SealOption func(*Seal)

// WithSealLogger attaches a [Logger] for non-sensitive lifecycle events.
func WithSealLogger(logger Logger) SealOption {
	return func(s *Seal) { s.logger = logger }
}

// SealFromSecret builds a [Seal] from a TLS 1.3 traffic secret: it derives
// the packet key, packet IV and header-protection key per the key-schedule
// rules, and takes exclusive ownership of both.
func SealFromSecret(alg Algorithm, secret []byte, opts ...SealOption) (*Seal, error) {
	hpKeyBytes := make([]byte, alg.KeyLen())
	if err := DeriveHeaderProtectionKey(alg, secret, hpKeyBytes); err != nil {
		return nil, err
	}
	hpKey, err := NewHeaderProtectionKey(alg, hpKeyBytes)
	if err != nil {
		internal.Zero(hpKeyBytes)
		return nil, err
	}
	packetKey, err := PacketKeyFromSecret(alg, secret)
	if err != nil {
		hpKey.Zero()
		return nil, err
	}
	s := &Seal{
		alg:       alg,
		secret:    append([]byte(nil), secret...),
		hpKey:     hpKey,
		packetKey: packetKey,
		logger:    &nullLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debugf("qcrypto: seal: derived key material for %s", alg)
	return s, nil
}

// Alg returns the algorithm this facade was constructed with.
func (s *Seal) Alg() Algorithm {
	return s.alg
}

// KeyPhase returns the number of times DeriveNextPacketKey has been called
// to reach this facade, starting at zero for the facade built directly
// from a traffic secret.
func (s *Seal) KeyPhase() uint64 {
	return s.keyPhase
}

// NewMask computes the 5-byte header-protection mask for sample.
func (s *Seal) NewMask(sample []byte) ([]byte, error) {
	return s.hpKey.NewMask(sample)
}

// SealWithCounter encrypts buf[0:inLen] in place under the key and the
// nonce derived from counter, using ad as associated data. If extraIn is
// non-nil, its bytes are encrypted under the same key and nonce and
// appended to the ciphertext, immediately before the tag, contributing to
// the authenticated output.
//
// buf must have room for at least inLen+len(extraIn)+alg.TagLen() bytes.
// On success, SealWithCounter returns that total length; buf's layout is
// ciphertext-of-plaintext, followed by ciphertext-of-extraIn, followed by
// the tag.
//
// The AEAD is invoked exactly once over the concatenation of buf[0:inLen]
// and extraIn, so that extraIn is encrypted atomically with the main
// plaintext under a single nonce use, rather than via two separate calls
// that would reuse the nonce.
func (s *Seal) SealWithCounter(counter uint64, ad []byte, buf []byte, inLen int, extraIn []byte) (int, error) {
	tagLen := s.alg.TagLen()
	totalLen := inLen + len(extraIn) + tagLen
	if len(buf) < totalLen {
		return 0, newCryptoFail("seal: output buffer too small")
	}
	plaintext := make([]byte, inLen+len(extraIn))
	copy(plaintext, buf[:inLen])
	copy(plaintext[inLen:], extraIn)

	nonce := s.packetKey.makeNonce(counter)
	sealed := s.packetKey.aead.Seal(nil, nonce[:], plaintext, ad)
	if len(sealed) != totalLen {
		return 0, newCryptoFail("seal: unexpected AEAD output length")
	}
	copy(buf, sealed)
	return totalLen, nil
}

// DeriveNextPacketKey computes the next-generation traffic secret via the
// "quic ku" key-update label, constructs a new [PacketKey] from it, and
// reuses the existing header-protection key verbatim, since QUIC's
// header-protection key survives key updates. The returned facade is
// independent of s, which remains valid and usable.
func (s *Seal) DeriveNextPacketKey() (*Seal, error) {
	nextSecret := make([]byte, len(s.secret))
	if err := DeriveNextSecret(s.alg, s.secret, nextSecret); err != nil {
		return nil, err
	}
	packetKey, err := PacketKeyFromSecret(s.alg, nextSecret)
	if err != nil {
		internal.Zero(nextSecret)
		return nil, err
	}
	next := &Seal{
		alg:       s.alg,
		secret:    nextSecret,
		hpKey:     s.hpKey,
		packetKey: packetKey,
		logger:    s.logger,
		keyPhase:  s.keyPhase + 1,
	}
	next.logger.Debugf("qcrypto: seal: derived key phase %d for %s", next.keyPhase, s.alg)
	return next, nil
}

// Zero scrubs the retained traffic secret and the owned packet key's IV.
// It does not scrub the header-protection key, which may still be shared
// with a facade produced by DeriveNextPacketKey.
func (s *Seal) Zero() {
	internal.Zero(s.secret)
	s.packetKey.Zero()
}
