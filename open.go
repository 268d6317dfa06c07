package qcrypto

//
// Open facade
//

import (
	"github.com/bassosimone/qcrypto/internal"
)

// Open bundles an algorithm, a retained traffic secret, an owned
// header-protection key and an owned packet key, and implements the
// opening half of one direction of QUIC packet protection. The traffic
// secret is kept solely to seed DeriveNextPacketKey.
type Open struct {
	alg       Algorithm
	secret    []byte
	hpKey     *HeaderProtectionKey
	packetKey *PacketKey
	logger    Logger
	keyPhase  uint64
}

// OpenOption configures an [Open] at construction time.
type OpenOption func(*Open)

// WithOpenLogger attaches a [Logger] for non-sensitive lifecycle events.
func WithOpenLogger(logger Logger) OpenOption {
	return func(o *Open) { o.logger = logger }
}

// OpenFromSecret builds an [Open] from a TLS 1.3 traffic secret: it
// derives the packet key, packet IV and header-protection key per the
// key-schedule rules, and takes exclusive ownership of both.
func OpenFromSecret(alg Algorithm, secret []byte, opts ...OpenOption) (*Open, error) {
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
	o := &Open{
		alg:       alg,
		secret:    append([]byte(nil), secret...),
		hpKey:     hpKey,
		packetKey: packetKey,
		logger:    &nullLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger.Debugf("qcrypto: open: derived key material for %s", alg)
	return o, nil
}

// Alg returns the algorithm this facade was constructed with.
func (o *Open) Alg() Algorithm {
	return o.alg
}

// KeyPhase returns the number of times DeriveNextPacketKey has been called
// to reach this facade, starting at zero for the facade built directly
// from a traffic secret.
func (o *Open) KeyPhase() uint64 {
	return o.keyPhase
}

// NewMask computes the 5-byte header-protection mask for sample.
func (o *Open) NewMask(sample []byte) ([]byte, error) {
	return o.hpKey.NewMask(sample)
}

// OpenWithCounter verifies and decrypts buf in place, where buf holds
// ciphertext followed by a trailing alg.TagLen()-byte tag, using ad as
// associated data and the nonce derived from counter. On success it
// returns the plaintext length (len(buf) minus the tag length).
//
// It fails with [ErrCryptoFail] if len(buf) is shorter than the tag
// length, if AEAD authentication fails, or if the underlying primitive
// call fails for any other reason.
func (o *Open) OpenWithCounter(counter uint64, ad []byte, buf []byte) (int, error) {
	tagLen := o.alg.TagLen()
	if len(buf) < tagLen {
		return 0, newCryptoFail("open: buffer shorter than tag")
	}
	nonce := o.packetKey.makeNonce(counter)
	plaintext, err := o.packetKey.aead.Open(buf[:0], nonce[:], buf, ad)
	if err != nil {
		return 0, newCryptoFail("open: AEAD authentication failed")
	}
	return len(plaintext), nil
}

// DeriveNextPacketKey computes the next-generation traffic secret via the
// "quic ku" key-update label, constructs a new [PacketKey] from it, and
// reuses the existing header-protection key verbatim, since QUIC's
// header-protection key survives key updates. The returned facade is
// independent of o, which remains valid and usable.
func (o *Open) DeriveNextPacketKey() (*Open, error) {
	nextSecret := make([]byte, len(o.secret))
	if err := DeriveNextSecret(o.alg, o.secret, nextSecret); err != nil {
		return nil, err
	}
	packetKey, err := PacketKeyFromSecret(o.alg, nextSecret)
	if err != nil {
		internal.Zero(nextSecret)
		return nil, err
	}
	next := &Open{
		alg:       o.alg,
		secret:    nextSecret,
		hpKey:     o.hpKey,
		packetKey: packetKey,
		logger:    o.logger,
		keyPhase:  o.keyPhase + 1,
	}
	next.logger.Debugf("qcrypto: open: derived key phase %d for %s", next.keyPhase, o.alg)
	return next, nil
}

// Zero scrubs the retained traffic secret and the owned packet key's IV.
// It does not scrub the header-protection key, which may still be shared
// with a facade produced by DeriveNextPacketKey.
func (o *Open) Zero() {
	internal.Zero(o.secret)
	o.packetKey.Zero()
}
