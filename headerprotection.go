package qcrypto

//
// Header protection
//

import (
	"crypto/aes"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/bassosimone/qcrypto/internal"
)

// headerProtectionSampleLen is the fixed sample length RFC 9001 section
// 5.4.2 requires for every algorithm.
const headerProtectionSampleLen = 16

// headerProtectionMaskLen is the fixed mask length produced by NewMask.
const headerProtectionMaskLen = 5

// HeaderProtectionKey stores the header-protection key for one direction
// and turns a 16-byte ciphertext sample into a 5-byte header-protection
// mask. The invariant len(key) == alg.KeyLen() is enforced at construction.
type HeaderProtectionKey struct {
	alg Algorithm
	key []byte
}

// NewHeaderProtectionKey builds a [HeaderProtectionKey]. It fails with
// [ErrCryptoFail] if len(key) != alg.KeyLen().
func NewHeaderProtectionKey(alg Algorithm, key []byte) (*HeaderProtectionKey, error) {
	if len(key) != alg.KeyLen() {
		return nil, newCryptoFail("header protection key has wrong length")
	}
	return &HeaderProtectionKey{alg: alg, key: key}, nil
}

// Zero scrubs the header-protection key bytes.
func (h *HeaderProtectionKey) Zero() {
	internal.Zero(h.key)
}

// NewMask computes the 5-byte header-protection mask for sample, which
// must be exactly 16 bytes. For the two AES suites, the mask is the first
// 5 bytes of a single raw AES block encryption of sample. For
// ChaCha20-Poly1305, sample[0:4] is a little-endian block counter,
// sample[4:16] is a 12-byte nonce, and the mask is 5 bytes of ChaCha20
// keystream applied to an all-zero 5-byte plaintext.
func (h *HeaderProtectionKey) NewMask(sample []byte) ([]byte, error) {
	if len(sample) != headerProtectionSampleLen {
		return nil, newCryptoFail("header protection sample has wrong length")
	}
	switch h.alg {
	case AlgAES128GCM, AlgAES256GCM:
		return h.newMaskAES(sample)
	case AlgChaCha20Poly1305:
		return h.newMaskChaCha20(sample)
	default:
		return nil, newCryptoFail("unsupported algorithm for header protection")
	}
}

func (h *HeaderProtectionKey) newMaskAES(sample []byte) ([]byte, error) {
	block, err := aes.NewCipher(h.key)
	if err != nil {
		return nil, newCryptoFail("AES header protection: cannot create cipher")
	}
	out := make([]byte, block.BlockSize())
	block.Encrypt(out, sample)
	return out[:headerProtectionMaskLen], nil
}

func (h *HeaderProtectionKey) newMaskChaCha20(sample []byte) ([]byte, error) {
	counter := binary.LittleEndian.Uint32(sample[0:4])
	nonce := sample[4:16]
	cipher, err := chacha20.NewUnauthenticatedCipher(h.key, nonce)
	if err != nil {
		return nil, newCryptoFail("ChaCha20 header protection: cannot create cipher")
	}
	cipher.SetCounter(counter)
	zero := make([]byte, headerProtectionMaskLen)
	out := make([]byte, headerProtectionMaskLen)
	cipher.XORKeyStream(out, zero)
	return out, nil
}
