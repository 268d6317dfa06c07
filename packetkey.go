package qcrypto

//
// Packet key and nonce construction
//

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/bassosimone/qcrypto/internal"
)

// PacketKey owns an initialised AEAD context keyed with a specific key,
// plus the IV used to build per-packet nonces. The invariant
// len(iv) == alg.NonceLen() is enforced at construction, and every AEAD
// call built on top of it uses a 12-byte nonce.
type PacketKey struct {
	alg  Algorithm
	aead cipher.AEAD
	iv   []byte
}

// PacketKeyFromSecret derives the packet key and IV for alg from secret
// per the key-schedule rules, and initialises the corresponding AEAD
// context. It fails with [ErrCryptoFail] if key derivation or AEAD
// initialisation fails.
func PacketKeyFromSecret(alg Algorithm, secret []byte) (*PacketKey, error) {
	key := make([]byte, alg.KeyLen())
	if err := DerivePacketKey(alg, secret, key); err != nil {
		return nil, err
	}
	iv := make([]byte, alg.NonceLen())
	if err := DerivePacketIV(alg, secret, iv); err != nil {
		internal.Zero(key)
		return nil, err
	}
	aead, err := newAEAD(alg, key)
	internal.Zero(key)
	if err != nil {
		internal.Zero(iv)
		return nil, err
	}
	return &PacketKey{alg: alg, aead: aead, iv: iv}, nil
}

func newAEAD(alg Algorithm, key []byte) (cipher.AEAD, error) {
	switch alg {
	case AlgAES128GCM, AlgAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, newCryptoFail("cannot create AES cipher")
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, newCryptoFail("cannot create AES-GCM AEAD")
		}
		return aead, nil
	case AlgChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, newCryptoFail("cannot create ChaCha20-Poly1305 AEAD")
		}
		return aead, nil
	default:
		return nil, newCryptoFail("unsupported algorithm")
	}
}

// Zero scrubs the IV. The underlying AEAD's key schedule is owned by the
// standard library / golang.org/x/crypto and is released for garbage
// collection once pk is no longer referenced.
func (pk *PacketKey) Zero() {
	internal.Zero(pk.iv)
}

// makeNonce constructs the 12-byte nonce for packet-number counter by
// XORing the last 8 bytes of the IV with the big-endian encoding of
// counter, leaving the IV itself untouched. This is equivalent to
// left-padding counter with 4 zero bytes to 12 octets and XORing with the
// IV.
func (pk *PacketKey) makeNonce(counter uint64) [12]byte {
	var nonce [12]byte
	copy(nonce[:], pk.iv)
	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)
	for i := 0; i < 8; i++ {
		nonce[4+i] ^= counterBytes[i]
	}
	return nonce
}
