package qcrypto

import (
	"encoding/binary"
	"testing"
)

func TestMakeNonceXORProperty(t *testing.T) {
	// For all counter values, makeNonce(iv, counter) XOR iv equals the
	// 12-byte big-endian, left-zero-padded encoding of counter.
	pk := &PacketKey{
		iv: []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66},
	}
	counters := []uint64{0, 1, 2, 0xffffffff, 1 << 40, ^uint64(0)}
	for _, counter := range counters {
		nonce := pk.makeNonce(counter)

		var want [12]byte
		binary.BigEndian.PutUint64(want[4:], counter)

		var xored [12]byte
		for i := range nonce {
			xored[i] = nonce[i] ^ pk.iv[i]
		}
		if xored != want {
			t.Errorf("counter=%d: nonce XOR iv = %x, want %x", counter, xored, want)
		}
	}
}

func TestMakeNonceLeavesIVUntouched(t *testing.T) {
	iv := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c}
	ivCopy := append([]byte(nil), iv...)
	pk := &PacketKey{iv: iv}

	_ = pk.makeNonce(12345)

	for i := range iv {
		if iv[i] != ivCopy[i] {
			t.Fatalf("makeNonce mutated the IV at index %d", i)
		}
	}
}

func TestPacketKeyFromSecretAcceptsShortSecret(t *testing.T) {
	// A secret shorter than the hash output is still a valid HKDF input;
	// derivation should succeed and produce correctly sized key/IV.
	pk, err := PacketKeyFromSecret(AlgAES128GCM, []byte("short"))
	if err != nil {
		t.Fatalf("PacketKeyFromSecret: %v", err)
	}
	if len(pk.iv) != AlgAES128GCM.NonceLen() {
		t.Errorf("iv length: got %d, want %d", len(pk.iv), AlgAES128GCM.NonceLen())
	}
}
