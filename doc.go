// Package qcrypto implements the packet-protection cryptographic core of a
// QUIC version 1 endpoint, as specified by RFC 9001.
//
// The package derives secrets, keys, IVs, and header-protection masks from a
// transport-level shared secret, and performs authenticated encryption and
// decryption of individual QUIC packets. It does not parse QUIC packets,
// run the TLS handshake, or track packet numbers for replay purposes; those
// are the responsibility of the surrounding endpoint.
//
// Two entry points cover the whole lifecycle:
//
//   - [DeriveInitialKeyMaterial] derives the client/server [Open]/[Seal]
//     pair used to protect Initial packets, from a Destination Connection
//     ID and a QUIC version.
//
//   - [OpenFromSecret] and [SealFromSecret] build a single-direction
//     facade directly from a TLS 1.3 traffic secret, as used for
//     Handshake, 0-RTT and 1-RTT keys once the TLS layer has produced the
//     corresponding secret.
//
// Both facades expose OpenWithCounter/SealWithCounter for per-packet AEAD
// operations, NewMask for header protection, and DeriveNextPacketKey for the
// "quic ku" key update procedure of section 6 of RFC 9001.
//
// Callers MUST ensure that they never invoke OpenWithCounter or
// SealWithCounter twice with the same (packet-number counter, key) pair in
// the same direction: the package does not track packet numbers and cannot
// detect nonce reuse on its own.
package qcrypto
