// Package wire assembles the minimal QUIC long-header framing that
// qcryptodemo needs as associated data: a Version/DCID/SCID/Token/Length
// prefix, with the token and payload lengths encoded as QUIC varints.
package wire

import (
	"encoding/binary"

	"github.com/quic-go/quic-go/quicvarint"
)

// BuildLongHeader builds an Initial long header (RFC 9000 section 17.2.2)
// for version, with the given destination/source connection IDs and a
// zero-length token, sized for a payloadLen-byte protected payload
// (packet-number length included).
//
// The returned bytes are associated data only; this package does not apply
// header protection, which is the caller's responsibility once it knows
// the sample offset.
func BuildLongHeader(version uint32, dcid, scid []byte, payloadLen int) []byte {
	header := []byte{0xc3} // long header, fixed bit, Initial type, 4-byte packet number
	versionBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(versionBytes, version)
	header = append(header, versionBytes...)

	header = append(header, byte(len(dcid)))
	header = append(header, dcid...)
	header = append(header, byte(len(scid)))
	header = append(header, scid...)

	header = quicvarint.Append(header, 0) // token length: no token
	header = quicvarint.Append(header, uint64(payloadLen))

	return header
}
