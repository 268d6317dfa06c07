// Package initialpacket parses the long-header framing of a QUIC Initial
// packet far enough to hand its protected payload to qcrypto, and removes
// header and packet protection once the right keys are available.
//
// This mirrors the framing walk a full QUIC stack's packet layer would do
// before calling into the protection core; qcrypto deliberately does not
// parse packets itself (that is this package's job, standing in for the
// packet layer collaborator described in the core's scope).
package initialpacket

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/quic-go/quic-go/quicvarint"

	"github.com/bassosimone/qcrypto"
)

// ErrParse is returned for any framing error while walking an Initial
// packet's long header.
var ErrParse = errors.New("initialpacket: parse error")

func newErrParse(message string) error {
	return fmt.Errorf("%w: %s", ErrParse, message)
}

// Packet is a parsed, still (header-)protected QUIC Initial packet.
type Packet struct {
	// Version is the QUIC version carried by the long header.
	Version uint32

	// DestinationID is the Destination Connection ID.
	DestinationID []byte

	// SourceID is the Source Connection ID.
	SourceID []byte

	raw      []byte
	pnOffset int
	length   uint64
}

// Parse walks raw's long header far enough to locate the Destination
// Connection ID and the start of the (still protected) packet-number
// field. It fails if raw is not a long-header Initial packet.
func Parse(raw []byte) (*Packet, error) {
	cursor := bytes.NewReader(raw)

	firstByte, err := cursor.ReadByte()
	if err != nil {
		return nil, newErrParse("cannot read first byte")
	}
	if firstByte&0x80 == 0 {
		return nil, newErrParse("not a long header packet")
	}
	if (firstByte&0x30)>>4 != 0 {
		return nil, newErrParse("not an Initial packet")
	}

	versionBytes := make([]byte, 4)
	if _, err := cursor.Read(versionBytes); err != nil {
		return nil, newErrParse("cannot read version")
	}
	version := binary.BigEndian.Uint32(versionBytes)

	dcidLen, err := cursor.ReadByte()
	if err != nil {
		return nil, newErrParse("cannot read DCID length")
	}
	dcid := make([]byte, dcidLen)
	if _, err := cursor.Read(dcid); err != nil {
		return nil, newErrParse("cannot read DCID")
	}

	scidLen, err := cursor.ReadByte()
	if err != nil {
		return nil, newErrParse("cannot read SCID length")
	}
	scid := make([]byte, scidLen)
	if _, err := cursor.Read(scid); err != nil {
		return nil, newErrParse("cannot read SCID")
	}

	tokenLen, err := quicvarint.Read(cursor)
	if err != nil {
		return nil, newErrParse("cannot read token length")
	}
	if _, err := cursor.Read(make([]byte, tokenLen)); err != nil {
		return nil, newErrParse("cannot read token")
	}

	length, err := quicvarint.Read(cursor)
	if err != nil {
		return nil, newErrParse("cannot read payload length")
	}

	pnOffset := len(raw) - cursor.Len()
	if pnOffset+int(length) > len(raw) {
		return nil, newErrParse("payload length exceeds packet size")
	}

	return &Packet{
		Version:       version,
		DestinationID: dcid,
		SourceID:      scid,
		raw:           raw,
		pnOffset:      pnOffset,
		length:        length,
	}, nil
}

// RemoveProtection removes header protection and then packet protection
// from the packet, using open (built from the matching Initial secret),
// and returns the decrypted payload. The packet-number length is taken
// from the unmasked first byte, and the truncated packet number is used
// as the counter as it stands, without reconstructing the full value.
func (p *Packet) RemoveProtection(open *qcrypto.Open) ([]byte, error) {
	sampleOffset := p.pnOffset + 4
	if sampleOffset+16 > len(p.raw) {
		return nil, newErrParse("packet too short for a header protection sample")
	}
	sample := p.raw[sampleOffset : sampleOffset+16]

	mask, err := open.NewMask(sample)
	if err != nil {
		return nil, err
	}

	firstByte := p.raw[0] ^ (mask[0] & 0x0f)
	pnLen := int(firstByte&0x03) + 1

	pn := make([]byte, pnLen)
	copy(pn, p.raw[p.pnOffset:p.pnOffset+pnLen])
	for i := range pn {
		pn[i] ^= mask[i+1]
	}

	header := make([]byte, 0, p.pnOffset+pnLen)
	header = append(header, firstByte)
	header = append(header, p.raw[1:p.pnOffset]...)
	header = append(header, pn...)

	payloadStart := p.pnOffset + pnLen
	payloadEnd := p.pnOffset + int(p.length)
	if payloadEnd > len(p.raw) {
		return nil, newErrParse("payload extends past end of packet")
	}
	ciphertext := append([]byte(nil), p.raw[payloadStart:payloadEnd]...)

	var counter uint64
	for _, b := range pn {
		counter = (counter << 8) | uint64(b)
	}

	n, err := open.OpenWithCounter(counter, header, ciphertext)
	if err != nil {
		return nil, err
	}
	return ciphertext[:n], nil
}
