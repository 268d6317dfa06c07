package qcrypto

//
// Initial key material factory
//

// initialSaltV1 is the 20-byte Initial salt for QUIC version 1, fixed by
// RFC 9001 section 5.2.
var initialSaltV1 = []byte{
	0x38, 0x76, 0x2c, 0xf7, 0xf5, 0x59, 0x34, 0xb3, 0x4d, 0x17,
	0x9a, 0xe6, 0xa4, 0xc8, 0x0c, 0xad, 0xcc, 0xbb, 0x7f, 0x0a,
}

// version1 is the wire value of QUIC version 1.
const version1 uint32 = 0x00000001

// IsVersion1 reports whether version is the wire value of QUIC version 1.
//
// DeriveInitialKeyMaterial treats every version as version 1 for salt
// selection purposes, per RFC 9001 section 5.2, leaving the decision of
// whether that fallback is appropriate to the caller. A caller that wants
// an explicit gate against draft or future versions should check
// IsVersion1 itself before calling DeriveInitialKeyMaterial, rather than
// relying on the fallback silently.
func IsVersion1(version uint32) bool {
	return version == version1
}

// DeriveInitialKeyMaterial derives the client and server Initial Open/Seal
// pair from a Destination Connection ID and a QUIC version, per RFC 9001
// section 5.2:
//
//  1. select the version-1 Initial salt (used for every version, since the
//     core treats unknown versions as v1; see IsVersion1);
//  2. initial_secret = HKDF-Extract(SHA-256, salt, cid);
//  3. client_secret = HKDF-Expand-Label(initial_secret, "client in", 32),
//     server_secret = HKDF-Expand-Label(initial_secret, "server in", 32);
//  4. derive packet key, IV and header-protection key from each secret
//     under AES-128-GCM;
//  5. bundle Open/Seal: when isServer is true, Open is keyed with the
//     client material and Seal with the server material; when false, the
//     mapping is reversed.
//
// It returns (Open, Seal) in that order.
func DeriveInitialKeyMaterial(cid []byte, version uint32, isServer bool) (*Open, *Seal, error) {
	const alg = AlgAES128GCM

	initialSecret := ExtractPRK(alg, initialSaltV1, cid)

	clientSecret := make([]byte, 32)
	if err := initialSecret.ExpandLabel(clientSecret, "client in"); err != nil {
		return nil, nil, err
	}
	serverSecret := make([]byte, 32)
	if err := initialSecret.ExpandLabel(serverSecret, "server in"); err != nil {
		return nil, nil, err
	}

	clientOpen, err := OpenFromSecret(alg, clientSecret)
	if err != nil {
		return nil, nil, err
	}
	clientSeal, err := SealFromSecret(alg, clientSecret)
	if err != nil {
		return nil, nil, err
	}
	serverOpen, err := OpenFromSecret(alg, serverSecret)
	if err != nil {
		return nil, nil, err
	}
	serverSeal, err := SealFromSecret(alg, serverSecret)
	if err != nil {
		return nil, nil, err
	}

	if isServer {
		return clientOpen, serverSeal, nil
	}
	return serverOpen, clientSeal, nil
}
