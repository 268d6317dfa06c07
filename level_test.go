package qcrypto

import "testing"

func TestEncryptionLevelOrder(t *testing.T) {
	if !(LevelInitial < LevelZeroRTT && LevelZeroRTT < LevelHandshake && LevelHandshake < LevelOneRTT) {
		t.Error("encryption levels are not in Initial < ZeroRTT < Handshake < OneRTT order")
	}
}

func TestEncryptionLevelSpace(t *testing.T) {
	cases := map[EncryptionLevel]PacketNumberSpace{
		LevelInitial:   SpaceInitial,
		LevelHandshake: SpaceHandshake,
		LevelZeroRTT:   SpaceApplication,
		LevelOneRTT:    SpaceApplication,
	}
	for level, want := range cases {
		if got := level.Space(); got != want {
			t.Errorf("%s.Space(): got %v, want %v", level, got, want)
		}
	}
}
