package discord

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func signedRequest(t *testing.T) (pub ed25519.PublicKey, body []byte, timestamp, sigHex string) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	body = []byte(`{"type":1,"id":"123"}`)
	timestamp = "1700000000"
	sig := ed25519.Sign(priv, append([]byte(timestamp), body...))
	return pub, body, timestamp, hex.EncodeToString(sig)
}

func TestVerifyValidSignature(t *testing.T) {
	pub, body, ts, sig := signedRequest(t)
	if !Verify(body, ts, sig, pub) {
		t.Error("valid signature rejected")
	}
}

func TestVerifyRejectsMutations(t *testing.T) {
	pub, body, ts, sig := signedRequest(t)

	mutatedSig := []byte(sig)
	if mutatedSig[0] == 'a' {
		mutatedSig[0] = 'b'
	} else {
		mutatedSig[0] = 'a'
	}

	mutatedBody := append([]byte(nil), body...)
	mutatedBody[0] ^= 0x01

	tests := []struct {
		name string
		body []byte
		ts   string
		sig  string
	}{
		{"mutated signature", body, ts, string(mutatedSig)},
		{"mutated timestamp", body, "1700000001", sig},
		{"mutated body", mutatedBody, ts, sig},
		{"missing timestamp", body, "", sig},
		{"missing signature", body, ts, ""},
		{"non-hex signature", body, ts, "not-hex!"},
		{"truncated signature", body, ts, sig[:64]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(tt.body, tt.ts, tt.sig, pub) {
				t.Error("invalid signature accepted")
			}
		})
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, body, ts, sig := signedRequest(t)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if Verify(body, ts, sig, otherPub) {
		t.Error("signature accepted under the wrong key")
	}
}

func TestDecodePublicKey(t *testing.T) {
	pub, _, _ := ed25519.GenerateKey(rand.Reader)
	decoded, err := DecodePublicKey(hex.EncodeToString(pub))
	if err != nil {
		t.Fatalf("decode valid key: %v", err)
	}
	if !decoded.Equal(pub) {
		t.Error("decoded key differs from original")
	}

	if _, err := DecodePublicKey("zz"); err == nil {
		t.Error("expected error for non-hex key")
	}
	if _, err := DecodePublicKey("abcd"); err == nil {
		t.Error("expected error for short key")
	}
}
