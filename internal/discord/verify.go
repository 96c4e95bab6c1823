package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// DecodePublicKey parses the hex-encoded ed25519 verification key from the
// Discord developer portal.
func DecodePublicKey(hexKey string) (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return ed25519.PublicKey(key), nil
}

// Verify reports whether signatureHex is a valid detached ed25519 signature
// of timestamp||rawBody under key. It must be called with the exact raw
// request bytes: re-serialized JSON is not guaranteed to reproduce the
// signed byte sequence.
//
// https://discord.com/developers/docs/interactions/slash-commands#security-and-authorization
func Verify(rawBody []byte, timestamp, signatureHex string, key ed25519.PublicKey) bool {
	if timestamp == "" || signatureHex == "" || len(key) != ed25519.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	msg := make([]byte, 0, len(timestamp)+len(rawBody))
	msg = append(msg, timestamp...)
	msg = append(msg, rawBody...)
	return ed25519.Verify(key, msg, sig)
}
