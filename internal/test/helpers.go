package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Known vectors shared across package tests
const (
	VectorPublicKeyHex      = "0326df75ea615c18acc6bb4b517ac82795872f388d5d180aac90eaa84de750b942"
	VectorTestnetAddress    = "3Wxr5EGDUig8cKof1KwySX7KDMLc6mxFmJ9toKZ7oNQV6BUzCs1H"
	VectorSigningSecretKey  = "f4aa4c487af71fb8b52a3ecd0d398393c2d247d6f0a25275e5d986854b3e2db8"
	VectorSigningMessageHex = "1dc01772ee0171f5f614c673e3c7fa1107a8cf727bdf5a6dadb379e93c0d1d00"
	VectorWalletSecretKey   = "8e6993a4999f009c03d9457ffcf8ff3d840ae78332c959c8e806a53fbafbbee1"
	VectorWalletAddress     = "3WxxVQqxoVSWEKG5B73eNttBX51ZZ6WXLW7fiVDgCFhzRK8R4gmk"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// SecretKeyFromHex is the secret key counterpart to DecodeHexString
func SecretKeyFromHex(hexData string) *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(DecodeHexString(hexData))
}

// SecretKeyFromUint returns a small deterministic secret key, handy for building fixtures
func SecretKeyFromUint(val uint32) *secp256k1.PrivateKey {
	var s secp256k1.ModNScalar
	s.SetInt(val)
	return secp256k1.NewPrivateKey(&s)
}

// TokenIdHex returns a 32-byte hex identifier filled with the given byte
func TokenIdHex(fill byte) string {
	return strings.Repeat(fmt.Sprintf("%02x", fill), 32)
}
