// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package schnorr implements the non-interactive Schnorr signature used to spend Ergo
// pay-to-public-key boxes.
//
// The signature proves knowledge of the discrete log of a secp256k1 public key. The
// Fiat-Shamir challenge is bound to the proposition being proven: the hash input starts with
// a commitment that embeds the public key inside the serialized sigma-protocol tree, followed
// by the prover's commitment point and then the message.
//
// # Encoding
//
//   - Public keys and points are compressed SEC encodings (33 bytes)
//   - The hash is Blake2b-256, truncated to 24 bytes for the challenge
//   - A signature is c (24 bytes) followed by z (32 bytes), both big-endian and zero-padded
package schnorr

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/blake2b"
)

const (
	// ChallengeSize is the size of the truncated challenge in bytes
	ChallengeSize = 24

	// ResponseSize is the size of the response scalar in bytes
	ResponseSize = 32

	// SignatureSize is the size of a signature in bytes
	SignatureSize = ChallengeSize + ResponseSize

	// PublicKeySize is the size of a compressed public key in bytes
	PublicKeySize = 33

	// SecretKeySize is the size of a serialized secret key in bytes
	SecretKeySize = 32
)

var (
	commitmentPrefix  = []byte{0x01, 0x00, 0x27, 0x10, 0x01, 0x08, 0xcd}
	commitmentPostfix = []byte{0x73, 0x00, 0x00, 0x21}
)

// randReader is the source of nonce entropy
var randReader io.Reader = rand.Reader

// Sign produces a signature over msg with the secret key sk. A zero nonce or a zero
// challenge restarts the attempt with a fresh nonce. The returned error is only non-nil when
// the randomness source fails
func Sign(msg []byte, sk *secp256k1.PrivateKey) ([]byte, error) {
	if sk == nil || sk.Key.IsZero() {
		return nil, errors.New("secret key must be non-zero")
	}
	pk := sk.PubKey().SerializeCompressed()
	for {
		sig, err := trySign(msg, &sk.Key, pk)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
}

// trySign makes a single signing attempt. It returns a nil signature when the attempt must be
// retried
func trySign(
	msg []byte,
	sk *secp256k1.ModNScalar,
	pk []byte,
) ([]byte, error) {
	// Step 1: draw the secret nonce y from [1, n-1]
	var nonceBytes [32]byte
	var y secp256k1.ModNScalar
	defer func() {
		clear(nonceBytes[:])
		y.Zero()
	}()
	if _, err := io.ReadFull(randReader, nonceBytes[:]); err != nil {
		return nil, fmt.Errorf("failed to read nonce entropy: %w", err)
	}
	// Reject instead of reducing so the nonce stays uniform
	if overflow := y.SetByteSlice(nonceBytes[:]); overflow || y.IsZero() {
		return nil, nil
	}

	// Step 2: commitment point w = G*y
	var wPoint secp256k1.JacobianPoint
	defer zeroJacobian(&wPoint)
	secp256k1.ScalarBaseMultNonConst(&y, &wPoint)
	w := compressPoint(&wPoint)

	// Steps 3 and 4: challenge c from the commitment bytes and the message
	cBytes := challenge(pk, w, msg)
	var c secp256k1.ModNScalar
	// The challenge is 192 bits, so it can't overflow the group order
	c.SetByteSlice(cBytes)
	if c.IsZero() {
		return nil, nil
	}

	// Step 5: response z = sk*c + y mod n
	var z secp256k1.ModNScalar
	defer z.Zero()
	z.Mul2(sk, &c).Add(&y)

	// Step 6: c (24 bytes) || z (32 bytes)
	zBytes := z.Bytes()
	defer clear(zBytes[:])
	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, cBytes...)
	sig = append(sig, zBytes[:]...)
	return sig, nil
}

// Verify reports whether sig is a valid signature over msg for the compressed public key pk
func Verify(msg []byte, sig []byte, pk []byte) bool {
	if len(sig) != SignatureSize || len(pk) != PublicKeySize {
		return false
	}
	pubKey, err := secp256k1.ParsePubKey(pk)
	if err != nil {
		return false
	}

	// Step 2: parse c and z
	cBytes := sig[:ChallengeSize]
	var c, z secp256k1.ModNScalar
	c.SetByteSlice(cBytes)
	if overflow := z.SetByteSlice(sig[ChallengeSize:]); overflow {
		return false
	}

	// Step 3: w' = G*z + pk*(n-c)
	var pkPoint, gz, t, wPoint secp256k1.JacobianPoint
	pubKey.AsJacobian(&pkPoint)
	c.Negate()
	secp256k1.ScalarMultNonConst(&c, &pkPoint, &t)
	secp256k1.ScalarBaseMultNonConst(&z, &gz)
	secp256k1.AddNonConst(&gz, &t, &wPoint)
	if (wPoint.X.IsZero() && wPoint.Y.IsZero()) || wPoint.Z.IsZero() {
		return false
	}
	w := compressPoint(&wPoint)

	// Steps 4 to 6: rebuild the challenge and compare
	return bytes.Equal(challenge(pk, w, msg), cBytes)
}

// PublicKey returns the compressed public key for the secret key
func PublicKey(sk *secp256k1.PrivateKey) []byte {
	return sk.PubKey().SerializeCompressed()
}

// ParseSecretKey decodes a hex-encoded secret key. The key must be a non-zero scalar less than
// the group order
func ParseSecretKey(hexData string) (*secp256k1.PrivateKey, error) {
	skBytes, err := hex.DecodeString(hexData)
	if err != nil {
		return nil, fmt.Errorf("invalid secret key hex: %w", err)
	}
	defer clear(skBytes)
	if len(skBytes) == 0 || len(skBytes) > SecretKeySize {
		return nil, fmt.Errorf(
			"secret key must be at most %d bytes, got %d",
			SecretKeySize,
			len(skBytes),
		)
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(skBytes); overflow {
		return nil, errors.New("secret key is not less than the group order")
	}
	if s.IsZero() {
		return nil, errors.New("secret key must be non-zero")
	}
	return secp256k1.NewPrivateKey(&s), nil
}

// commitment builds the serialized proposition and commitment point that prefix the message
// in the challenge hash
func commitment(pk []byte, w []byte) []byte {
	ret := make(
		[]byte,
		0,
		len(commitmentPrefix)+len(pk)+len(commitmentPostfix)+len(w),
	)
	ret = append(ret, commitmentPrefix...)
	ret = append(ret, pk...)
	ret = append(ret, commitmentPostfix...)
	return append(ret, w...)
}

// challenge returns the first 24 bytes of Blake2b-256(commitment || msg)
func challenge(pk []byte, w []byte, msg []byte) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	h.Write(commitment(pk, w))
	h.Write(msg)
	return h.Sum(nil)[:ChallengeSize]
}

func compressPoint(p *secp256k1.JacobianPoint) []byte {
	p.ToAffine()
	return secp256k1.NewPublicKey(&p.X, &p.Y).SerializeCompressed()
}

func zeroJacobian(p *secp256k1.JacobianPoint) {
	p.X.Zero()
	p.Y.Zero()
	p.Z.Zero()
}
