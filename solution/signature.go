// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solution

import (
	"bytes"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spacetimechain/lightcore/spacetime"
)

// VerifySignature checks that sig is a canonical recoverable signature of hash by the owner of
// the compressed public key.
func VerifySignature(hash spacetime.Bytes32, sig, publicKey []byte) error {
	if len(sig) != SignatureLength {
		return errors.WithMessagef(ErrInvalidSignature, "length: want %d, have %d", SignatureLength, len(sig))
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[64], r, s, true) {
		return errors.WithMessage(ErrInvalidSignature, "malformed values")
	}

	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return errors.WithMessagef(ErrInvalidSignature, "recover: %v", err)
	}
	if !bytes.Equal(crypto.CompressPubkey(pub), publicKey) {
		return errors.WithMessage(ErrInvalidSignature, "signer mismatch")
	}
	return nil
}

// Sign signs hash with the farmer key.
func Sign(key *ecdsa.PrivateKey, hash spacetime.Bytes32) ([]byte, error) {
	return crypto.Sign(hash[:], key)
}

// Prove computes the VRF proof of challenge with the farmer key. It returns the VRF output and the proof.
func Prove(key *ecdsa.PrivateKey, challenge spacetime.Bytes32) (spacetime.Bytes32, []byte, error) {
	beta, pi, err := vrf.Prove(key, challenge[:])
	if err != nil {
		return spacetime.Bytes32{}, nil, err
	}
	return spacetime.BytesToBytes32(beta), pi, nil
}
