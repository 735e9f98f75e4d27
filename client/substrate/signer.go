package substrate

import (
	"errors"
	"fmt"
	"strings"

	sr25519 "github.com/ChainSafe/go-schnorrkel"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/gtank/merlin"
)

const seedSize = 32

// Signer signs extrinsic payloads with an sr25519 hotkey.
type Signer struct {
	secret *sr25519.MiniSecretKey
}

// NewSignerFromSeed parses a hex-encoded 32-byte raw seed. Mnemonics are not
// supported; export the raw seed instead.
func NewSignerFromSeed(seedHex string) (*Signer, error) {
	if strings.Contains(seedHex, " ") {
		return nil, errors.New("only raw seed is supported, not mnemonic")
	}
	seedBytes, err := codec.HexDecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(seedBytes) != seedSize {
		return nil, fmt.Errorf("expected seed to be %d bytes, got %d bytes", seedSize, len(seedBytes))
	}
	raw := [seedSize]byte{}
	copy(raw[:], seedBytes)
	secret, err := sr25519.NewMiniSecretKeyFromRaw(raw)
	if err != nil {
		return nil, err
	}
	return &Signer{secret: secret}, nil
}

func signingContext(msg []byte) *merlin.Transcript {
	return sr25519.NewSigningContext([]byte("substrate"), msg)
}

// Sign produces a 64-byte sr25519 signature over the payload.
func (signer *Signer) Sign(payload []byte) ([]byte, error) {
	key := signer.secret.ExpandEd25519()
	sig, err := key.Sign(signingContext(payload))
	if err != nil {
		return nil, err
	}
	sigEncoded := sig.Encode()
	return sigEncoded[:], nil
}

// PublicKey returns the 32-byte sr25519 public key.
func (signer *Signer) PublicKey() ([32]byte, error) {
	public, err := signer.secret.ExpandEd25519().Public()
	if err != nil {
		return [32]byte{}, err
	}
	return public.Encode(), nil
}

// Verify checks a signature produced by Sign.
func (signer *Signer) Verify(payload []byte, sigBytes []byte) bool {
	if len(sigBytes) != 64 {
		return false
	}
	raw := [64]byte{}
	copy(raw[:], sigBytes)
	sig := &sr25519.Signature{}
	if err := sig.Decode(raw); err != nil {
		return false
	}
	public, err := signer.secret.ExpandEd25519().Public()
	if err != nil {
		return false
	}
	ok, err := public.Verify(sig, signingContext(payload))
	return ok && err == nil
}
