// Package address converts between subtensor EVM (H160) addresses and SS58
// coldkey addresses.
//
// An EVM account is mirrored on the substrate side by hashing the 20 address
// bytes with a domain tag ("evm:") into a 32-byte pseudo public key, then
// SS58-encoding that key. The mapping is deterministic and one-way: the H160
// cannot be recovered from the SS58 address.
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	// alphabet is the modified base58 alphabet used by Bitcoin.
	alphabet     = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	alphabetIdx0 = '1'

	// evmDomainTag separates the H160 hash from other key derivations.
	evmDomainTag = "evm:"
	// checksumTag is the standard SS58 checksum domain tag.
	checksumTag = "SS58PRE"

	// H160 address size in bytes
	EvmAddressLen = 20
	// derived public key size in bytes
	PubkeyLen = 32
	// SS58 checksum size in bytes for 32-byte keys
	checksumLen = 2
	// smallest valid decoded SS58 address: 1-byte prefix + pubkey + checksum
	minDecodedLen = 1 + PubkeyLen + checksumLen

	// formats below this fit in a single prefix byte
	singleByteFormatMax = 64
	// formats at or above this are outside the SS58 registry range
	formatMax = 16384
)

var (
	ErrInvalidAddressLength = errors.New("address must be exactly 20 bytes")
	ErrUnsupportedFormat    = errors.New("unsupported ss58 format")
	ErrInvalidCharacter     = errors.New("invalid base58 character")
	ErrTooShort             = errors.New("ss58 address too short")
	ErrInvalidPayloadLength = errors.New("ss58 payload is not 32 bytes")
	ErrChecksumMismatch     = errors.New("ss58 checksum mismatch")
)

// b58 maps an ASCII byte to its alphabet index, or 255 when outside the alphabet.
var b58 [256]byte

func init() {
	for i := range b58 {
		b58[i] = 255
	}
	for i := 0; i < len(alphabet); i++ {
		b58[alphabet[i]] = byte(i)
	}
}

// Pubkey derives the 32-byte substrate public key mirroring an EVM account.
func Pubkey(evmAddress [EvmAddressLen]byte) [PubkeyLen]byte {
	preimage := append([]byte(evmDomainTag), evmAddress[:]...)
	return blake2b.Sum256(preimage)
}

// checksum is the first 2 bytes of blake2b-512 over "SS58PRE" || payload.
func checksum(payload []byte) []byte {
	digest := blake2b.Sum512(append([]byte(checksumTag), payload...))
	return digest[:checksumLen]
}

// formatPrefix packs an SS58 format into its 1 or 2 byte wire form.
// Two-byte forms set bit 6 of the low byte and are little-endian.
func formatPrefix(format uint16) ([]byte, error) {
	if format < singleByteFormatMax {
		return []byte{byte(format)}, nil
	}
	if format >= formatMax {
		return nil, fmt.Errorf("%w: %d is outside 0..%d", ErrUnsupportedFormat, format, formatMax-1)
	}
	format |= 0x40
	return []byte{byte(format & 0xFF), byte((format >> 8) & 0xFF)}, nil
}

// Encode derives the SS58 address for a 20-byte EVM address under the given
// SS58 format. Subtensor networks all use format 42.
func Encode(evmAddress [EvmAddressLen]byte, format uint16) (string, error) {
	pubkey := Pubkey(evmAddress)
	prefix, err := formatPrefix(format)
	if err != nil {
		return "", err
	}
	payload := append(prefix, pubkey[:]...)
	return base58Encode(append(payload, checksum(payload)...)), nil
}

// EncodeHex is Encode over a 0x-prefixed hex address (case-insensitive).
func EncodeHex(evmAddress string, format uint16) (string, error) {
	raw, err := DecodeHex(evmAddress)
	if err != nil {
		return "", err
	}
	if len(raw) != EvmAddressLen {
		return "", fmt.Errorf("%w: got %d", ErrInvalidAddressLength, len(raw))
	}
	var addr [EvmAddressLen]byte
	copy(addr[:], raw)
	return Encode(addr, format)
}

// Decode parses and validates an SS58 address, returning its format byte and
// 32-byte public key.
//
// Known limitation: only the common single-byte-prefix form (formats 0..63)
// is accepted, even though Encode can produce the two-byte form. A first byte
// with bit 6 set is rejected as an unsupported format.
func Decode(ss58 string) (byte, [PubkeyLen]byte, error) {
	var pubkey [PubkeyLen]byte
	decoded, err := base58Decode(ss58)
	if err != nil {
		return 0, pubkey, err
	}
	if len(decoded) < minDecodedLen {
		return 0, pubkey, fmt.Errorf("%w: %d bytes", ErrTooShort, len(decoded))
	}
	format := decoded[0]
	if format >= singleByteFormatMax {
		return 0, pubkey, fmt.Errorf("%w: prefix byte %d (two-byte prefixes are not supported)", ErrUnsupportedFormat, format)
	}
	payload := decoded[1 : len(decoded)-checksumLen]
	sum := decoded[len(decoded)-checksumLen:]

	expected := checksum(decoded[:len(decoded)-checksumLen])
	if sum[0] != expected[0] || sum[1] != expected[1] {
		return 0, pubkey, ErrChecksumMismatch
	}
	if len(payload) != PubkeyLen {
		return 0, pubkey, fmt.Errorf("%w: got %d", ErrInvalidPayloadLength, len(payload))
	}
	copy(pubkey[:], payload)
	return format, pubkey, nil
}

var bigRadix = big.NewInt(58)
var bigZero = big.NewInt(0)

// base58Encode encodes a byte slice to a base58 string. Leading zero bytes
// are carried over as literal '1' characters.
func base58Encode(b []byte) string {
	x := new(big.Int).SetBytes(b)

	answer := make([]byte, 0, len(b)*136/100)
	mod := new(big.Int)
	for x.Cmp(bigZero) > 0 {
		x.DivMod(x, bigRadix, mod)
		answer = append(answer, alphabet[mod.Int64()])
	}

	for _, i := range b {
		if i != 0 {
			break
		}
		answer = append(answer, alphabetIdx0)
	}

	// reverse
	alen := len(answer)
	for i := 0; i < alen/2; i++ {
		answer[i], answer[alen-1-i] = answer[alen-1-i], answer[i]
	}
	return string(answer)
}

// base58Decode decodes a base58 string to a byte slice, restoring one zero
// byte per leading '1' character.
func base58Decode(s string) ([]byte, error) {
	answer := big.NewInt(0)
	for i := 0; i < len(s); i++ {
		idx := b58[s[i]]
		if idx == 255 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCharacter, s[i])
		}
		answer.Mul(answer, bigRadix)
		answer.Add(answer, big.NewInt(int64(idx)))
	}

	raw := answer.Bytes()
	var numZeros int
	for numZeros = 0; numZeros < len(s); numZeros++ {
		if s[numZeros] != alphabetIdx0 {
			break
		}
	}
	val := make([]byte, numZeros+len(raw))
	copy(val[numZeros:], raw)
	return val, nil
}

// TrimPrefixes strips a leading "0x" from an address or tx hash.
func TrimPrefixes(addressOrTxHash string) string {
	return strings.TrimPrefix(addressOrTxHash, "0x")
}

// DecodeHex decodes a hex string that may carry a 0x prefix and mixed case.
func DecodeHex(hexS string) ([]byte, error) {
	return hex.DecodeString(strings.ToLower(TrimPrefixes(hexS)))
}

// Ensure0x prepends 0x when missing.
func Ensure0x(val string) string {
	if !strings.HasPrefix(val, "0x") {
		return "0x" + val
	}
	return val
}
