package address_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/bittensor-church/superburn/address"
	"github.com/stretchr/testify/require"
	"github.com/vedhavyas/go-subkey/v2"
)

func mustAddr(t *testing.T, hexStr string) [20]byte {
	raw, err := hex.DecodeString(hexStr)
	require.NoError(t, err)
	require.Len(t, raw, 20)
	var addr [20]byte
	copy(addr[:], raw)
	return addr
}

// Pinned regression vector: any change to the hash, alphabet or checksum
// logic must reproduce these exactly.
func TestEncodeGoldenVectors(t *testing.T) {
	require := require.New(t)

	vectors := []struct {
		evm      string
		format   uint16
		expected string
	}{
		{"0000000000000000000000000000000000000000", 42, "5GU8HU4cLcmjpoXLNxWAHYViwbTQggdqd7ykp99CSWGbsZHG"},
		{"0000000000000000000000000000000000000000", 0, "15QRRoKgCQ3DGLXrLbZARhKsoDT4NzByhciEyS8YzbJ849cZ"},
		{"deadbeef00000000000000000000000000000000", 42, "5HL6waBQCyQpt3xrNzVdSzwn1gPA8CyLpJX1wsckPaFfQM1X"},
		{"8626f6940e2eb28930efb4cef49b2d1f2c9c1199", 1, "86VE2qFJ2Z735URJmA9LM4JBusBZMMM3Jq9pc2XLPKuV5RB"},
		{"8626f6940e2eb28930efb4cef49b2d1f2c9c1199", 41, "57asZiVNffYBHReyY4M6SPhJ3KawkgYAavzQRwkZrb7QjwMc"},
		{"8626f6940e2eb28930efb4cef49b2d1f2c9c1199", 42, "5DNXpi2n3xQuSV4SSbE7pHxigojEosAgmsYY3dPsKShu2Uij"},
		{"8626f6940e2eb28930efb4cef49b2d1f2c9c1199", 63, "7JuPFYQF84nAiiZBTmhckDYeFzjQxiPcjdBHxyuC3QC8wGGf"},
		// two-byte prefix form
		{"8626f6940e2eb28930efb4cef49b2d1f2c9c1199", 64, "VBpNByW9WiX8mokDMuDcGeg52ULebis8bNvpCBRJDy9tSCaVu"},
	}
	for _, v := range vectors {
		encoded, err := address.Encode(mustAddr(t, v.evm), v.format)
		require.NoError(err)
		require.Equal(v.expected, encoded, "evm=%s format=%d", v.evm, v.format)
	}
}

// Our encoding of the derived pubkey must agree with the subkey reference
// implementation for every single-byte format. Two-byte formats are excluded:
// the encoder packs them as format|0x40 low byte first, not the registry's
// ident-bit shuffle that subkey implements, so the outputs differ for every
// format >= 64 (see the note on Decode).
func TestEncodeMatchesSubkey(t *testing.T) {
	require := require.New(t)

	addr := mustAddr(t, "8626f6940e2eb28930efb4cef49b2d1f2c9c1199")
	pubkey := address.Pubkey(addr)
	for _, format := range []uint16{0, 1, 41, 42, 63} {
		ours, err := address.Encode(addr, format)
		require.NoError(err)
		require.Equal(subkey.SS58Encode(pubkey[:], format), ours, "format=%d", format)
	}
}

// The two-byte form deliberately diverges from the SS58 registry packing, so
// it must stay pinned to its own golden vector rather than to subkey.
func TestTwoByteFormatDivergesFromSubkey(t *testing.T) {
	require := require.New(t)

	addr := mustAddr(t, "8626f6940e2eb28930efb4cef49b2d1f2c9c1199")
	pubkey := address.Pubkey(addr)
	for _, format := range []uint16{64, 255, 16383} {
		ours, err := address.Encode(addr, format)
		require.NoError(err)
		require.NotEqual(subkey.SS58Encode(pubkey[:], format), ours, "format=%d", format)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	require := require.New(t)

	addr := mustAddr(t, "deadbeef00000000000000000000000000000000")
	a, err := address.Encode(addr, 42)
	require.NoError(err)
	b, err := address.Encode(addr, 42)
	require.NoError(err)
	require.Equal(a, b)
}

func TestEncodeHex(t *testing.T) {
	require := require.New(t)

	// prefix and case are normalized away
	for _, input := range []string{
		"0x8626f6940e2eb28930efb4cef49b2d1f2c9c1199",
		"0x8626F6940E2EB28930EFB4CEF49B2D1F2C9C1199",
		"8626f6940e2eb28930efb4cef49b2d1f2c9c1199",
	} {
		encoded, err := address.EncodeHex(input, 42)
		require.NoError(err)
		require.Equal("5DNXpi2n3xQuSV4SSbE7pHxigojEosAgmsYY3dPsKShu2Uij", encoded)
	}

	_, err := address.EncodeHex("0x1234", 42)
	require.ErrorIs(err, address.ErrInvalidAddressLength)

	_, err = address.EncodeHex("0xzz26f6940e2eb28930efb4cef49b2d1f2c9c1199", 42)
	require.Error(err)
}

func TestUnsupportedFormat(t *testing.T) {
	require := require.New(t)

	addr := mustAddr(t, "0000000000000000000000000000000000000000")
	_, err := address.Encode(addr, 16384)
	require.ErrorIs(err, address.ErrUnsupportedFormat)
	_, err = address.Encode(addr, 65535)
	require.ErrorIs(err, address.ErrUnsupportedFormat)
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, evm := range []string{
		"0000000000000000000000000000000000000000",
		"deadbeef00000000000000000000000000000000",
		"8626f6940e2eb28930efb4cef49b2d1f2c9c1199",
		"ffffffffffffffffffffffffffffffffffffffff",
	} {
		addr := mustAddr(t, evm)
		expectedPubkey := address.Pubkey(addr)
		for _, format := range []uint16{0, 1, 41, 42, 63} {
			encoded, err := address.Encode(addr, format)
			require.NoError(err)

			gotFormat, gotPubkey, err := address.Decode(encoded)
			require.NoError(err)
			require.Equal(byte(format), gotFormat)
			require.Equal(expectedPubkey, gotPubkey)
		}
	}
}

func TestDecodeKnownAddress(t *testing.T) {
	require := require.New(t)

	// SS58 of pubkey 192c..ce at format 42 (vector cross-checked with subkey)
	format, pubkey, err := address.Decode("5CdiCGvTEuzut954STAXRfL8Lazs3KCZa5LPpkPeqqJXdTHp")
	require.NoError(err)
	require.Equal(byte(42), format)
	require.Equal("192c3c7e5789b461fbf1c7f614ba5eed0b22efc507cda60a5e7fda8e046bcdce", hex.EncodeToString(pubkey[:]))
}

// A pubkey starting with zero bytes must survive the base58 leading-zero rule.
func TestLeadingZeroFidelity(t *testing.T) {
	require := require.New(t)

	// blake2b("evm:" || this address) = 0x006a0a15...: prefix byte 0 plus a
	// zero digest byte means two literal '1' characters up front.
	addr := mustAddr(t, "000000000000000000000000000000000000000c")
	encoded, err := address.Encode(addr, 0)
	require.NoError(err)
	require.Equal("11YW1wRSBnySg29RhANPL2oqe3mnZYHM9q2JXDEYiEqTVPk", encoded)
	require.True(strings.HasPrefix(encoded, "11"))

	format, pubkey, err := address.Decode(encoded)
	require.NoError(err)
	require.Equal(byte(0), format)
	require.Equal(byte(0), pubkey[0])
	require.Equal(address.Pubkey(addr), pubkey)
}

func TestChecksumSensitivity(t *testing.T) {
	require := require.New(t)

	valid := "5DNXpi2n3xQuSV4SSbE7pHxigojEosAgmsYY3dPsKShu2Uij"

	// flipping the trailing character only perturbs the checksum region
	flipped := valid[:len(valid)-1] + pickOther(valid[len(valid)-1])
	_, _, err := address.Decode(flipped)
	require.ErrorIs(err, address.ErrChecksumMismatch)

	// any single-character flip must fail one of the validation steps
	for i := 0; i < len(valid); i++ {
		mutated := valid[:i] + pickOther(valid[i]) + valid[i+1:]
		_, _, err := address.Decode(mutated)
		require.Error(err, "flip at %d", i)
	}
}

// pickOther returns a base58 character different from c.
func pickOther(c byte) string {
	if c == '2' {
		return "3"
	}
	return "2"
}

func TestDecodeMalformed(t *testing.T) {
	require := require.New(t)

	// '0' is not in the alphabet
	_, _, err := address.Decode("50NXpi2n3xQuSV4SSbE7pHxigojEosAgmsYY3dPsKShu2Uij")
	require.ErrorIs(err, address.ErrInvalidCharacter)

	_, _, err = address.Decode("hello world")
	require.ErrorIs(err, address.ErrInvalidCharacter)

	// valid alphabet but far too short
	_, _, err = address.Decode("2345678923")
	require.ErrorIs(err, address.ErrTooShort)

	_, _, err = address.Decode("")
	require.ErrorIs(err, address.ErrTooShort)

	// the encoder's two-byte prefix form is rejected by the decoder
	_, _, err = address.Decode("VBpNByW9WiX8mokDMuDcGeg52ULebis8bNvpCBRJDy9tSCaVu")
	require.ErrorIs(err, address.ErrUnsupportedFormat)
}

func TestHexHelpers(t *testing.T) {
	require := require.New(t)

	require.Equal("abc1", address.TrimPrefixes("0xabc1"))
	require.Equal("abc1", address.TrimPrefixes("abc1"))
	require.Equal("0xabc1", address.Ensure0x("abc1"))
	require.Equal("0xabc1", address.Ensure0x("0xabc1"))

	raw, err := address.DecodeHex("0xDEADbeef")
	require.NoError(err)
	require.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, raw)
}
