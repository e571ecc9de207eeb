package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmailAddress(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.com", "first.last@example.co.uk", "user+tag@host.io"}
	for _, s := range valid {
		require.True(t, IsEmailAddress(s), "expected %q to be a valid email", s)
	}

	invalid := []string{"", "a", "a@b", "@b.com", "a@.com", "a b@c.com", "a@b.com extra"}
	for _, s := range invalid {
		require.False(t, IsEmailAddress(s), "expected %q to be rejected", s)
	}
}

func TestIsUUID(t *testing.T) {
	t.Parallel()

	require.True(t, IsUUID("c7f2a8a0-8a1f-4f5e-9c2d-1b3a5e7f9d01"))
	require.True(t, IsUUID("C7F2A8A0-8A1F-4F5E-9C2D-1B3A5E7F9D01"))

	invalid := []string{
		"",
		"not-a-uuid",
		"c7f2a8a08a1f4f5e9c2d1b3a5e7f9d01",                    // no hyphens
		"urn:uuid:c7f2a8a0-8a1f-4f5e-9c2d-1b3a5e7f9d01",       // prefixed
		"c7f2a8a0-8a1f-4f5e-9c2d-1b3a5e7f9d0",                 // short
		"c7f2a8a0-8a1f-4f5e-9c2d-1b3a5e7f9d012",               // long
		"g7f2a8a0-8a1f-4f5e-9c2d-1b3a5e7f9d01",                // non-hex
	}
	for _, s := range invalid {
		require.False(t, IsUUID(s), "expected %q to be rejected", s)
	}
}

func TestIsValidDecodedStr(t *testing.T) {
	t.Parallel()

	require.True(t, IsValidDecodedStr("A B"))
	require.True(t, IsValidDecodedStr("Jürgen Müller"))
	require.True(t, IsValidDecodedStr("O'Brien-Smith"))

	require.False(t, IsValidDecodedStr(""))
	require.False(t, IsValidDecodedStr("line\nbreak"))
	require.False(t, IsValidDecodedStr("tab\there"))
	require.False(t, IsValidDecodedStr("null\x00byte"))
	require.False(t, IsValidDecodedStr("still%20encoded"))
	require.False(t, IsValidDecodedStr(string([]byte{0xff, 0xfe})))
}
