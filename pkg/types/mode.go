package types

import (
	"fmt"
	"io/fs"
	"strconv"
)

// Mode holds the permission bits of a managed file.
type Mode uint32

// DefaultMode is applied when a manifest does not give one.
const DefaultMode Mode = 0o644

// regularFileBit is the S_IFREG type bit some manifests and older state
// files carry alongside the permission bits (0o100644).
const regularFileBit = 0o100000

// ParseMode decodes an octal string such as "644", "0644" or "100644".
// A leading regular file type bit is accepted and dropped; anything else
// outside the permission bits is rejected.
func ParseMode(s string) (Mode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("mode %q: not an octal number", s)
	}
	return ModeFromBits(uint32(v))
}

// ModeFromBits validates raw st_mode style bits.
func ModeFromBits(v uint32) (Mode, error) {
	if v&regularFileBit != 0 {
		v &^= regularFileBit
	}
	if v&^uint32(fs.ModePerm) != 0 {
		return 0, fmt.Errorf("mode %o: only permission bits of a regular file are supported", v)
	}
	return Mode(v), nil
}

// ModeOf returns the permission bits of a live file mode.
func ModeOf(m fs.FileMode) Mode {
	return Mode(m.Perm())
}

// Perm converts m for use with the FS port.
func (m Mode) Perm() fs.FileMode {
	return fs.FileMode(m) & fs.ModePerm
}

// String renders m in octal without a prefix.
func (m Mode) String() string {
	return strconv.FormatUint(uint64(m), 8)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
