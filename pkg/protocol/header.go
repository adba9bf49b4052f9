package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Major returns the major part of a version.
func Major(v uint16) uint8 {
	return uint8(v >> 8)
}

// Minor returns the minor part of a version.
func Minor(v uint16) uint8 {
	return uint8(v)
}

// FormatVersion renders v as "major.minor".
func FormatVersion(v uint16) string {
	return fmt.Sprintf("%d.%d", Major(v), Minor(v))
}

// CheckVersion accepts any minor version of the supported major.
func CheckVersion(v uint16) error {
	if Major(v) != Major(ProtocolVersion) {
		return fmt.Errorf("%w: %s (supported %d.x)", ErrUnsupportedVersion, FormatVersion(v), Major(ProtocolVersion))
	}
	return nil
}

// ReadVersion decodes and checks the version at the start of buf. Nothing
// after the version field is read.
func ReadVersion(buf []byte) (uint16, error) {
	if len(buf) < VersionSize {
		return 0, fmt.Errorf("%w: version needs %d bytes, %d remain", ErrTruncatedInput, VersionSize, len(buf))
	}
	v := binary.BigEndian.Uint16(buf)
	if err := CheckVersion(v); err != nil {
		return v, err
	}
	return v, nil
}

// AppendVersion writes ProtocolVersion.
func AppendVersion(dst []byte) []byte {
	return wire.AppendUint16(dst, ProtocolVersion)
}
