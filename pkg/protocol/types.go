package protocol

import (
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Protocol constants
const (
	// Protocol version
	ProtocolVersion uint16 = 0x0100 // v1.0

	// Version field size
	VersionSize = 2
)

// Error kinds, re-exported for callers that only import protocol.
var (
	ErrTruncatedInput       = wire.ErrTruncatedInput
	ErrFieldOutOfRange      = wire.ErrFieldOutOfRange
	ErrInvalidUTF8          = wire.ErrInvalidUTF8
	ErrDuplicateExtensionID = extension.ErrDuplicateID
	ErrUnsupportedVersion   = wire.ErrUnsupportedVersion
	ErrValidation           = wire.ErrValidation
)

type (
	Kind            = wire.Kind
	ValidationError = wire.ValidationError
)

// KindOf classifies err into one of the codec error kinds.
func KindOf(err error) Kind {
	return wire.KindOf(err)
}
