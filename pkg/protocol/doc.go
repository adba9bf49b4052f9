// Package protocol implements the ZenTalk message content envelope.
//
// The protocol package is the single entry point a transport or secure
// messaging layer uses to turn typed message content into bytes and back. It
// never sees key material: callers hand it plaintext produced by, or destined
// for, the encryption layer.
//
// # Envelope Format
//
// Every envelope is encoded in this fixed order:
//   - Version (2 bytes): protocol version, big-endian (0x0100 = v1.0)
//   - Content: tag (varint), body length (varint), body
//   - ReplyTo (optional): presence byte, length-prefixed reference
//   - Replaces (optional): presence byte, length-prefixed reference
//   - Expires (optional): presence byte, 8 byte Unix time in milliseconds
//   - FallbackText (optional): presence byte, length-prefixed UTF-8
//   - Extensions: count (varint), then id (varint) and length-prefixed payload
//
// Presence bytes are 0x00 (absent) or 0x01 (present). Varints use the QUIC
// variable-length integer encoding, always in their shortest form.
//
// # Versioning
//
// The high byte of the version is the major version. Decode accepts every
// minor version of major 1 and rejects any other major with
// ErrUnsupportedVersion before reading past the version field, since a new
// major may change the layout. Encode always writes ProtocolVersion.
//
// # Content Types
//
// Content variants are defined in package content:
//   - Text, Attachment, Reaction, Location
//   - Edit, Delete (changes to earlier messages)
//   - Poll, GroupOperation
//   - Receipt (message status report)
//   - Multipart (nested parts with render semantics and a disposition each)
//
// A tag this version does not know decodes to content.Unknown and re-encodes
// byte for byte. Extensions are opaque to the codec in the same way, except
// that Validate checks the reply hash extension against ReplyTo.
//
// # Errors
//
// Every failure matches one error kind with errors.Is:
//   - ErrTruncatedInput: fewer bytes than a declared length needs
//   - ErrFieldOutOfRange: a length, count or value beyond its bound
//   - ErrInvalidUTF8: a text field that is not UTF-8
//   - ErrDuplicateExtensionID: the same extension id twice in one list
//   - ErrUnsupportedVersion: an unknown major version
//   - ErrValidation: well-formed input that breaks a semantic rule
//
// Use KindOf to classify an error and errors.As with *ValidationError to read
// the violated rule and field path.
//
// # Concurrency
//
// Codec values are immutable once built and hold no mutable state, so one
// Codec may serve any number of goroutines without locking. Decoding is
// bounded by the input length and the configured Limits.
//
// # Usage Example
//
//	env := protocol.Envelope{
//	    Content: content.Text{Body: "hello"},
//	    Extensions: []extension.Extension{
//	        protocol.LanguageExtension(language.English),
//	    },
//	}
//
//	buf, err := protocol.EncodeChecked(env)
//	if err != nil {
//	    return err
//	}
//
//	got, err := protocol.Decode(buf)
//	if errors.Is(err, protocol.ErrValidation) {
//	    // well-formed but not conformant
//	}
//
// # Security Considerations
//
//   - Declared lengths are checked against Limits and the remaining input
//     before any allocation.
//   - Nested content (Edit, Multipart) is depth limited on decode and encode.
//   - Validate bounds every encoded content body by MaxFieldLength, so
//     EncodeChecked output always fits the decoder's limits.
//   - Decoded byte fields are copies; the input buffer may be reused.
//   - Malformed input only ever produces an error.
package protocol
