package protocol

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Well-known extension ids. The codec treats them as opaque like any other
// extension; these helpers only build and read their payloads.
const (
	ExtLanguage  uint64 = 1 // BCP 47 language tag of the content
	ExtTopic     uint64 = 2 // opaque topic identifier within a room
	ExtLastSeen  uint64 = 3 // references of the latest messages the sender saw
	ExtReplyHash uint64 = 4 // hash of the content replied to, binding reply_to
)

// WellKnown names the well-known extension ids for display.
var WellKnown = extension.NewRegistry(map[uint64]string{
	ExtLanguage:  "language",
	ExtTopic:     "topic",
	ExtLastSeen:  "last_seen",
	ExtReplyHash: "reply_hash",
})

// LanguageExtension returns an extension carrying tag.
func LanguageExtension(tag language.Tag) extension.Extension {
	return extension.Extension{ID: ExtLanguage, Payload: []byte(tag.String())}
}

// Language reads the language extension. ok is false when env has none.
func (e Envelope) Language() (tag language.Tag, ok bool, err error) {
	ext, ok := e.Extension(ExtLanguage)
	if !ok {
		return language.Und, false, nil
	}
	if !wire.ValidUTF8(ext.Payload) {
		return language.Und, true, fmt.Errorf("%w: language extension", ErrInvalidUTF8)
	}
	tag, err = language.Parse(string(ext.Payload))
	if err != nil {
		return language.Und, true, fmt.Errorf("protocol: language extension %q: %w", ext.Payload, err)
	}
	return tag, true, nil
}

func TopicExtension(topic []byte) extension.Extension {
	return extension.Extension{ID: ExtTopic, Payload: topic}
}

func (e Envelope) Topic() ([]byte, bool) {
	ext, ok := e.Extension(ExtTopic)
	return ext.Payload, ok
}

// LastSeenExtension encodes refs as a list of length-prefixed references.
func LastSeenExtension(refs []content.Reference) extension.Extension {
	payload := make([]byte, 0, 1+len(refs)*17)
	payload, _ = wire.AppendVarint(payload, uint64(len(refs)))
	for _, ref := range refs {
		payload = wire.AppendBytes(payload, ref)
	}
	return extension.Extension{ID: ExtLastSeen, Payload: payload}
}

// LastSeen decodes the last-seen extension under lim.
func (e Envelope) LastSeen(lim wire.Limits) ([]content.Reference, bool, error) {
	ext, ok := e.Extension(ExtLastSeen)
	if !ok {
		return nil, false, nil
	}
	r := wire.NewReader(ext.Payload, 0, lim)
	n, err := r.Count("last_seen", lim.MaxListItems)
	if err != nil {
		return nil, true, err
	}
	var refs []content.Reference
	for i := 0; i < n; i++ {
		ref, err := r.Bytes("last_seen")
		if err != nil {
			return nil, true, err
		}
		refs = append(refs, ref)
	}
	if err := r.Done("last_seen"); err != nil {
		return nil, true, err
	}
	return refs, true, nil
}

// ReplyHashExtension binds ReplyTo to the content it answers:
//
//	payload ::= hash_alg(u8) | hash(bytes)
func ReplyHashExtension(alg content.HashAlgorithm, hash []byte) extension.Extension {
	payload := wire.AppendUint8(make([]byte, 0, 2+len(hash)), uint8(alg))
	return extension.Extension{ID: ExtReplyHash, Payload: wire.AppendBytes(payload, hash)}
}

// ReplyHash decodes the reply hash extension under lim.
func (e Envelope) ReplyHash(lim wire.Limits) (content.HashAlgorithm, []byte, bool, error) {
	ext, ok := e.Extension(ExtReplyHash)
	if !ok {
		return content.HashNone, nil, false, nil
	}
	r := wire.NewReader(ext.Payload, 0, lim)
	alg, err := r.Uint8("reply_hash.alg")
	if err != nil {
		return content.HashNone, nil, true, err
	}
	hash, err := r.Bytes("reply_hash.hash")
	if err != nil {
		return content.HashNone, nil, true, err
	}
	if err := r.Done("reply_hash"); err != nil {
		return content.HashNone, nil, true, err
	}
	return content.HashAlgorithm(alg), hash, true, nil
}
