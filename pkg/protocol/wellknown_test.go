package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

func TestLanguageExtension(t *testing.T) {
	env := Envelope{
		Content:    content.Text{Body: "Grüß Gott"},
		Extensions: []extension.Extension{LanguageExtension(language.MustParse("de-AT"))},
	}
	assert.Equal(t, []byte("de-AT"), env.Extensions[0].Payload)

	buf, err := EncodeChecked(env)
	require.NoError(t, err)
	got, err := Decode(buf)
	require.NoError(t, err)

	tag, ok, err := got.Language()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "de-AT", tag.String())

	base, _ := tag.Base()
	assert.Equal(t, "de", base.String())
}

func TestLanguageExtensionMissingOrMalformed(t *testing.T) {
	tag, ok, err := Envelope{Content: content.Text{}}.Language()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, language.Und, tag)

	bad := Envelope{Extensions: []extension.Extension{{ID: ExtLanguage, Payload: []byte("not a tag!")}}}
	_, ok, err = bad.Language()
	assert.True(t, ok)
	assert.Error(t, err)

	invalid := Envelope{Extensions: []extension.Extension{{ID: ExtLanguage, Payload: []byte{0xff}}}}
	_, _, err = invalid.Language()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestTopicExtension(t *testing.T) {
	env := Envelope{Extensions: []extension.Extension{TopicExtension([]byte("release-planning"))}}

	topic, ok := env.Topic()
	require.True(t, ok)
	assert.Equal(t, []byte("release-planning"), topic)

	_, ok = Envelope{}.Topic()
	assert.False(t, ok)
}

func TestLastSeenExtension(t *testing.T) {
	refs := []content.Reference{{0x01, 0x02}, {0x03}}
	env := Envelope{
		Content:    content.Text{Body: "caught up"},
		Extensions: []extension.Extension{LastSeenExtension(refs)},
	}

	buf, err := EncodeChecked(env)
	require.NoError(t, err)
	got, err := Decode(buf)
	require.NoError(t, err)

	seen, ok, err := got.LastSeen(wire.DefaultLimits())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, refs, seen)

	_, ok, err = Envelope{}.LastSeen(wire.DefaultLimits())
	assert.NoError(t, err)
	assert.False(t, ok)

	trailing := Envelope{Extensions: []extension.Extension{{ID: ExtLastSeen, Payload: []byte{0x01, 0x01, 0xaa, 0xbb}}}}
	_, _, err = trailing.LastSeen(wire.DefaultLimits())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWellKnownRegistry(t *testing.T) {
	assert.Equal(t, "language", WellKnown.Name(ExtLanguage))
	assert.Equal(t, "last_seen", WellKnown.Name(ExtLastSeen))
	assert.Equal(t, "ext-7", WellKnown.Name(7))
	assert.Equal(t, "reply_hash", WellKnown.Name(ExtReplyHash))
	assert.Equal(t, []uint64{ExtLanguage, ExtTopic, ExtLastSeen, ExtReplyHash}, WellKnown.IDs())
}

func TestReplyHashExtension(t *testing.T) {
	digest := make([]byte, 48)
	digest[0] = 0x9f
	env := Envelope{
		Content:    content.Text{Body: "+1"},
		ReplyTo:    content.Reference{0x42},
		Extensions: []extension.Extension{ReplyHashExtension(content.HashSHA384, digest)},
	}
	assert.Equal(t, byte(content.HashSHA384), env.Extensions[0].Payload[0])

	buf, err := EncodeChecked(env)
	require.NoError(t, err)
	got, err := Decode(buf)
	require.NoError(t, err)

	alg, hash, ok, err := got.ReplyHash(wire.DefaultLimits())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, content.HashSHA384, alg)
	assert.Equal(t, digest, hash)

	_, _, ok, err = Envelope{}.ReplyHash(wire.DefaultLimits())
	assert.NoError(t, err)
	assert.False(t, ok)

	truncated := Envelope{Extensions: []extension.Extension{{ID: ExtReplyHash, Payload: []byte{0x01, 0x05, 0xaa}}}}
	_, _, ok, err = truncated.ReplyHash(wire.DefaultLimits())
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}
