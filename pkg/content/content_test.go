package content

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

func strPtr(s string) *string { return &s }

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func partsOf(cs ...Content) []Part {
	parts := make([]Part, len(cs))
	for i, c := range cs {
		parts[i] = Part{Content: c}
	}
	return parts
}

var msgID = Reference{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

func sampleContents() []struct {
	name    string
	content Content
} {
	sha := make([]byte, 32)
	for i := range sha {
		sha[i] = byte(i)
	}
	expiry := wire.Timestamp(1644390004000)
	return []struct {
		name    string
		content Content
	}{
		{"text", Text{Body: "hello"}},
		{"empty text", Text{}},
		{"attachment", Attachment{
			ContentID:     "https://example.com/storage/8ksB4bSrrRE.jpg",
			MediaType:     "image/jpeg",
			Filename:      "Hello.jpg",
			Size:          42159,
			HashAlgorithm: HashSHA256,
			Hash:          sha,
			DecryptionRef: []byte{0xde, 0xad},
		}},
		{"attachment without hash or key", Attachment{
			ContentID: "cid:1",
			MediaType: "application/pdf",
		}},
		{"attachment with description", Attachment{
			ContentID:   "https://example.com/storage/ks.mp4",
			MediaType:   "video/mp4",
			Size:        1 << 30,
			Disposition: DispositionRender,
			Description: "2 hours of key signing video",
			Expires:     &expiry,
		}},
		{"attachment with custom disposition", Attachment{
			ContentID:   "cid:3",
			MediaType:   "image/png",
			Disposition: 0xc8,
		}},
		{"attachment with empty key ref", Attachment{
			ContentID:     "cid:2",
			MediaType:     "text/plain",
			DecryptionRef: []byte{},
		}},
		{"reaction", Reaction{Target: msgID, Emoji: []rune("👍🏽")}},
		{"location", Location{Latitude: 52.520008, Longitude: 13.404954, Label: strPtr("Berlin")}},
		{"location without label", Location{Latitude: -33.8688, Longitude: 151.2093}},
		{"edit", Edit{Target: msgID, New: Text{Body: "hello, fixed"}}},
		{"delete", Delete{Target: msgID}},
		{"poll", Poll{Question: "Lunch?", Options: []string{"pizza", "sushi", "tacos"}}},
		{"group rename", GroupOperation{Op: GroupRename, Operands: [][]byte{[]byte("Weekend crew")}}},
		{"group add", GroupOperation{Op: GroupAddMembers, Operands: [][]byte{{0xaa}, {0xbb, 0xcc}}}},
		{"group unknown op", GroupOperation{Op: 77}},
		{"receipt", Receipt{Timestamp: 1644284703227, Statuses: []MessageStatus{
			{Target: msgID, Status: StatusRead},
			{Target: Reference{0x09}, Status: 0xa0},
		}}},
		{"multipart", Multipart{Semantics: ChooseOne, Parts: []Part{
			{Disposition: DispositionRender, Content: Text{Body: "*hi*"}},
			{Disposition: DispositionInline, Content: Text{Body: "hi"}},
		}}},
		{"multipart with custom disposition", Multipart{Semantics: SingleUnit, Parts: []Part{
			{Disposition: 0xfe, Content: Text{Body: "ok"}},
		}}},
		{"nested edit of multipart", Edit{Target: msgID, New: Multipart{Semantics: ProcessAll, Parts: partsOf(
			Location{Latitude: 1, Longitude: 2},
			Unknown{ID: 4242, Payload: []byte{0x01}},
		)}}},
		{"unknown", Unknown{ID: 99, Payload: []byte{0xaa, 0xbb, 0xcc}}},
		{"unknown empty", Unknown{ID: 1 << 20}},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, tt := range sampleContents() {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Encode(tt.content)
			require.NoError(t, err)

			got, next, err := Decode(enc, 0, wire.DefaultLimits())
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
			assert.Equal(t, len(enc), next)

			again, err := Encode(got)
			require.NoError(t, err)
			assert.Equal(t, enc, again)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, tt := range sampleContents() {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Encode(tt.content)
			require.NoError(t, err)

			for i := 0; i < len(enc); i++ {
				_, _, err := Decode(enc[:i], 0, wire.DefaultLimits())
				require.ErrorIs(t, err, wire.ErrTruncatedInput, "prefix of %d bytes", i)
			}
		})
	}
}

func TestEncodeGolden(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		hex     string
	}{
		{"text", Text{Body: "hello"}, "01060568656c6c6f"},
		{"delete", Delete{Target: Reference{0xab, 0xcd}}, "060302abcd"},
		{"reaction", Reaction{Target: Reference{0x01}, Emoji: []rune{0x1f44d}}, "0307010101" + "8001f44d"},
		{"unknown", Unknown{ID: 300, Payload: []byte{0x01, 0x02}}, "412c020102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Encode(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, hex.EncodeToString(enc))
		})
	}
}

func TestUnknownPreserved(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		tag  Tag
	}{
		{"one byte tag", "3203aabbcc", 50},
		{"empty body", "3200", 50},
		{"two byte tag", "410002beef", 256},
		{"structured body", "3c0a" + "0568656c6c6f" + "00010203", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := mustHex(t, tt.hex)

			got, next, err := Decode(buf, 0, wire.DefaultLimits())
			require.NoError(t, err)
			assert.Equal(t, len(buf), next)

			u, ok := got.(Unknown)
			require.True(t, ok, "got %T", got)
			assert.Equal(t, tt.tag, u.ID)

			enc, err := Encode(got)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, hex.EncodeToString(enc))
		})
	}
}

func TestDecodeAtOffset(t *testing.T) {
	buf := append([]byte{0xff, 0xff}, mustHex(t, "01060568656c6c6f")...)
	buf = append(buf, 0x00)

	got, next, err := Decode(buf, 2, wire.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, Text{Body: "hello"}, got)
	assert.Equal(t, len(buf)-1, next)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want error
	}{
		{"invalid utf-8 body", "010302fffe", wire.ErrInvalidUTF8},
		{"trailing bytes in known body", "01070568656c6c6f00", wire.ErrValidation},
		{"field overruns body", "010309616263", wire.ErrTruncatedInput},
		{"bad presence byte", "04" + "11" + "0000000000000000" + "0000000000000000" + "07", wire.ErrFieldOutOfRange},
		{"non-minimal tag", "400106" + "00", wire.ErrFieldOutOfRange},
		{"code point beyond int32", "030a" + "00" + "01" + "c000000100000000", wire.ErrFieldOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(mustHex(t, tt.hex), 0, wire.DefaultLimits())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTrailingBodyBytesRule(t *testing.T) {
	_, _, err := Decode(mustHex(t, "01070568656c6c6f00"), 0, wire.DefaultLimits())
	rule, ok := wire.RuleOf(err)
	require.True(t, ok)
	assert.Equal(t, wire.RuleLength, rule)
}

func TestListLimits(t *testing.T) {
	lim := wire.DefaultLimits()
	lim.MaxListItems = 2

	enc, err := Encode(Poll{Question: "q", Options: []string{"a", "b", "c"}})
	require.NoError(t, err)

	_, _, err = Decode(enc, 0, lim)
	assert.ErrorIs(t, err, wire.ErrFieldOutOfRange)
}

func nestedEdits(depth int) Content {
	var c Content = Text{Body: "leaf"}
	for i := 1; i < depth; i++ {
		c = Edit{Target: msgID, New: c}
	}
	return c
}

func TestNestingDepth(t *testing.T) {
	lim := wire.DefaultLimits()

	t.Run("at limit", func(t *testing.T) {
		c := nestedEdits(lim.MaxNesting)
		enc, err := Encode(c)
		require.NoError(t, err)

		got, _, err := Decode(enc, 0, lim)
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.NoError(t, Validate(got, lim))
	})

	t.Run("one past limit", func(t *testing.T) {
		c := nestedEdits(lim.MaxNesting + 1)

		_, err := Encode(c)
		assert.ErrorIs(t, err, wire.ErrFieldOutOfRange)

		enc, err := AppendLimit(nil, c, lim.MaxNesting+1)
		require.NoError(t, err)
		_, _, err = Decode(enc, 0, lim)
		assert.ErrorIs(t, err, wire.ErrFieldOutOfRange)

		err = Validate(c, lim)
		rule, ok := wire.RuleOf(err)
		require.True(t, ok)
		assert.Equal(t, wire.RuleNesting, rule)
	})

	t.Run("cyclic multipart", func(t *testing.T) {
		m := Multipart{Semantics: SingleUnit, Parts: make([]Part, 1)}
		m.Parts[0] = Part{Content: m}

		_, err := Encode(m)
		assert.ErrorIs(t, err, wire.ErrFieldOutOfRange)
		assert.ErrorIs(t, Validate(m, lim), wire.ErrValidation)
	})
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, wire.ErrValidation)

	_, err = Encode(Edit{Target: msgID})
	assert.ErrorIs(t, err, wire.ErrValidation)

	_, err = Encode(Reaction{Target: msgID, Emoji: []rune{-1}})
	assert.ErrorIs(t, err, wire.ErrFieldOutOfRange)

	_, err = Encode(Unknown{ID: Tag(wire.MaxVarint + 1)})
	assert.ErrorIs(t, err, wire.ErrFieldOutOfRange)
}

func TestTag(t *testing.T) {
	assert.True(t, TagMultipart.Known())
	assert.False(t, Tag(0).Known())
	assert.Equal(t, "group_operation", TagGroupOperation.String())
	assert.Equal(t, "unknown(99)", Tag(99).String())

	for _, tt := range sampleContents() {
		if _, ok := tt.content.(Unknown); ok {
			continue
		}
		assert.True(t, tt.content.Tag().Known(), tt.name)
	}
}

func TestHashAlgorithmSize(t *testing.T) {
	size, ok := HashSHA256.Size()
	assert.True(t, ok)
	assert.Equal(t, 32, size)

	size, ok = HashSHA384.Size()
	assert.True(t, ok)
	assert.Equal(t, 48, size)

	_, ok = HashAlgorithm(200).Size()
	assert.False(t, ok)
}

func TestLocationNaNRoundTrip(t *testing.T) {
	enc, err := Encode(Location{Latitude: math.NaN(), Longitude: math.Copysign(0, -1)})
	require.NoError(t, err)

	got, _, err := Decode(enc, 0, wire.DefaultLimits())
	require.NoError(t, err)
	loc := got.(Location)
	assert.True(t, math.IsNaN(loc.Latitude))
	assert.True(t, math.Signbit(loc.Longitude))
}

func TestUnknownEmptyPayloadDecodesToNil(t *testing.T) {
	enc, err := Encode(Unknown{ID: 50, Payload: []byte{}})
	require.NoError(t, err)
	assert.Equal(t, "3200", hex.EncodeToString(enc))

	got, _, err := Decode(enc, 0, wire.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, Unknown{ID: 50}, got)
	assert.Nil(t, got.(Unknown).Payload)
}

func TestDisposition(t *testing.T) {
	assert.Equal(t, "unspecified", DispositionUnspecified.String())
	assert.Equal(t, "preview", DispositionPreview.String())
	assert.False(t, DispositionPreview.Custom())
	assert.True(t, Disposition(9).Custom())
	assert.Equal(t, "custom(200)", Disposition(200).String())
}

func TestAttachmentGolden(t *testing.T) {
	expires := wire.Timestamp(1)
	c := Attachment{
		ContentID:   "c",
		MediaType:   "a/b",
		Size:        2,
		Disposition: DispositionInline,
		Description: "d",
		Expires:     &expires,
	}
	want := "02" + "1e" +
		"0163" + "03612f62" + "00" +
		"0000000000000002" +
		"00" + "00" + "00" +
		"04" + "0164" +
		"01" + "0000000000000001"

	enc, err := Encode(c)
	require.NoError(t, err)
	assert.Equal(t, want, hex.EncodeToString(enc))
}
