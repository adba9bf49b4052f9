package content

import (
	"fmt"
	"math"

	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Text is a plain UTF-8 message body.
type Text struct {
	Body string
}

func (Text) Tag() Tag { return TagText }

func (c Text) appendBody(dst []byte, _, _ int) ([]byte, error) {
	return wire.AppendString(dst, c.Body), nil
}

func readText(r *wire.Reader) (Content, error) {
	body, err := r.String("text.body")
	if err != nil {
		return nil, err
	}
	return Text{Body: body}, nil
}

// HashAlgorithm is an id from the IANA Named Information hash algorithm
// registry.
type HashAlgorithm uint8

const (
	HashNone     HashAlgorithm = 0
	HashSHA256   HashAlgorithm = 1
	HashSHA384   HashAlgorithm = 7
	HashSHA512   HashAlgorithm = 8
	HashSHA3_256 HashAlgorithm = 10
	HashSHA3_512 HashAlgorithm = 12
)

// Size returns the digest length for algorithms with a known size.
func (h HashAlgorithm) Size() (int, bool) {
	switch h {
	case HashSHA256, HashSHA3_256:
		return 32, true
	case HashSHA384:
		return 48, true
	case HashSHA512, HashSHA3_512:
		return 64, true
	}
	return 0, false
}

// Disposition tells a receiver how a piece of content is meant to be shown.
// Values without a name are carried through unchanged.
type Disposition uint8

const (
	DispositionUnspecified Disposition = 0
	DispositionRender      Disposition = 1
	DispositionReaction    Disposition = 2
	DispositionProfile     Disposition = 3
	DispositionInline      Disposition = 4
	DispositionIcon        Disposition = 5
	DispositionAttachment  Disposition = 6
	DispositionSession     Disposition = 7
	DispositionPreview     Disposition = 8
)

var dispositionNames = [...]string{
	"unspecified", "render", "reaction", "profile", "inline", "icon", "attachment", "session", "preview",
}

// Custom reports whether d is outside the named set.
func (d Disposition) Custom() bool {
	return int(d) >= len(dispositionNames)
}

func (d Disposition) String() string {
	if d.Custom() {
		return fmt.Sprintf("custom(%d)", uint8(d))
	}
	return dispositionNames[d]
}

// Attachment points at externally stored media. The bytes themselves never
// travel in the content.
type Attachment struct {
	ContentID     string // URI or store identifier of the blob
	MediaType     string
	Filename      string
	Size          uint64
	HashAlgorithm HashAlgorithm
	Hash          []byte // empty decodes to nil
	DecryptionRef []byte // nil when absent
	Disposition   Disposition
	Description   string
	Expires       *wire.Timestamp // when the stored blob goes away, nil when it does not
}

func (Attachment) Tag() Tag { return TagAttachment }

func (c Attachment) appendBody(dst []byte, _, _ int) ([]byte, error) {
	dst = wire.AppendString(dst, c.ContentID)
	dst = wire.AppendString(dst, c.MediaType)
	dst = wire.AppendString(dst, c.Filename)
	dst = wire.AppendUint64(dst, c.Size)
	dst = wire.AppendUint8(dst, uint8(c.HashAlgorithm))
	dst = wire.AppendBytes(dst, c.Hash)
	dst = wire.AppendOptionalBytes(dst, c.DecryptionRef)
	dst = wire.AppendUint8(dst, uint8(c.Disposition))
	dst = wire.AppendString(dst, c.Description)
	dst = wire.AppendPresence(dst, c.Expires != nil)
	if c.Expires != nil {
		dst = wire.AppendUint64(dst, uint64(*c.Expires))
	}
	return dst, nil
}

func readAttachment(r *wire.Reader) (Content, error) {
	var (
		c   Attachment
		err error
	)
	if c.ContentID, err = r.String("attachment.content_id"); err != nil {
		return nil, err
	}
	if c.MediaType, err = r.String("attachment.media_type"); err != nil {
		return nil, err
	}
	if c.Filename, err = r.String("attachment.filename"); err != nil {
		return nil, err
	}
	if c.Size, err = r.Uint64("attachment.size"); err != nil {
		return nil, err
	}
	alg, err := r.Uint8("attachment.hash_alg")
	if err != nil {
		return nil, err
	}
	c.HashAlgorithm = HashAlgorithm(alg)
	if c.Hash, err = r.Bytes("attachment.hash"); err != nil {
		return nil, err
	}
	if c.DecryptionRef, err = r.OptionalBytes("attachment.decryption_ref"); err != nil {
		return nil, err
	}
	disp, err := r.Uint8("attachment.disposition")
	if err != nil {
		return nil, err
	}
	c.Disposition = Disposition(disp)
	if c.Description, err = r.String("attachment.description"); err != nil {
		return nil, err
	}
	ok, err := r.Present("attachment.expires")
	if err != nil {
		return nil, err
	}
	if !ok {
		return c, nil
	}
	ms, err := r.Uint64("attachment.expires")
	if err != nil {
		return nil, err
	}
	ts := wire.Timestamp(ms)
	c.Expires = &ts
	return c, nil
}

// Reaction attaches an emoji sequence to an earlier message. Emoji holds the
// code points of one sequence, so skin tones and joined emoji stay intact.
type Reaction struct {
	Target Reference
	Emoji  []rune
}

func (Reaction) Tag() Tag { return TagReaction }

func (c Reaction) appendBody(dst []byte, _, _ int) ([]byte, error) {
	dst = wire.AppendBytes(dst, c.Target)
	dst, err := wire.AppendVarint(dst, uint64(len(c.Emoji)))
	if err != nil {
		return dst, err
	}
	for i, cp := range c.Emoji {
		if cp < 0 {
			return dst, fmt.Errorf("%w: reaction.emoji[%d]: negative code point", wire.ErrFieldOutOfRange, i)
		}
		if dst, err = wire.AppendVarint(dst, uint64(cp)); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

func readReaction(r *wire.Reader) (Content, error) {
	target, err := r.Bytes("reaction.target")
	if err != nil {
		return nil, err
	}
	n, err := r.Count("reaction.emoji", r.Limits().MaxListItems)
	if err != nil {
		return nil, err
	}
	c := Reaction{Target: target}
	if n > 0 {
		c.Emoji = make([]rune, 0, n)
	}
	for i := 0; i < n; i++ {
		start := r.Offset()
		cp, err := r.Varint("reaction.emoji")
		if err != nil {
			return nil, err
		}
		if cp > math.MaxInt32 {
			return nil, fmt.Errorf("%w: reaction.emoji: code point %d at offset %d", wire.ErrFieldOutOfRange, cp, start)
		}
		c.Emoji = append(c.Emoji, rune(cp))
	}
	return c, nil
}

// Location shares a point. Coordinates are WGS 84 degrees.
type Location struct {
	Latitude  float64
	Longitude float64
	Label     *string
}

func (Location) Tag() Tag { return TagLocation }

func (c Location) appendBody(dst []byte, _, _ int) ([]byte, error) {
	dst = wire.AppendFloat64(dst, c.Latitude)
	dst = wire.AppendFloat64(dst, c.Longitude)
	return wire.AppendOptionalString(dst, c.Label), nil
}

func readLocation(r *wire.Reader) (Content, error) {
	var (
		c   Location
		err error
	)
	if c.Latitude, err = r.Float64("location.latitude"); err != nil {
		return nil, err
	}
	if c.Longitude, err = r.Float64("location.longitude"); err != nil {
		return nil, err
	}
	if c.Label, err = r.OptionalString("location.label"); err != nil {
		return nil, err
	}
	return c, nil
}

// Edit replaces the content of an earlier message.
type Edit struct {
	Target Reference
	New    Content
}

func (Edit) Tag() Tag { return TagEdit }

func (c Edit) appendBody(dst []byte, depth, max int) ([]byte, error) {
	dst = wire.AppendBytes(dst, c.Target)
	return appendContent(dst, c.New, depth+1, max)
}

func readEdit(r *wire.Reader, depth int) (Content, error) {
	target, err := r.Bytes("edit.target")
	if err != nil {
		return nil, err
	}
	next, err := read(r, depth+1)
	if err != nil {
		return nil, fmt.Errorf("edit.new: %w", err)
	}
	return Edit{Target: target, New: next}, nil
}

// Delete retracts an earlier message.
type Delete struct {
	Target Reference
}

func (Delete) Tag() Tag { return TagDelete }

func (c Delete) appendBody(dst []byte, _, _ int) ([]byte, error) {
	return wire.AppendBytes(dst, c.Target), nil
}

func readDelete(r *wire.Reader) (Content, error) {
	target, err := r.Bytes("delete.target")
	if err != nil {
		return nil, err
	}
	return Delete{Target: target}, nil
}

type Poll struct {
	Question string
	Options  []string
}

func (Poll) Tag() Tag { return TagPoll }

func (c Poll) appendBody(dst []byte, _, _ int) ([]byte, error) {
	dst = wire.AppendString(dst, c.Question)
	dst, err := wire.AppendVarint(dst, uint64(len(c.Options)))
	if err != nil {
		return dst, err
	}
	for _, o := range c.Options {
		dst = wire.AppendString(dst, o)
	}
	return dst, nil
}

func readPoll(r *wire.Reader) (Content, error) {
	q, err := r.String("poll.question")
	if err != nil {
		return nil, err
	}
	n, err := r.Count("poll.options", r.Limits().MaxListItems)
	if err != nil {
		return nil, err
	}
	c := Poll{Question: q}
	if n > 0 {
		c.Options = make([]string, 0, n)
	}
	for i := 0; i < n; i++ {
		o, err := r.String("poll.options")
		if err != nil {
			return nil, err
		}
		c.Options = append(c.Options, o)
	}
	return c, nil
}

// GroupOp is the kind of a group metadata change.
type GroupOp uint64

const (
	GroupRename        GroupOp = 1
	GroupAddMembers    GroupOp = 2
	GroupRemoveMembers GroupOp = 3
	GroupChangeAdmins  GroupOp = 4
)

func (op GroupOp) String() string {
	switch op {
	case GroupRename:
		return "rename"
	case GroupAddMembers:
		return "add_members"
	case GroupRemoveMembers:
		return "remove_members"
	case GroupChangeAdmins:
		return "change_admins"
	}
	return fmt.Sprintf("op(%d)", uint64(op))
}

// GroupOperation changes group metadata. Operands are opaque member ids,
// except for GroupRename whose single operand is the new UTF-8 name. Ops this
// version does not know are kept with their operands.
type GroupOperation struct {
	Op       GroupOp
	Operands [][]byte
}

func (GroupOperation) Tag() Tag { return TagGroupOperation }

func (c GroupOperation) appendBody(dst []byte, _, _ int) ([]byte, error) {
	dst, err := wire.AppendVarint(dst, uint64(c.Op))
	if err != nil {
		return dst, err
	}
	if dst, err = wire.AppendVarint(dst, uint64(len(c.Operands))); err != nil {
		return dst, err
	}
	for _, o := range c.Operands {
		dst = wire.AppendBytes(dst, o)
	}
	return dst, nil
}

func readGroupOperation(r *wire.Reader) (Content, error) {
	op, err := r.Varint("group.op")
	if err != nil {
		return nil, err
	}
	n, err := r.Count("group.operands", r.Limits().MaxListItems)
	if err != nil {
		return nil, err
	}
	c := GroupOperation{Op: GroupOp(op)}
	if n > 0 {
		c.Operands = make([][]byte, 0, n)
	}
	for i := 0; i < n; i++ {
		o, err := r.Bytes("group.operands")
		if err != nil {
			return nil, err
		}
		c.Operands = append(c.Operands, o)
	}
	return c, nil
}

// Status is the delivery state a receipt reports for one message. Values
// past StatusError are custom and pass through unchanged.
type Status uint8

const (
	StatusUnread    Status = 0
	StatusDelivered Status = 1
	StatusRead      Status = 2
	StatusExpired   Status = 3
	StatusDeleted   Status = 4
	StatusHidden    Status = 5
	StatusError     Status = 6
)

func (s Status) String() string {
	switch s {
	case StatusUnread:
		return "unread"
	case StatusDelivered:
		return "delivered"
	case StatusRead:
		return "read"
	case StatusExpired:
		return "expired"
	case StatusDeleted:
		return "deleted"
	case StatusHidden:
		return "hidden"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("custom(%d)", uint8(s))
}

type MessageStatus struct {
	Target Reference
	Status Status
}

// Receipt reports the status of one or more messages as of Timestamp.
type Receipt struct {
	Timestamp wire.Timestamp
	Statuses  []MessageStatus
}

func (Receipt) Tag() Tag { return TagReceipt }

func (c Receipt) appendBody(dst []byte, _, _ int) ([]byte, error) {
	dst = wire.AppendUint64(dst, uint64(c.Timestamp))
	dst, err := wire.AppendVarint(dst, uint64(len(c.Statuses)))
	if err != nil {
		return dst, err
	}
	for _, s := range c.Statuses {
		dst = wire.AppendBytes(dst, s.Target)
		dst = wire.AppendUint8(dst, uint8(s.Status))
	}
	return dst, nil
}

func readReceipt(r *wire.Reader) (Content, error) {
	ts, err := r.Uint64("receipt.timestamp")
	if err != nil {
		return nil, err
	}
	n, err := r.Count("receipt.statuses", r.Limits().MaxListItems)
	if err != nil {
		return nil, err
	}
	c := Receipt{Timestamp: wire.Timestamp(ts)}
	if n > 0 {
		c.Statuses = make([]MessageStatus, 0, n)
	}
	for i := 0; i < n; i++ {
		target, err := r.Bytes("receipt.target")
		if err != nil {
			return nil, err
		}
		st, err := r.Uint8("receipt.status")
		if err != nil {
			return nil, err
		}
		c.Statuses = append(c.Statuses, MessageStatus{Target: target, Status: Status(st)})
	}
	return c, nil
}

// Semantics tells a receiver how to treat the parts of a Multipart.
type Semantics uint8

const (
	ChooseOne  Semantics = 0 // render the first part the receiver supports
	SingleUnit Semantics = 1 // all parts form one message
	ProcessAll Semantics = 2 // each part stands alone
)

func (s Semantics) String() string {
	switch s {
	case ChooseOne:
		return "choose_one"
	case SingleUnit:
		return "single_unit"
	case ProcessAll:
		return "process_all"
	}
	return fmt.Sprintf("semantics(%d)", uint8(s))
}

// Part is one member of a Multipart.
type Part struct {
	Disposition Disposition
	Content     Content
}

type Multipart struct {
	Semantics Semantics
	Parts     []Part
}

func (Multipart) Tag() Tag { return TagMultipart }

func (c Multipart) appendBody(dst []byte, depth, max int) ([]byte, error) {
	dst = wire.AppendUint8(dst, uint8(c.Semantics))
	dst, err := wire.AppendVarint(dst, uint64(len(c.Parts)))
	if err != nil {
		return dst, err
	}
	for i, p := range c.Parts {
		dst = wire.AppendUint8(dst, uint8(p.Disposition))
		if dst, err = appendContent(dst, p.Content, depth+1, max); err != nil {
			return dst, fmt.Errorf("part %d: %w", i, err)
		}
	}
	return dst, nil
}

func readMultipart(r *wire.Reader, depth int) (Content, error) {
	sem, err := r.Uint8("multipart.semantics")
	if err != nil {
		return nil, err
	}
	n, err := r.Count("multipart.parts", r.Limits().MaxListItems)
	if err != nil {
		return nil, err
	}
	c := Multipart{Semantics: Semantics(sem)}
	if n > 0 {
		c.Parts = make([]Part, 0, n)
	}
	for i := 0; i < n; i++ {
		disp, err := r.Uint8("multipart.parts.disposition")
		if err != nil {
			return nil, err
		}
		p, err := read(r, depth+1)
		if err != nil {
			return nil, fmt.Errorf("multipart.parts[%d]: %w", i, err)
		}
		c.Parts = append(c.Parts, Part{Disposition: Disposition(disp), Content: p})
	}
	return c, nil
}
