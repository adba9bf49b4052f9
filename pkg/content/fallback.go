package content

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
)

// Fallback returns the plain text a client shows when it cannot render c.
// The result depends only on c.
func Fallback(c Content) string {
	switch c := c.(type) {
	case Text:
		return c.Body
	case Attachment:
		if c.Filename == "" {
			return "[attachment]"
		}
		return fmt.Sprintf("[attachment: %s]", c.Filename)
	case Reaction:
		return fmt.Sprintf("[reaction: %s]", string(c.Emoji))
	case Location:
		if c.Label != nil && *c.Label != "" {
			return fmt.Sprintf("[location: %s]", *c.Label)
		}
		return fmt.Sprintf("[location: %.6f, %.6f]", c.Latitude, c.Longitude)
	case Edit:
		return "[edited] " + Fallback(c.New)
	case Delete:
		return "[message deleted]"
	case Poll:
		if len(c.Options) == 0 {
			return "[poll] " + c.Question
		}
		return fmt.Sprintf("[poll] %s %s", c.Question, english.OxfordWordSeries(c.Options, "or"))
	case GroupOperation:
		return groupFallback(c)
	case Receipt:
		return fmt.Sprintf("[receipt: %s]", english.Plural(len(c.Statuses), "message", ""))
	case Multipart:
		if len(c.Parts) == 0 {
			return "[multipart]"
		}
		if c.Semantics == ChooseOne {
			return Fallback(c.Parts[0].Content)
		}
		parts := make([]string, 0, len(c.Parts))
		for _, p := range c.Parts {
			parts = append(parts, Fallback(p.Content))
		}
		return strings.Join(parts, "\n")
	}
	return "[unsupported content]"
}

func groupFallback(c GroupOperation) string {
	switch c.Op {
	case GroupRename:
		if len(c.Operands) == 1 {
			return fmt.Sprintf("[group: renamed to %s]", c.Operands[0])
		}
	case GroupAddMembers:
		return fmt.Sprintf("[group: %s added]", english.Plural(len(c.Operands), "member", ""))
	case GroupRemoveMembers:
		return fmt.Sprintf("[group: %s removed]", english.Plural(len(c.Operands), "member", ""))
	case GroupChangeAdmins:
		return "[group: admins changed]"
	}
	return "[group operation]"
}
