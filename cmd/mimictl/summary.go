package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/protocol"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

func printSummary(w io.Writer, env protocol.Envelope, size int, lim wire.Limits) error {
	var b strings.Builder

	fmt.Fprintf(&b, "size:        %s\n", humanize.IBytes(uint64(size)))
	fmt.Fprintf(&b, "content:     %s\n", env.Content.Tag())
	describeContent(&b, env.Content, "  ")

	if env.ReplyTo != nil {
		fmt.Fprintf(&b, "reply_to:    %s\n", env.ReplyTo)
	}
	if env.Replaces != nil {
		fmt.Fprintf(&b, "replaces:    %s\n", env.Replaces)
	}
	if env.Expires != nil {
		fmt.Fprintf(&b, "expires:     %s\n", env.Expires)
	}
	fmt.Fprintf(&b, "fallback:    %q\n", env.Fallback())

	for _, ext := range env.Extensions {
		fmt.Fprintf(&b, "extension:   %d %s (%s)", ext.ID, protocol.WellKnown.Name(ext.ID), humanize.IBytes(uint64(len(ext.Payload))))
		b.WriteString(extensionDetail(env, ext.ID, lim))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func extensionDetail(env protocol.Envelope, id uint64, lim wire.Limits) string {
	switch id {
	case protocol.ExtLanguage:
		if tag, _, err := env.Language(); err == nil {
			return " " + tag.String()
		}
	case protocol.ExtReplyHash:
		if alg, hash, _, err := env.ReplyHash(lim); err == nil {
			return fmt.Sprintf(" alg %d %x", alg, hash)
		}
	case protocol.ExtLastSeen:
		if refs, _, err := env.LastSeen(lim); err == nil {
			return fmt.Sprintf(" %d refs", len(refs))
		}
	}
	return ""
}

func describeContent(b *strings.Builder, c content.Content, indent string) {
	switch c := c.(type) {
	case content.Text:
		fmt.Fprintf(b, "%sbody: %q\n", indent, c.Body)
	case content.Attachment:
		fmt.Fprintf(b, "%sfile: %q %s %s (%s)\n", indent, c.Filename, c.MediaType, humanize.IBytes(c.Size), c.Disposition)
		if c.Description != "" {
			fmt.Fprintf(b, "%sdescription: %q\n", indent, c.Description)
		}
		if c.Expires != nil {
			fmt.Fprintf(b, "%sexpires: %s\n", indent, c.Expires)
		}
	case content.Reaction:
		fmt.Fprintf(b, "%starget: %s emoji: %s\n", indent, c.Target, string(c.Emoji))
	case content.Location:
		fmt.Fprintf(b, "%sat: %f, %f\n", indent, c.Latitude, c.Longitude)
	case content.Edit:
		fmt.Fprintf(b, "%starget: %s new: %s\n", indent, c.Target, c.New.Tag())
		describeContent(b, c.New, indent+"  ")
	case content.Delete:
		fmt.Fprintf(b, "%starget: %s\n", indent, c.Target)
	case content.Poll:
		fmt.Fprintf(b, "%squestion: %q options: %d\n", indent, c.Question, len(c.Options))
	case content.GroupOperation:
		fmt.Fprintf(b, "%sop: %s operands: %d\n", indent, c.Op, len(c.Operands))
	case content.Receipt:
		fmt.Fprintf(b, "%sat: %s statuses: %d\n", indent, c.Timestamp, len(c.Statuses))
	case content.Multipart:
		fmt.Fprintf(b, "%ssemantics: %s parts: %d\n", indent, c.Semantics, len(c.Parts))
		for _, p := range c.Parts {
			fmt.Fprintf(b, "%s- %s (%s)\n", indent, p.Content.Tag(), p.Disposition)
			describeContent(b, p.Content, indent+"  ")
		}
	case content.Unknown:
		fmt.Fprintf(b, "%spayload: %s\n", indent, humanize.IBytes(uint64(len(c.Payload))))
	}
}
