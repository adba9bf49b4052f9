package protocol

import (
	"github.com/ZentaChain/zentalk-content/pkg/content"
	"github.com/ZentaChain/zentalk-content/pkg/extension"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

// Envelope is one message: its content plus cross-cutting metadata. It owns
// its content and extensions outright and is never modified by the codec.
type Envelope struct {
	Content      content.Content
	ReplyTo      content.Reference // message being replied to, nil when absent
	Replaces     content.Reference // message this one supersedes, nil when absent
	Expires      *wire.Timestamp
	FallbackText *string // explicit plain text rendering
	Extensions   []extension.Extension
}

// Fallback returns the explicit fallback text, or one synthesized from the
// content when none was sent.
func (e Envelope) Fallback() string {
	if e.FallbackText != nil {
		return *e.FallbackText
	}
	return content.Fallback(e.Content)
}

// Extension returns the extension with id, if present.
func (e Envelope) Extension(id uint64) (extension.Extension, bool) {
	return extension.Find(e.Extensions, id)
}
