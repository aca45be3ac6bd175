package compiler

import (
	"strings"

	"github.com/robbyt/go-hlsyntax/compiler/internal/xmldoc"
	"github.com/robbyt/go-hlsyntax/grammar"
)

func (b *build) readMetadata(root *xmldoc.Element) grammar.Metadata {
	name, _ := b.required(root, "name", "")
	section, _ := b.required(root, "section", "")
	extensions, _ := b.required(root, "extensions", "")

	return grammar.Metadata{
		Name:        name,
		Section:     section,
		Extensions:  splitList(extensions),
		MimeTypes:   splitList(root.AttrOr("mimetype", "")),
		Version:     root.AttrOr("version", ""),
		KateVersion: root.AttrOr("kateversion", ""),
		Priority:    root.AttrOr("priority", ""),
		Author:      root.AttrOr("author", ""),
		License:     root.AttrOr("license", ""),
		Hidden:      b.lenientBool(root, "hidden", false),
	}
}

// splitList splits a ';' separated attribute, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
