package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmrb-io/go-nmrstar/ir"
	"github.com/bmrb-io/go-nmrstar/token"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}

	pos := params.Position
	tok := tokenAtPosition(doc.content, int(pos.Line)+1, int(pos.Character))
	if tok == nil {
		return nil, nil
	}

	hoverText := buildHoverText(doc.entry, tok)
	if hoverText == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

// tokenAtPosition rescans the document and returns the last token whose
// starting line is at or before the cursor line. Multiline values span
// several lines, so a strict line match would miss their bodies.
func tokenAtPosition(content string, line, col int) *token.Token {
	tk := token.New()
	tk.LoadString(content)
	var best *token.Token
	for {
		tok, err := tk.Next()
		if err != nil || tok == nil {
			return best
		}
		if tok.Line > line {
			return best
		}
		best = tok
	}
}

func buildHoverText(ent *ir.Entry, tok *token.Token) string {
	var parts []string

	kind := tokenKind(tok)
	parts = append(parts, fmt.Sprintf("**Kind:** %s", kind))

	val := tok.Text
	if len(val) > 50 {
		val = val[:50] + "..."
	}
	if val != "" {
		parts = append(parts, fmt.Sprintf("**Text:** `%s`", val))
	}

	if tok.Delineator == token.Reference && ent != nil {
		name := strings.TrimPrefix(tok.Text, "$")
		if sf, err := ent.GetSaveframe(name); err == nil {
			parts = append(parts, fmt.Sprintf("**Refers to:** saveframe `%s` with %d tags, %d loops",
				sf.Name, len(sf.Tags), len(sf.Loops)))
		} else {
			parts = append(parts, fmt.Sprintf("**Refers to:** no saveframe named `%s`", name))
		}
	}
	if strings.HasPrefix(tok.Text, "_") && tok.Delineator == token.Bare {
		parts = append(parts, fmt.Sprintf("**Category:** `%s`", ir.TagCategory(tok.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func tokenKind(tok *token.Token) string {
	switch tok.Delineator {
	case token.Comment:
		return "comment"
	case token.Reference:
		return "saveframe reference"
	case token.SingleQuote, token.DoubleQuote:
		return "quoted value"
	case token.Multiline:
		return "semicolon-delineated value"
	}
	lower := strings.ToLower(tok.Text)
	switch {
	case strings.HasPrefix(lower, "data_"):
		return "data block"
	case strings.HasPrefix(lower, "save_"):
		return "saveframe"
	case lower == "loop_" || lower == "stop_":
		return "loop keyword"
	case strings.HasPrefix(tok.Text, "_"):
		return "tag"
	}
	return "bare value"
}
