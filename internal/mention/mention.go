// Package mention extracts @username tokens from message bodies.
//
// Extraction is a single goldmark AST pass so the anti-spoofing rule stays
// auditable: a token in plain text is a mention, a token anywhere inside a
// link construct (link text, destination, autolink) is a disguised mention
// and must never be treated as a real one.
package mention

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/waypost-dev/waypost/internal/domain"
)

// Platform usernames are alphanumeric plus underscore. The leading group
// keeps email-like tokens (user@host.com) from producing a false mention.
var tokenPattern = regexp.MustCompile(`(?:^|[^A-Za-z0-9_@])@([A-Za-z0-9_]+)`)

// Extract returns the set of candidate usernames mentioned in body.
// Duplicates are collapsed, order is lexicographic. Matching candidates
// against real users is the dispatcher's job.
func Extract(body string) []domain.Username {
	plain, _ := parse(body)
	return plain
}

// FindDisguised returns mention tokens wrapped in link syntax, e.g.
// [@name](https://evil.example). Their presence fails body validation.
func FindDisguised(body string) []domain.Username {
	_, disguised := parse(body)
	return disguised
}

func parse(body string) (plain, disguised []domain.Username) {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	// Plain text is accumulated into one buffer and tokenized once at the
	// end. Goldmark splits Text nodes at emphasis delimiter candidates, so
	// @jane_doe arrives as the segments "@jane", "_", "doe"; matching each
	// segment on its own would truncate the username.
	var plainBuf bytes.Buffer
	disguisedSet := make(map[string]struct{})

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				plainBuf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			collectTokens(disguisedSet, nodeText(node, src))
			collectTokens(disguisedSet, node.Destination)
			plainBuf.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			collectTokens(disguisedSet, nodeText(node, src))
			collectTokens(disguisedSet, node.Destination)
			plainBuf.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			collectTokens(disguisedSet, node.URL(src))
			plainBuf.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			// code is neither a mention nor an attack
			plainBuf.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			plainBuf.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				plainBuf.WriteByte('\n')
			}
		case *ast.String:
			plainBuf.Write(node.Value)
		default:
			// other inline markup (emphasis and friends) swallows its
			// delimiters; a separator keeps the surrounding text from
			// fusing into one token
			if n.Type() == ast.TypeInline {
				plainBuf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	plainSet := make(map[string]struct{})
	collectTokens(plainSet, plainBuf.Bytes())
	return sorted(plainSet), sorted(disguisedSet)
}

func collectTokens(into map[string]struct{}, chunk []byte) {
	for _, m := range tokenPattern.FindAllSubmatch(chunk, -1) {
		into[string(m[1])] = struct{}{}
	}
}

// nodeText concatenates the raw text segments under a node.
func nodeText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}

func sorted(set map[string]struct{}) []domain.Username {
	if len(set) == 0 {
		return nil
	}
	out := make([]domain.Username, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
