package cssapply

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Node is a member of the stylesheet tree: *Rule, *AtRule,
// *Declaration or *Comment.
type Node interface {
	node()
}

// Stylesheet is the parsed rule tree of one CSS source.
type Stylesheet struct {
	Nodes []Node
}

// Rule is a style rule: a selector and its block.
type Rule struct {
	Selector string
	Nodes    []Node
}

// AtRule is an at-rule such as @media, @supports or @apply. Statement
// at-rules (@import, @apply) carry no block; HasBlock distinguishes
// `@layer a;` from `@layer a {}`.
type AtRule struct {
	Name     string // keyword without the leading '@'
	Params   string
	Nodes    []Node
	HasBlock bool
}

// Declaration is a single `prop: value` pair. Custom properties keep
// their leading dashes in Prop.
type Declaration struct {
	Prop  string
	Value string
}

// Comment is a comment that appears at statement position.
type Comment struct {
	Text string
}

func (*Rule) node()        {}
func (*AtRule) node()      {}
func (*Declaration) node() {}
func (*Comment) node()     {}

// cssParser drives the css lexer and assembles the node tree.
type cssParser struct {
	lexer *css.Lexer
	// one-token pushback so block dispatch can re-examine a terminator
	peeked   bool
	peekType css.TokenType
	peekText []byte
}

// ParseStylesheet parses CSS source text into a Stylesheet tree.
// The parser is permissive: malformed constructs are skipped rather
// than failing the whole sheet, matching how browsers recover.
func ParseStylesheet(code string) *Stylesheet {
	p := &cssParser{lexer: css.NewLexer(parse.NewInputString(code))}
	return &Stylesheet{Nodes: p.parseNodes(true)}
}

func (p *cssParser) next() (css.TokenType, []byte) {
	if p.peeked {
		p.peeked = false
		return p.peekType, p.peekText
	}
	return p.lexer.Next()
}

func (p *cssParser) pushback(tt css.TokenType, text []byte) {
	p.peeked = true
	p.peekType = tt
	p.peekText = text
}

// parseNodes consumes statements until EOF (topLevel) or a closing
// brace. Dispatch follows the CSS error-recovery rule: a statement
// that reaches `{` first is a (at-)rule, one that reaches `;` or `}`
// first is a declaration.
func (p *cssParser) parseNodes(topLevel bool) []Node {
	var nodes []Node

	for {
		tt, text := p.next()

		switch {
		case tt == css.ErrorToken:
			return nodes

		case tt == css.WhitespaceToken:
			continue

		case tt == css.CommentToken:
			nodes = append(nodes, &Comment{Text: string(text)})

		case tt == css.RightBraceToken:
			if topLevel {
				continue // stray brace, skip
			}
			return nodes

		case tt == css.AtKeywordToken:
			name := strings.TrimPrefix(string(text), "@")
			nodes = append(nodes, p.parseAtRule(name))

		default:
			p.pushback(tt, text)
			if n := p.parseRuleOrDeclaration(); n != nil {
				nodes = append(nodes, n)
			}
		}
	}
}

// parseAtRule consumes the params and, when present, the block of an
// at-rule whose keyword has already been read.
func (p *cssParser) parseAtRule(name string) *AtRule {
	at := &AtRule{Name: name}
	var params strings.Builder

	for {
		tt, text := p.next()
		switch tt {
		case css.ErrorToken, css.SemicolonToken:
			at.Params = strings.TrimSpace(params.String())
			return at
		case css.RightBraceToken:
			// unterminated statement at-rule inside a block
			p.pushback(tt, text)
			at.Params = strings.TrimSpace(params.String())
			return at
		case css.LeftBraceToken:
			at.Params = strings.TrimSpace(params.String())
			at.HasBlock = true
			at.Nodes = p.parseNodes(false)
			return at
		case css.WhitespaceToken:
			params.WriteByte(' ')
		default:
			params.Write(text)
		}
	}
}

// parseRuleOrDeclaration reads tokens until it can tell whether the
// statement is a style rule or a declaration.
func (p *cssParser) parseRuleOrDeclaration() Node {
	var buf strings.Builder
	colonAt := -1 // byte offset of the first top-level colon
	parenDepth := 0
	bracketDepth := 0

	for {
		tt, text := p.next()
		switch tt {
		case css.ErrorToken, css.SemicolonToken:
			return declarationFrom(buf.String(), colonAt)
		case css.RightBraceToken:
			p.pushback(tt, text)
			return declarationFrom(buf.String(), colonAt)
		case css.LeftBraceToken:
			return &Rule{
				Selector: normalizeSelector(buf.String()),
				Nodes:    p.parseNodes(false),
			}
		case css.ColonToken:
			if colonAt < 0 && parenDepth == 0 && bracketDepth == 0 {
				colonAt = buf.Len()
			}
			buf.WriteByte(':')
		case css.LeftParenthesisToken:
			parenDepth++
			buf.WriteByte('(')
		case css.RightParenthesisToken:
			parenDepth--
			buf.WriteByte(')')
		case css.LeftBracketToken:
			bracketDepth++
			buf.WriteByte('[')
		case css.RightBracketToken:
			bracketDepth--
			buf.WriteByte(']')
		case css.FunctionToken:
			parenDepth++
			buf.Write(text)
		case css.WhitespaceToken:
			buf.WriteByte(' ')
		case css.CommentToken:
			// inline comments inside statements are dropped
		default:
			buf.Write(text)
		}
	}
}

// declarationFrom splits collected statement text at the recorded
// top-level colon. Text with no colon is discarded (malformed).
func declarationFrom(text string, colonAt int) Node {
	if colonAt < 0 {
		return nil
	}
	prop := strings.TrimSpace(text[:colonAt])
	value := strings.TrimSpace(text[colonAt+1:])
	if prop == "" {
		return nil
	}
	return &Declaration{Prop: prop, Value: value}
}

// normalizeSelector collapses whitespace runs and normalizes the
// spacing around top-level commas, preserving list structure and
// leaving quoted or bracketed commas alone.
func normalizeSelector(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Join(SplitSelectorList(s), ", ")
}

// Serialize renders the tree back to formatted CSS text.
func (s *Stylesheet) Serialize() string {
	var b strings.Builder
	writeNodes(&b, s.Nodes, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node, depth int) {
	first := true
	for _, n := range nodes {
		if !first && depth == 0 {
			b.WriteByte('\n')
		}
		first = false
		writeNode(b, n, depth)
	}
}

func writeNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := n.(type) {
	case *Comment:
		b.WriteString(indent)
		b.WriteString(v.Text)
		b.WriteByte('\n')

	case *Declaration:
		b.WriteString(indent)
		b.WriteString(v.Prop)
		b.WriteString(": ")
		b.WriteString(v.Value)
		b.WriteString(";\n")

	case *Rule:
		b.WriteString(indent)
		b.WriteString(indentSelector(v.Selector, indent))
		b.WriteString(" {\n")
		writeNodes(b, v.Nodes, depth+1)
		b.WriteString(indent)
		b.WriteString("}\n")

	case *AtRule:
		b.WriteString(indent)
		b.WriteByte('@')
		b.WriteString(v.Name)
		if v.Params != "" {
			b.WriteByte(' ')
			b.WriteString(v.Params)
		}
		if !v.HasBlock {
			b.WriteString(";\n")
			return
		}
		b.WriteString(" {\n")
		writeNodes(b, v.Nodes, depth+1)
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}

// indentSelector puts each branch of a selector list on its own line,
// aligned with the rule's indentation.
func indentSelector(selector, indent string) string {
	branches := SplitSelectorList(selector)
	if len(branches) <= 1 {
		return selector
	}
	return strings.Join(branches, ",\n"+indent)
}

// SplitSelectorList splits a selector list on top-level commas,
// leaving commas inside :is(...), [attr=","] and friends alone.
func SplitSelectorList(selector string) []string {
	var branches []string
	var current strings.Builder
	depth := 0
	inString := byte(0)

	for i := 0; i < len(selector); i++ {
		c := selector[i]
		switch {
		case inString != 0:
			current.WriteByte(c)
			if c == inString && (i == 0 || selector[i-1] != '\\') {
				inString = 0
			}
		case c == '"' || c == '\'':
			inString = c
			current.WriteByte(c)
		case c == '(' || c == '[':
			depth++
			current.WriteByte(c)
		case c == ')' || c == ']':
			depth--
			current.WriteByte(c)
		case c == ',' && depth == 0:
			branches = append(branches, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if t := strings.TrimSpace(current.String()); t != "" {
		branches = append(branches, t)
	}
	return branches
}
