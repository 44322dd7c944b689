package cssapply

import "strings"

// directiveProp is the custom-property spelling of the apply directive.
// Quoting its value is allowed so editors that require string-typed
// custom properties stay happy; the quotes carry no meaning.
const directiveProp = "--at-apply"

// directiveAtNames are the at-rule spellings of the apply directive.
var directiveAtNames = map[string]bool{
	"apply": true,
}

// Directive is one @apply / --at-apply occurrence found in a
// stylesheet: the utility tokens to expand, the selector of the
// enclosing style rule, and any at-rule context already wrapping it.
type Directive struct {
	HostSelector string
	Ancestors    []Wrapper
	Tokens       []string

	// SourceNode is the original tree node (an *AtRule or a
	// *Declaration) the expansion replaces.
	SourceNode Node
}

// ScanDirectives walks a parsed stylesheet and returns its apply
// directives in document order. Scanning is read-only; the tree is
// not modified.
func ScanDirectives(sheet *Stylesheet) []*Directive {
	var found []*Directive
	scanNodes(sheet.Nodes, nil, &found)
	return found
}

func scanNodes(nodes []Node, ancestors []Wrapper, found *[]*Directive) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *AtRule:
			if !v.HasBlock {
				continue
			}
			scanNodes(v.Nodes, appendWrapper(ancestors, v), found)
		case *Rule:
			scanRule(v, ancestors, found)
		}
	}
}

func scanRule(rule *Rule, ancestors []Wrapper, found *[]*Directive) {
	for _, n := range rule.Nodes {
		switch v := n.(type) {
		case *AtRule:
			if directiveAtNames[v.Name] {
				*found = append(*found, &Directive{
					HostSelector: rule.Selector,
					Ancestors:    ancestors,
					Tokens:       splitTokens(v.Params),
					SourceNode:   v,
				})
			}
		case *Declaration:
			if v.Prop == directiveProp {
				*found = append(*found, &Directive{
					HostSelector: rule.Selector,
					Ancestors:    ancestors,
					Tokens:       splitTokens(v.Value),
					SourceNode:   v,
				})
			}
		}
	}
}

// appendWrapper extends an ancestor chain with at-rules that scope
// their contents; other block at-rules (@layer, @keyframes) do not
// constrain where generated rules may sit.
func appendWrapper(ancestors []Wrapper, at *AtRule) []Wrapper {
	var kind WrapperKind
	switch at.Name {
	case "media":
		kind = WrapperMedia
	case "supports":
		kind = WrapperSupports
	default:
		return ancestors
	}
	chain := make([]Wrapper, len(ancestors), len(ancestors)+1)
	copy(chain, ancestors)
	return append(chain, Wrapper{Kind: kind, Condition: at.Params})
}

// splitTokens unquotes a directive's token string and splits it into
// whitespace-separated utility tokens. Quoting has no semantic effect.
func splitTokens(raw string) []string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') ||
			(raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			raw = raw[1 : len(raw)-1]
		}
	}
	return strings.Fields(raw)
}
