// syntax.go: the data-driven surface syntax table.
//
// GIANT admits many synonymous phrasings for the same construct ("make x be",
// "set x to", "let x be equal to"). The lexer never special-cases a phrasing;
// it consults the table embedded here, which maps every surface phrase to one
// canonical keyword or operator name. The parser only ever sees canonical
// names.
package giant

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed syntax.yaml
var syntaxYAML []byte

// Canonical keyword classes produced by the lexer (Token.Literal for KEYWORD).
const (
	KwAssign         = "assign"
	KwConnector      = "connector"
	KwPrint          = "print"
	KwAnchorDecl     = "anchor_decl"
	KwAction         = "action"
	KwListAnchors    = "list_anchors"
	KwDescribeAnchor = "describe_anchor"
	KwRelational     = "relational"
	KwRelativeTo     = "relative_to"
	KwWhen           = "when"
	KwIs             = "is"
	KwStop           = "stop"
)

// Canonical operator names produced by the lexer (Token.Literal for OPERATOR).
// The *_swapped variants lower with their operands reversed: "a added to b"
// means b + a.
const (
	OpPlus        = "plus"
	OpPlusSwapped = "plus_swapped"
	OpMinus       = "minus"
	OpMinusSwap   = "minus_swapped"
	OpTimes       = "times"
	OpDivide      = "divide"
)

// phraseInfo is one resolved table entry.
type phraseInfo struct {
	words     []string // the phrase, split at spaces
	canonical string
	isOp      bool
}

type syntaxTable struct {
	// byFirstWord indexes phrases by their leading word, longest phrase
	// first, so the lexer can try greedy multi-word matches before falling
	// back to shorter ones.
	byFirstWord map[string][]phraseInfo
}

type syntaxFile struct {
	Keywords  map[string][]string `yaml:"keywords"`
	Operators map[string][]string `yaml:"operators"`
}

var syntax = mustLoadSyntax(syntaxYAML)

func mustLoadSyntax(raw []byte) *syntaxTable {
	var sf syntaxFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		panic(fmt.Sprintf("giant: bad embedded syntax table: %v", err))
	}
	t := &syntaxTable{byFirstWord: map[string][]phraseInfo{}}
	add := func(canonical, phrase string, isOp bool) {
		words := strings.Fields(phrase)
		if len(words) == 0 {
			panic(fmt.Sprintf("giant: empty phrase under %q", canonical))
		}
		t.byFirstWord[words[0]] = append(t.byFirstWord[words[0]], phraseInfo{
			words:     words,
			canonical: canonical,
			isOp:      isOp,
		})
	}
	for canonical, phrases := range sf.Keywords {
		for _, ph := range phrases {
			add(canonical, ph, false)
		}
	}
	for canonical, phrases := range sf.Operators {
		for _, ph := range phrases {
			add(canonical, ph, true)
		}
	}
	for w := range t.byFirstWord {
		entries := t.byFirstWord[w]
		sort.SliceStable(entries, func(i, j int) bool {
			return len(entries[i].words) > len(entries[j].words)
		})
	}
	return t
}

// phrasesFor returns candidate phrases whose first word is w, longest first.
func (t *syntaxTable) phrasesFor(w string) []phraseInfo {
	return t.byFirstWord[w]
}
