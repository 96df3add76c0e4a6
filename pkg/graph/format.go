package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/lattice-kg/lattice/pkg/common"
)

// ContextHeader introduces every formatted context block.
const ContextHeader = "Knowledge Graph Information:\n\n"

// NoContextMessage is rendered when nothing relevant was assembled. The
// downstream model sees an explicit statement instead of an empty prompt.
const NoContextMessage = "No relevant information found in the knowledge graph."

// Formatter renders assembled context into a plain-text block for a
// downstream text-generation call. Output order always follows input order;
// the formatter never re-ranks what the upstream component assembled.
//
// When MaxTokens is positive, whole entity blocks are dropped from the tail
// once the budget would be exceeded. Encoder names a tiktoken encoding and
// defaults to o200k_base.
type Formatter struct {
	Encoder   string
	MaxTokens int
}

// FormatContexts renders one block per entity context: the entity line, its
// properties (sorted by key), then outgoing and incoming relationship lines
// with the neighbor's name/type and any description/strength qualifier.
func (f Formatter) FormatContexts(contexts []*EntityContext) (string, error) {
	if len(contexts) == 0 {
		return NoContextMessage, nil
	}

	blocks := make([]string, 0, len(contexts))
	for i, ec := range contexts {
		var b strings.Builder
		fmt.Fprintf(&b, "Entity #%d: %s (%s)\n", i+1, ec.Entity.Name, ec.Entity.Type)
		writeProperties(&b, ec.Entity.Properties)

		if len(ec.Outgoing) > 0 || len(ec.Incoming) > 0 {
			b.WriteString("  Relationships:\n")
			for _, n := range ec.Outgoing {
				writeRelationshipLine(&b, n.Relationship, "->", n.Entity)
			}
			for _, n := range ec.Incoming {
				writeRelationshipLine(&b, n.Relationship, "<-", n.Entity)
			}
		}
		blocks = append(blocks, b.String())
	}

	return f.assemble(blocks)
}

// FormatTraversal renders a traversal result as a visited-order listing, one
// line per step with its depth and the relationship used to reach it.
func (f Formatter) FormatTraversal(steps []TraversalStep) (string, error) {
	if len(steps) == 0 {
		return NoContextMessage, nil
	}

	blocks := make([]string, 0, len(steps))
	for _, step := range steps {
		var b strings.Builder
		fmt.Fprintf(&b, "[depth %d] %s (%s)", step.Depth, step.Entity.Name, step.Entity.Type)
		if step.Via != nil {
			fmt.Fprintf(&b, " via %s %s -> %s", step.Via.Type, step.Via.Source, step.Via.Target)
			if s := step.Via.Strength(); s != "" {
				fmt.Fprintf(&b, " [%s]", s)
			}
		}
		b.WriteString("\n")
		writeProperties(&b, step.Entity.Properties)
		blocks = append(blocks, b.String())
	}

	return f.assemble(blocks)
}

func writeProperties(b *strings.Builder, props map[string]string) {
	if len(props) == 0 {
		return
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("  Properties:\n")
	for _, k := range keys {
		fmt.Fprintf(b, "    - %s: %s\n", k, props[k])
	}
}

func writeRelationshipLine(b *strings.Builder, rel common.Relationship, arrow string, neighbor common.Entity) {
	fmt.Fprintf(b, "    - %s %s %s (%s)", rel.Type, arrow, neighbor.Name, neighbor.Type)
	if s := rel.Strength(); s != "" {
		fmt.Fprintf(b, " [%s]", s)
	}
	b.WriteString("\n")
	if d := rel.Description(); d != "" {
		fmt.Fprintf(b, "      description: %s\n", d)
	}
}

// assemble joins blocks under the header, enforcing the token budget by
// dropping whole blocks from the tail rather than cutting one mid-line.
func (f Formatter) assemble(blocks []string) (string, error) {
	if f.MaxTokens <= 0 {
		return ContextHeader + strings.Join(blocks, "\n"), nil
	}

	encoder := f.Encoder
	if encoder == "" {
		encoder = "o200k_base"
	}
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return "", err
	}

	used := len(enc.Encode(ContextHeader, nil, nil))
	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		n := len(enc.Encode(block+"\n", nil, nil))
		if used+n > f.MaxTokens && len(kept) > 0 {
			break
		}
		kept = append(kept, block)
		used += n
	}

	return ContextHeader + strings.Join(kept, "\n"), nil
}
