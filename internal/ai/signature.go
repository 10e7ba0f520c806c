package ai

import (
	"fmt"
	"strings"
)

// Field is one named input or output of a Signature.
type Field struct {
	Name string
	Type string // human-readable type shown to the model, e.g. "list[Page]"
	Desc string
}

// Signature declares a stage's contract: what the model is told to do, what it
// receives and which JSON keys it must answer with.
type Signature struct {
	Name        string
	Instruction string
	Inputs      []Field
	Outputs     []Field
}

// OutputNames returns the output keys in declaration order.
func (s Signature) OutputNames() []string {
	names := make([]string, len(s.Outputs))
	for i, f := range s.Outputs {
		names[i] = f.Name
	}
	return names
}

// Render builds the system prompt for the signature.
func (s Signature) Render(chainOfThought bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(s.Instruction))
	b.WriteString("\n\n")

	writeFields(&b, "Your input fields are:", s.Inputs)
	writeFields(&b, "Your output fields are:", s.Outputs)

	b.WriteString("The inputs arrive as a single JSON object in the user message.\n")

	keys := s.OutputNames()
	if chainOfThought {
		keys = append([]string{"reasoning"}, keys...)
		b.WriteString("Think step by step in the \"reasoning\" field before giving the outputs.\n")
	}
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	fmt.Fprintf(&b, "Respond with exactly one JSON object with the keys %s, in that order. ", strings.Join(quoted, ", "))
	b.WriteString("Do not wrap the JSON in markdown fences and do not add any text outside it.")
	return b.String()
}

func writeFields(b *strings.Builder, title string, fields []Field) {
	if len(fields) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for i, f := range fields {
		fmt.Fprintf(b, "%d. `%s` (%s)", i+1, f.Name, f.Type)
		if f.Desc != "" {
			fmt.Fprintf(b, ": %s", f.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
