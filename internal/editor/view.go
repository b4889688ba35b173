package editor

import (
	"fmt"
	"strings"
)

// NoVerdict is shown before any result is available.
const NoVerdict = "—"

// View is the rendered result panel.
type View struct {
	Verdict       string `json:"verdict"`
	Running       bool   `json:"running"`
	OutputOpen    bool   `json:"output_open"`
	Runtime       string `json:"runtime,omitempty"`
	Memory        string `json:"memory,omitempty"`
	Stdout        string `json:"stdout,omitempty"`
	Stderr        string `json:"stderr,omitempty"`
	CompileOutput string `json:"compile_output,omitempty"`
}

// Render builds the panel for s. Output fields are filled only while the
// panel is open and only when the judge sent a non-empty value.
func Render(s Session) View {
	v := View{
		Verdict:    NoVerdict,
		Running:    s.Phase == Running,
		OutputOpen: s.OutputOpen,
	}
	r := s.Result
	if d := r.Verdict(); d != "" {
		v.Verdict = d
	}
	if r == nil || !s.OutputOpen {
		return v
	}
	if r.Time != nil && *r.Time != "" {
		v.Runtime = fmt.Sprintf("Runtime: %ss", *r.Time)
	}
	if r.Memory != nil {
		v.Memory = fmt.Sprintf("Memory: %d KB", *r.Memory)
	}
	v.Stdout = text(r.Stdout)
	v.Stderr = text(r.Stderr)
	v.CompileOutput = text(r.CompileOutput)
	return v
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimRight(*p, "\n")
}

// String renders the panel as plain text, one line per present field.
func (v View) String() string {
	var b strings.Builder
	b.WriteString("Verdict: " + v.Verdict)
	if v.Running {
		b.WriteString(" (running)")
	}
	for _, line := range []struct{ label, value string }{
		{"", v.Runtime},
		{"", v.Memory},
		{"stdout", v.Stdout},
		{"stderr", v.Stderr},
		{"compile_output", v.CompileOutput},
	} {
		if line.value == "" {
			continue
		}
		b.WriteByte('\n')
		if line.label != "" {
			b.WriteString(line.label + ":\n")
		}
		b.WriteString(line.value)
	}
	return b.String()
}
