// Copyright (c) 2024 dsogari
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package tsargp

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// helpEntry is one rendered row of help output: an option (or positional, or
// a nested command) alongside its synopsis.
type helpEntry struct {
	Key     string
	Usage   string
	Synopsis string
	Group   string
}

var helpFuncs = map[string]any{
	"wrapText": wrapText,
}

var defaultHelpTemplate = template.Must(template.New("help").Funcs(helpFuncs).Parse(
	`{{if .Usage}}{{.Usage}}

{{end}}{{range .Groups}}{{if .Header}}{{.Header}}
{{end}}{{range .Entries}}{{wrapText .Usage .Synopsis 80 28}}
{{end}}{{if .Footer}}{{.Footer}}
{{end}}{{end}}`))

// helpGroup is one named section of the rendered help output.
type helpGroup struct {
	Name    string
	Header  string
	Footer  string
	Entries []helpEntry
}

// helpDoc is the top-level template input produced by buildHelpDoc.
type helpDoc struct {
	Usage  string
	Groups []helpGroup
}

// FormatFlags configures Format.
type FormatFlags struct {
	ProgramName string
	Filter      []string
	Template    *template.Template
}

// WithFormatProgramName sets the program name shown in the usage line.
func WithFormatProgramName(name string) func(*FormatFlags) {
	return func(f *FormatFlags) { f.ProgramName = name }
}

// WithFormatFilter restricts rendered entries to the given option keys/names.
func WithFormatFilter(keys ...string) func(*FormatFlags) {
	return func(f *FormatFlags) { f.Filter = keys }
}

// WithFormatTemplate overrides the default rendering template.
func WithFormatTemplate(t *template.Template) func(*FormatFlags) {
	return func(f *FormatFlags) { f.Template = t }
}

// Format renders schema's help text (spec §6), grouping options by their
// Group attribute and, unless a Filter is given, including every option that
// is not Deprecated. A command option appears as one entry; its nested
// schema is not listed.
func Format(schema Schema, opts ...func(*FormatFlags)) string {
	flags := &FormatFlags{Template: defaultHelpTemplate}
	for _, o := range opts {
		o(flags)
	}

	doc := buildHelpDoc(schema, flags)
	var buf bytes.Buffer
	if err := flags.Template.Execute(&buf, doc); err != nil {
		return fmt.Sprintf("error rendering help: %v", err)
	}
	return buf.String()
}

func buildHelpDoc(schema Schema, flags *FormatFlags) helpDoc {
	doc := helpDoc{}
	if flags.ProgramName != "" {
		doc.Usage = "Usage: " + flags.ProgramName + " [options]"
	}

	filter := make(map[string]bool, len(flags.Filter))
	for _, f := range flags.Filter {
		filter[f] = true
	}

	byGroup := map[string]*helpGroup{}
	var order []string

	for _, key := range sortedKeys(schema) {
		opt := schema[key]
		if len(filter) > 0 && !filter[key] && !filter[opt.PreferredName] {
			continue
		}
		if opt.Deprecated {
			continue
		}
		g, ok := byGroup[opt.Group]
		if !ok {
			g = &helpGroup{Name: opt.Group}
			byGroup[opt.Group] = g
			order = append(order, opt.Group)
		}
		g.Entries = append(g.Entries, helpEntry{
			Key:      key,
			Usage:    formatOptionDef(opt),
			Synopsis: opt.Synopsis,
			Group:    opt.Group,
		})
	}

	for _, name := range order {
		g := byGroup[name]
		if g.Name != "" {
			g.Header = g.Name + ":"
		}
		doc.Groups = append(doc.Groups, *g)
	}
	return doc
}

// formatOptionDef renders the "names [=PLACEHOLDER]" column for opt, mirroring
// GNU-style long/short option listings.
func formatOptionDef(opt *OptionDef) string {
	var names []string
	for _, n := range opt.Names {
		if !n.Skip && n.Text != "" {
			names = append(names, n.Text)
		}
	}
	joined := strings.Join(names, ", ")
	if opt.Positional {
		return joined
	}
	if opt.Type.Niladic() {
		return joined
	}
	placeholder := "VALUE"
	if len(opt.Choices) > 0 {
		placeholder = strings.Join(opt.Choices, "|")
	}
	return joined + "=" + placeholder
}

// wrapText wraps a "usage  synopsis" pair into an aligned two-column line,
// continuing onto indented lines at width.
func wrapText(usage, synopsis string, width, indent int) string {
	line := fmt.Sprintf("  %-24s  %s", usage, synopsis)
	buf := bytes.NewBuffer(nil)
	runes := []rune(line)
	linelen, i := 0, 0
	for i < len(runes) {
		if linelen == width {
			buf.WriteString("\n")
			buf.WriteString(strings.Repeat(" ", indent))
			linelen = indent
		}
		buf.WriteRune(runes[i])
		i++
		linelen++
	}
	return buf.String()
}
