package main

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	j "github.com/goccy/go-json"

	"github.com/cometsh/atkit/lexicon"
)

// One generated source unit per Lexicon id. The id's dots become path
// segments: app.bsky.feed.post lands in app/bsky/feed/post.go, package feed.
// Each unit embeds the compacted document and registers it with
// lexicon.Default at init time, and exports the canonical name of every
// referenceable def.

var fileTemplate = template.Must(template.New("unit").Parse(`// Code generated by lexgen. DO NOT EDIT.
//
// Source lexicon: {{.ID}}

package {{.Package}}

import (
	"github.com/cometsh/atkit/lexicon"
)

const (
{{- range .Consts}}
	// {{.Comment}}
	{{.Name}} = {{.Value}}
{{- end}}
)

var document{{.Suffix}} = []byte({{.Document}})

func init() {
	if _, err := lexicon.Default.AddJSON(document{{.Suffix}}); err != nil {
		panic("lexgen {{.ID}}: " + err.Error())
	}
}
`))

type unitConst struct {
	Name    string
	Value   string
	Comment string
}

type unitData struct {
	ID       string
	Package  string
	Suffix   string
	Consts   []unitConst
	Document string
}

// emitUnit renders the generated source for one bundle. Returns the
// slash-separated relative output path and the file contents.
func emitUnit(b *lexicon.Bundle, raw []byte) (string, []byte, error) {
	segs := strings.Split(string(b.ID()), ".")
	name := segs[len(segs)-1]

	var compact bytes.Buffer
	if err := j.Compact(&compact, raw); err != nil {
		return "", nil, err
	}

	data := unitData{
		ID:       string(b.ID()),
		Package:  packageName(segs[len(segs)-2]),
		Suffix:   exportName(name),
		Document: strconv.Quote(compact.String()),
	}
	for _, defName := range b.DefNames() {
		d, _ := b.Def(defName)
		constName := exportName(name)
		if defName != "main" {
			constName += exportName(defName)
		}
		data.Consts = append(data.Consts, unitConst{
			Name:    constName,
			Value:   strconv.Quote(d.Canonical),
			Comment: string(d.Kind) + " " + d.Canonical,
		})
	}

	var out bytes.Buffer
	if err := fileTemplate.Execute(&out, data); err != nil {
		return "", nil, err
	}
	rel := strings.Join(segs[:len(segs)-1], "/") + "/" + strings.ToLower(name) + ".go"
	return rel, out.Bytes(), nil
}

// packageName lowercases a path segment into a legal package identifier.
func packageName(seg string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(seg) {
		if r == '-' {
			continue
		}
		sb.WriteRune(r)
	}
	p := sb.String()
	if p == "" || p[0] >= '0' && p[0] <= '9' {
		p = "lex" + p
	}
	return p
}

// exportName capitalizes an NSID name or def name for use as a Go
// identifier.
func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
