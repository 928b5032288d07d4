package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/zvalue/codegen"
	"github.com/wippyai/zvalue/internal/shape"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

type row struct {
	pkg, name, kind, sig, flavors, lifetime string
}

func (r row) cells() []string {
	return []string{r.pkg, r.name, r.kind, r.sig, r.flavors, r.lifetime}
}

var listHeader = row{"PACKAGE", "TYPE", "KIND", "SIGNATURE", "FLAVORS", "LIFETIME"}

func rows(pkgs []*codegen.Package) []row {
	var out []row
	for _, pkg := range pkgs {
		g := codegen.NewGenerator(pkg)
		for _, t := range pkg.Types {
			out = append(out, describe(g, pkg, t))
		}
	}
	return out
}

func describe(g *codegen.Generator, pkg *codegen.Package, t *codegen.Type) row {
	sig, err := g.Signature(t)
	if err != nil {
		sig = "error: " + err.Error()
	}
	return row{
		pkg:      pkg.Path,
		name:     t.Receiver(),
		kind:     t.Desc.Kind.String(),
		sig:      sig,
		flavors:  flavorName(t.Desc.Flavors),
		lifetime: t.Desc.Lifetime,
	}
}

func flavorName(f shape.Flavor) string {
	var names []string
	if f.Has(shape.FlavorValue) {
		names = append(names, "value")
	}
	if f.Has(shape.FlavorOwned) {
		names = append(names, "owned")
	}
	return strings.Join(names, ",")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printList writes one line per derived type. Output is styled only when
// w is a terminal.
func printList(w io.Writer, pkgs []*codegen.Package) error {
	all := append([]row{listHeader}, rows(pkgs)...)

	widths := make([]int, len(listHeader.cells()))
	for _, r := range all {
		for i, c := range r.cells() {
			widths[i] = max(widths[i], len(c))
		}
	}

	styled := isTerminal(w)
	for n, r := range all {
		var b strings.Builder
		for i, c := range r.cells() {
			switch {
			case styled && n == 0:
				b.WriteString(cellStyle.Inherit(headerStyle).Width(widths[i] + 2).Render(c))
			case styled:
				b.WriteString(cellStyle.Width(widths[i] + 2).Render(c))
			case i < len(widths)-1:
				fmt.Fprintf(&b, "%-*s  ", widths[i], c)
			default:
				b.WriteString(c)
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
