package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/hholst80/flowdoc/internal/controller"
	"github.com/hholst80/flowdoc/internal/docmodel"
	"github.com/hholst80/flowdoc/internal/measure"
)

// textPainter implements controller.Painter as a non-interactive,
// one-shot terminal renderer: it prints a page/fragment summary to
// stdout using termenv's adaptive color, the same dark/light
// background detection glow's own Terminal.HasDarkBackground uses,
// but here only to choose a page-number accent color rather than to
// drive an interactive bubbletea program (SPEC_FULL.md's DOMAIN STACK
// table: the demo is a one-shot renderer, not an event loop, so
// bubbletea/lipgloss/glamour are not pulled in).
type textPainter struct {
	out     *termenv.Output
	accent  termenv.Color
	columns int
}

func newTextPainter(columns int) *textPainter {
	out := termenv.NewOutput(os.Stdout)
	p := &textPainter{out: out, columns: columns}
	if out.HasDarkBackground() {
		p.accent = out.Color("#68CCCA")
	} else {
		p.accent = out.Color("#1C8760")
	}
	return p
}

func (p *textPainter) SetProviders(controller.DecorationProvider, controller.DecorationProvider) {}

func (p *textPainter) SetData(blocks []docmodel.FlowBlock, measures map[string]docmodel.Measure,
	headerBlocks []docmodel.FlowBlock, headerMeasures map[string]docmodel.Measure,
	footerBlocks []docmodel.FlowBlock, footerMeasures map[string]docmodel.Measure) {
	// The demo paints directly from the Layout handed to Paint; it
	// doesn't need to retain blocks/measures between calls.
}

func (p *textPainter) Paint(layout docmodel.Layout, host any) error {
	for _, page := range layout.Pages {
		p.paintPage(page)
	}
	fmt.Println(p.rule())
	fmt.Printf("%d pages, page gap %s units\n", len(layout.Pages), humanize.Commaf(layout.PageGap))
	return nil
}

func (p *textPainter) paintPage(page docmodel.Page) {
	title := fmt.Sprintf("── page %d (%s × %s) ──", page.Number,
		humanize.Commaf(page.Size.Width), humanize.Commaf(page.Size.Height))
	fmt.Println(p.out.String(p.truncate(title)).Foreground(p.accent).String())

	for _, frag := range page.Fragments {
		line := p.describeFragment(frag)
		fmt.Println(p.truncate(line))
	}
}

func (p *textPainter) describeFragment(f docmodel.Fragment) string {
	switch f.Kind {
	case docmodel.FragmentPara:
		pf := f.Para
		cont := ""
		if pf.ContinuesFromPrev {
			cont = " (cont.)"
		}
		return fmt.Sprintf("  para %-8s lines %d-%d  pm[%d,%d)%s", short(pf.BlockID), pf.FromLine, pf.ToLine, pf.PMStart, pf.PMEnd, cont)
	case docmodel.FragmentTable:
		tf := f.Table
		return fmt.Sprintf("  table %-8s rows %d-%d  %d cols", short(tf.BlockID), tf.FromRow, tf.ToRow, maxInt(0, len(tf.Metadata.ColumnBoundaries)-1))
	case docmodel.FragmentImage:
		img := f.Image
		return fmt.Sprintf("  image %-8s %sx%s", short(img.BlockID), humanize.Commaf(img.Width), humanize.Commaf(img.Height))
	case docmodel.FragmentDrawing:
		dr := f.Drawing
		return fmt.Sprintf("  drawing %-8s %sx%s", short(dr.BlockID), humanize.Commaf(dr.Width), humanize.Commaf(dr.Height))
	default:
		return "  (unknown fragment)"
	}
}

// truncate clips s to the painter's configured terminal column budget
// using printable-width accounting (ANSI SGR sequences stripped
// before counting), the same budgeting the measure package's
// PrintableWidth exists for.
func (p *textPainter) truncate(s string) string {
	if p.columns <= 0 || measure.PrintableWidth(s) <= p.columns {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && measure.PrintableWidth(string(runes)) > p.columns-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func (p *textPainter) rule() string {
	return strings.Repeat("─", maxInt(10, minInt(p.columns, 60)))
}

func short(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
