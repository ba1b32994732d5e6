package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/hholst80/flowdoc/internal/controller"
	"github.com/hholst80/flowdoc/internal/docmodel"
)

// fixtureRun, fixtureParagraph, fixtureBlock, and fixtureDoc describe
// the minimal on-disk JSON shape this demo tool accepts in place of a
// real document-state collaborator's JSON() output (spec.md §6: "The
// CORE defines no on-wire format"). This is the demo's own adapter
// input, not a CORE concern.
type fixtureRun struct {
	Text     string `json:"text"`
	Bold     bool   `json:"bold"`
	Italic   bool   `json:"italic"`
	FontSize int    `json:"fontSize"` // half-points; 0 means "use default"
}

type fixtureParagraph struct {
	StyleID   string        `json:"styleId"`
	Alignment string        `json:"alignment"`
	Runs      []fixtureRun  `json:"runs"`
}

type fixtureBlock struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"` // paragraph | table | sectionBreak
	Paragraph *fixtureParagraph `json:"paragraph,omitempty"`
}

type fixtureSection struct {
	PageWidth      float64 `json:"pageWidth"`
	PageHeight     float64 `json:"pageHeight"`
	MarginTop      float64 `json:"marginTop"`
	MarginRight    float64 `json:"marginRight"`
	MarginBottom   float64 `json:"marginBottom"`
	MarginLeft     float64 `json:"marginLeft"`
	HeaderDistance float64 `json:"headerDistance"`
	FooterDistance float64 `json:"footerDistance"`
}

type fixtureDoc struct {
	Section fixtureSection `json:"section"`
	Blocks  []fixtureBlock `json:"blocks"`
}

// jsonDocument implements controller.DocumentState over a fixture file
// reloaded from disk on each Reload call (driven by the fsnotify
// watcher in watch.go).
type jsonDocument struct {
	path         string
	raw          fixtureDoc
	anchor, head int
}

func loadDocument(path string) (*jsonDocument, error) {
	d := &jsonDocument{path: path}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the fixture file from disk. Called on startup and
// by the fsnotify-driven watch loop.
func (d *jsonDocument) Reload() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("reading document fixture %s: %w", d.path, err)
	}
	var raw fixtureDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing document fixture %s: %w", d.path, err)
	}
	d.raw = raw
	return nil
}

// JSON implements controller.DocumentState.
func (d *jsonDocument) JSON() any { return d.raw }

// Selection implements controller.DocumentState. The demo tool has no
// live cursor; it always reports a collapsed selection at the start
// of the document.
func (d *jsonDocument) Selection() (anchor, head int) { return d.anchor, d.head }

// fixtureAdapter implements controller.Adapter by walking a fixtureDoc
// and producing docmodel.FlowBlocks. It mints a block id via
// uuid.NewString() whenever the fixture omits one, preserving the
// incremental layout engine's requirement of stable ids across
// updates (spec.md §4.C) for the blocks a real document model already
// named.
type fixtureAdapter struct{}

func (fixtureAdapter) ToFlowBlocks(docJSON any, _ controller.AdapterOptions) (controller.AdapterResult, error) {
	raw, ok := docJSON.(fixtureDoc)
	if !ok {
		return controller.AdapterResult{}, fmt.Errorf("fixtureAdapter: unexpected document JSON type %T", docJSON)
	}

	pos := 0
	blocks := make([]docmodel.FlowBlock, 0, len(raw.Blocks))
	var bookmarks []docmodel.Bookmark

	for _, b := range raw.Blocks {
		id := b.ID
		if id == "" {
			id = uuid.NewString()
		}

		switch b.Kind {
		case "paragraph", "":
			p := fixtureParagraphToBlock(b.Paragraph, &pos)
			blocks = append(blocks, docmodel.FlowBlock{ID: id, Kind: docmodel.BlockParagraph, Paragraph: p})
			bookmarks = append(bookmarks, docmodel.Bookmark{Name: id, Pos: p.Runs[0].PMStart})
		default:
			// Unknown kinds are skipped rather than failing the whole
			// pass — the demo favors showing partial output over no
			// output (it is not the CORE's error-handling surface).
			continue
		}
	}

	section := docmodel.SectionBreak{
		PageSize: docmodel.PageSize{Width: orDefault(raw.Section.PageWidth, 612), Height: orDefault(raw.Section.PageHeight, 792)},
		Margins: docmodel.Margins{
			Top: orDefault(raw.Section.MarginTop, 72), Right: orDefault(raw.Section.MarginRight, 72),
			Bottom: orDefault(raw.Section.MarginBottom, 72), Left: orDefault(raw.Section.MarginLeft, 72),
			HeaderDistance: raw.Section.HeaderDistance, FooterDistance: raw.Section.FooterDistance,
		},
		IsFirstSection: true,
	}

	return controller.AdapterResult{Blocks: blocks, Bookmarks: bookmarks, Section: section}, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func fixtureParagraphToBlock(fp *fixtureParagraph, pos *int) *docmodel.Paragraph {
	if fp == nil {
		fp = &fixtureParagraph{}
	}
	p := &docmodel.Paragraph{
		Props: docmodel.ParagraphProperties{Alignment: fp.Alignment, StyleID: fp.StyleID},
	}
	for _, r := range fp.Runs {
		start := *pos
		n := len([]rune(r.Text))
		*pos += n
		fontSize := r.FontSize
		if fontSize == 0 {
			fontSize = 20
		}
		p.Runs = append(p.Runs, docmodel.Run{
			Text:    r.Text,
			PMStart: start,
			PMEnd:   *pos,
			Props: docmodel.RunProperties{
				Bold: r.Bold, Italic: r.Italic, FontSizeHalfPt: fontSize,
			},
		})
	}
	if len(p.Runs) == 0 {
		p.Runs = []docmodel.Run{{Text: "", PMStart: *pos, PMEnd: *pos}}
	}
	return p
}
