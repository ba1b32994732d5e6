package layout

import "github.com/hholst80/flowdoc/internal/docmodel"

// pageCursor tracks where the next fragment goes on the page
// currently being filled.
type pageCursor struct {
	page      docmodel.Page
	y         float64
	sectionIdx int
	opts      Options
}

func newPage(number int, opts Options, sectionIdx int) docmodel.Page {
	return docmodel.Page{
		Number:       number,
		NumberText:   "",
		Size:         opts.PageSize,
		Margins:      opts.Margins,
		SectionIndex: sectionIdx,
		SectionRefs:  sectionRefs(opts.Section.HeaderFooter),
	}
}

// sectionRefs projects a section's header/footer variant->rId ids
// into the page-level lookup table the per-rId header/footer path
// consults (spec.md §4.D lookup rule 1).
func sectionRefs(hf docmodel.HeaderFooterIdentifier) docmodel.SectionRefs {
	return docmodel.SectionRefs{
		HeaderRefs: variantRefs(hf.HeaderIDs),
		FooterRefs: variantRefs(hf.FooterIDs),
	}
}

func variantRefs(ids docmodel.HeaderFooterIDs) map[string]string {
	refs := make(map[string]string, 4)
	if ids.Default != "" {
		refs["default"] = ids.Default
	}
	if ids.First != "" {
		refs["first"] = ids.First
	}
	if ids.Even != "" {
		refs["even"] = ids.Even
	}
	if ids.Odd != "" {
		refs["odd"] = ids.Odd
	}
	return refs
}

// pack lays out blocks in order, breaking to a new page whenever the
// remaining content height is exhausted. It never splits an Image or
// Drawing; Paragraphs and Tables may split across pages at line/row
// granularity (spec.md invariants: fromLine<=toLine<=len(lines)).
func pack(blocks []docmodel.FlowBlock, measures map[string]docmodel.Measure, opts Options) []docmodel.Page {
	var pages []docmodel.Page
	sectionIdx := opts.Section.Index
	contentHeight := opts.PageSize.Height - opts.Margins.Top - opts.Margins.Bottom
	contentWidth := opts.PageSize.Width - opts.Margins.Left - opts.Margins.Right

	cur := newPage(1, opts, sectionIdx)
	y := 0.0
	lastPMEndByBlock := map[string]int{}

	flushPage := func() {
		pages = append(pages, cur)
		cur = newPage(len(pages)+1, opts, sectionIdx)
		y = 0
	}

	for _, b := range blocks {
		m := measures[b.ID]
		switch b.Kind {
		case docmodel.BlockSectionBreak:
			if len(cur.Fragments) > 0 {
				flushPage()
			}
			if b.SectionBreak != nil {
				opts.PageSize = b.SectionBreak.PageSize
				opts.Margins = b.SectionBreak.Margins
				contentHeight = opts.PageSize.Height - opts.Margins.Top - opts.Margins.Bottom
				contentWidth = opts.PageSize.Width - opts.Margins.Left - opts.Margins.Right
				sectionIdx++
				cur.Size = opts.PageSize
				cur.Margins = opts.Margins
				cur.SectionIndex = sectionIdx
			}
			continue

		case docmodel.BlockParagraph:
			packParagraph(b, m, contentWidth, contentHeight, &cur, &y, flushPage, lastPMEndByBlock)

		case docmodel.BlockTable:
			packTable(b, m, contentWidth, contentHeight, &cur, &y, flushPage)

		case docmodel.BlockImage:
			if b.Image == nil {
				continue
			}
			if y+b.Image.Height > contentHeight && len(cur.Fragments) > 0 {
				flushPage()
			}
			cur.Fragments = append(cur.Fragments, docmodel.Fragment{
				Kind: docmodel.FragmentImage,
				Image: &docmodel.ImageFragment{
					BlockID: b.ID, X: 0, Y: y, Width: b.Image.Width, Height: b.Image.Height,
				},
			})
			y += b.Image.Height

		case docmodel.BlockDrawing:
			if b.Drawing == nil {
				continue
			}
			if y+b.Drawing.Height > contentHeight && len(cur.Fragments) > 0 {
				flushPage()
			}
			cur.Fragments = append(cur.Fragments, docmodel.Fragment{
				Kind: docmodel.FragmentDrawing,
				Drawing: &docmodel.DrawingFragment{
					BlockID: b.ID, X: 0, Y: y, Width: b.Drawing.Width, Height: b.Drawing.Height,
				},
			})
			y += b.Drawing.Height
		}
	}

	if len(cur.Fragments) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}

	return pages
}

func packParagraph(b docmodel.FlowBlock, m docmodel.Measure, contentWidth, contentHeight float64, cur *docmodel.Page, y *float64, flushPage func(), lastEnd map[string]int) {
	if m.Kind != docmodel.MeasureParagraph || m.Paragraph == nil || len(m.Paragraph.Lines) == 0 {
		return
	}
	lines := m.Paragraph.Lines
	from := 0
	for from < len(lines) {
		remaining := contentHeight - *y
		if remaining < lines[from].LineHeight && len(cur.Fragments) > 0 {
			flushPage()
			remaining = contentHeight
		}
		to := from
		h := 0.0
		for to < len(lines) {
			lh := lines[to].LineHeight
			if h+lh > remaining && to > from {
				break
			}
			h += lh
			to++
			if h > remaining && to-from == 1 {
				// a single line taller than the page: place it anyway.
				break
			}
		}
		if to == from {
			to = from + 1
		}

		_, hadPrev := lastEnd[b.ID]
		continuesFromPrev := hadPrev && from > 0

		cur.Fragments = append(cur.Fragments, docmodel.Fragment{
			Kind: docmodel.FragmentPara,
			Para: &docmodel.ParaFragment{
				BlockID:           b.ID,
				X:                 0,
				Y:                 *y,
				Width:             contentWidth,
				FromLine:          from,
				ToLine:            to,
				PMStart:           lines[from].PMStart,
				PMEnd:             lines[to-1].PMEnd,
				MarkerWidth:       markerWidth(m, from),
				ContinuesFromPrev: continuesFromPrev,
			},
		})
		lastEnd[b.ID] = lines[to-1].PMEnd
		*y += h

		from = to
		if from < len(lines) && *y >= contentHeight {
			flushPage()
		}
	}
}

func markerWidth(m docmodel.Measure, fromLine int) float64 {
	if fromLine != 0 || m.Paragraph == nil || !m.Paragraph.HasMarker {
		return 0
	}
	return m.Paragraph.MarkerWidth
}

func packTable(b docmodel.FlowBlock, m docmodel.Measure, contentWidth, contentHeight float64, cur *docmodel.Page, y *float64, flushPage func()) {
	if m.Kind != docmodel.MeasureTable || m.Table == nil || len(m.Table.Rows) == 0 {
		return
	}
	rows := m.Table.Rows
	from := 0
	for from < len(rows) {
		remaining := contentHeight - *y
		if remaining <= 0 && len(cur.Fragments) > 0 {
			flushPage()
			remaining = contentHeight
		}
		to := from
		h := 0.0
		for to < len(rows) {
			rh := rows[to].Height
			if h+rh > remaining && to > from {
				break
			}
			h += rh
			to++
		}
		if to == from {
			to = from + 1
		}

		cur.Fragments = append(cur.Fragments, docmodel.Fragment{
			Kind: docmodel.FragmentTable,
			Table: &docmodel.TableFragment{
				BlockID: b.ID,
				X:       0,
				Y:       *y,
				Width:   contentWidth,
				Height:  h,
				FromRow: from,
				ToRow:   to,
				Metadata: docmodel.TableFragmentMetadata{
					ColumnBoundaries: m.Table.ColumnBoundaries,
				},
			},
		})
		*y += h
		from = to
		if from < len(rows) && *y >= contentHeight {
			flushPage()
		}
	}
}
