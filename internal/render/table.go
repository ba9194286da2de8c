package render

import (
	"fmt"
	"strconv"
	"strings"

	"deckgen/internal/brand"
	"deckgen/internal/model"
	"deckgen/internal/opc"
)

func tableCell(text string, o TextOpts, fill brand.Color) string {
	o = o.withDefaults()
	return fmt.Sprintf(
		`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>%s</a:txBody>`+
			`<a:tcPr marL="%d" marR="%d" marT="%d" marB="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:tcPr></a:tc>`,
		paragraph(text, o), EMU(0.05), EMU(0.05), EMU(0.02), EMU(0.02), fill)
}

// tableFrame wraps prepared rows in a graphicFrame holding an a:tbl.
func tableFrame(s *opc.Slide, box Box, colWidths []float64, rows []string) {
	id := s.NextShapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/>`+
		`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	fmt.Fprintf(&b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`,
		EMU(box.Left), EMU(box.Top), EMU(box.Width), EMU(box.Height))
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`)
	b.WriteString(`<a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`)
	for _, w := range colWidths {
		fmt.Fprintf(&b, `<a:gridCol w="%d"/>`, EMU(w))
	}
	b.WriteString(`</a:tblGrid>`)
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	s.AddShape(b.String())
}

func tableRow(heightEMU int64, cells ...string) string {
	return fmt.Sprintf(`<a:tr h="%d">%s</a:tr>`, heightEMU, strings.Join(cells, ""))
}

// ReqTable renders the 4-column requirement table: name, description, colored
// status badge, signal tag. An empty requirement list renders header only.
func ReqTable(s *opc.Slide, reqs []model.Requirement, box Box) {
	widths := []float64{box.Width * 0.40, box.Width * 0.29, box.Width * 0.17, box.Width * 0.14}
	rowH := EMU(box.Height) / int64(len(reqs)+1)

	hdr := TextOpts{Size: 8, Bold: true, Color: brand.Teal}
	rows := []string{tableRow(rowH,
		tableCell("Requirement", hdr, brand.Dark),
		tableCell("Description", hdr, brand.Dark),
		tableCell("Status", hdr, brand.Dark),
		tableCell("Signal", hdr, brand.Dark),
	)}
	for i, r := range reqs {
		bg := brand.DGray
		if i%2 == 1 {
			bg = brand.DDGray
		}
		cell := TextOpts{Size: 7.5, Color: brand.White}
		status := TextOpts{Size: 7.5, Color: brand.StatusColor(r.Status)}
		signal := TextOpts{Size: 7.5, Color: brand.Teal}
		rows = append(rows, tableRow(rowH,
			tableCell(r.Name, cell, bg),
			tableCell(r.Description, cell, bg),
			tableCell(r.Status.Display(), status, bg),
			tableCell(r.Signal, signal, bg),
		))
	}
	tableFrame(s, box, widths, rows)
}

// CoverageTable renders one row per domain plus a computed TOTAL row. The Now
// column carries the coverage percentage.
func CoverageTable(s *opc.Slide, stats []model.CoverageStat, box Box) {
	// Column proportions from the reference deck (5.5/1.1/1.8/1.8/1.74 of 11.94").
	fr := []float64{5.5, 1.1, 1.8, 1.8, 1.74}
	widths := make([]float64, len(fr))
	for i, f := range fr {
		widths[i] = box.Width * f / 11.94
	}
	rowH := EMU(box.Height) / int64(len(stats)+2)

	hdr := TextOpts{Size: 10, Bold: true, Color: brand.Teal, Align: AlignCenter}
	rows := []string{tableRow(rowH,
		tableCell("Domain", hdr, brand.Dark),
		tableCell("Total", hdr, brand.Dark),
		tableCell(model.StatusNow.Display(), hdr, brand.Dark),
		tableCell(model.StatusPartial.Display(), hdr, brand.Dark),
		tableCell(model.StatusRoadmap.Display(), hdr, brand.Dark),
	)}

	cellOpts := func(size float64, bold bool, c brand.Color, align Align) TextOpts {
		return TextOpts{Size: size, Bold: bold, Color: c, Align: align}
	}
	for i, st := range stats {
		bg := brand.DGray
		if i%2 == 1 {
			bg = brand.DDGray
		}
		rows = append(rows, tableRow(rowH,
			tableCell(st.DomainName, cellOpts(10, false, brand.White, AlignLeft), bg),
			tableCell(strconv.Itoa(st.Total), cellOpts(10, false, brand.White, AlignCenter), bg),
			tableCell(fmt.Sprintf("%d (%d%%)", st.Now, st.CoveragePercent), cellOpts(10, false, brand.Green, AlignCenter), bg),
			tableCell(strconv.Itoa(st.Partial), cellOpts(10, false, brand.Orange, AlignCenter), bg),
			tableCell(strconv.Itoa(st.Roadmap), cellOpts(10, false, brand.Gray, AlignCenter), bg),
		))
	}

	agg := model.Aggregate(stats)
	rows = append(rows, tableRow(rowH,
		tableCell(agg.DomainName, cellOpts(11, true, brand.White, AlignLeft), brand.Dark),
		tableCell(strconv.Itoa(agg.Total), cellOpts(11, true, brand.White, AlignCenter), brand.Dark),
		tableCell(fmt.Sprintf("%d (%d%%)", agg.Now, agg.CoveragePercent), cellOpts(11, true, brand.Green, AlignCenter), brand.Dark),
		tableCell(fmt.Sprintf("%d (%d%%)", agg.Partial, model.Percent(agg.Partial, agg.Total)), cellOpts(11, true, brand.Orange, AlignCenter), brand.Dark),
		tableCell(fmt.Sprintf("%d (%d%%)", agg.Roadmap, model.Percent(agg.Roadmap, agg.Total)), cellOpts(11, true, brand.Gray, AlignCenter), brand.Dark),
	))
	tableFrame(s, box, widths, rows)
}
