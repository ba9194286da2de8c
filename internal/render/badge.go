package render

import (
	"fmt"
	"strings"

	"deckgen/internal/brand"
	"deckgen/internal/model"
	"deckgen/internal/opc"
)

// badge draws a single colored pill with centered bold text.
func badge(s *opc.Slide, text string, box Box, fill brand.Color) {
	id := s.NextShapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Badge %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, id)
	b.WriteString(`<p:spPr>`)
	b.WriteString(xfrm(box))
	fmt.Fprintf(&b, `<a:prstGeom prst="roundRect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:ln><a:noFill/></a:ln></p:spPr>`, fill)
	// Tight margins so the pill stays one line high.
	fmt.Fprintf(&b, `<p:txBody><a:bodyPr lIns="%d" tIns="%d" rIns="%d" bIns="%d"/><a:lstStyle/>`,
		EMU(0.04), EMU(0.02), EMU(0.04), EMU(0.02))
	b.WriteString(paragraph(text, TextOpts{Size: 9, Bold: true, Color: brand.White, Align: AlignCenter}))
	b.WriteString(`</p:txBody></p:sp>`)
	s.AddShape(b.String())
}

// StatusBar draws the three status pills plus the total-requirement note.
func StatusBar(s *opc.Slide, now, partial, roadmap, total int, left, top float64) {
	size := Box{Left: left, Top: top, Width: 1.32, Height: 0.27}
	badge(s, fmt.Sprintf("%s  %d Now", model.StatusNow.Symbol(), now), size, brand.Green)
	size.Left = left + 1.4
	badge(s, fmt.Sprintf("%s  %d Partial", model.StatusPartial.Symbol(), partial), size, brand.Orange)
	size.Left = left + 2.8
	badge(s, fmt.Sprintf("%s  %d Roadmap", model.StatusRoadmap.Symbol(), roadmap), size, brand.BadgeGray)
	TextBox(s, fmt.Sprintf("of %d requirements", total),
		Box{Left: left + 4.25, Top: top + 0.02, Width: 2.5, Height: 0.28},
		TextOpts{Size: 10, Color: brand.Gray})
}
