package render

import (
	"fmt"
	"strings"

	"deckgen/internal/brand"
	"deckgen/internal/opc"
)

// TextOpts styles a single text run.
type TextOpts struct {
	Size   float64 // points; 0 means 12
	Bold   bool
	Italic bool
	Color  brand.Color // "" means white
	Align  Align       // "" means left
}

func (o TextOpts) withDefaults() TextOpts {
	if o.Size == 0 {
		o.Size = 12
	}
	if o.Color == "" {
		o.Color = brand.White
	}
	if o.Align == "" {
		o.Align = AlignLeft
	}
	return o
}

// escape XML-escapes text content for <a:t> elements.
func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func run(text string, o TextOpts) string {
	var flags string
	if o.Bold {
		flags += ` b="1"`
	}
	if o.Italic {
		flags += ` i="1"`
	}
	return fmt.Sprintf(
		`<a:r><a:rPr lang="en-US" sz="%d"%s><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r>`,
		Centipoints(o.Size), flags, o.Color, escape(text))
}

func paragraph(text string, o TextOpts) string {
	return fmt.Sprintf(`<a:p><a:pPr algn="%s"/>%s</a:p>`, o.Align, run(text, o))
}

func xfrm(b Box) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		EMU(b.Left), EMU(b.Top), EMU(b.Width), EMU(b.Height))
}

// TextBox places a word-wrapped textbox on the slide.
func TextBox(s *opc.Slide, text string, box Box, o TextOpts) {
	o = o.withDefaults()
	id := s.NextShapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	b.WriteString(`<p:spPr>`)
	b.WriteString(xfrm(box))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>`)
	b.WriteString(paragraph(text, o))
	b.WriteString(`</p:txBody></p:sp>`)
	s.AddShape(b.String())
}

// ParaBlock places a textbox with an optional bold header followed by
// "▸"-prefixed bullet lines.
func ParaBlock(s *opc.Slide, header string, lines []string, box Box, o TextOpts) {
	o = o.withDefaults()
	id := s.NextShapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	b.WriteString(`<p:spPr>`)
	b.WriteString(xfrm(box))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>`)
	if header != "" {
		b.WriteString(paragraph(header, TextOpts{Size: 13, Bold: true, Color: brand.Teal}))
	}
	for _, line := range lines {
		b.WriteString(`<a:p><a:pPr><a:spcBef><a:spcPts val="300"/></a:spcBef></a:pPr>`)
		b.WriteString(run("▸  "+line, o))
		b.WriteString(`</a:p>`)
	}
	if header == "" && len(lines) == 0 {
		b.WriteString(`<a:p/>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
	s.AddShape(b.String())
}
