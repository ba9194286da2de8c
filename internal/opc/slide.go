package opc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Slide is a live slide inside an opened Package. Drawing code appends shape
// XML fragments; the part is assembled at serialization time.
type Slide struct {
	pkg *Package

	partName string // e.g. ppt/slides/slide1.xml
	relID    string // presentation-level relationship id
	sldID    int
	layout   int // zero-based layout index

	rels        relationships
	nextRel     int
	shapes      []string
	nextShapeID int

	removed bool
}

// PartName returns the slide's part path within the package.
func (s *Slide) PartName() string { return s.partName }

// LayoutIndex returns the zero-based layout index the slide was created from.
func (s *Slide) LayoutIndex() int { return s.layout }

// NextShapeID hands out shape ids unique within the slide.
func (s *Slide) NextShapeID() int {
	id := s.nextShapeID
	s.nextShapeID++
	return id
}

// AddShape appends a ready-built shape XML fragment to the slide's shape tree.
func (s *Slide) AddShape(xmlFragment string) {
	s.shapes = append(s.shapes, xmlFragment)
}

// AddImage registers image bytes as a media part and relates it to this
// slide, returning the relationship id for r:embed.
func (s *Slide) AddImage(data []byte, ext string) string {
	target := s.pkg.addMedia(data, ext)
	rID := fmt.Sprintf("rId%d", s.nextRel)
	s.nextRel++
	s.rels.add(rID, relTypeImage, "../"+strings.TrimPrefix(target, "ppt/"))
	return rID
}

func (s *Slide) relsPartName() string {
	i := strings.LastIndex(s.partName, "/")
	return s.partName[:i] + "/_rels" + s.partName[i:] + ".rels"
}

const slideXMLOpen = `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`

func (s *Slide) partBytes() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(slideXMLOpen)
	b.WriteString(`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/>` +
		`<a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	for _, sh := range s.shapes {
		b.WriteString(sh)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return []byte(b.String())
}

func (s *Slide) relsBytes() []byte {
	return s.rels.bytes()
}
