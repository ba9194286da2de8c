package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fumiama/imgsz"

	"deckgen/internal/model"
	"deckgen/internal/opc"
)

// Picture embeds an image file on the slide, aspect-fitted and centered
// within the box. A missing or undecodable file is a structural error.
func Picture(s *opc.Slide, path string, box Box) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", model.ErrImageNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", model.ErrImageNotFound, path, err)
	}

	sz, format, err := imgsz.DecodeSize(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrImageNotFound, path, err)
	}
	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}

	fit := fitBox(box, float64(sz.Width), float64(sz.Height))
	rID := s.AddImage(data, ext)

	id := s.NextShapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/>`+
		`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(&b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, rID)
	b.WriteString(`<p:spPr>`)
	b.WriteString(xfrm(fit))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
	s.AddShape(b.String())
	return nil
}

// fitBox scales pixel dimensions to fit inside the box, preserving aspect
// ratio and centering.
func fitBox(box Box, pxW, pxH float64) Box {
	if pxW <= 0 || pxH <= 0 {
		return box
	}
	scale := box.Width / pxW
	if s := box.Height / pxH; s < scale {
		scale = s
	}
	w := pxW * scale
	h := pxH * scale
	return Box{
		Left:   box.Left + (box.Width-w)/2,
		Top:    box.Top + (box.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
