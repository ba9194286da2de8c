// Package opc owns a live PresentationML document package opened from a
// template. It provides slide add/remove/serialize while keeping the
// presentation's slide-id list and its relationship table consistent.
//
// Removal contract: relationship de-registration strictly precedes slide-id
// removal, and a removal is complete only when both steps succeed. A dangling
// relationship is what presentation viewers flag as corruption.
package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"deckgen/internal/model"
)

// DefaultLayoutKeys maps the logical layout keys to their indices in the
// reference template. Configs override these per template.
func DefaultLayoutKeys() map[string]int {
	return map[string]int{
		"title_center":  11,
		"title_content": 2,
		"two_img":       19,
	}
}

// Package is a single live document package. It is opened once, mutated in
// place, serialized once, and must not be reused for a second build.
type Package struct {
	parts map[string][]byte
	order []string

	contentTypes *contentTypes
	presRels     *relationships
	presXML      []byte

	slides      []*Slide
	layoutKeys  map[string]int
	layoutCount int

	nextSlideNum int
	nextSldID    int
	nextRelNum   int
	nextMediaNum int

	finalized bool
}

// Open reads a .pptx or .potx template from disk. The template's own slides
// are stripped on load (two-phase per slide), so the package starts empty
// with only masters, layouts and theme retained.
func Open(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", model.ErrTemplateUnreadable, path, err)
	}
	p, err := OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// OpenBytes opens a template held in memory.
func OpenBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTemplateUnreadable, err)
	}

	p := &Package{
		parts:      make(map[string][]byte),
		layoutKeys: DefaultLayoutKeys(),
		nextSldID:  256,
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrTemplateUnreadable, f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrTemplateUnreadable, f.Name, err)
		}
		p.parts[f.Name] = content
		p.order = append(p.order, f.Name)
	}

	ctData, ok := p.parts[contentTypesPart]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", model.ErrTemplateUnreadable, contentTypesPart)
	}
	if p.contentTypes, err = parseContentTypes(ctData); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTemplateUnreadable, err)
	}

	presData, ok := p.parts[presentationPart]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", model.ErrTemplateUnreadable, presentationPart)
	}
	p.presXML = presData

	relsData, ok := p.parts[presentationRels]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", model.ErrTemplateUnreadable, presentationRels)
	}
	if p.presRels, err = parseRelationships(relsData); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrTemplateUnreadable, err)
	}

	// .potx templates carry the template content type; patch it so viewers
	// open the output as a regular presentation.
	for i, o := range p.contentTypes.Overrides {
		if o.ContentType == ctTemplate {
			p.contentTypes.Overrides[i].ContentType = ctPresentation
		}
	}

	p.layoutCount = p.countLayouts()
	p.scanCounters()

	if err := p.stripTemplateSlides(); err != nil {
		return nil, err
	}
	return p, nil
}

var layoutPartRe = regexp.MustCompile(`^ppt/slideLayouts/slideLayout(\d+)\.xml$`)
var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
var mediaPartRe = regexp.MustCompile(`^ppt/media/image(\d+)\.`)

func (p *Package) countLayouts() int {
	n := 0
	for name := range p.parts {
		if layoutPartRe.MatchString(name) {
			n++
		}
	}
	return n
}

func (p *Package) scanCounters() {
	p.nextSlideNum = 1
	p.nextMediaNum = 1
	for name := range p.parts {
		if m := slidePartRe.FindStringSubmatch(name); m != nil {
			if n, _ := strconv.Atoi(m[1]); n >= p.nextSlideNum {
				p.nextSlideNum = n + 1
			}
		}
		if m := mediaPartRe.FindStringSubmatch(name); m != nil {
			if n, _ := strconv.Atoi(m[1]); n >= p.nextMediaNum {
				p.nextMediaNum = n + 1
			}
		}
	}
	p.nextRelNum = 1
	for _, rel := range p.presRels.Rels {
		if strings.HasPrefix(rel.ID, "rId") {
			if n, err := strconv.Atoi(rel.ID[3:]); err == nil && n >= p.nextRelNum {
				p.nextRelNum = n + 1
			}
		}
	}
}

// stripTemplateSlides removes every slide the template ships with:
// relationship first, then the slide-id entry, then the orphaned parts.
func (p *Package) stripTemplateSlides() error {
	for _, e := range parseSldIDs(p.presXML) {
		if e.rID != "" {
			if target, ok := p.presRels.drop(e.rID); ok {
				p.removePart("ppt/" + target)
				p.removePart(relsPathFor("ppt/" + target))
				p.contentTypes.removeOverride("/ppt/" + target)
			}
		}
	}
	pres, err := spliceSldIDs(p.presXML, nil)
	if err != nil {
		return err
	}
	p.presXML = pres
	return nil
}

func relsPathFor(partName string) string {
	i := strings.LastIndex(partName, "/")
	return partName[:i] + "/_rels" + partName[i:] + ".rels"
}

func (p *Package) removePart(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// SetLayouts merges layout-index overrides into the key map. Keys the config
// does not override keep their defaults.
func (p *Package) SetLayouts(overrides map[string]int) {
	for k, v := range overrides {
		p.layoutKeys[k] = v
	}
}

// LayoutCount reports how many slide layouts the template provides.
func (p *Package) LayoutCount() int { return p.layoutCount }

var layoutNameRe = regexp.MustCompile(`<p:cSld[^>]*\sname="([^"]*)"`)

// LayoutName returns the display name of the zero-based layout index, or ""
// when the layout carries none.
func (p *Package) LayoutName(idx int) string {
	data, ok := p.parts[fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", idx+1)]
	if !ok {
		return ""
	}
	if m := layoutNameRe.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	return ""
}

// AddSlide appends a new slide built on the named layout. The slide inherits
// only the layout's background and theme; its shape tree starts empty.
func (p *Package) AddSlide(layoutKey string) (*Slide, error) {
	if p.finalized {
		return nil, model.ErrFinalized
	}
	idx, ok := p.layoutKeys[layoutKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownLayoutKey, layoutKey)
	}
	if idx < 0 || idx >= p.layoutCount {
		return nil, fmt.Errorf("%w: %q resolves to %d, template has %d layouts",
			model.ErrLayoutIndexOutOfRange, layoutKey, idx, p.layoutCount)
	}

	num := p.nextSlideNum
	p.nextSlideNum++
	s := &Slide{
		pkg:         p,
		partName:    fmt.Sprintf("ppt/slides/slide%d.xml", num),
		relID:       fmt.Sprintf("rId%d", p.nextRelNum),
		sldID:       p.nextSldID,
		layout:      idx,
		nextRel:     2,
		nextShapeID: 2,
	}
	p.nextRelNum++
	p.nextSldID++

	s.rels = relationships{Xmlns: xmlnsRelationships}
	s.rels.add("rId1", relTypeLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", idx+1))

	p.presRels.add(s.relID, relTypeSlide, strings.TrimPrefix(s.partName, "ppt/"))
	p.contentTypes.addOverride("/"+s.partName, ctSlide)
	p.slides = append(p.slides, s)
	return s, nil
}

// RemoveSlide removes a slide added to this package. Phase one de-registers
// the presentation-level relationship; only when that succeeds is the
// slide-id entry (and the part bookkeeping) removed. A phase-one failure
// leaves the slide list untouched.
func (p *Package) RemoveSlide(s *Slide) error {
	if p.finalized {
		return model.ErrFinalized
	}
	if s == nil || s.removed {
		return fmt.Errorf("%w: slide already removed", model.ErrSlideRemovalFailed)
	}
	if _, ok := p.presRels.drop(s.relID); !ok {
		return fmt.Errorf("%w: relationship %s not registered", model.ErrSlideRemovalFailed, s.relID)
	}
	for i, sl := range p.slides {
		if sl == s {
			p.slides = append(p.slides[:i], p.slides[i+1:]...)
			break
		}
	}
	p.contentTypes.removeOverride("/" + s.partName)
	s.removed = true
	return nil
}

// SlideCount reports the number of live slides.
func (p *Package) SlideCount() int { return len(p.slides) }

func (p *Package) addMedia(data []byte, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	switch ext {
	case "png":
		p.contentTypes.ensureDefault("png", "image/png")
	case "jpg", "jpeg":
		p.contentTypes.ensureDefault(ext, "image/jpeg")
	case "gif":
		p.contentTypes.ensureDefault("gif", "image/gif")
	}
	name := fmt.Sprintf("ppt/media/image%d.%s", p.nextMediaNum, ext)
	p.nextMediaNum++
	p.parts[name] = data
	p.order = append(p.order, name)
	return name
}

// Bytes finalizes the package and serializes it. No mutation is valid
// afterwards.
func (p *Package) Bytes() ([]byte, error) {
	if p.finalized {
		return nil, model.ErrFinalized
	}
	p.finalized = true

	entries := make([]sldIDEntry, 0, len(p.slides))
	for _, s := range p.slides {
		entries = append(entries, sldIDEntry{id: s.sldID, rID: s.relID})
	}
	pres, err := spliceSldIDs(p.presXML, entries)
	if err != nil {
		return nil, err
	}

	p.parts[presentationPart] = pres
	p.parts[presentationRels] = p.presRels.bytes()
	p.parts[contentTypesPart] = p.contentTypes.bytes()

	names := make([]string, 0, len(p.order)+2*len(p.slides))
	names = append(names, p.order...)
	for _, s := range p.slides {
		p.parts[s.partName] = s.partBytes()
		p.parts[s.relsPartName()] = s.relsBytes()
		names = append(names, s.partName, s.relsPartName())
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrPackageWrite, name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrPackageWrite, name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPackageWrite, err)
	}
	return buf.Bytes(), nil
}

// Save serializes the package to path, writing through a temp file in the
// destination directory so an existing file is never partially overwritten.
func (p *Package) Save(path string) error {
	data, err := p.Bytes()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", model.ErrPackageWrite, err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".deck-*.pptx")
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPackageWrite, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", model.ErrPackageWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", model.ErrPackageWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", model.ErrPackageWrite, err)
	}
	return nil
}
