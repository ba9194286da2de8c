package deck

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckgen/internal/config"
	"deckgen/internal/model"
)

// writeTemplate drops a 20-layout template file into a temp dir.
func writeTemplate(t *testing.T) string {
	t.Helper()

	var ct strings.Builder
	ct.WriteString(`<?xml version="1.0"?>`)
	ct.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	ct.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	ct.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	ct.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&ct, `<Override PartName="/ppt/slideLayouts/slideLayout%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`, i)
	}
	ct.WriteString(`</Types>`)

	files := map[string]string{
		"[Content_Types].xml": ct.String(),
		"ppt/presentation.xml": `<?xml version="1.0"?>` +
			`<p:presentation xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
			` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
			`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
			`<p:sldIdLst/><p:sldSz cx="12192000" cy="6858000"/></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<?xml version="1.0"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>` +
			`</Relationships>`,
		"ppt/slideMasters/slideMaster1.xml": `<p:sldMaster/>`,
	}
	for i := 1; i <= 20; i++ {
		files[fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i)] =
			fmt.Sprintf(`<p:sldLayout><p:cSld name="Layout %d"><p:spTree/></p:cSld></p:sldLayout>`, i)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "brand.pptx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDomains(t *testing.T) []model.Domain {
	t.Helper()
	mk := func(name, status string) model.Requirement {
		r, err := model.NewRequirement(name, "desc", status, "Agent")
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	return []model.Domain{
		{Name: "Endpoint", Description: "5 requirements", Requirements: []model.Requirement{
			mk("a", "Now"), mk("b", "Now"), mk("c", "Now"), mk("d", "Now"), mk("e", "Partial"),
		}},
		{Name: "Network", Description: "3 requirements", Requirements: []model.Requirement{
			mk("f", "Now"), mk("g", "Roadmap"), mk("h", "Roadmap"),
		}},
	}
}

// slideParts pulls the slide XML parts out of a serialized deck, in part order.
func slideParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]string{}
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || strings.Contains(f.Name, "_rels") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		out[f.Name] = string(content)
	}
	return out
}

func TestBuild(t *testing.T) {
	cfg := config.Deck{
		Template:     writeTemplate(t),
		DeckTitle:    "Coverage Review",
		DeckSubtitle: "Vendor evaluation",
		Customer:     "Acme Corp",
		Slides: []config.SlideEntry{
			{Type: "title"},
			{Type: "coverage-summary"},
			{Type: "domain-detail"}, // bare: expands over all domains
		},
	}
	domains := testDomains(t)

	pkg, err := Build(cfg, domains)
	if err != nil {
		t.Fatal(err)
	}
	if pkg.SlideCount() != 4 {
		t.Fatalf("SlideCount = %d, want 4 (title + coverage + 2 domains)", pkg.SlideCount())
	}

	data, err := pkg.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	slides := slideParts(t, data)
	if len(slides) != 4 {
		t.Fatalf("slide parts = %d, want 4", len(slides))
	}

	var all strings.Builder
	for _, xml := range slides {
		all.WriteString(xml)
	}
	for _, want := range []string{
		"Coverage Review",
		"4 (80%)", // Endpoint: 4 of 5 now
		"1 (33%)", // Network: 1 of 3 now
		"TOTAL",
		"Endpoint",
		"Network",
		"of 5 requirements",
		"of 3 requirements",
	} {
		if !strings.Contains(all.String(), want) {
			t.Errorf("deck missing %q", want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := config.Deck{
		Template:  writeTemplate(t),
		DeckTitle: "Same deck",
		Slides: []config.SlideEntry{
			{Type: "title"},
			{Type: "coverage-summary"},
			{Type: "domain-detail"},
			{Type: "closing"},
		},
	}
	domains := testDomains(t)

	a, err := BuildBytes(cfg, domains)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildBytes(cfg, domains)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different output")
	}
}

func TestBuildUnknownKindBeforeTemplate(t *testing.T) {
	// Compilation rejects the slide list before the template is even opened:
	// a bogus template path must not mask the kind error.
	cfg := config.Deck{
		Template: "/does/not/exist.pptx",
		Slides:   []config.SlideEntry{{Type: "pie-chart"}},
	}
	_, err := Build(cfg, nil)
	if !errors.Is(err, model.ErrUnknownSlideKind) {
		t.Fatalf("want ErrUnknownSlideKind, got %v", err)
	}
}

func TestBuildUnknownDomain(t *testing.T) {
	cfg := config.Deck{
		Template: writeTemplate(t),
		Slides:   []config.SlideEntry{{Type: "domain-detail", Domain: "Nope"}},
	}
	_, err := Build(cfg, testDomains(t))
	if err == nil || !strings.Contains(err.Error(), `"Nope"`) {
		t.Fatalf("want unknown-domain error, got %v", err)
	}
}

func TestBuildMissingTemplate(t *testing.T) {
	cfg := config.Deck{
		Template: filepath.Join(t.TempDir(), "gone.pptx"),
		Slides:   []config.SlideEntry{{Type: "title"}},
	}
	if _, err := Build(cfg, nil); !errors.Is(err, model.ErrTemplateNotFound) {
		t.Fatalf("want ErrTemplateNotFound, got %v", err)
	}
}

func TestBuildLayoutOverrideOutOfRange(t *testing.T) {
	cfg := config.Deck{
		Template:      writeTemplate(t),
		LayoutIndices: map[string]int{"title_center": 99},
		Slides:        []config.SlideEntry{{Type: "title"}},
	}
	if _, err := Build(cfg, nil); !errors.Is(err, model.ErrLayoutIndexOutOfRange) {
		t.Fatalf("want ErrLayoutIndexOutOfRange, got %v", err)
	}
}

func TestBuildScreenshotPair(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"left.png", "right.png"} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	cfg := config.Deck{
		Template:       writeTemplate(t),
		ScreenshotsDir: dir,
		Images:         map[string]string{"dash": "left.png", "alerts": "right.png"},
		Slides: []config.SlideEntry{{
			Type: "screenshot-pair", Title: "Console",
			Left: "dash", LeftCaption: "Dashboard",
			Right: "alerts", RightCaption: "Alert queue",
		}},
	}
	pkg, err := Build(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := pkg.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	slides := slideParts(t, data)
	for _, xml := range slides {
		if !strings.Contains(xml, "Dashboard") || !strings.Contains(xml, "Alert queue") {
			t.Error("captions missing")
		}
		if got := strings.Count(xml, "<p:pic>"); got != 2 {
			t.Errorf("pictures = %d, want 2", got)
		}
	}
}

func TestBuildScreenshotMissingKey(t *testing.T) {
	cfg := config.Deck{
		Template: writeTemplate(t),
		Slides:   []config.SlideEntry{{Type: "screenshot-pair", Left: "nope"}},
	}
	if _, err := Build(cfg, nil); !errors.Is(err, model.ErrImageNotFound) {
		t.Fatalf("want ErrImageNotFound, got %v", err)
	}
}

func TestBuildTitleLogoMissing(t *testing.T) {
	cfg := config.Deck{
		Template:     writeTemplate(t),
		CustomerLogo: filepath.Join(t.TempDir(), "logo.png"),
		Slides:       []config.SlideEntry{{Type: "title"}},
	}
	if _, err := Build(cfg, nil); !errors.Is(err, model.ErrImageNotFound) {
		t.Fatalf("want ErrImageNotFound, got %v", err)
	}
}

func TestBuildBullets(t *testing.T) {
	cfg := config.Deck{
		Template: writeTemplate(t),
		Slides: []config.SlideEntry{{
			Type: "bullets", Title: "Key findings",
			Body: "- first point\n- second point\n",
		}},
	}
	pkg, err := Build(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := pkg.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	for _, xml := range slideParts(t, data) {
		if !strings.Contains(xml, "▸  first point") || !strings.Contains(xml, "▸  second point") {
			t.Errorf("bullet lines missing: %s", xml)
		}
	}
}

func TestBuildFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	cfg := config.Deck{
		Template: writeTemplate(t),
		Output:   out,
		Slides:   []config.SlideEntry{{Type: "title"}, {Type: "closing"}},
	}
	got, err := BuildFile(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != out {
		t.Errorf("output path = %q", got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		t.Errorf("output is not a valid package: %v", err)
	}
}

func TestBuildFileNoOutput(t *testing.T) {
	cfg := config.Deck{Template: writeTemplate(t), Slides: []config.SlideEntry{{Type: "title"}}}
	if _, err := BuildFile(cfg, nil); err == nil {
		t.Fatal("want error for missing output path")
	}
}
