package deck

import (
	"fmt"

	"deckgen/internal/brand"
	"deckgen/internal/config"
	"deckgen/internal/model"
	"deckgen/internal/opc"
	"deckgen/internal/render"
)

// Layout keys per slide kind. Only key names are fixed here; the indices
// behind them come from the template's layout map.
const (
	layoutTitleCenter  = "title_center"
	layoutTitleContent = "title_content"
	layoutTwoImg       = "two_img"
)

// render builds one slide's visual content. Each call is deterministic for
// identical inputs; empty data renders empty visuals, only structural
// failures (layout resolution, missing images) return errors.
func (op slideOp) render(pkg *opc.Package, cfg config.Deck, domains []model.Domain) error {
	switch op.kind {
	case KindTitle:
		return renderTitle(pkg, cfg)
	case KindCoverage:
		return renderCoverage(pkg, cfg, op.entry, domains)
	case KindDomain:
		return renderDomain(pkg, cfg, *op.domain)
	case KindScreenshot:
		return renderScreenshots(pkg, cfg, op.entry)
	case KindSection:
		return renderSection(pkg, op.entry)
	case KindBullets:
		return renderBullets(pkg, cfg, op.entry)
	case KindClosing:
		return renderClosing(pkg, cfg, op.entry)
	}
	return fmt.Errorf("%w: %q", model.ErrUnknownSlideKind, op.kind)
}

func renderTitle(pkg *opc.Package, cfg config.Deck) error {
	sl, err := pkg.AddSlide(layoutTitleCenter)
	if err != nil {
		return err
	}
	render.TextBox(sl, cfg.DeckTitle, render.Box{Left: 0.9, Top: 2.6, Width: 11.5, Height: 1.2},
		render.TextOpts{Size: 36, Bold: true, Align: render.AlignCenter})
	if cfg.DeckSubtitle != "" {
		render.TextBox(sl, cfg.DeckSubtitle, render.Box{Left: 0.9, Top: 3.9, Width: 11.5, Height: 0.8},
			render.TextOpts{Size: 20, Color: brand.Teal, Align: render.AlignCenter})
	}
	if cfg.Contact != "" {
		render.TextBox(sl, cfg.Contact, render.Box{Left: 3.5, Top: 5.6, Width: 7.0, Height: 0.5},
			render.TextOpts{Size: 11, Color: brand.Teal, Align: render.AlignCenter})
	}
	if cfg.CustomerLogo != "" {
		if err := render.Picture(sl, cfg.CustomerLogo, render.Box{Left: 10.8, Top: 6.8, Width: 2.2, Height: 0.55}); err != nil {
			return err
		}
	}
	return nil
}

func renderCoverage(pkg *opc.Package, cfg config.Deck, entry config.SlideEntry, domains []model.Domain) error {
	sl, err := pkg.AddSlide(layoutTitleContent)
	if err != nil {
		return err
	}
	title := entry.Title
	if title == "" {
		title = cfg.CoverageTitle
	}
	if title == "" {
		title = "Coverage Summary"
	}
	render.TextBox(sl, title, render.Box{Left: 0.7, Top: 0.9, Width: 11.9, Height: 0.8},
		render.TextOpts{Size: 22, Bold: true})
	eyebrow(sl, entry, cfg, 0.7)
	render.CoverageTable(sl, model.CoverageAll(domains), render.Box{Left: 0.7, Top: 2.3, Width: 11.94, Height: 4.6})
	return nil
}

func renderDomain(pkg *opc.Package, cfg config.Deck, dom model.Domain) error {
	sl, err := pkg.AddSlide(layoutTitleContent)
	if err != nil {
		return err
	}
	render.TextBox(sl, dom.Name, render.Box{Left: 0.5, Top: 0.9, Width: 12.3, Height: 0.7},
		render.TextOpts{Size: 18, Bold: true})
	render.TextBox(sl, cfg.Customer, render.Box{Left: 0.5, Top: 1.5, Width: 12.3, Height: 0.35},
		render.TextOpts{Size: 10, Italic: true, Color: brand.Teal})
	if dom.Description != "" {
		render.TextBox(sl, dom.Description, render.Box{Left: 0.5, Top: 1.85, Width: 12.5, Height: 0.4},
			render.TextOpts{Size: 10, Color: brand.Gray})
	}

	st := model.Coverage(dom)
	render.StatusBar(sl, st.Now, st.Partial, st.Roadmap, st.Total, 0.5, 2.3)

	const tableTop = 2.72
	render.ReqTable(sl, dom.Requirements, render.Box{Left: 0.5, Top: tableTop, Width: 12.84, Height: 7.5 - tableTop - 0.1})
	return nil
}

func renderScreenshots(pkg *opc.Package, cfg config.Deck, entry config.SlideEntry) error {
	sl, err := pkg.AddSlide(layoutTwoImg)
	if err != nil {
		return err
	}
	render.TextBox(sl, entry.Title, render.Box{Left: 0.5, Top: 0.9, Width: 12.3, Height: 0.7},
		render.TextOpts{Size: 18, Bold: true})
	eyebrow(sl, entry, cfg, 0.5)

	panes := []struct {
		key, caption string
		left         float64
	}{
		{entry.Left, entry.LeftCaption, 0.36},
		{entry.Right, entry.RightCaption, 6.78},
	}
	for _, p := range panes {
		if p.key == "" {
			continue
		}
		path, ok := cfg.ImagePath(p.key)
		if !ok {
			return fmt.Errorf("%w: image key %q not in manifest", model.ErrImageNotFound, p.key)
		}
		if err := render.Picture(sl, path, render.Box{Left: p.left, Top: 1.75, Width: 6.22, Height: 5.2}); err != nil {
			return err
		}
		if p.caption != "" {
			render.TextBox(sl, p.caption, render.Box{Left: p.left, Top: 6.95, Width: 6.22, Height: 0.4},
				render.TextOpts{Size: 9, Color: brand.Gray, Align: render.AlignCenter})
		}
	}
	return nil
}

func renderSection(pkg *opc.Package, entry config.SlideEntry) error {
	sl, err := pkg.AddSlide(layoutTitleCenter)
	if err != nil {
		return err
	}
	render.TextBox(sl, entry.Title, render.Box{Left: 0.9, Top: 2.8, Width: 11.5, Height: 1.0},
		render.TextOpts{Size: 30, Bold: true, Color: brand.Teal, Align: render.AlignCenter})
	if entry.Subtitle != "" {
		render.TextBox(sl, entry.Subtitle, render.Box{Left: 0.9, Top: 3.9, Width: 11.5, Height: 0.7},
			render.TextOpts{Size: 14, Align: render.AlignCenter})
	}
	return nil
}

func renderBullets(pkg *opc.Package, cfg config.Deck, entry config.SlideEntry) error {
	sl, err := pkg.AddSlide(layoutTitleContent)
	if err != nil {
		return err
	}
	render.TextBox(sl, entry.Title, render.Box{Left: 0.7, Top: 0.9, Width: 11.9, Height: 0.8},
		render.TextOpts{Size: 22, Bold: true})
	eyebrow(sl, entry, cfg, 0.7)

	lines := entry.Bullets
	if len(lines) == 0 && entry.Body != "" {
		lines = render.MarkdownLines(entry.Body)
	}
	render.ParaBlock(sl, "", lines, render.Box{Left: 0.7, Top: 2.0, Width: 11.5, Height: 5.2},
		render.TextOpts{Size: 12})
	return nil
}

func renderClosing(pkg *opc.Package, cfg config.Deck, entry config.SlideEntry) error {
	sl, err := pkg.AddSlide(layoutTitleCenter)
	if err != nil {
		return err
	}
	msg := entry.Message
	if msg == "" {
		msg = "Thank you"
	}
	render.TextBox(sl, msg, render.Box{Left: 0.9, Top: 2.8, Width: 11.5, Height: 1.2},
		render.TextOpts{Size: 36, Bold: true, Align: render.AlignCenter})
	if cfg.Contact != "" {
		render.TextBox(sl, cfg.Contact, render.Box{Left: 3.5, Top: 5.6, Width: 7.0, Height: 0.5},
			render.TextOpts{Size: 11, Color: brand.Teal, Align: render.AlignCenter})
	}
	return nil
}

// eyebrow draws the small teal line under a slide title, defaulting to the
// customer name.
func eyebrow(sl *opc.Slide, entry config.SlideEntry, cfg config.Deck, left float64) {
	text := entry.Eyebrow
	if text == "" {
		text = cfg.Customer
	}
	if text == "" {
		return
	}
	render.TextBox(sl, text, render.Box{Left: left, Top: 1.6, Width: 11.9, Height: 0.35},
		render.TextOpts{Size: 10, Italic: true, Color: brand.Teal})
}
