// Package deck turns a deck config plus requirement data into a populated
// presentation package. Slide kinds form a closed set; unknown kinds are
// rejected when the slide list is compiled, before any package mutation.
package deck

import (
	"fmt"

	"deckgen/internal/config"
	"deckgen/internal/model"
)

// Kind is a logical slide kind.
type Kind string

const (
	KindTitle      Kind = "title"
	KindCoverage   Kind = "coverage-summary"
	KindDomain     Kind = "domain-detail"
	KindScreenshot Kind = "screenshot-pair"
	KindSection    Kind = "section"
	KindBullets    Kind = "bullets"
	KindClosing    Kind = "closing"
)

// slideOp is one compiled slide: the kind, the config entry that declared it,
// and — for domain slides — the resolved domain.
type slideOp struct {
	kind   Kind
	entry  config.SlideEntry
	domain *model.Domain
}

// compileSlides validates the declared slide list against the data and
// expands bare domain-detail entries into one slide per domain.
func compileSlides(cfg config.Deck, domains []model.Domain) ([]slideOp, error) {
	var ops []slideOp
	for i, entry := range cfg.Slides {
		switch Kind(entry.Type) {
		case KindTitle, KindCoverage, KindScreenshot, KindSection, KindBullets, KindClosing:
			ops = append(ops, slideOp{kind: Kind(entry.Type), entry: entry})
		case KindDomain:
			if entry.Domain == "" {
				for j := range domains {
					ops = append(ops, slideOp{kind: KindDomain, entry: entry, domain: &domains[j]})
				}
				continue
			}
			dom := findDomain(domains, entry.Domain)
			if dom == nil {
				return nil, fmt.Errorf("slides[%d]: domain %q not present in requirement data", i, entry.Domain)
			}
			ops = append(ops, slideOp{kind: KindDomain, entry: entry, domain: dom})
		default:
			return nil, fmt.Errorf("slides[%d]: %w: %q", i, model.ErrUnknownSlideKind, entry.Type)
		}
	}
	return ops, nil
}

func findDomain(domains []model.Domain, name string) *model.Domain {
	for i := range domains {
		if domains[i].Name == name {
			return &domains[i]
		}
	}
	return nil
}
