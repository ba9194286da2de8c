package deck

import (
	"fmt"

	"deckgen/internal/config"
	"deckgen/internal/model"
	"deckgen/internal/opc"
)

// Build opens the template, renders the declared slide list in order, and
// returns the still-open package. The slide list is compiled (and unknown
// kinds rejected) before the template is touched.
func Build(cfg config.Deck, domains []model.Domain) (*opc.Package, error) {
	ops, err := compileSlides(cfg, domains)
	if err != nil {
		return nil, err
	}

	pkg, err := opc.Open(cfg.Template)
	if err != nil {
		return nil, err
	}
	pkg.SetLayouts(cfg.LayoutIndices)

	for i, op := range ops {
		if err := op.render(pkg, cfg, domains); err != nil {
			return nil, fmt.Errorf("slide %d (%s): %w", i+1, op.kind, err)
		}
	}
	return pkg, nil
}

// BuildBytes builds and serializes the deck in memory.
func BuildBytes(cfg config.Deck, domains []model.Domain) ([]byte, error) {
	pkg, err := Build(cfg, domains)
	if err != nil {
		return nil, err
	}
	return pkg.Bytes()
}

// BuildFile builds the deck and saves it to the config's output path.
func BuildFile(cfg config.Deck, domains []model.Domain) (string, error) {
	if cfg.Output == "" {
		return "", fmt.Errorf("deck config has no output path")
	}
	pkg, err := Build(cfg, domains)
	if err != nil {
		return "", err
	}
	if err := pkg.Save(cfg.Output); err != nil {
		return "", err
	}
	return cfg.Output, nil
}
