package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Deck is the declarative description of one deck build: template, customer
// metadata, layout overrides, image manifest and the ordered slide list.
type Deck struct {
	Template string `yaml:"template" json:"template,omitempty"`
	Output   string `yaml:"output" json:"output,omitempty"`

	DeckTitle     string `yaml:"deck_title" json:"deck_title,omitempty"`
	DeckSubtitle  string `yaml:"deck_subtitle" json:"deck_subtitle,omitempty"`
	Customer      string `yaml:"customer" json:"customer,omitempty"`
	Contact       string `yaml:"contact" json:"contact,omitempty"`
	CustomerLogo  string `yaml:"customer_logo" json:"customer_logo,omitempty"`
	CoverageTitle string `yaml:"coverage_title" json:"coverage_title,omitempty"`

	LayoutIndices map[string]int `yaml:"layout_indices" json:"layout_indices,omitempty"`

	ScreenshotsDir string            `yaml:"screenshots_dir" json:"screenshots_dir,omitempty"`
	Images         map[string]string `yaml:"images" json:"images,omitempty"`

	RequirementsFile string `yaml:"requirements_file" json:"requirements_file,omitempty"`

	Slides []SlideEntry `yaml:"slides" json:"slides,omitempty"`
}

// SlideEntry is one declared slide. Type selects the slide kind; the other
// fields feed the kind that uses them.
type SlideEntry struct {
	Type string `yaml:"type" json:"type,omitempty"`

	Title    string `yaml:"title" json:"title,omitempty"`
	Subtitle string `yaml:"subtitle" json:"subtitle,omitempty"`
	Eyebrow  string `yaml:"eyebrow" json:"eyebrow,omitempty"`

	// domain-detail: requirement domain by name; empty expands to one slide
	// per domain in data order.
	Domain string `yaml:"domain" json:"domain,omitempty"`

	// bullets: either explicit lines or a markdown body.
	Bullets []string `yaml:"bullets" json:"bullets,omitempty"`
	Body    string   `yaml:"body" json:"body,omitempty"`

	// screenshot-pair: image manifest keys plus captions.
	Left         string `yaml:"left" json:"left,omitempty"`
	LeftCaption  string `yaml:"left_caption" json:"left_caption,omitempty"`
	Right        string `yaml:"right" json:"right,omitempty"`
	RightCaption string `yaml:"right_caption" json:"right_caption,omitempty"`

	// closing
	Message string `yaml:"message" json:"message,omitempty"`
}

// LoadDeck reads and validates a deck config. Relative template, output,
// screenshot and requirements paths resolve against the config's directory.
func LoadDeck(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck config: %w", err)
	}
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Deck{}, fmt.Errorf("parse deck config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	d.Template = resolve(dir, d.Template)
	d.Output = resolve(dir, d.Output)
	d.ScreenshotsDir = resolve(dir, d.ScreenshotsDir)
	d.CustomerLogo = resolve(dir, d.CustomerLogo)
	d.RequirementsFile = resolve(dir, d.RequirementsFile)

	if err := d.Validate(); err != nil {
		return Deck{}, fmt.Errorf("deck config %s: %w", path, err)
	}
	return d, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (d Deck) Validate() error {
	if d.Template == "" {
		return fmt.Errorf("template is required")
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("slides list is empty")
	}
	for i, s := range d.Slides {
		if s.Type == "" {
			return fmt.Errorf("slides[%d]: type is required", i)
		}
	}
	return nil
}

// ImagePath resolves an image manifest key to a file path.
func (d Deck) ImagePath(key string) (string, bool) {
	name, ok := d.Images[key]
	if !ok || name == "" {
		return "", false
	}
	if filepath.IsAbs(name) || d.ScreenshotsDir == "" {
		return name, true
	}
	return filepath.Join(d.ScreenshotsDir, name), true
}
