package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"deckgen/internal/model"
)

// DomainDoc is the wire shape of one domain in requirements JSON, matching
// the spreadsheet parser's output.
type DomainDoc struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Reqs        []ReqDoc `json:"reqs"`
}

// ReqDoc is the wire shape of one requirement row.
type ReqDoc struct {
	Requirement string `json:"requirement"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Signal      string `json:"signal"`
}

// RequirementsDoc converts Domains to their wire shape.
func RequirementsDoc(domains []model.Domain) []DomainDoc {
	docs := make([]DomainDoc, 0, len(domains))
	for _, d := range domains {
		dd := DomainDoc{Name: d.Name, Description: d.Description, Reqs: []ReqDoc{}}
		for _, r := range d.Requirements {
			dd.Reqs = append(dd.Reqs, ReqDoc{
				Requirement: r.Name,
				Description: r.Description,
				Status:      r.Status.Display(),
				Signal:      r.Signal,
			})
		}
		docs = append(docs, dd)
	}
	return docs
}

// DomainsFromDoc validates wire domains into model Domains. Unlike
// spreadsheet parsing, an unknown status here is fatal: a curated data file
// with a bad status is a config error, not messy external data.
func DomainsFromDoc(docs []DomainDoc) ([]model.Domain, error) {
	domains := make([]model.Domain, 0, len(docs))
	for _, d := range docs {
		dom := model.Domain{Name: d.Name, Description: d.Description}
		for _, rq := range d.Reqs {
			req, err := model.NewRequirement(rq.Requirement, rq.Description, rq.Status, rq.Signal)
			if err != nil {
				return nil, fmt.Errorf("domain %q: %w", d.Name, err)
			}
			dom.Requirements = append(dom.Requirements, req)
		}
		domains = append(domains, dom)
	}
	return domains, nil
}

// LoadRequirements reads a requirements JSON file into Domains.
func LoadRequirements(path string) ([]model.Domain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}
	defer f.Close()
	return DecodeRequirements(f)
}

// DecodeRequirements parses requirements JSON from a reader.
func DecodeRequirements(r io.Reader) ([]model.Domain, error) {
	var docs []DomainDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("parse requirements: %w", err)
	}
	return DomainsFromDoc(docs)
}

// EncodeRequirements writes Domains as requirements JSON, the same shape
// DecodeRequirements reads.
func EncodeRequirements(w io.Writer, domains []model.Domain) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(RequirementsDoc(domains))
}
