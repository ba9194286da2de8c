package opc

import (
	"encoding/xml"
	"fmt"
)

// OPC content types and relationship types used by the package manager.
const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctTemplate     = "application/vnd.openxmlformats-officedocument.presentationml.template.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

	relTypeSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	xmlnsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	xmlnsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

const (
	contentTypesPart = "[Content_Types].xml"
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

// relationships models a .rels part. The slide list in presentation.xml and
// this table are independent structures that must stay consistent; see
// Package.RemoveSlide for the ordering contract.
type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func parseRelationships(data []byte) (*relationships, error) {
	var r relationships
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse relationships: %w", err)
	}
	r.Xmlns = xmlnsRelationships
	return &r, nil
}

func (r *relationships) bytes() []byte {
	return marshalPart(r)
}

func (r *relationships) add(id, relType, target string) {
	r.Rels = append(r.Rels, relationship{ID: id, Type: relType, Target: target})
}

// drop removes the relationship with the given Id, returning its target and
// whether it was present.
func (r *relationships) drop(id string) (string, bool) {
	for i, rel := range r.Rels {
		if rel.ID == id {
			target := rel.Target
			r.Rels = append(r.Rels[:i], r.Rels[i+1:]...)
			return target, true
		}
	}
	return "", false
}

// contentTypes models [Content_Types].xml.
type contentTypes struct {
	XMLName   xml.Name     `xml:"Types"`
	Xmlns     string       `xml:"xmlns,attr"`
	Defaults  []ctDefault  `xml:"Default"`
	Overrides []ctOverride `xml:"Override"`
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("parse content types: %w", err)
	}
	ct.Xmlns = xmlnsContentTypes
	return &ct, nil
}

func (ct *contentTypes) bytes() []byte {
	return marshalPart(ct)
}

func (ct *contentTypes) addOverride(partName, contentType string) {
	ct.Overrides = append(ct.Overrides, ctOverride{PartName: partName, ContentType: contentType})
}

func (ct *contentTypes) removeOverride(partName string) {
	for i, o := range ct.Overrides {
		if o.PartName == partName {
			ct.Overrides = append(ct.Overrides[:i], ct.Overrides[i+1:]...)
			return
		}
	}
}

func (ct *contentTypes) ensureDefault(ext, contentType string) {
	for _, d := range ct.Defaults {
		if d.Extension == ext {
			return
		}
	}
	ct.Defaults = append(ct.Defaults, ctDefault{Extension: ext, ContentType: contentType})
}

func marshalPart(v any) []byte {
	out, err := xml.Marshal(v)
	if err != nil {
		// All part structs are marshalable by construction.
		panic(fmt.Sprintf("opc: marshal part: %v", err))
	}
	return append([]byte(xml.Header), out...)
}
