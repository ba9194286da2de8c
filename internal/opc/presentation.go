package opc

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"deckgen/internal/model"
)

// The presentation part is kept as raw bytes and only the slide-id list is
// spliced: rewriting the whole part through a generic XML round trip would
// disturb namespace prefixes and unrelated content the template depends on.

var (
	sldIDLstRe = regexp.MustCompile(`<p:sldIdLst[^>]*/>|<p:sldIdLst[^>]*>[\s\S]*?</p:sldIdLst>`)
	sldIDRe    = regexp.MustCompile(`<p:sldId\s[^>]*/>`)
	idAttrRe   = regexp.MustCompile(`\bid="(\d+)"`)
	rIDAttrRe  = regexp.MustCompile(`r:id="([^"]+)"`)

	masterLstCloseRe = regexp.MustCompile(`</p:sldMasterIdLst>`)
)

type sldIDEntry struct {
	id  int
	rID string
}

// parseSldIDs extracts the slide-id entries from presentation.xml.
func parseSldIDs(pres []byte) []sldIDEntry {
	region := sldIDLstRe.Find(pres)
	if region == nil {
		return nil
	}
	var entries []sldIDEntry
	for _, m := range sldIDRe.FindAll(region, -1) {
		var e sldIDEntry
		if im := idAttrRe.FindSubmatch(m); im != nil {
			e.id, _ = strconv.Atoi(string(im[1]))
		}
		if rm := rIDAttrRe.FindSubmatch(m); rm != nil {
			e.rID = string(rm[1])
		}
		entries = append(entries, e)
	}
	return entries
}

// spliceSldIDs replaces the slide-id list with the given entries, inserting a
// fresh list after the master list when the template carries none.
func spliceSldIDs(pres []byte, entries []sldIDEntry) ([]byte, error) {
	var lst bytes.Buffer
	if len(entries) == 0 {
		lst.WriteString(`<p:sldIdLst/>`)
	} else {
		lst.WriteString(`<p:sldIdLst>`)
		for _, e := range entries {
			fmt.Fprintf(&lst, `<p:sldId id="%d" r:id="%s"/>`, e.id, e.rID)
		}
		lst.WriteString(`</p:sldIdLst>`)
	}

	if loc := sldIDLstRe.FindIndex(pres); loc != nil {
		out := make([]byte, 0, len(pres)+lst.Len())
		out = append(out, pres[:loc[0]]...)
		out = append(out, lst.Bytes()...)
		out = append(out, pres[loc[1]:]...)
		return out, nil
	}
	if loc := masterLstCloseRe.FindIndex(pres); loc != nil {
		out := make([]byte, 0, len(pres)+lst.Len())
		out = append(out, pres[:loc[1]]...)
		out = append(out, lst.Bytes()...)
		out = append(out, pres[loc[1]:]...)
		return out, nil
	}
	return nil, fmt.Errorf("%w: presentation has no slide master list", model.ErrTemplateUnreadable)
}
