package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/bibnorm/internal/canonical"
	"github.com/lehigh-university-libraries/bibnorm/internal/marc"
)

// ErrMissingIdentifier marks a record that has no 001 control field.
// Such records are dropped, not failed (they can never be cited downstream).
var ErrMissingIdentifier = errors.New("record has no identifier (001)")

// MARC tag bindings for the canonical record model.
const (
	tagRecordID     = "001"
	tagFixedData    = "008"
	tagLanguage     = "041"
	tagTitle        = "245"
	tagUniformTitle = "240"
	tagVariantTitle = "246"
	tagImprintOld   = "260"
	tagImprintNew   = "264"
	tagNote         = "500"
	tagAcquisition  = "541"
)

var (
	// Main-entry name tags. 130 (uniform title) is deliberately excluded:
	// a uniform title is not an agent.
	mainAgentTags = map[string]canonical.AgentType{
		"100": canonical.AgentPersonal,
		"110": canonical.AgentCorporate,
		"111": canonical.AgentMeeting,
	}

	// Added-entry name tags. 730 excluded for the same reason as 130.
	addedAgentTags = map[string]canonical.AgentType{
		"700": canonical.AgentPersonal,
		"710": canonical.AgentCorporate,
		"711": canonical.AgentMeeting,
	}

	subjectTags = map[string]bool{
		"600": true,
		"610": true,
		"611": true,
		"630": true,
		"650": true,
		"651": true,
		"655": true,
	}

	// Subject subfields that carry vocabulary metadata rather than heading
	// text. Numeric codes are control subfields across all 6XX tags.
	subjectControlCodes = map[string]bool{
		"0": true,
		"1": true,
		"2": true,
		"3": true,
		"4": true,
		"5": true,
		"6": true,
		"7": true,
		"8": true,
		"9": true,
	}
)

// occurrence tracks 0-based per-tag occurrence indices in document order.
type occurrence struct {
	seen map[string]int
}

func newOccurrence() *occurrence {
	return &occurrence{seen: make(map[string]int)}
}

// next returns the occurrence index for the given tag and advances it.
func (o *occurrence) next(tag string) int {
	idx := o.seen[tag]
	o.seen[tag] = idx + 1
	return idx
}

// src formats a provenance entry for a data-field subfield.
func src(tag string, occ int, code string) string {
	return fmt.Sprintf("%s[%d]$%s", tag, occ, code)
}

// srcControl formats a provenance entry for a control field.
func srcControl(tag string, occ int) string {
	return fmt.Sprintf("%s[%d]", tag, occ)
}

// Extract builds one canonical record from a MARC source record. It returns
// ErrMissingIdentifier when the record carries no 001 field; callers drop
// such records entirely.
func Extract(rec *marc.Record) (*canonical.Record, error) {
	recordID := rec.ControlValue(tagRecordID)
	if strings.TrimSpace(recordID) == "" {
		return nil, ErrMissingIdentifier
	}

	out := &canonical.Record{
		RecordID: canonical.SourcedValue{
			Value:  strings.TrimSpace(recordID),
			Source: []string{srcControl(tagRecordID, 0)},
		},
	}

	occ := newOccurrence()
	agentIndex := 0

	for i := range rec.Fields {
		field := &rec.Fields[i]
		fieldOcc := occ.next(field.Tag)

		switch {
		case field.Tag == tagTitle:
			if out.Title == nil {
				out.Title = extractTitle(field, fieldOcc)
			}

		case field.Tag == tagUniformTitle:
			if out.UniformTitle == nil {
				out.UniformTitle = subfieldValue(field, fieldOcc, "a")
			}

		case field.Tag == tagVariantTitle:
			if vt := extractVariantTitle(field, fieldOcc); vt != nil {
				out.VariantTitles = append(out.VariantTitles, *vt)
			}

		case field.Tag == tagLanguage:
			out.Languages = append(out.Languages, extractLanguageCodes(field, fieldOcc)...)

		case subjectTags[field.Tag]:
			if subj := extractSubject(field, fieldOcc); subj != nil {
				out.Subjects = append(out.Subjects, *subj)
			}

		case field.Tag == tagNote:
			if note := subfieldValue(field, fieldOcc, "a"); note != nil {
				out.Notes = append(out.Notes, *note)
			}

		case field.Tag == tagAcquisition:
			if acq := extractAcquisition(field, fieldOcc); acq != nil {
				out.Acquisition = append(out.Acquisition, *acq)
			}

		default:
			if agentType, ok := mainAgentTags[field.Tag]; ok {
				out.Agents = append(out.Agents, extractAgent(field, fieldOcc, agentType, canonical.EntryMain, agentIndex))
				agentIndex++
			} else if agentType, ok := addedAgentTags[field.Tag]; ok {
				out.Agents = append(out.Agents, extractAgent(field, fieldOcc, agentType, canonical.EntryAdded, agentIndex))
				agentIndex++
			}
		}
	}

	out.Imprints = extractImprints(rec)

	// 008 language fallback only when no 041 code was present.
	if len(out.Languages) == 0 {
		if lang := extractFixedLanguage(rec); lang != nil {
			out.Languages = append(out.Languages, *lang)
		}
	}

	return out, nil
}

// extractTitle joins 245 $a $b $c with spaces; each present subfield
// contributes its own provenance entry.
func extractTitle(field *marc.Field, fieldOcc int) *canonical.SourcedValue {
	var parts []string
	var sources []string

	for _, code := range []string{"a", "b", "c"} {
		if v := strings.TrimSpace(field.Subfield(code)); v != "" {
			parts = append(parts, v)
			sources = append(sources, src(field.Tag, fieldOcc, code))
		}
	}

	if len(parts) == 0 {
		return nil
	}

	return &canonical.SourcedValue{
		Value:  strings.Join(parts, " "),
		Source: sources,
	}
}

func extractVariantTitle(field *marc.Field, fieldOcc int) *canonical.SourcedValue {
	a := strings.TrimSpace(field.Subfield("a"))
	if a == "" {
		return nil
	}

	value := a
	sources := []string{src(field.Tag, fieldOcc, "a")}

	if b := strings.TrimSpace(field.Subfield("b")); b != "" {
		value += " " + b
		sources = append(sources, src(field.Tag, fieldOcc, "b"))
	}

	return &canonical.SourcedValue{Value: value, Source: sources}
}

// extractImprints prefers the older 260 tag over 264; when both exist the 264
// statements are ignored so two parallel publication statements are never
// double-counted.
func extractImprints(rec *marc.Record) []canonical.ImprintData {
	tag := tagImprintOld
	fields := rec.FieldsByTag(tagImprintOld)
	if len(fields) == 0 {
		tag = tagImprintNew
		fields = rec.FieldsByTag(tagImprintNew)
	}

	var imprints []canonical.ImprintData
	for occIdx := range fields {
		field := &fields[occIdx]
		imprints = append(imprints, canonical.ImprintData{
			Place:        subfieldValueAt(field, tag, occIdx, "a"),
			Publisher:    subfieldValueAt(field, tag, occIdx, "b"),
			Date:         subfieldValueAt(field, tag, occIdx, "c"),
			Manufacturer: subfieldValueAt(field, tag, occIdx, "f"),
		})
	}

	return imprints
}

// extractLanguageCodes returns every $a repeat on a 041 field.
func extractLanguageCodes(field *marc.Field, fieldOcc int) []canonical.SourcedValue {
	var out []canonical.SourcedValue
	for _, v := range field.SubfieldValues("a") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, canonical.SourcedValue{
			Value:  v,
			Source: []string{src(field.Tag, fieldOcc, "a")},
		})
	}
	return out
}

// extractFixedLanguage pulls the 3-character language code from 008
// positions 35-37, skipping blank codes.
func extractFixedLanguage(rec *marc.Record) *canonical.SourcedValue {
	fixed := rec.ControlValue(tagFixedData)
	if len(fixed) < 38 {
		return nil
	}

	code := strings.TrimSpace(fixed[35:38])
	if code == "" || code == "|||" {
		return nil
	}

	return &canonical.SourcedValue{
		Value:  code,
		Source: []string{fmt.Sprintf("%s[0]/35-37", tagFixedData)},
	}
}

// extractSubject concatenates heading subfields with " -- " and captures
// scheme ($2), heading language ($9), and authority URI ($0) separately.
func extractSubject(field *marc.Field, fieldOcc int) *canonical.SubjectData {
	var parts []string
	var sources []string

	for _, sf := range field.Subfields {
		if subjectControlCodes[sf.Code] {
			continue
		}
		v := strings.TrimSpace(sf.Value)
		if v == "" {
			continue
		}
		parts = append(parts, v)
		sources = append(sources, src(field.Tag, fieldOcc, sf.Code))
	}

	if len(parts) == 0 {
		return nil
	}

	subj := &canonical.SubjectData{
		Heading: canonical.SourcedValue{
			Value:  strings.Join(parts, " -- "),
			Source: sources,
		},
	}

	subj.Scheme = subfieldValueAt(field, field.Tag, fieldOcc, "2")
	subj.HeadingLanguage = subfieldValueAt(field, field.Tag, fieldOcc, "9")
	subj.AuthorityURI = subfieldValueAt(field, field.Tag, fieldOcc, "0")

	return subj
}

// extractAgent builds one AgentData from a name field. Role resolution
// precedence: relator code ($4) > relator term ($e) > tag inference for main
// entries > unknown.
func extractAgent(field *marc.Field, fieldOcc int, agentType canonical.AgentType, entryRole canonical.EntryRole, agentIndex int) canonical.AgentData {
	agent := canonical.AgentData{
		AgentType:  agentType,
		EntryRole:  entryRole,
		AgentIndex: agentIndex,
	}

	name := strings.TrimSpace(field.Subfield("a"))
	sources := []string{}
	if name != "" {
		sources = append(sources, src(field.Tag, fieldOcc, "a"))
	}

	// Corporate and meeting names carry subordinate units in $b.
	if agentType != canonical.AgentPersonal {
		if b := strings.TrimSpace(field.Subfield("b")); b != "" {
			if name != "" {
				name += " " + b
			} else {
				name = b
			}
			sources = append(sources, src(field.Tag, fieldOcc, "b"))
		}
	}

	agent.Name = canonical.SourcedValue{Value: name, Source: sources}
	agent.Dates = subfieldValueAt(field, field.Tag, fieldOcc, "d")
	agent.AuthorityURI = subfieldValueAt(field, field.Tag, fieldOcc, "0")

	switch {
	case strings.TrimSpace(field.Subfield("4")) != "":
		agent.Function = subfieldValueAt(field, field.Tag, fieldOcc, "4")
		agent.RoleSource = canonical.RoleFromRelatorCode
	case strings.TrimSpace(field.Subfield("e")) != "":
		agent.Function = subfieldValueAt(field, field.Tag, fieldOcc, "e")
		agent.RoleSource = canonical.RoleFromRelatorTerm
	case entryRole == canonical.EntryMain:
		inferred := "creator"
		if agentType == canonical.AgentPersonal {
			inferred = "author"
		}
		agent.Function = &canonical.SourcedValue{
			Value:  inferred,
			Source: []string{srcControl(field.Tag, fieldOcc)},
		}
		agent.RoleSource = canonical.RoleFromTag
	default:
		agent.RoleSource = canonical.RoleUnknown
	}

	return agent
}

func extractAcquisition(field *marc.Field, fieldOcc int) *canonical.SourcedValue {
	var parts []string
	var sources []string

	for _, sf := range field.Subfields {
		if subjectControlCodes[sf.Code] {
			continue
		}
		v := strings.TrimSpace(sf.Value)
		if v == "" {
			continue
		}
		parts = append(parts, v)
		sources = append(sources, src(field.Tag, fieldOcc, sf.Code))
	}

	if len(parts) == 0 {
		return nil
	}

	return &canonical.SourcedValue{
		Value:  strings.Join(parts, "; "),
		Source: sources,
	}
}

// subfieldValue wraps the first occurrence of a subfield as a SourcedValue.
func subfieldValue(field *marc.Field, fieldOcc int, code string) *canonical.SourcedValue {
	return subfieldValueAt(field, field.Tag, fieldOcc, code)
}

func subfieldValueAt(field *marc.Field, tag string, fieldOcc int, code string) *canonical.SourcedValue {
	v := strings.TrimSpace(field.Subfield(code))
	if v == "" {
		return nil
	}
	return &canonical.SourcedValue{
		Value:  v,
		Source: []string{src(tag, fieldOcc, code)},
	}
}
