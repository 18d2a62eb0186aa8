package profile

import "strings"

// SectionKey identifies one of the orderable profile sections.
type SectionKey string

// The closed set of section keys.
const (
	SectionWorkExperiences SectionKey = "workExperiences"
	SectionProjects        SectionKey = "projects"
	SectionEducation       SectionKey = "education"
	SectionSkills          SectionKey = "skills"
	SectionCertifications  SectionKey = "certifications"
	SectionHonorsAwards    SectionKey = "honorsAwards"
	SectionPublications    SectionKey = "publications"
	SectionReferences      SectionKey = "references"
	SectionCustomSections  SectionKey = "customSections"
)

// AllSections returns every section key in default priority order.
func AllSections() (keys []SectionKey) {
	keys = []SectionKey{
		SectionWorkExperiences,
		SectionEducation,
		SectionProjects,
		SectionSkills,
		SectionCertifications,
		SectionHonorsAwards,
		SectionPublications,
		SectionReferences,
		SectionCustomSections,
	}
	return keys
}

// Valid reports whether k belongs to the section vocabulary.
func (k SectionKey) Valid() (valid bool) {
	for _, known := range AllSections() {
		if k == known {
			valid = true
			return valid
		}
	}
	return valid
}

// ParseSectionKey converts an untrusted token into a SectionKey. Matching is
// exact first, then case-insensitive; ok is false for foreign tokens.
func ParseSectionKey(token string) (key SectionKey, ok bool) {
	trimmed := strings.TrimSpace(token)
	for _, known := range AllSections() {
		if string(known) == trimmed || strings.EqualFold(string(known), trimmed) {
			key = known
			ok = true
			return key, ok
		}
	}
	key = SectionKey(trimmed)
	return key, ok
}

// SectionSet is an unordered set of section keys.
type SectionSet map[SectionKey]struct{}

// NewSectionSet builds a set from keys.
func NewSectionSet(keys ...SectionKey) (set SectionSet) {
	set = make(SectionSet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s SectionSet) Has(k SectionKey) (ok bool) {
	_, ok = s[k]
	return ok
}

// Len returns the number of keys in the set.
func (s SectionSet) Len() (n int) {
	n = len(s)
	return n
}

// Keys returns the members in default priority order.
func (s SectionSet) Keys() (keys []SectionKey) {
	keys = make([]SectionKey, 0, len(s))
	for _, k := range AllSections() {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// NonEmptySections computes which sections of doc currently have renderable
// content. It is recomputed on every call.
func NonEmptySections(doc Document) (set SectionSet) {
	set = make(SectionSet)
	counts := map[SectionKey]int{
		SectionWorkExperiences: len(doc.WorkExperiences),
		SectionProjects:        len(doc.Projects),
		SectionEducation:       len(doc.Education),
		SectionSkills:          len(doc.Skills),
		SectionCertifications:  len(doc.Certifications),
		SectionHonorsAwards:    len(doc.HonorsAwards),
		SectionPublications:    len(doc.Publications),
		SectionReferences:      len(doc.References),
		SectionCustomSections:  len(doc.CustomSections),
	}
	for k, n := range counts {
		if n > 0 {
			set[k] = struct{}{}
		}
	}
	return set
}

// HasSummary reports whether the summary has non-blank text.
func HasSummary(doc Document) (ok bool) {
	ok = strings.TrimSpace(doc.Summary) != ""
	return ok
}
