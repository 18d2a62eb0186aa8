package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikogura/cvforge/pkg/profile"
)

// Fixed section headings. These are structural and never escaped.
const (
	headingSummary        = "PROFESSIONAL SUMMARY"
	headingWork           = "WORK EXPERIENCE"
	headingProjects       = "PROJECTS"
	headingEducation      = "EDUCATION"
	headingSkills         = "SKILLS"
	headingCertifications = "CERTIFICATIONS"
	headingHonors         = "HONORS & AWARDS"
	headingPublications   = "PUBLICATIONS"
	headingReferences     = "REFERENCES"

	skillsOther   = "OTHER"
	skillsGeneral = "GENERAL"
	summaryKey    = "summary"
)

// view is the target-neutral projection every writer walks.
type view struct {
	Name     string
	Contact  []string
	Sections []section
}

// section is one heading block.
type section struct {
	Key     string
	Heading string
	// Compact entries sit on consecutive lines.
	Compact bool
	Entries []entry
}

// entry is one item within a section. Label entries render as "Label: Value";
// all others render a headline from Title and Org followed by Meta lines, Text
// paragraphs and Bullets. Text and Bullets hold free text.
type entry struct {
	Title   string
	Org     string
	Meta    []string
	Text    []string
	Bullets []string
	Label   string
	Value   string
}

// style controls how user text enters the view.
type style struct {
	escape      func(string) string
	upper       func(string) string
	upperTitles bool
}

func identity(s string) (out string) {
	out = s
	return out
}

// upper maps s to upper case using Unicode rules.
func upper(s string) (out string) {
	out = cases.Upper(language.Und).String(s)
	return out
}

// buildView walks doc in order. Keys naming empty or unknown sections and
// repeated keys are skipped, so a stale order never yields an empty heading.
func buildView(doc profile.Document, order []profile.SectionKey, st style) (v view) {
	esc := st.escape
	v.Name = esc(doc.Contact.DisplayName())
	v.Contact = contactParts(doc.Contact, esc)

	if profile.HasSummary(doc) {
		v.Sections = append(v.Sections, section{
			Key:     summaryKey,
			Heading: headingSummary,
			Entries: []entry{{Text: []string{esc(profile.Value(doc.Summary))}}},
		})
	}

	available := profile.NonEmptySections(doc)
	emitted := make(map[profile.SectionKey]struct{}, len(order))

	for _, key := range order {
		if !available.Has(key) {
			continue
		}
		if _, dup := emitted[key]; dup {
			continue
		}
		emitted[key] = struct{}{}
		for _, s := range buildSections(doc, key, st) {
			s.Entries = nonEmptyEntries(s.Entries)
			if len(s.Entries) > 0 {
				v.Sections = append(v.Sections, s)
			}
		}
	}

	return v
}

// contactParts lists present contact fields in fixed order. Only the link
// fields carry a label.
func contactParts(c profile.Contact, esc func(string) string) (parts []string) {
	plain := []string{c.Email, c.Phone, c.Address}
	for _, p := range plain {
		if profile.Present(p) {
			parts = append(parts, esc(profile.Value(p)))
		}
	}

	links := []struct {
		label string
		value string
	}{
		{"LinkedIn", c.LinkedIn},
		{"GitHub", c.GitHub},
		{"Portfolio", c.Portfolio},
	}
	for _, l := range links {
		if profile.Present(l.value) {
			parts = append(parts, l.label+": "+esc(profile.Value(l.value)))
		}
	}

	return parts
}

//nolint:gocyclo // one case per section kind
func buildSections(doc profile.Document, key profile.SectionKey, st style) (out []section) {
	esc := st.escape
	title := func(s string) string {
		s = profile.Value(s)
		if st.upperTitles {
			s = st.upper(s)
		}
		return esc(s)
	}
	val := func(s string) string { return esc(profile.Value(s)) }

	switch key {
	case profile.SectionWorkExperiences:
		s := section{Key: string(key), Heading: headingWork}
		for _, w := range doc.WorkExperiences {
			s.Entries = append(s.Entries, entry{
				Title:   title(w.Role),
				Org:     val(w.Company),
				Meta:    textLines(esc, w.Dates(), w.Location),
				Text:    textLines(esc, w.Description),
				Bullets: textLines(esc, w.Achievements...),
			})
		}
		out = append(out, s)

	case profile.SectionProjects:
		s := section{Key: string(key), Heading: headingProjects}
		for _, p := range doc.Projects {
			s.Entries = append(s.Entries, entry{
				Title:   title(p.Name),
				Meta:    textLines(esc, p.Dates(), p.URL, labeled("Technologies", joinValues(p.Technologies))),
				Text:    textLines(esc, p.Description),
				Bullets: textLines(esc, p.Highlights...),
			})
		}
		out = append(out, s)

	case profile.SectionEducation:
		s := section{Key: string(key), Heading: headingEducation}
		for _, e := range doc.Education {
			s.Entries = append(s.Entries, entry{
				Title: title(e.Qualification()),
				Org:   val(e.Institution),
				Meta:  textLines(esc, e.Dates(), labeled("GPA", e.GPA)),
				Text:  textLines(esc, e.Description),
			})
		}
		out = append(out, s)

	case profile.SectionSkills:
		out = append(out, section{
			Key:     string(key),
			Heading: headingSkills,
			Compact: true,
			Entries: skillEntries(doc.Skills, st),
		})

	case profile.SectionCertifications:
		s := section{Key: string(key), Heading: headingCertifications}
		for _, c := range doc.Certifications {
			s.Entries = append(s.Entries, entry{
				Title: title(c.Name),
				Org:   val(c.Issuer),
				Meta:  textLines(esc, c.Date, labeled("Expires", c.ExpiryDate), c.CredentialURL),
			})
		}
		out = append(out, s)

	case profile.SectionHonorsAwards:
		s := section{Key: string(key), Heading: headingHonors}
		for _, h := range doc.HonorsAwards {
			s.Entries = append(s.Entries, entry{
				Title: title(h.Title),
				Org:   val(h.Issuer),
				Meta:  textLines(esc, h.Date),
				Text:  textLines(esc, h.Description),
			})
		}
		out = append(out, s)

	case profile.SectionPublications:
		s := section{Key: string(key), Heading: headingPublications}
		for _, p := range doc.Publications {
			s.Entries = append(s.Entries, entry{
				Title: title(p.Title),
				Org:   val(p.Publisher),
				Meta:  textLines(esc, p.Date, labeled("Authors", joinValues(p.Authors)), p.URL),
				Text:  textLines(esc, p.Description),
			})
		}
		out = append(out, s)

	case profile.SectionReferences:
		s := section{Key: string(key), Heading: headingReferences}
		for _, r := range doc.References {
			s.Entries = append(s.Entries, entry{
				Title: title(r.Name),
				Org:   val(r.Position()),
				Meta:  textLines(esc, r.Relationship, strings.Join(profile.NonBlank(r.Email, r.Phone), " | ")),
			})
		}
		out = append(out, s)

	case profile.SectionCustomSections:
		for _, c := range doc.CustomSections {
			s := section{
				Key:     string(key),
				Heading: esc(st.upper(c.HeadingOrDefault())),
			}
			if text := textLines(esc, c.Content); len(text) > 0 {
				s.Entries = []entry{{Text: text}}
			}
			out = append(out, s)
		}
	}

	return out
}

// skillEntries groups skills by category in first-seen order. Uncategorized
// skills land on a trailing OTHER line, or GENERAL when nothing is
// categorized. A category that is itself named OTHER absorbs them.
func skillEntries(skills []profile.Skill, st style) (entries []entry) {
	esc := st.escape
	var categories []string
	grouped := make(map[string][]string)
	var loose []string

	for _, s := range skills {
		label := s.Label()
		if label == "" {
			continue
		}
		category := s.CategoryName()
		if category == "" {
			loose = append(loose, esc(label))
			continue
		}
		name := st.upper(category)
		if _, seen := grouped[name]; !seen {
			categories = append(categories, name)
		}
		grouped[name] = append(grouped[name], esc(label))
	}

	var residual string
	if len(loose) > 0 {
		residual = skillsGeneral
		if len(categories) > 0 {
			residual = skillsOther
		}
		if _, taken := grouped[residual]; taken {
			grouped[residual] = append(grouped[residual], loose...)
			loose = nil
		}
	}

	for _, name := range categories {
		entries = append(entries, entry{Label: esc(name), Value: strings.Join(grouped[name], ", ")})
	}

	if len(loose) > 0 {
		entries = append(entries, entry{Label: residual, Value: strings.Join(loose, ", ")})
	}

	return entries
}

// nonEmptyEntries drops items that carry no text at all.
func nonEmptyEntries(entries []entry) (out []entry) {
	for _, e := range entries {
		if e.Title != "" || e.Org != "" || e.Label != "" || len(e.Meta) > 0 || len(e.Text) > 0 || len(e.Bullets) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// textLines escapes and keeps the non-blank values. Labels built with labeled
// pass through the escaper whole, which is safe as labels hold no special
// characters.
func textLines(esc func(string) string, values ...string) (lines []string) {
	for _, v := range profile.NonBlank(values...) {
		lines = append(lines, esc(v))
	}
	return lines
}

func labeled(label, value string) (out string) {
	if !profile.Present(value) {
		return out
	}
	out = label + ": " + profile.Value(value)
	return out
}

func joinValues(values []string) (out string) {
	out = strings.Join(profile.NonBlank(values...), ", ")
	return out
}
