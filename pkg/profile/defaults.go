package profile

import "strings"

// Default-resolution rules for optional fields. Renderers go through these
// accessors instead of reading raw fields, so each fallback lives in one place.

// PresentLabel is shown when a dated entry has no end date.
const PresentLabel = "Present"

// Value returns the trimmed value of an optional string field. Blank means
// absent.
func Value(s string) (v string) {
	v = strings.TrimSpace(s)
	return v
}

// Present reports whether an optional string field carries a value.
func Present(s string) (ok bool) {
	ok = Value(s) != ""
	return ok
}

// DateRange renders "start - end" where a missing end resolves to Present.
// An entry with neither date yields an empty string.
func DateRange(start, end string) (dates string) {
	start = Value(start)
	end = Value(end)
	if start == "" && end == "" {
		return dates
	}
	if end == "" {
		end = PresentLabel
	}
	if start == "" {
		dates = end
		return dates
	}
	dates = start + " - " + end
	return dates
}

// Dates resolves the display date range of a work experience.
func (w WorkExperience) Dates() (dates string) {
	dates = DateRange(w.StartDate, w.EndDate)
	return dates
}

// Dates resolves the display date range of a project. Projects without a
// start date are undated rather than ongoing.
func (p Project) Dates() (dates string) {
	if !Present(p.StartDate) {
		dates = Value(p.EndDate)
		return dates
	}
	dates = DateRange(p.StartDate, p.EndDate)
	return dates
}

// Dates resolves the display date range of an education entry. Entries with
// only an end date show the graduation date alone.
func (e Education) Dates() (dates string) {
	if !Present(e.StartDate) {
		dates = Value(e.EndDate)
		return dates
	}
	dates = DateRange(e.StartDate, e.EndDate)
	return dates
}

// Qualification joins degree and field of study, e.g. "BSc, Computer Science".
func (e Education) Qualification() (q string) {
	parts := nonBlank(e.Degree, e.Field)
	q = strings.Join(parts, ", ")
	return q
}

// CategoryName resolves the skill category; blank means uncategorized.
func (s Skill) CategoryName() (category string) {
	category = Value(s.Category)
	return category
}

// Label renders "Name (Proficiency)" or just "Name". A skill without a name
// has no label.
func (s Skill) Label() (label string) {
	label = Value(s.Name)
	if label == "" {
		return label
	}
	if p := Value(s.Proficiency); p != "" {
		label += " (" + p + ")"
	}
	return label
}

// Position joins a reference's title and company.
func (r Reference) Position() (position string) {
	position = strings.Join(nonBlank(r.Title, r.Company), ", ")
	return position
}

// HeadingOrDefault resolves a custom section heading.
func (c CustomSection) HeadingOrDefault() (heading string) {
	heading = Value(c.Heading)
	if heading == "" {
		heading = "Additional Information"
	}
	return heading
}

// DisplayName resolves the name shown at the top of rendered documents.
func (c Contact) DisplayName() (name string) {
	name = Value(c.Name)
	return name
}

// NonBlank returns the trimmed values that are present, in order.
func NonBlank(values ...string) (out []string) {
	out = nonBlank(values...)
	return out
}

func nonBlank(values ...string) (out []string) {
	out = make([]string, 0, len(values))
	for _, v := range values {
		if t := Value(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
