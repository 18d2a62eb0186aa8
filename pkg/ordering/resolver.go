package ordering

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nikogura/cvforge/pkg/llm"
	"github.com/nikogura/cvforge/pkg/profile"
)

// Source records where a resolved order came from.
type Source string

// Order sources.
const (
	SourceStored    Source = "stored"
	SourceSuggested Source = "suggested"
	SourcePreset    Source = "preset"
)

// Suggester proposes a section order for a free-text preference. Its output
// is treated as untrusted.
type Suggester interface {
	SuggestSectionOrder(ctx context.Context, req llm.SuggestionRequest) (suggestion llm.Suggestion, err error)
}

// Result is a resolved, always valid section order.
type Result struct {
	Order     []profile.SectionKey `json:"order"`
	Reasoning string               `json:"reasoning,omitempty"`
	Source    Source               `json:"source"`
}

// Resolver turns an ordering preference into a concrete section order.
type Resolver struct {
	Suggester Suggester
	Logger    logrus.FieldLogger
}

// NewResolver creates a Resolver. A nil suggester limits preferences to the
// built-in presets.
func NewResolver(suggester Suggester, logger logrus.FieldLogger) (resolver *Resolver) {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	resolver = &Resolver{
		Suggester: suggester,
		Logger:    logger,
	}
	return resolver
}

//nolint:gochecknoglobals // fixed preset table
var presets = map[string][]profile.SectionKey{
	"academic": {
		profile.SectionEducation,
		profile.SectionPublications,
		profile.SectionHonorsAwards,
		profile.SectionWorkExperiences,
		profile.SectionProjects,
	},
	"work-focused": {
		profile.SectionWorkExperiences,
		profile.SectionProjects,
		profile.SectionSkills,
		profile.SectionCertifications,
	},
	"technical": {
		profile.SectionSkills,
		profile.SectionProjects,
		profile.SectionWorkExperiences,
		profile.SectionCertifications,
	},
}

// Preset returns the fixed proposal for a named preference.
func Preset(preference string) (proposal []profile.SectionKey, ok bool) {
	proposal, ok = presets[strings.ToLower(strings.TrimSpace(preference))]
	return proposal, ok
}

// Resolve produces a valid order for doc. An empty preference reconciles the
// stored order. When the suggester fails the stored order is returned
// unchanged together with the error, so callers always have a usable result.
func (r *Resolver) Resolve(ctx context.Context, doc profile.Document, preference string) (result Result, err error) {
	available := profile.NonEmptySections(doc)
	preference = strings.TrimSpace(preference)

	if preference == "" {
		result = Result{Order: Reconcile(doc.SectionOrder, available), Source: SourceStored}
		return result, err
	}

	if r.Suggester == nil {
		proposal, ok := Preset(preference)
		if !ok {
			result = Result{Order: Reconcile(doc.SectionOrder, available), Source: SourceStored}
			err = errors.Errorf("unknown ordering preference %q and no suggestion service configured", preference)
			return result, err
		}
		result = Result{
			Order:     Reconcile(proposal, available),
			Reasoning: fmt.Sprintf("%s preset", preference),
			Source:    SourcePreset,
		}
		return result, err
	}

	req := llm.SuggestionRequest{
		Preference:        preference,
		AvailableSections: keyStrings(available.Keys()),
		CurrentOrder:      keyStrings(doc.SectionOrder),
		ProfileOverview:   overview(doc),
	}

	r.Logger.WithField("preference", preference).Debug("requesting section order suggestion")

	var suggestion llm.Suggestion
	suggestion, err = r.Suggester.SuggestSectionOrder(ctx, req)
	if err != nil {
		r.Logger.WithError(err).Warn("section order suggestion failed, keeping stored order")
		result = Result{Order: cloneKeys(doc.SectionOrder), Source: SourceStored}
		err = errors.Wrap(err, "section order suggestion failed")
		return result, err
	}

	proposed := ParseKeys(suggestion.Order)
	result = Result{
		Order:     Reconcile(proposed, available),
		Reasoning: suggestion.Reasoning,
		Source:    SourceSuggested,
	}

	r.Logger.WithFields(logrus.Fields{
		"proposed": suggestion.Order,
		"order":    result.Order,
	}).Debug("reconciled suggested section order")

	return result, err
}

func keyStrings(keys []profile.SectionKey) (out []string) {
	out = make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

func cloneKeys(keys []profile.SectionKey) (out []profile.SectionKey) {
	out = make([]profile.SectionKey, len(keys))
	copy(out, keys)
	return out
}

// overview summarizes doc for the suggestion prompt without sending free text.
func overview(doc profile.Document) (text string) {
	counts := []string{
		fmt.Sprintf("%d work experiences", len(doc.WorkExperiences)),
		fmt.Sprintf("%d projects", len(doc.Projects)),
		fmt.Sprintf("%d education entries", len(doc.Education)),
		fmt.Sprintf("%d skills", len(doc.Skills)),
		fmt.Sprintf("%d certifications", len(doc.Certifications)),
		fmt.Sprintf("%d honors and awards", len(doc.HonorsAwards)),
		fmt.Sprintf("%d publications", len(doc.Publications)),
		fmt.Sprintf("%d references", len(doc.References)),
		fmt.Sprintf("%d custom sections", len(doc.CustomSections)),
	}
	text = strings.Join(counts, ", ")
	if len(doc.WorkExperiences) > 0 {
		if role := profile.Value(doc.WorkExperiences[0].Role); role != "" {
			text += fmt.Sprintf("; most recent role: %s", role)
		}
	}
	return text
}
