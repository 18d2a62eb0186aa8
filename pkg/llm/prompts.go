package llm

import (
	"fmt"
	"strings"
)

// buildSuggestionPrompt creates the section order prompt.
func buildSuggestionPrompt(req SuggestionRequest) (prompt string) {
	overview := req.ProfileOverview
	if overview == "" {
		overview = "(not provided)"
	}

	prompt = fmt.Sprintf(`You are an expert resume editor deciding the order in which resume sections should appear.

ORDERING PREFERENCE:
%s

SECTIONS THAT CONTAIN DATA:
%s

CURRENT ORDER:
%s

PROFILE OVERVIEW:
%s

Rules:
1. Use ONLY the section keys listed under SECTIONS THAT CONTAIN DATA, spelled exactly as given
2. Include every one of those keys exactly once
3. Put the sections that best serve the preference first
4. Keep the reasoning to one or two sentences

Return ONLY valid JSON in this exact format (no markdown, no commentary):
{
  "order": ["sectionKey1", "sectionKey2"],
  "reasoning": "why this order serves the preference"
}`, req.Preference, strings.Join(req.AvailableSections, ", "), strings.Join(req.CurrentOrder, ", "), overview)

	return prompt
}

// buildLatexPrompt creates the LaTeX generation prompt.
func buildLatexPrompt(req LatexRequest) (prompt string) {
	tailoring := ""
	if strings.TrimSpace(req.JobDescription) != "" {
		tailoring = fmt.Sprintf(`
JOB DESCRIPTION (emphasize the most relevant experience, never invent any):
%s
`, req.JobDescription)
	}

	prompt = fmt.Sprintf(`You are an expert LaTeX typesetter producing a professional one or two page resume.

PROFILE (text is already LaTeX-escaped, copy it verbatim; lines starting with SECTION: name a section and are not escaped):
%s
%s
CRITICAL RULES:
- Use ONLY facts present in the profile. Do not add employers, dates, titles, metrics or skills.
- Keep the section order of the profile.
- Do not escape text a second time.
- Use only packages available in a standard TeX Live installation.
- Produce a complete document starting with \documentclass and ending with \end{document}.

Return ONLY the LaTeX source (no markdown, no commentary).`, req.ProfileText, tailoring)

	return prompt
}
