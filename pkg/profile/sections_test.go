package profile

import (
	"errors"
	"reflect"
	"testing"
)

func TestNonEmptySections(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []SectionKey
	}{
		{
			name: "empty document",
			doc:  Document{},
			want: []SectionKey{},
		},
		{
			name: "work only, empty skills",
			doc: Document{
				WorkExperiences: []WorkExperience{{ID: "1", Role: "Engineer"}},
				Skills:          []Skill{},
			},
			want: []SectionKey{SectionWorkExperiences},
		},
		{
			name: "summary is not an orderable section",
			doc:  Document{Summary: "Hello"},
			want: []SectionKey{},
		},
		{
			name: "every section",
			doc: Document{
				WorkExperiences: []WorkExperience{{}},
				Projects:        []Project{{}},
				Education:       []Education{{}},
				Skills:          []Skill{{}},
				Certifications:  []Certification{{}},
				HonorsAwards:    []HonorAward{{}},
				Publications:    []Publication{{}},
				References:      []Reference{{}},
				CustomSections:  []CustomSection{{}},
			},
			want: AllSections(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NonEmptySections(tt.doc).Keys()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNonEmptySectionsTracksMutation(t *testing.T) {
	doc := Document{}
	if NonEmptySections(doc).Has(SectionSkills) {
		t.Fatal("Expected skills to be empty")
	}

	doc.Skills, _ = AddItem(doc.Skills, Skill{Name: "Go"})
	if !NonEmptySections(doc).Has(SectionSkills) {
		t.Error("Expected skills to be non-empty after add")
	}

	var err error
	doc.Skills, err = RemoveItem(doc.Skills, doc.Skills[0].ID)
	if err != nil {
		t.Fatalf("Failed to remove skill: %v", err)
	}
	if NonEmptySections(doc).Has(SectionSkills) {
		t.Error("Expected skills to be empty after remove")
	}
}

func TestHasSummary(t *testing.T) {
	if HasSummary(Document{Summary: "  \n\t"}) {
		t.Error("Expected blank summary to be empty")
	}
	if !HasSummary(Document{Summary: " text "}) {
		t.Error("Expected summary to be present")
	}
}

func TestParseSectionKey(t *testing.T) {
	tests := []struct {
		token  string
		want   SectionKey
		wantOK bool
	}{
		{"skills", SectionSkills, true},
		{" workExperiences ", SectionWorkExperiences, true},
		{"HONORSAWARDS", SectionHonorsAwards, true},
		{"hobbies", SectionKey("hobbies"), false},
		{"", SectionKey(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseSectionKey(tt.token)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseSectionKey(%q) = %q, %v; want %q, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestItemLifecycle(t *testing.T) {
	doc := Document{SectionOrder: []SectionKey{SectionWorkExperiences}}

	var firstID, secondID string
	doc.WorkExperiences, firstID = AddItem(doc.WorkExperiences, WorkExperience{Role: "First"})
	doc.WorkExperiences, secondID = AddItem(doc.WorkExperiences, WorkExperience{Role: "Second"})

	if firstID == "" || secondID == "" || firstID == secondID {
		t.Fatalf("Expected distinct generated IDs, got %q and %q", firstID, secondID)
	}

	updated := WorkExperience{ID: firstID, Role: "First (updated)"}
	var err error
	doc.WorkExperiences, err = UpdateItem(doc.WorkExperiences, updated)
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	if doc.WorkExperiences[0].Role != "First (updated)" || doc.WorkExperiences[0].ID != firstID {
		t.Errorf("Expected in-place update keeping ID, got %+v", doc.WorkExperiences[0])
	}

	found, ok := FindItem(doc.WorkExperiences, secondID)
	if !ok || found.Role != "Second" {
		t.Errorf("Expected to find second item, got %+v (%v)", found, ok)
	}

	doc.WorkExperiences, err = RemoveItem(doc.WorkExperiences, firstID)
	if err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}

	if len(doc.WorkExperiences) != 1 || doc.WorkExperiences[0].ID != secondID {
		t.Errorf("Expected only second item to remain, got %+v", doc.WorkExperiences)
	}

	if !reflect.DeepEqual(doc.SectionOrder, []SectionKey{SectionWorkExperiences}) {
		t.Errorf("Collection edits must not touch section order, got %v", doc.SectionOrder)
	}

	_, err = RemoveItem(doc.WorkExperiences, "missing")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}

	_, err = UpdateItem(doc.WorkExperiences, WorkExperience{ID: "missing"})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestAddItemKeepsExistingID(t *testing.T) {
	items, id := AddItem([]Skill(nil), Skill{ID: "fixed", Name: "Go"})
	if id != "fixed" || items[0].ID != "fixed" {
		t.Errorf("Expected existing ID to be kept, got %q", id)
	}
}

func TestAddItemDoesNotAlias(t *testing.T) {
	original := make([]Skill, 1, 4)
	original[0] = Skill{ID: "a", Name: "Go"}

	first, _ := AddItem(original, Skill{Name: "Rust"})
	second, _ := AddItem(original, Skill{Name: "Zig"})

	if first[1].Name != "Rust" || second[1].Name != "Zig" {
		t.Errorf("Expected independent slices, got %v and %v", first, second)
	}
}

func TestEnsureItemIDs(t *testing.T) {
	doc := Document{
		Skills:         []Skill{{Name: "Go"}, {ID: "keep", Name: "Git"}},
		CustomSections: []CustomSection{{Heading: "Extra"}},
	}

	out, assigned := EnsureItemIDs(doc)
	if assigned != 2 {
		t.Errorf("Expected 2 assigned IDs, got %d", assigned)
	}

	if out.Skills[0].ID == "" || out.Skills[1].ID != "keep" || out.CustomSections[0].ID == "" {
		t.Errorf("Unexpected IDs: %+v %+v", out.Skills, out.CustomSections)
	}

	if doc.Skills[0].ID != "" {
		t.Error("EnsureItemIDs must not modify its input")
	}

	if out.ID == "" {
		t.Error("Expected document ID to be assigned")
	}
}

func TestWithSectionOrderCopies(t *testing.T) {
	order := []SectionKey{SectionSkills}
	doc := Document{}.WithSectionOrder(order)
	order[0] = SectionProjects

	if doc.SectionOrder[0] != SectionSkills {
		t.Error("Expected WithSectionOrder to copy its argument")
	}
}

func TestDefaults(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"open-ended work", WorkExperience{StartDate: "2020"}.Dates(), "2020 - Present"},
		{"closed work", WorkExperience{StartDate: "2020", EndDate: "2022"}.Dates(), "2020 - 2022"},
		{"undated work", WorkExperience{}.Dates(), ""},
		{"graduation only", Education{EndDate: "2019"}.Dates(), "2019"},
		{"undated project", Project{}.Dates(), ""},
		{"qualification", Education{Degree: "BSc", Field: "CS"}.Qualification(), "BSc, CS"},
		{"skill with level", Skill{Name: "Go", Proficiency: "Expert"}.Label(), "Go (Expert)"},
		{"skill without level", Skill{Name: "Git"}.Label(), "Git"},
		{"custom heading fallback", CustomSection{}.HeadingOrDefault(), "Additional Information"},
		{"reference position", Reference{Title: "CTO", Company: "Acme"}.Position(), "CTO, Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, tt.got)
			}
		})
	}
}
