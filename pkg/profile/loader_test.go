package profile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testDocument() (doc Document) {
	doc = Document{
		ID:     "doc-1",
		UserID: "user-1",
		Contact: Contact{
			Name:     "Test User",
			Email:    "test@example.com",
			LinkedIn: "https://linkedin.com/in/test",
		},
		Summary: "Engineer with **deep** experience.",
		WorkExperiences: []WorkExperience{
			{
				ID:           "we-1",
				Role:         "Engineer",
				Company:      "Test Corp",
				StartDate:    "2020",
				Description:  "Built things",
				Achievements: []string{"Shipped 100% of milestones"},
			},
		},
		Skills: []Skill{
			{ID: "sk-1", Name: "Go", Category: "Languages", Proficiency: "Expert"},
		},
		CustomSections: []CustomSection{
			{ID: "cs-1", Heading: "Volunteering", Content: "Mentor"},
		},
		SectionOrder: []SectionKey{SectionSkills, SectionWorkExperiences, SectionCustomSections},
		UpdatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	return doc
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.json")

	data, err := json.MarshalIndent(testDocument(), "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test data: %v", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load profile: %v", err)
	}

	if !reflect.DeepEqual(loaded, testDocument()) {
		t.Errorf("Expected lossless round trip, got %+v", loaded)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.json")

	err := Save(path, testDocument())
	if err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load profile: %v", err)
	}

	if !reflect.DeepEqual(loaded, testDocument()) {
		t.Errorf("Expected lossless round trip, got %+v", loaded)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.yaml")

	content := `user_id: user-2
contact:
  name: Yaml User
  github: https://github.com/yaml
summary: Writes YAML
skills:
  - name: Go
    category: Languages
  - name: Git
section_order:
  - skills
`
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load YAML profile: %v", err)
	}

	if loaded.Contact.Name != "Yaml User" {
		t.Errorf("Expected name 'Yaml User', got '%s'", loaded.Contact.Name)
	}

	if len(loaded.Skills) != 2 {
		t.Fatalf("Expected 2 skills, got %d", len(loaded.Skills))
	}

	if loaded.Skills[1].Name != "Git" || loaded.Skills[1].Category != "" {
		t.Errorf("Unexpected second skill: %+v", loaded.Skills[1])
	}

	if len(loaded.SectionOrder) != 1 || loaded.SectionOrder[0] != SectionSkills {
		t.Errorf("Expected section order [skills], got %v", loaded.SectionOrder)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/profile.json")
	if err == nil {
		t.Error("Expected error loading nonexistent file, got nil")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.json")

	err := os.WriteFile(path, []byte("not valid json"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Error("Expected error loading invalid JSON, got nil")
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantError  bool
		wantSchema bool
	}{
		{
			name: "valid document",
			raw:  `{"user_id":"u","skills":[{"name":"Go"}]}`,
		},
		{
			name: "empty document",
			raw:  `{}`,
		},
		{
			name:       "skill missing name",
			raw:        `{"skills":[{"category":"Languages"}]}`,
			wantError:  true,
			wantSchema: true,
		},
		{
			name:       "achievements not a list",
			raw:        `{"work_experiences":[{"role":"x","achievements":"one"}]}`,
			wantError:  true,
			wantSchema: true,
		},
		{
			name:       "summary wrong type",
			raw:        `{"summary":42}`,
			wantError:  true,
			wantSchema: true,
		},
		{
			name:      "not json",
			raw:       `{`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON([]byte(tt.raw))
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if tt.wantSchema && !errors.Is(err, ErrSchemaViolation) {
				t.Errorf("Expected schema violation, got %v", err)
			}
		})
	}
}
