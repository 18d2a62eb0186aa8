package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/nikogura/cvforge/pkg/config"
	"github.com/nikogura/cvforge/pkg/llm"
	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/profile"
)

type recordingStore struct {
	saved []profile.Document
}

func (r *recordingStore) Load(_ context.Context, _ string) (doc profile.Document, err error) {
	return doc, err
}

func (r *recordingStore) Save(_ context.Context, doc profile.Document) (saved profile.Document, err error) {
	r.saved = append(r.saved, doc)
	return doc, err
}

func (r *recordingStore) Delete(_ context.Context, _ string) (err error) { return err }

func (r *recordingStore) Close() (err error) { return err }

type failingSuggester struct{}

func (failingSuggester) SuggestSectionOrder(_ context.Context, _ llm.SuggestionRequest) (suggestion llm.Suggestion, err error) {
	err = errors.New("service unavailable")
	return suggestion, err
}

func TestJoinKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []profile.SectionKey
		want string
	}{
		{name: "empty", keys: nil, want: "(none)"},
		{name: "single", keys: []profile.SectionKey{profile.SectionSkills}, want: "skills"},
		{
			name: "several",
			keys: []profile.SectionKey{profile.SectionWorkExperiences, profile.SectionEducation},
			want: "workExperiences, education",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joinKeys(tt.keys)
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestOutputDir(t *testing.T) {
	env := environment{cfg: config.Config{Defaults: config.DefaultConfig{OutputDir: "/config/out"}}}

	if got := env.outputDir(""); got != "/config/out" {
		t.Errorf("Expected config output dir, got '%s'", got)
	}

	if got := env.outputDir("/flag/out"); got != "/flag/out" {
		t.Errorf("Expected flag output dir, got '%s'", got)
	}
}

func TestLLMClientRequiresKey(t *testing.T) {
	env := environment{}
	if env.llmClient("") != nil {
		t.Error("Expected nil client without API key")
	}

	env.cfg.AnthropicAPIKey = "sk-test"
	if env.llmClient("") == nil {
		t.Error("Expected client with API key")
	}
}

func orderDoc() (doc profile.Document) {
	doc = profile.Document{
		UserID:       "alice",
		Skills:       []profile.Skill{{ID: "s1", Name: "Go"}},
		Education:    []profile.Education{{ID: "e1", Institution: "MIT"}},
		SectionOrder: []profile.SectionKey{profile.SectionSkills, profile.SectionEducation},
	}
	return doc
}

func TestApplyOrderFailsWhenSuggestionFails(t *testing.T) {
	ctx := context.Background()
	doc := orderDoc()
	resolver := ordering.NewResolver(failingSuggester{}, nil)

	result, resolveErr := resolver.Resolve(ctx, doc, "lead with education")
	if resolveErr == nil {
		t.Fatal("Expected resolve error from failing suggester")
	}

	st := &recordingStore{}
	err := applyOrder(ctx, st, doc, result, resolveErr, false)
	if err == nil {
		t.Fatal("Expected error when the suggestion fails, got nil")
	}
	if len(st.saved) != 0 {
		t.Errorf("Expected nothing saved, got %d saves", len(st.saved))
	}
}

func TestApplyOrderSaves(t *testing.T) {
	ctx := context.Background()
	doc := orderDoc()
	result := ordering.Result{
		Order:  []profile.SectionKey{profile.SectionEducation, profile.SectionSkills},
		Source: ordering.SourcePreset,
	}

	st := &recordingStore{}
	if err := applyOrder(ctx, st, doc, result, nil, true); err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}
	if len(st.saved) != 0 {
		t.Errorf("Expected dry run to save nothing, got %d saves", len(st.saved))
	}

	if err := applyOrder(ctx, st, doc, result, nil, false); err != nil {
		t.Fatalf("Failed to apply order: %v", err)
	}
	if len(st.saved) != 1 {
		t.Fatalf("Expected one save, got %d", len(st.saved))
	}
	if got := joinKeys(st.saved[0].SectionOrder); got != "education, skills" {
		t.Errorf("Expected saved order 'education, skills', got '%s'", got)
	}
}

func TestShowProfileWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "exported", "profile.json")

	if err := showProfile(orderDoc(), out); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}

	doc, err := profile.Load(out)
	if err != nil {
		t.Fatalf("Failed to load written profile: %v", err)
	}
	if doc.UserID != "alice" || len(doc.Skills) != 1 {
		t.Errorf("Expected round-tripped profile for alice, got %+v", doc)
	}
}
