package profile

import "time"

// Document is the complete professional profile owned by one user.
type Document struct {
	ID              string           `json:"id,omitempty"`
	UserID          string           `json:"user_id"`
	Contact         Contact          `json:"contact"`
	Summary         string           `json:"summary,omitempty"`
	WorkExperiences []WorkExperience `json:"work_experiences,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	Education       []Education      `json:"education,omitempty"`
	Skills          []Skill          `json:"skills,omitempty"`
	Certifications  []Certification  `json:"certifications,omitempty"`
	HonorsAwards    []HonorAward     `json:"honors_awards,omitempty"`
	Publications    []Publication    `json:"publications,omitempty"`
	References      []Reference      `json:"references,omitempty"`
	CustomSections  []CustomSection  `json:"custom_sections,omitempty"`
	SectionOrder    []SectionKey     `json:"section_order,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at,omitempty"`
}

// Contact holds personal contact details. Every field is optional.
type Contact struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// WorkExperience is a single position held.
type WorkExperience struct {
	ID           string   `json:"id"`
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Project is a personal, open source or professional project.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	URL          string   `json:"url,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// Education is a degree or course of study.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill is a named skill with optional grouping and level.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Certification is a professional certification.
type Certification struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer,omitempty"`
	Date          string `json:"date,omitempty"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	CredentialURL string `json:"credential_url,omitempty"`
}

// HonorAward is an honor, award or other recognition.
type HonorAward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Publication is a paper, article or book.
type Publication struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Publisher   string   `json:"publisher,omitempty"`
	Date        string   `json:"date,omitempty"`
	URL         string   `json:"url,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Reference is a professional reference.
type Reference struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Company      string `json:"company,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// CustomSection is a free-form section with a user-chosen heading.
type CustomSection struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Content string `json:"content"`
}
