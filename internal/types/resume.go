// Package types provides type definitions for structured data used throughout careerforge.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/google/uuid"
)

// ScoreType identifies how an education score is expressed
type ScoreType string

const (
	// ScoreCGPA is a cumulative grade point average
	ScoreCGPA ScoreType = "CGPA"
	// ScorePercentage is a percentage score
	ScorePercentage ScoreType = "Percentage"
)

// Valid reports whether t is a known score type. The empty value means no
// score type was chosen and is valid.
func (t ScoreType) Valid() bool {
	switch t {
	case "", ScoreCGPA, ScorePercentage:
		return true
	default:
		return false
	}
}

// PersonalInfo holds the header block of a resume
type PersonalInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email1   string `json:"email1"`
	Email2   string `json:"email2,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Education is a single entry in the education list
type Education struct {
	ID          string    `json:"id"`
	Institution string    `json:"institution"`
	Degree      string    `json:"degree"`
	Field       string    `json:"field"`
	Score       string    `json:"score"`
	ScoreType   ScoreType `json:"scoreType"`
	StartYear   string    `json:"startYear"`
	EndYear     string    `json:"endYear"`
}

// TechnicalSkills holds the five free-text skill categories.
// An empty category is omitted by the renderers.
type TechnicalSkills struct {
	ProgrammingLanguages string `json:"programmingLanguages"`
	Frameworks           string `json:"frameworks"`
	Databases            string `json:"databases"`
	DeveloperTools       string `json:"developerTools"`
	Coursework           string `json:"coursework"`
}

// IsEmpty reports whether every category is blank
func (s TechnicalSkills) IsEmpty() bool {
	return s.ProgrammingLanguages == "" &&
		s.Frameworks == "" &&
		s.Databases == "" &&
		s.DeveloperTools == "" &&
		s.Coursework == ""
}

// Project is a single entry in the projects list
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Technologies string   `json:"technologies"`
	Year         string   `json:"year"`
	Links        string   `json:"links"`
	Description  []string `json:"description"`
}

// Certification is a single entry in the certifications list
type Certification struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Achievement is a single entry in the achievements list
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        string `json:"year,omitempty"`
}

// ResumeDocument is the aggregate root of all resume content.
// It is the only unit of persistence and the only input to the renderers.
type ResumeDocument struct {
	PersonalInfo    PersonalInfo    `json:"personalInfo"`
	Education       []Education     `json:"education"`
	TechnicalSkills TechnicalSkills `json:"technicalSkills"`
	Projects        []Project       `json:"projects"`
	Certifications  []Certification `json:"certifications"`
	Achievements    []Achievement   `json:"achievements"`
}

// NewID returns an identifier for a new list item. Identifiers are only
// meaningful inside the list that owns the item.
func NewID() string {
	return uuid.NewString()
}

// IsEmpty reports whether the document carries no name and no education.
// A persisted document matching this sentinel is not worth restoring.
func (d *ResumeDocument) IsEmpty() bool {
	return d.PersonalInfo.Name == "" && len(d.Education) == 0
}

// Clone returns a deep copy of the document. Nil lists are normalized to
// empty lists so that a clone always serializes lists as arrays.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := &ResumeDocument{
		PersonalInfo:    d.PersonalInfo,
		TechnicalSkills: d.TechnicalSkills,
		Education:       append(make([]Education, 0, len(d.Education)), d.Education...),
		Certifications:  append(make([]Certification, 0, len(d.Certifications)), d.Certifications...),
		Achievements:    append(make([]Achievement, 0, len(d.Achievements)), d.Achievements...),
		Projects:        make([]Project, 0, len(d.Projects)),
	}
	for _, p := range d.Projects {
		p.Description = append(make([]string, 0, len(p.Description)), p.Description...)
		out.Projects = append(out.Projects, p)
	}
	return out
}

// NormalizeIDs gives a fresh id to every list item whose id is empty or
// repeats an earlier id in the same list. Order and content are unchanged.
func (d *ResumeDocument) NormalizeIDs() {
	uniqueIDs(d.Education, func(v *Education) *string { return &v.ID })
	uniqueIDs(d.Projects, func(v *Project) *string { return &v.ID })
	uniqueIDs(d.Certifications, func(v *Certification) *string { return &v.ID })
	uniqueIDs(d.Achievements, func(v *Achievement) *string { return &v.ID })
}

func uniqueIDs[T any](items []T, id func(*T) *string) {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		p := id(&items[i])
		if _, dup := seen[*p]; dup || *p == "" {
			*p = NewID()
		}
		seen[*p] = struct{}{}
	}
}

// DefaultResumeDocument returns the sample document a new workspace starts with
func DefaultResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		PersonalInfo: PersonalInfo{
			Name:     "John Doe",
			Phone:    "1234567890",
			Email1:   "john.doe@email.com",
			Email2:   "john.doe@university.edu",
			GitHub:   "johndoe",
			LinkedIn: "johndoe",
		},
		Education: []Education{
			{
				ID:          NewID(),
				Institution: "University of Technology",
				Degree:      "Bachelor of Technology (B.Tech)",
				Field:       "Computer Science and Engineering",
				Score:       "8.5",
				ScoreType:   ScoreCGPA,
				StartYear:   "2020",
				EndYear:     "2024",
			},
		},
		TechnicalSkills: TechnicalSkills{
			ProgrammingLanguages: "C, C++, Python, JavaScript, Java",
			Frameworks:           "React.js, Next.js, Node.js, Express.js, TailwindCSS",
			Databases:            "MongoDB, PostgreSQL, MySQL, Redis",
			DeveloperTools:       "Git, Docker, VS Code, Postman, Linux",
			Coursework:           "Data Structures and Algorithms, Database Management Systems, Computer Networks, Software Engineering",
		},
		Projects: []Project{
			{
				ID:           NewID(),
				Title:        "E-Commerce Web Application",
				Technologies: "React.js, Node.js, MongoDB, Express.js",
				Year:         "2024",
				Links:        "GitHub | Live Demo",
				Description: []string{
					"Built a full-stack e-commerce platform with user authentication and payment integration",
					"Implemented responsive design with modern UI/UX principles",
					"Deployed using Docker and managed CI/CD pipeline",
				},
			},
		},
		Certifications: []Certification{
			{
				ID:    NewID(),
				Title: "AWS Certified Developer Associate",
				Link:  "https://example.com/certificate",
			},
		},
		Achievements: []Achievement{
			{
				ID:          NewID(),
				Title:       "Competitive Programming",
				Description: "Solved 500+ problems on LeetCode, CodeChef, and Codeforces",
				Year:        "2023",
			},
		},
	}
}
