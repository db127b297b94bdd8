package model

import (
	"fmt"
	"strings"
)

// Subject identifies one course in the fixed curriculum catalogue.
type Subject string

const (
	SubjectMethods     Subject = "methods"
	SubjectPhysics     Subject = "physics"
	SubjectChemistry   Subject = "chemistry"
	SubjectBiology     Subject = "biology"
	SubjectSpecialist  Subject = "spec"
	SubjectSoftDev     Subject = "softdev"
	SubjectPsychology  Subject = "psych"
	SubjectHistory     Subject = "history"
	SubjectGeneralMath Subject = "genmath"
	SubjectEnglish     Subject = "english"
	SubjectEnglishLit  Subject = "englishlit"
	SubjectEnglishLang Subject = "englishlang"
	SubjectFoundation  Subject = "foundation"
	SubjectMedia       Subject = "media"
	SubjectLegal       Subject = "legal"
	SubjectEconomics   Subject = "economics"
	SubjectBusiness    Subject = "business"
	SubjectLanguages   Subject = "languages"
)

// AllSubjects lists the catalogue in display order.
var AllSubjects = []Subject{
	SubjectMethods,
	SubjectPhysics,
	SubjectChemistry,
	SubjectBiology,
	SubjectSpecialist,
	SubjectSoftDev,
	SubjectPsychology,
	SubjectHistory,
	SubjectGeneralMath,
	SubjectEnglish,
	SubjectEnglishLit,
	SubjectEnglishLang,
	SubjectFoundation,
	SubjectMedia,
	SubjectLegal,
	SubjectEconomics,
	SubjectBusiness,
	SubjectLanguages,
}

var subjectLabels = map[Subject]string{
	SubjectMethods:     "Methods",
	SubjectPhysics:     "Physics",
	SubjectChemistry:   "Chemistry",
	SubjectBiology:     "Biology",
	SubjectSpecialist:  "Specialist",
	SubjectSoftDev:     "Software Development",
	SubjectPsychology:  "Psychology",
	SubjectHistory:     "History",
	SubjectGeneralMath: "General Mathematics",
	SubjectEnglish:     "English",
	SubjectEnglishLit:  "English Literature",
	SubjectEnglishLang: "English Language",
	SubjectFoundation:  "Foundation Mathematics",
	SubjectMedia:       "Media Studies",
	SubjectLegal:       "Legal Studies",
	SubjectEconomics:   "Economics",
	SubjectBusiness:    "Business Studies",
	SubjectLanguages:   "Languages",
}

// Valid reports whether s belongs to the catalogue.
func (s Subject) Valid() bool {
	_, ok := subjectLabels[s]
	return ok
}

// Label returns the human-readable name, or the raw key for unknown subjects.
func (s Subject) Label() string {
	if label, ok := subjectLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s Subject) String() string {
	return string(s)
}

// ParseSubject resolves a subject key typed by the user.
func ParseSubject(raw string) (Subject, error) {
	s := Subject(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown subject %q", raw)
	}
	return s, nil
}

// SubjectCount is the size of a chosen curriculum.
const SubjectCount = 5

// DefaultSubjects is the curriculum used before the user picks one.
func DefaultSubjects() []Subject {
	return []Subject{
		SubjectMethods,
		SubjectPhysics,
		SubjectChemistry,
		SubjectBiology,
		SubjectSpecialist,
	}
}

// ValidSubjectSet reports whether subjects holds exactly SubjectCount distinct
// catalogue entries.
func ValidSubjectSet(subjects []Subject) bool {
	if len(subjects) != SubjectCount {
		return false
	}
	seen := make(map[Subject]bool, len(subjects))
	for _, s := range subjects {
		if !s.Valid() || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// Page selects what the application is showing: the home dashboard or a subject.
type Page string

const PageHome Page = "home"

// SubjectPage returns the page for a subject.
func SubjectPage(s Subject) Page {
	return Page(s)
}

func (p Page) IsHome() bool {
	return p == PageHome
}

// Subject returns the subject shown on the page and false for the home page.
func (p Page) Subject() (Subject, bool) {
	if p.IsHome() {
		return "", false
	}
	return Subject(p), true
}

func (p Page) Label() string {
	if p.IsHome() {
		return "Home"
	}
	return Subject(p).Label()
}

// ParsePage accepts "home" or a subject key.
func ParsePage(raw string) (Page, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == string(PageHome) {
		return PageHome, nil
	}
	s, err := ParseSubject(v)
	if err != nil {
		return "", fmt.Errorf("unknown page %q", raw)
	}
	return SubjectPage(s), nil
}
