package generate

// Kind discriminates the three LinkedIn content requests
type Kind string

// Supported kinds
const (
	KindHeadline   Kind = "headline"
	KindSummary    Kind = "summary"
	KindExperience Kind = "experience"
)

// DefaultTone is used for summaries that do not name one
const DefaultTone = "professional"

// Kinds lists every supported kind in a stable order
func Kinds() []Kind {
	return []Kind{KindHeadline, KindSummary, KindExperience}
}

// ParseKind maps a request discriminator onto a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindHeadline, KindSummary, KindExperience:
		return k, nil
	default:
		return "", &InvalidKindError{Kind: s}
	}
}

// payload is the per-kind request body. fields returns the prompt
// placeholders keyed by their template name.
type payload interface {
	fields() map[string]string
}

// HeadlinePayload is the body of a headline request
type HeadlinePayload struct {
	Role   string `json:"role" validate:"required"`
	Skills string `json:"skills"`
}

func (p *HeadlinePayload) fields() map[string]string {
	return map[string]string{"Role": p.Role, "Skills": p.Skills}
}

// SummaryPayload is the body of a summary request
type SummaryPayload struct {
	Background string `json:"background" validate:"required"`
	Tone       string `json:"tone"`
}

func (p *SummaryPayload) fields() map[string]string {
	tone := p.Tone
	if tone == "" {
		tone = DefaultTone
	}
	return map[string]string{"Background": p.Background, "Tone": tone}
}

// ExperiencePayload is the body of an experience request
type ExperiencePayload struct {
	JobTitle    string `json:"jobTitle" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (p *ExperiencePayload) fields() map[string]string {
	return map[string]string{"JobTitle": p.JobTitle, "Description": p.Description}
}

func newPayload(kind Kind) payload {
	switch kind {
	case KindSummary:
		return &SummaryPayload{}
	case KindExperience:
		return &ExperiencePayload{}
	default:
		return &HeadlinePayload{}
	}
}
