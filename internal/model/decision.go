package model

// DecisionOption is one alternative considered by a Decision, in the MADR
// "considered options" sense.
type DecisionOption struct {
	Name        string   `json:"name" yaml:"name"`
	Pros        []string `json:"pros,omitempty" yaml:"pros,omitempty"`
	Cons        []string `json:"cons,omitempty" yaml:"cons,omitempty"`
}

// Decision is an Architecture Decision Record in the MADR shape: a
// numbered, titled record of a context, a decision outcome, and the
// options considered. Its ID is deterministic: DecisionUUID(Number).
type Decision struct {
	ID          string             `json:"id" yaml:"id"`
	Number      int64              `json:"number" yaml:"number"`
	Title       string             `json:"title" yaml:"title"`
	Status      DecisionStatus     `json:"status" yaml:"status"`
	Context     string             `json:"context,omitempty" yaml:"context,omitempty"`
	Decision    string             `json:"decision,omitempty" yaml:"decision,omitempty"`
	Consequences string            `json:"consequences,omitempty" yaml:"consequences,omitempty"`
	Options     []DecisionOption   `json:"options,omitempty" yaml:"options,omitempty"`
	Supersedes  int64              `json:"supersedes,omitempty" yaml:"supersedes,omitempty"`
	SupersededBy int64             `json:"superseded_by,omitempty" yaml:"superseded_by,omitempty"`
	Tags        []Tag              `json:"-" yaml:"-"`
	Contact     *Contact           `json:"contact,omitempty" yaml:"contact,omitempty"`
}

// NewDecision constructs a Decision with a deterministic ID derived from
// its number, in draft status.
func NewDecision(number int64, title string) *Decision {
	return &Decision{
		ID:     DecisionUUID(number),
		Number: number,
		Title:  title,
		Status: DecisionDraft,
	}
}

// Supersede marks this decision as superseded by another, and sets the
// reciprocal link on the superseding record.
func (d *Decision) Supersede(by *Decision) {
	d.Status = DecisionSuperseded
	d.SupersededBy = by.Number
	by.Supersedes = d.Number
}

type decisionAlias struct {
	ID           string           `yaml:"id"`
	Number       int64            `yaml:"number"`
	Title        string           `yaml:"title"`
	Status       DecisionStatus   `yaml:"status"`
	Context      string           `yaml:"context,omitempty"`
	Decision     string           `yaml:"decision,omitempty"`
	Consequences string           `yaml:"consequences,omitempty"`
	Options      []DecisionOption `yaml:"options,omitempty"`
	Supersedes   int64            `yaml:"supersedes,omitempty"`
	SupersededBy int64            `yaml:"superseded_by,omitempty"`
	Tags         []string         `yaml:"tags,omitempty"`
	Contact      *Contact         `yaml:"contact,omitempty"`
}

// MarshalYAML renders Decision.Tags to their canonical string form.
func (d Decision) MarshalYAML() (interface{}, error) {
	return decisionAlias{
		ID: d.ID, Number: d.Number, Title: d.Title, Status: d.Status, Context: d.Context, Decision: d.Decision,
		Consequences: d.Consequences, Options: d.Options, Supersedes: d.Supersedes, SupersededBy: d.SupersededBy,
		Tags: RenderTags(d.Tags), Contact: d.Contact,
	}, nil
}

// UnmarshalYAML parses Decision.Tags back from their canonical string form.
func (d *Decision) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a decisionAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*d = Decision{
		ID: a.ID, Number: a.Number, Title: a.Title, Status: a.Status, Context: a.Context, Decision: a.Decision,
		Consequences: a.Consequences, Options: a.Options, Supersedes: a.Supersedes, SupersededBy: a.SupersededBy,
		Tags: ParseTags(a.Tags), Contact: a.Contact,
	}
	return nil
}
