package model

// KnowledgeArticle is a numbered knowledge-base entry: a guide, standard,
// reference, glossary term, how-to, runbook, or policy. Its ID is
// deterministic: KnowledgeUUID(Number).
type KnowledgeArticle struct {
	ID          string          `json:"id" yaml:"id"`
	Number      int64           `json:"number" yaml:"number"`
	Title       string          `json:"title" yaml:"title"`
	Type        KnowledgeType   `json:"type" yaml:"type"`
	Status      KnowledgeStatus `json:"status" yaml:"status"`
	Summary     string          `json:"summary,omitempty" yaml:"summary,omitempty"`
	Body        string          `json:"body,omitempty" yaml:"body,omitempty"`
	Related     []int64         `json:"related,omitempty" yaml:"related,omitempty"`
	Tags        []Tag           `json:"-" yaml:"-"`
	Contact     *Contact        `json:"contact,omitempty" yaml:"contact,omitempty"`
}

// NewKnowledgeArticle constructs a KnowledgeArticle with a deterministic ID
// derived from its number, in draft status.
func NewKnowledgeArticle(number int64, title string, kind KnowledgeType) *KnowledgeArticle {
	return &KnowledgeArticle{
		ID:     KnowledgeUUID(number),
		Number: number,
		Title:  title,
		Type:   kind,
		Status: KBDraft,
	}
}

// Relate records a bidirectional "related" cross-reference between two
// articles.
func (k *KnowledgeArticle) Relate(other *KnowledgeArticle) {
	if !containsInt64(k.Related, other.Number) {
		k.Related = append(k.Related, other.Number)
	}
	if !containsInt64(other.Related, k.Number) {
		other.Related = append(other.Related, k.Number)
	}
}

func containsInt64(xs []int64, v int64) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

type knowledgeArticleAlias struct {
	ID      string          `yaml:"id"`
	Number  int64           `yaml:"number"`
	Title   string          `yaml:"title"`
	Type    KnowledgeType   `yaml:"type"`
	Status  KnowledgeStatus `yaml:"status"`
	Summary string          `yaml:"summary,omitempty"`
	Body    string          `yaml:"body,omitempty"`
	Related []int64         `yaml:"related,omitempty"`
	Tags    []string        `yaml:"tags,omitempty"`
	Contact *Contact        `yaml:"contact,omitempty"`
}

// MarshalYAML renders KnowledgeArticle.Tags to their canonical string form.
func (k KnowledgeArticle) MarshalYAML() (interface{}, error) {
	return knowledgeArticleAlias{
		ID: k.ID, Number: k.Number, Title: k.Title, Type: k.Type, Status: k.Status, Summary: k.Summary,
		Body: k.Body, Related: k.Related, Tags: RenderTags(k.Tags), Contact: k.Contact,
	}, nil
}

// UnmarshalYAML parses KnowledgeArticle.Tags back from their canonical string form.
func (k *KnowledgeArticle) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a knowledgeArticleAlias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*k = KnowledgeArticle{
		ID: a.ID, Number: a.Number, Title: a.Title, Type: a.Type, Status: a.Status, Summary: a.Summary,
		Body: a.Body, Related: a.Related, Tags: ParseTags(a.Tags), Contact: a.Contact,
	}
	return nil
}
