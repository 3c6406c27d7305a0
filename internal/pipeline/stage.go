package pipeline

import (
	"fmt"
	"strings"

	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/prompt"
)

// StageName identifies a stage and the state field it produces.
type StageName string

const (
	StageStyle    StageName = "style"
	StageResearch StageName = "research"
	StageWrite    StageName = "write"
	StageSEO      StageName = "seo"
	StageLinks    StageName = "links"
	StageEdit     StageName = "edit"
)

// Variant selects one of the fixed stage lists.
type Variant string

const (
	// VariantPost is the four-stage free-text pipeline.
	VariantPost Variant = "post"
	// VariantWorkflow adds SEO analysis and internal linking, with structured stage outputs.
	VariantWorkflow Variant = "workflow"
)

// Variants lists the known variants.
func Variants() []Variant {
	return []Variant{VariantPost, VariantWorkflow}
}

// Typed stage records for the workflow variant.
type (
	WritingStyle struct {
		WritingStyleOutput string `json:"writing_style_output"`
	}

	ResearchNotes struct {
		ResearchOutput string `json:"research_output"`
	}

	WriterDraft struct {
		WriterOutput string `json:"writer_output"`
	}

	SEOAnalysis struct {
		SEOAnalyzerFirstPassOutput string `json:"seo_analyzer_first_pass_output"`
	}

	InternalLinks struct {
		InternalLinksOutput string `json:"internal_links_output"`
	}
)

// Output declares how a stage's field is pulled from the model response.
type Output struct {
	// Schema is nil for free-text stages.
	Schema  *llm.Schema
	Extract func(llm.Response) (string, error)
}

// FreeText treats the whole completion as the field value.
func FreeText() Output {
	return Output{
		Extract: func(resp llm.Response) (string, error) {
			return resp.Text, nil
		},
	}
}

// Structured requests a T-shaped response and pulls one field out of it.
func Structured[T any](name, description string, field func(T) string) Output {
	return Output{
		Schema: llm.MustSchema[T](name, description),
		Extract: func(resp llm.Response) (string, error) {
			rec, err := llm.Decode[T](resp)
			if err != nil {
				return "", err
			}
			return field(rec), nil
		},
	}
}

// Stage pairs one prompt template with one model call.
type Stage struct {
	Name      StageName
	Agent     string
	Template  string
	Reads     []StageName
	WebSearch bool
	Output    Output
}

var (
	styleOutput = Structured("writing_style", "Style guide for the reference publication",
		func(r WritingStyle) string { return r.WritingStyleOutput })
	researchOutput = Structured("research", "Research notes for the post",
		func(r ResearchNotes) string { return r.ResearchOutput })
	writerOutput = Structured("writer", "Markdown draft of the post",
		func(r WriterDraft) string { return r.WriterOutput })
	seoOutput = Structured("seo_analyzer", "SEO recommendations for the draft",
		func(r SEOAnalysis) string { return r.SEOAnalyzerFirstPassOutput })
	linksOutput = Structured("internal_links", "The post with verified internal links added",
		func(r InternalLinks) string { return r.InternalLinksOutput })
)

// Stages returns the fixed, ordered stage list for v.
func Stages(v Variant) ([]Stage, error) {
	switch v {
	case VariantPost:
		return []Stage{
			{Name: StageStyle, Agent: prompt.Style, Template: prompt.Style, WebSearch: true, Output: FreeText()},
			{Name: StageResearch, Agent: prompt.Research, Template: prompt.Research, WebSearch: true, Output: FreeText()},
			{Name: StageWrite, Agent: prompt.Write, Template: prompt.Write,
				Reads: []StageName{StageStyle, StageResearch}, Output: FreeText()},
			{Name: StageEdit, Agent: prompt.Edit, Template: prompt.Edit,
				Reads: []StageName{StageStyle, StageWrite}, Output: FreeText()},
		}, nil
	case VariantWorkflow:
		return []Stage{
			{Name: StageStyle, Agent: prompt.Style, Template: prompt.Style, WebSearch: true, Output: styleOutput},
			{Name: StageResearch, Agent: prompt.Research, Template: prompt.Research, WebSearch: true, Output: researchOutput},
			{Name: StageWrite, Agent: prompt.Write, Template: prompt.Write,
				Reads: []StageName{StageStyle, StageResearch}, Output: writerOutput},
			{Name: StageSEO, Agent: prompt.SEO, Template: prompt.SEO,
				Reads: []StageName{StageWrite}, Output: seoOutput},
			{Name: StageLinks, Agent: prompt.Links, Template: prompt.Links,
				Reads: []StageName{StageWrite, StageSEO}, WebSearch: true, Output: linksOutput},
			{Name: StageEdit, Agent: prompt.Edit, Template: prompt.Edit,
				Reads: []StageName{StageStyle, StageWrite, StageSEO, StageLinks}, Output: FreeText()},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
}

// ParseVariant maps a name to a Variant.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// ValidateOrder checks that every stage only reads stages that run strictly
// before it and that no stage name repeats.
func ValidateOrder(stages []Stage) error {
	seen := make(map[StageName]bool, len(stages))
	for _, st := range stages {
		if seen[st.Name] {
			return fmt.Errorf("%w: %s appears twice", ErrStageOrder, st.Name)
		}
		for _, read := range st.Reads {
			if !seen[read] {
				return fmt.Errorf("%w: %s reads %s, which has not run yet", ErrStageOrder, st.Name, read)
			}
		}
		seen[st.Name] = true
	}
	return nil
}
