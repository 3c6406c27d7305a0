package pipeline

import (
	"fmt"

	"github.com/alkime/stylepost/internal/prompt"
)

// StageData is what a stage's prompt template sees: the global input fields
// plus the outputs of the stages it declared as reads. Everything else is empty.
type StageData struct {
	RootBlogURL         string
	Topic               string
	Topics              []string
	Requirements        string
	HighPerformingPages []string
	ProductURLs         []string
	Keywords            prompt.List
	ExistingPosts       prompt.List

	StyleGuide  string
	Research    string
	Draft       string
	SEOAnalysis string
	LinkedDraft string
}

// State accumulates stage outputs for one run. Each field is set at most once.
type State struct {
	input   Input
	outputs map[StageName]string
}

// NewState starts an empty state over in.
func NewState(in Input) *State {
	return &State{
		input:   in,
		outputs: make(map[StageName]string),
	}
}

// Set records a stage output.
func (s *State) Set(name StageName, value string) error {
	if _, ok := s.outputs[name]; ok {
		return fmt.Errorf("%w: %s", ErrFieldAlreadySet, name)
	}
	s.outputs[name] = value
	return nil
}

// Get returns a stage output and whether it has been set.
func (s *State) Get(name StageName) (string, bool) {
	v, ok := s.outputs[name]
	return v, ok
}

// View builds the template data for a stage that reads the given fields.
func (s *State) View(reads []StageName) (StageData, error) {
	data := StageData{
		RootBlogURL:         s.input.RootBlogURL,
		Topic:               s.input.Topic(),
		Topics:              s.input.Topics,
		Requirements:        s.input.WritingRequirements,
		HighPerformingPages: s.input.HighPerformingPages,
		ProductURLs:         s.input.TargetProductURLs,
		Keywords:            prompt.Cap(s.input.SEOKeywords, prompt.MaxKeywords),
		ExistingPosts:       prompt.Cap(s.input.ExistingBlogPostsToAvoid, prompt.MaxExistingTopics),
	}

	for _, name := range reads {
		v, ok := s.outputs[name]
		if !ok {
			return StageData{}, fmt.Errorf("%w: %s", ErrFieldNotReadable, name)
		}

		switch name {
		case StageStyle:
			data.StyleGuide = v
		case StageResearch:
			data.Research = v
		case StageWrite:
			data.Draft = v
		case StageSEO:
			data.SEOAnalysis = v
		case StageLinks:
			data.LinkedDraft = v
		case StageEdit:
			return StageData{}, fmt.Errorf("%w: %s is terminal", ErrFieldNotReadable, name)
		}
	}

	return data, nil
}
