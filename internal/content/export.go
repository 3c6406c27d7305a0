package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/topics"
)

// Export file names.
const (
	StyleGuideFile  = "style-guide.md"
	ResearchFile    = "research.md"
	DraftFile       = "draft.md"
	SEOFile         = "seo.md"
	LinkedDraftFile = "linked-draft.md"
	DiffFile        = "edit.diff"
	ResultFile      = "result.json"
	TopicsJSONFile  = "topic_ideas.json"
	TopicsMDFile    = "topic_ideas.md"
	DefaultPostSlug = "blog_post"
)

// PostSlug picks the file stem for the final post: the slug of its H1 title,
// else DefaultPostSlug.
func PostSlug(final string) string {
	if slug := GenerateSlug(ExtractTitle(final)); slug != "" {
		return slug
	}
	return DefaultPostSlug
}

// WriteRun writes the artifacts of a successful run into dir and returns the
// paths written. Intermediate fields are written only when non-empty.
func WriteRun(dir string, in pipeline.Input, res *pipeline.Result, now time.Time) ([]string, error) {
	if res == nil || res.Error != "" {
		return nil, fmt.Errorf("refusing to export a failed run")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var written []string
	write := func(name, body string) error {
		if body == "" {
			return nil
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	slug := PostSlug(res.Final)
	title := ExtractTitle(res.Final)
	if title == "" {
		title = in.Topic()
	}

	post, err := WithFrontmatter(Frontmatter{
		Title:     title,
		Date:      now,
		Draft:     true,
		Reference: in.RootBlogURL,
		Topics:    in.Topics,
	}, res.Final)
	if err != nil {
		return nil, err
	}

	html, err := RenderHTML(res.Final)
	if err != nil {
		return nil, err
	}

	summary, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	files := []struct{ name, body string }{
		{StyleGuideFile, res.StyleGuide},
		{ResearchFile, res.Research},
		{DraftFile, res.Draft},
		{SEOFile, res.SEOAnalysis},
		{LinkedDraftFile, res.LinkedDraft},
		{slug + ".md", post},
		{slug + ".html", html},
		{DiffFile, Diff(res.Draft, res.Final)},
		{ResultFile, string(summary) + "\n"},
	}

	for _, f := range files {
		if err := write(f.name, f.body); err != nil {
			return written, err
		}
	}

	return written, nil
}

// TopicsJSON renders ideas as indented JSON.
func TopicsJSON(ideas []topics.TopicIdea) ([]byte, error) {
	if ideas == nil {
		ideas = []topics.TopicIdea{}
	}
	raw, err := json.MarshalIndent(ideas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal topic ideas: %w", err)
	}
	return append(raw, '\n'), nil
}

// WriteTopics writes topic_ideas.json and topic_ideas.md into dir.
func WriteTopics(dir string, ideas []topics.TopicIdea) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	raw, err := TopicsJSON(ideas)
	if err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, TopicsJSONFile)
	if err := os.WriteFile(jsonPath, raw, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	mdPath := filepath.Join(dir, TopicsMDFile)
	if err := os.WriteFile(mdPath, []byte(topics.Format(ideas)), 0644); err != nil {
		return []string{jsonPath}, fmt.Errorf("failed to write %s: %w", mdPath, err)
	}

	return []string{jsonPath, mdPath}, nil
}
