package pipeline_test

import (
	"testing"
	"time"

	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput(t *testing.T) {
	t.Run("sample json", func(t *testing.T) {
		in, err := pipeline.DecodeInput(stringsReader(pipeline.SampleInput), pipeline.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "https://blog.sliceproducts.com/", in.RootBlogURL)
		assert.Equal(t, []string{"safety cutters"}, in.Topics)
		assert.Len(t, in.TargetProductURLs, 2)
	})

	t.Run("yaml", func(t *testing.T) {
		doc := `
root_blog_url: ExampleBlog.com
topics:
  - Remote Work
seo_keywords: [remote work, async]
writing_requirements: keep it under 1500 words
`
		in, err := pipeline.DecodeInput(stringsReader(doc), pipeline.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "ExampleBlog.com", in.RootBlogURL)
		assert.Equal(t, []string{"remote work", "async"}, in.SEOKeywords)
	})

	tests := []struct {
		name   string
		doc    string
		format string
		msg    string
	}{
		{name: "empty", doc: "  \n", format: pipeline.FormatJSON, msg: "input is empty"},
		{name: "malformed json", doc: `{"root_blog_url": `, format: pipeline.FormatJSON, msg: "invalid JSON"},
		{name: "wrong type", doc: `{"root_blog_url": "x", "topics": "one"}`, format: pipeline.FormatJSON, msg: "invalid JSON"},
		{name: "missing url", doc: `{"topics": ["a"]}`, format: pipeline.FormatJSON, msg: "root_blog_url is required"},
		{name: "missing topics", doc: `{"root_blog_url": "x", "topics": [" "]}`, format: pipeline.FormatJSON, msg: "at least one topic"},
		{name: "bad yaml", doc: "root_blog_url: [", format: pipeline.FormatYAML, msg: "invalid YAML"},
		{name: "unknown format", doc: "x", format: "toml", msg: "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.DecodeInput(stringsReader(tt.doc), tt.format)
			require.ErrorIs(t, err, pipeline.ErrInvalidInput)
			assert.True(t, pipeline.IsInputError(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestInputTopic(t *testing.T) {
	in := pipeline.Input{Topics: []string{" Remote Work ", "", "Async Teams"}}
	assert.Equal(t, "Remote Work, Async Teams", in.Topic())
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59*time.Second + 900*time.Millisecond, "00:00:59"},
		{61 * time.Second, "00:01:01"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "03:04:05"},
		{-time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, pipeline.FormatElapsed(tt.d))
		})
	}
}
