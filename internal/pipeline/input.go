package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alkime/stylepost/pkg/collections"
	"gopkg.in/yaml.v3"
)

// Input is the pipeline input record.
type Input struct {
	ExistingBlogPostsToAvoid []string `json:"existing_blog_posts_to_avoid" yaml:"existing_blog_posts_to_avoid"`
	HighPerformingPages      []string `json:"high_performing_pages" yaml:"high_performing_pages"`
	RootBlogURL              string   `json:"root_blog_url" yaml:"root_blog_url"`
	SEOKeywords              []string `json:"seo_keywords" yaml:"seo_keywords"`
	TargetProductURLs        []string `json:"target_product_urls" yaml:"target_product_urls"`
	Topics                   []string `json:"topics" yaml:"topics"`
	WritingRequirements      string   `json:"writing_requirements" yaml:"writing_requirements"`
}

// Input formats accepted by DecodeInput.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Validate checks the fields every variant needs.
func (in Input) Validate() error {
	if strings.TrimSpace(in.RootBlogURL) == "" {
		return fmt.Errorf("%w: root_blog_url is required", ErrInvalidInput)
	}
	if len(collections.Compact(in.Topics)) == 0 {
		return fmt.Errorf("%w: at least one topic is required", ErrInvalidInput)
	}
	return nil
}

// Topic joins the topics into the single subject line used in prompts.
func (in Input) Topic() string {
	return strings.Join(collections.Compact(in.Topics), ", ")
}

// DecodeInput reads an input record in the given format and validates it.
// Decoder messages are kept and wrapped in ErrInvalidInput.
func DecodeInput(r io.Reader, format string) (Input, error) {
	var in Input

	raw, err := io.ReadAll(r)
	if err != nil {
		return in, fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return in, fmt.Errorf("%w: input is empty", ErrInvalidInput)
	}

	format = strings.ToLower(format)
	switch format {
	case FormatJSON, "":
		format = FormatJSON
		err = json.Unmarshal(raw, &in)
	case FormatYAML, "yml":
		format = FormatYAML
		err = yaml.Unmarshal(raw, &in)
	default:
		return in, fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, format)
	}
	if err != nil {
		return in, fmt.Errorf("%w: invalid %s: %w", ErrInvalidInput, strings.ToUpper(format), err)
	}

	if err := in.Validate(); err != nil {
		return in, err
	}

	return in, nil
}

// IsInputError reports whether err was caused by rejected user input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// SampleInput is an example record, used by the web form and `validate --sample`.
const SampleInput = `{
  "existing_blog_posts_to_avoid": [],
  "high_performing_pages": [
    "https://blog.sliceproducts.com/blog/power-of-listening-in-safety",
    "https://blog.sliceproducts.com/blog/daily-safety-topics"
  ],
  "root_blog_url": "https://blog.sliceproducts.com/",
  "seo_keywords": [],
  "target_product_urls": [
    "https://www.sliceproducts.com/products/manual-box-cutter",
    "https://www.sliceproducts.com/products/auto-retractable-metal-handle-utility-knife"
  ],
  "topics": [
    "safety cutters"
  ],
  "writing_requirements": "length should be 2000 words, include FAQ section, add call to action"
}`
