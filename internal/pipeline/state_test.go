package pipeline_test

import (
	"strings"
	"testing"

	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestState_SetOnce(t *testing.T) {
	s := pipeline.NewState(pipeline.Input{RootBlogURL: "ExampleBlog.com", Topics: []string{"Remote Work"}})

	require.NoError(t, s.Set(pipeline.StageStyle, "guide"))
	err := s.Set(pipeline.StageStyle, "other guide")
	require.ErrorIs(t, err, pipeline.ErrFieldAlreadySet)

	got, ok := s.Get(pipeline.StageStyle)
	assert.True(t, ok)
	assert.Equal(t, "guide", got)
}

func TestState_ViewOnlyDeclaredReads(t *testing.T) {
	s := pipeline.NewState(pipeline.Input{
		RootBlogURL: "ExampleBlog.com",
		Topics:      []string{"Remote Work", "Async"},
		SEOKeywords: []string{"a", "b"},
	})
	require.NoError(t, s.Set(pipeline.StageStyle, "guide"))
	require.NoError(t, s.Set(pipeline.StageResearch, "notes"))

	data, err := s.View([]pipeline.StageName{pipeline.StageStyle})
	require.NoError(t, err)

	assert.Equal(t, "ExampleBlog.com", data.RootBlogURL)
	assert.Equal(t, "Remote Work, Async", data.Topic)
	assert.Equal(t, []string{"a", "b"}, data.Keywords.Items)
	assert.Equal(t, "guide", data.StyleGuide)
	assert.Empty(t, data.Research, "research was not declared as a read")
}

func TestState_ViewUnsetField(t *testing.T) {
	s := pipeline.NewState(pipeline.Input{RootBlogURL: "ExampleBlog.com", Topics: []string{"Remote Work"}})

	_, err := s.View([]pipeline.StageName{pipeline.StageWrite})
	require.ErrorIs(t, err, pipeline.ErrFieldNotReadable)
}

func TestStages_OrderIsValid(t *testing.T) {
	for _, v := range pipeline.Variants() {
		t.Run(string(v), func(t *testing.T) {
			stages, err := pipeline.Stages(v)
			require.NoError(t, err)
			require.NoError(t, pipeline.ValidateOrder(stages))

			assert.Equal(t, pipeline.StageStyle, stages[0].Name)
			assert.Equal(t, pipeline.StageEdit, stages[len(stages)-1].Name)
		})
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name   string
		stages []pipeline.Stage
	}{
		{
			name: "reads later stage",
			stages: []pipeline.Stage{
				{Name: pipeline.StageWrite, Reads: []pipeline.StageName{pipeline.StageStyle}},
				{Name: pipeline.StageStyle},
			},
		},
		{
			name:   "reads itself",
			stages: []pipeline.Stage{{Name: pipeline.StageStyle, Reads: []pipeline.StageName{pipeline.StageStyle}}},
		},
		{
			name:   "duplicate",
			stages: []pipeline.Stage{{Name: pipeline.StageStyle}, {Name: pipeline.StageStyle}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, pipeline.ValidateOrder(tt.stages), pipeline.ErrStageOrder)
		})
	}
}

func TestParseVariant(t *testing.T) {
	v, err := pipeline.ParseVariant(" Workflow ")
	require.NoError(t, err)
	assert.Equal(t, pipeline.VariantWorkflow, v)

	_, err = pipeline.ParseVariant("draft")
	require.ErrorIs(t, err, pipeline.ErrUnknownVariant)
}
