package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func formQuestions() []Question {
	return []Question{
		{ID: "why", Prompt: "Why join?", Type: QuestionTextarea, Required: true, MaxLength: intPtr(10)},
		{ID: "team", Prompt: "Team", Type: QuestionSelect, Required: true, Options: []string{"a", "b"}},
		{ID: "days", Prompt: "Days", Type: QuestionCheckbox, Options: []string{"mon", "tue"}},
		{ID: "note", Prompt: "Anything else", Type: QuestionText},
	}
}

func TestBuildAnswers(t *testing.T) {
	answers, err := BuildAnswers(formQuestions(), []AnswerInput{
		{QuestionID: "days", Values: []string{"tue", "mon", "tue"}},
		{QuestionID: "why", Values: []string{"  fun  "}},
		{QuestionID: "team", Values: []string{"b"}},
		{QuestionID: "note", Values: []string{"   "}},
	})
	require.NoError(t, err)
	assert.Equal(t, []Answer{
		{QuestionID: "why", Type: QuestionTextarea, Text: "fun"},
		{QuestionID: "team", Type: QuestionSelect, Text: "b"},
		{QuestionID: "days", Type: QuestionCheckbox, Choices: []string{"tue", "mon"}},
	}, answers)
}

func TestBuildAnswers_ReportsAllMissingRequired(t *testing.T) {
	_, err := BuildAnswers(formQuestions(), []AnswerInput{{QuestionID: "note", Values: []string{"hi"}}})
	require.ErrorIs(t, err, ErrValidation)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"why", "team"}, de.Fields)
}

func TestBuildAnswers_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		inputs []AnswerInput
		field  string
	}{
		{
			name:   "unknown question",
			inputs: []AnswerInput{{QuestionID: "ghost", Values: []string{"x"}}},
			field:  "ghost",
		},
		{
			name: "answered twice",
			inputs: []AnswerInput{
				{QuestionID: "why", Values: []string{"x"}},
				{QuestionID: "why", Values: []string{"y"}},
			},
			field: "why",
		},
		{
			name: "too long",
			inputs: []AnswerInput{
				{QuestionID: "why", Values: []string{strings.Repeat("é", 11)}},
				{QuestionID: "team", Values: []string{"a"}},
			},
			field: "why",
		},
		{
			name: "not an option",
			inputs: []AnswerInput{
				{QuestionID: "why", Values: []string{"ok"}},
				{QuestionID: "team", Values: []string{"c"}},
			},
			field: "team",
		},
		{
			name: "several values for a select",
			inputs: []AnswerInput{
				{QuestionID: "why", Values: []string{"ok"}},
				{QuestionID: "team", Values: []string{"a", "b"}},
			},
			field: "team",
		},
		{
			name: "checkbox choice outside options",
			inputs: []AnswerInput{
				{QuestionID: "why", Values: []string{"ok"}},
				{QuestionID: "team", Values: []string{"a"}},
				{QuestionID: "days", Values: []string{"mon", "sun"}},
			},
			field: "days",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildAnswers(formQuestions(), tt.inputs)
			require.ErrorIs(t, err, ErrValidation)
			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Contains(t, de.Fields, tt.field)
		})
	}
}

func TestBuildAnswers_MaxLengthCountsCharacters(t *testing.T) {
	_, err := BuildAnswers(formQuestions(), []AnswerInput{
		{QuestionID: "why", Values: []string{strings.Repeat("é", 10)}},
		{QuestionID: "team", Values: []string{"a"}},
	})
	assert.NoError(t, err)
}

func TestValidateQuestions(t *testing.T) {
	qs, problems := validateQuestions([]Question{
		{Prompt: " First ", Type: QuestionText},
		{Prompt: "Second", Type: QuestionRadio, Options: []string{"x"}},
	})
	assert.Empty(t, problems)
	assert.Equal(t, "q1", qs[0].ID)
	assert.Equal(t, "First", qs[0].Prompt)
	assert.Equal(t, "q2", qs[1].ID)

	_, problems = validateQuestions([]Question{
		{ID: "a", Prompt: "", Type: QuestionText},
		{ID: "a", Prompt: "dup", Type: "slider"},
		{Prompt: "no options", Type: QuestionCheckbox},
		{Prompt: "bad limit", Type: QuestionText, MaxLength: intPtr(0)},
	})
	assert.Len(t, problems, 5)
}
