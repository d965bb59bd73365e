package domain

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// QuestionType is the declared shape of an answer.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionSelect   QuestionType = "select"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionRadio    QuestionType = "radio"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionTextarea, QuestionSelect, QuestionCheckbox, QuestionRadio:
		return true
	}
	return false
}

// HasOptions reports whether answers are picked from a fixed option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionSelect || t == QuestionCheckbox || t == QuestionRadio
}

// MultiValued reports whether more than one value may be chosen.
func (t QuestionType) MultiValued() bool {
	return t == QuestionCheckbox
}

// Question is one entry of a campaign's application form.
type Question struct {
	ID        string       `json:"id"`
	Prompt    string       `json:"prompt"`
	Type      QuestionType `json:"type"`
	Required  bool         `json:"required"`
	MaxLength *int         `json:"max_length,omitempty"`
	Options   []string     `json:"options,omitempty"`
}

// Answer is a stored answer. Free-text questions populate Text; select and
// radio populate Text with the chosen option; checkbox populates Choices.
// Type mirrors the question type at submission time.
type Answer struct {
	QuestionID string       `json:"question_id"`
	Type       QuestionType `json:"type"`
	Text       string       `json:"text,omitempty"`
	Choices    []string     `json:"choices,omitempty"`
}

// Empty reports whether the answer carries no value.
func (a Answer) Empty() bool {
	return strings.TrimSpace(a.Text) == "" && len(a.Choices) == 0
}

// AnswerInput is an untyped answer as received from the applicant. Single
// valued questions accept at most one value.
type AnswerInput struct {
	QuestionID string
	Values     []string
}

// validateQuestions checks question definitions and assigns missing ids.
func validateQuestions(questions []Question) ([]Question, []string) {
	var problems []string
	out := make([]Question, len(questions))
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		n := i + 1
		q.Prompt = strings.TrimSpace(q.Prompt)
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", n)
		}
		if _, dup := seen[q.ID]; dup {
			problems = append(problems, fmt.Sprintf("question %d id %q is duplicated", n, q.ID))
		}
		seen[q.ID] = struct{}{}
		if q.Prompt == "" {
			problems = append(problems, fmt.Sprintf("question %d text is required", n))
		}
		if !q.Type.Valid() {
			problems = append(problems, fmt.Sprintf("question %d must have a valid type", n))
		}
		if q.Type.HasOptions() && len(q.Options) == 0 {
			problems = append(problems, fmt.Sprintf("question %d of type %s must have options", n, q.Type))
		}
		if q.MaxLength != nil && *q.MaxLength < 1 {
			problems = append(problems, fmt.Sprintf("question %d max_length must be positive", n))
		}
		out[i] = q
	}
	return out, problems
}

// BuildAnswers checks inputs against the campaign's questions and converts
// them into typed answers, in question order. Required questions left empty
// are reported together in one validation error.
func BuildAnswers(questions []Question, inputs []AnswerInput) ([]Answer, error) {
	byID := make(map[string]AnswerInput, len(inputs))
	for _, in := range inputs {
		if _, dup := byID[in.QuestionID]; dup {
			return nil, ValidationError("question answered more than once", in.QuestionID)
		}
		byID[in.QuestionID] = in
	}
	for id := range byID {
		if !slices.ContainsFunc(questions, func(q Question) bool { return q.ID == id }) {
			return nil, ValidationError("answer to unknown question", id)
		}
	}

	var (
		answers []Answer
		missing []string
	)
	for _, q := range questions {
		in, ok := byID[q.ID]
		a, err := q.answer(in.Values)
		if err != nil {
			return nil, err
		}
		if !ok || a.Empty() {
			if q.Required {
				missing = append(missing, q.ID)
			}
			continue
		}
		answers = append(answers, a)
	}
	if len(missing) > 0 {
		return nil, ValidationError("required questions are not answered", missing...)
	}
	return answers, nil
}

// answer checks the shape of values against the question definition.
func (q Question) answer(values []string) (Answer, error) {
	a := Answer{QuestionID: q.ID, Type: q.Type}
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return a, nil
	}
	if !q.Type.MultiValued() && len(cleaned) > 1 {
		return a, ValidationError("question accepts a single value", q.ID)
	}

	switch q.Type {
	case QuestionText, QuestionTextarea:
		a.Text = cleaned[0]
		if q.MaxLength != nil && utf8.RuneCountInString(a.Text) > *q.MaxLength {
			return a, ValidationError(fmt.Sprintf("answer exceeds %d characters", *q.MaxLength), q.ID)
		}
	case QuestionSelect, QuestionRadio:
		if !slices.Contains(q.Options, cleaned[0]) {
			return a, ValidationError("answer is not one of the options", q.ID)
		}
		a.Text = cleaned[0]
	case QuestionCheckbox:
		seen := make(map[string]struct{}, len(cleaned))
		for _, v := range cleaned {
			if !slices.Contains(q.Options, v) {
				return a, ValidationError("answer is not one of the options", q.ID)
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			a.Choices = append(a.Choices, v)
		}
	default:
		return a, ValidationError("question has an unknown type", q.ID)
	}
	return a, nil
}
