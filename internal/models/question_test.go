package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestionOptions(t *testing.T) {
	cases := []struct {
		name    string
		qType   QuestionType
		options *QuestionOptions
		wantErr string
	}{
		{
			name:    "objective with A and B",
			qType:   QuestionObjective,
			options: &QuestionOptions{A: "2", B: "4"},
		},
		{
			name:    "objective with all four",
			qType:   QuestionObjective,
			options: &QuestionOptions{A: "2", B: "4", C: "6", D: "8"},
		},
		{
			name:    "objective without options",
			qType:   QuestionObjective,
			wantErr: "At least two options (A and B) are required for Objective type Question",
		},
		{
			name:    "objective missing B",
			qType:   QuestionObjective,
			options: &QuestionOptions{A: "2"},
			wantErr: "At least two options (A and B) are required for Objective type Question",
		},
		{
			name:  "subjective without options",
			qType: QuestionSubjective,
		},
		{
			name:    "subjective with options",
			qType:   QuestionSubjective,
			options: &QuestionOptions{A: "2", B: "4"},
			wantErr: "Options are not required for Subjective type Question",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuestionOptions(tc.qType, tc.options)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}
