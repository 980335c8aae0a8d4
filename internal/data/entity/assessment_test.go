package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAssessment(t *testing.T) {
	assessment, ok := ParseAssessment("EXCELLENT")
	assert.True(t, ok)
	assert.Equal(t, AssessmentExcellent, assessment)

	_, ok = ParseAssessment("AMAZING")
	assert.False(t, ok)
}

func TestAssessmentsOrderedWorstFirst(t *testing.T) {
	assert.Equal(t, []Assessment{
		AssessmentTerrible,
		AssessmentBad,
		AssessmentNormal,
		AssessmentGood,
		AssessmentExcellent,
	}, Assessments())
}
