package entity

type Assessment string

const (
	AssessmentTerrible  Assessment = "TERRIBLE"
	AssessmentBad       Assessment = "BAD"
	AssessmentNormal    Assessment = "NORMAL"
	AssessmentGood      Assessment = "GOOD"
	AssessmentExcellent Assessment = "EXCELLENT"
)

// Assessments returns the rating scale, worst first.
func Assessments() []Assessment {
	return []Assessment{
		AssessmentTerrible,
		AssessmentBad,
		AssessmentNormal,
		AssessmentGood,
		AssessmentExcellent,
	}
}

func ParseAssessment(value string) (Assessment, bool) {
	for _, a := range Assessments() {
		if string(a) == value {
			return a, true
		}
	}
	return "", false
}
