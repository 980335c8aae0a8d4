package request

// ReviewForm carries one review add/edit submission. Assessment selection is
// checked by the review service so the "Please, select an assessment" message
// can accumulate with the structural content errors.
type ReviewForm struct {
	Assessment string `json:"assessment"`
	Content    string `json:"content" validate:"required,max=2000"`
}
