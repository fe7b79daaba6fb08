package model

// PickBranchRequest selects the engineering stream.
type PickBranchRequest struct {
	Subject string `json:"subject" binding:"required,subject"`
}

// PickTopicRequest selects a topic within the chosen stream.
type PickTopicRequest struct {
	Topic string `json:"topic" binding:"required,min=1,max=200"`
}

// PickTestRequest selects a test from the catalogue.
type PickTestRequest struct {
	TestName string `json:"test_name" binding:"required,min=1,max=200"`
}

// AnswerRequest records an option for a question.
type AnswerRequest struct {
	Index  *int `json:"index" binding:"required,min=0"`
	Option *int `json:"option" binding:"required,min=0"`
}

// NavigateRequest moves the question pointer. Direction may be "next" or
// "previous"; otherwise Index is used.
type NavigateRequest struct {
	Index     *int   `json:"index" binding:"required_without=Direction,omitempty,min=0"`
	Direction string `json:"direction" binding:"omitempty,oneof=next previous"`
}

// MarkRequest flags a question for review.
type MarkRequest struct {
	Index *int `json:"index" binding:"required,min=0"`
}

// BackRequest leaves the current screen. Target picks between the
// available back routes of the current view.
type BackRequest struct {
	Target string `json:"target" binding:"omitempty,oneof=back tests abandon"`
}
