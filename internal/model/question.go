package model

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question. Questions are immutable once
// stored; admins only ever append new ones.
type Question struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"` // Index into Options
	Explanation   string     `json:"explanation"`
	Subject       Subject    `json:"subject"`
	Topic         string     `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
}

// QuestionForStudent is a question without its answer key, served while an
// exam is still running.
type QuestionForStudent struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Options    []string   `json:"options"`
	Subject    Subject    `json:"subject"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
}

// ForStudent strips the correct answer and explanation.
func (q Question) ForStudent() QuestionForStudent {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return QuestionForStudent{
		ID:         q.ID,
		Text:       q.Text,
		Options:    opts,
		Subject:    q.Subject,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
	}
}

// AddQuestionRequest is the payload for appending a question to the bank.
type AddQuestionRequest struct {
	Text          string   `json:"text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required,min=0,max=3"`
	Explanation   string   `json:"explanation" binding:"required,min=1,max=2000"`
	Subject       string   `json:"subject" binding:"required,subject"`
	Topic         string   `json:"topic" binding:"omitempty,max=200"`
	Difficulty    string   `json:"difficulty" binding:"required,difficulty"`
}
