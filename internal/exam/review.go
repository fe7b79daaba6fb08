package exam

import (
	"fmt"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// Verdict classifies one answered slot.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	VerdictSkipped   Verdict = "skipped"
)

// Filter selects which review items are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCorrect   Filter = "correct"
	FilterIncorrect Filter = "incorrect"
	FilterSkipped   Filter = "skipped"
)

// ParseFilter validates a filter name. The empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCorrect, FilterIncorrect, FilterSkipped:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// Item compares the selected and the correct option of one question.
type Item struct {
	Index         int            `json:"index"`
	Question      model.Question `json:"question"`
	Selected      *int           `json:"selected"`
	SelectedText  string         `json:"selected_text,omitempty"`
	CorrectOption int            `json:"correct_option"`
	CorrectText   string         `json:"correct_text"`
	Explanation   string         `json:"explanation"`
	Verdict       Verdict        `json:"verdict"`
}

// Review partitions a completed session into correct, incorrect and skipped
// indices. The three sets are disjoint and together cover every question.
type Review struct {
	Items     []Item `json:"items"`
	Correct   []int  `json:"correct"`
	Incorrect []int  `json:"incorrect"`
	Skipped   []int  `json:"skipped"`
}

// BuildReview derives the review from questions and answers without
// modifying either.
func BuildReview(questions []model.Question, answers []int) Review {
	r := Review{
		Items:     make([]Item, 0, len(questions)),
		Correct:   []int{},
		Incorrect: []int{},
		Skipped:   []int{},
	}

	for i, q := range questions {
		ans := Unanswered
		if i < len(answers) {
			ans = answers[i]
		}

		it := Item{
			Index:         i,
			Question:      q,
			CorrectOption: q.CorrectAnswer,
			CorrectText:   optionText(q, q.CorrectAnswer),
			Explanation:   q.Explanation,
		}

		switch {
		case ans == Unanswered:
			it.Verdict = VerdictSkipped
			r.Skipped = append(r.Skipped, i)
		case ans == q.CorrectAnswer:
			it.Verdict = VerdictCorrect
			r.Correct = append(r.Correct, i)
		default:
			it.Verdict = VerdictIncorrect
			r.Incorrect = append(r.Incorrect, i)
		}
		if ans != Unanswered {
			sel := ans
			it.Selected = &sel
			it.SelectedText = optionText(q, ans)
		}

		r.Items = append(r.Items, it)
	}
	return r
}

func optionText(q model.Question, idx int) string {
	if idx < 0 || idx >= len(q.Options) {
		return ""
	}
	return q.Options[idx]
}

// Filter returns the items matching f, in question order.
func (r Review) Filter(f Filter) []Item {
	if f == FilterAll || f == "" {
		out := make([]Item, len(r.Items))
		copy(out, r.Items)
		return out
	}

	out := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		if string(it.Verdict) == string(f) {
			out = append(out, it)
		}
	}
	return out
}

// Summary is the breakdown shown next to the review.
type Summary struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Skipped   int `json:"skipped"`
	Score     int `json:"score"`
}

// Summary counts the partitions.
func (r Review) Summary() Summary {
	return Summary{
		Total:     len(r.Items),
		Correct:   len(r.Correct),
		Incorrect: len(r.Incorrect),
		Skipped:   len(r.Skipped),
		Score:     Percentage(len(r.Correct), len(r.Items)),
	}
}
