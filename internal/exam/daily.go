package exam

import (
	"time"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// dayStampLayout renders dates like "Wed Oct 14 2026".
const dayStampLayout = "Mon Jan 02 2006"

// DayStamp formats t in local time as the question-of-the-day seed string.
func DayStamp(t time.Time) string {
	return t.Format(dayStampLayout)
}

// QuestionOfTheDay picks the bank entry for day. Every caller on the same
// day gets the same question. It reports false for an empty bank.
func QuestionOfTheDay(bank []model.Question, day time.Time) (model.Question, bool) {
	if len(bank) == 0 {
		return model.Question{}, false
	}
	seed := SeedFromString(DayStamp(day))
	return bank[int(seed%uint32(len(bank)))], true
}
