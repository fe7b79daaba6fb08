package exam

import (
	"strings"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// FullSyllabus is the topic sentinel that disables topic filtering.
const FullSyllabus = "Full Syllabus"

const (
	finalMarker = "Final"

	standardQuestionCount = 10
	finalQuestionCount    = 20

	standardSecondsPerQuestion = 120
	finalSecondsPerQuestion    = 180
)

// Config is the branch/topic/test selection a session is built from.
type Config struct {
	Subject  model.Subject `json:"subject"`
	Topic    string        `json:"topic"`
	TestName string        `json:"test_name"`
}

// IsFinal reports whether the test is a full-length final. The marker is
// matched case-sensitively.
func (c Config) IsFinal() bool {
	return strings.Contains(c.TestName, finalMarker)
}

// TargetSize is the exact number of questions a session holds.
func (c Config) TargetSize() int {
	if c.IsFinal() {
		return finalQuestionCount
	}
	return standardQuestionCount
}

// SecondsPerQuestion is the time allotted per question.
func (c Config) SecondsPerQuestion() int {
	if c.IsFinal() {
		return finalSecondsPerQuestion
	}
	return standardSecondsPerQuestion
}

// PlannedSeconds is the total countdown for n questions.
func (c Config) PlannedSeconds(n int) int {
	return n * c.SecondsPerQuestion()
}

// SeedString is the input to the deterministic generator. Changing it changes
// every exam ever generated for the same selection.
func (c Config) SeedString() string {
	return c.TestName + c.Topic + string(c.Subject)
}

// ResultLabel is the test name recorded on results, e.g. "Mock Test 3 (DBMS)".
func (c Config) ResultLabel() string {
	return c.TestName + " (" + c.Topic + ")"
}

// IsFullSyllabus reports whether the topic filter is disabled.
func (c Config) IsFullSyllabus() bool {
	return c.Topic == FullSyllabus
}
