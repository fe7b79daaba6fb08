package exam

import (
	"fmt"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// FinalTestName is the full-length test offered after the numbered mocks.
const FinalTestName = "Final Grand Mock Test"

const mockTestCount = 10

var branchTopics = map[model.Subject][]string{
	model.SubjectCSE:        {FullSyllabus, "Algorithms", "Operating Systems", "Computer Networks", "DBMS", "Digital Logic", "Theory of Computation"},
	model.SubjectIT:         {FullSyllabus, "Web Technologies", "Information Systems", "Software Engineering", "Data Structures"},
	model.SubjectMech:       {FullSyllabus, "Thermodynamics", "Fluid Mechanics", "Strength of Materials", "Theory of Machines", "Heat Transfer"},
	model.SubjectElectrical: {FullSyllabus, "Power Systems", "Electrical Machines", "Control Systems", "Circuit Theory", "Fields"},
	model.SubjectENTC:       {FullSyllabus, "Signals & Systems", "Analog Circuits", "Communication", "Electromagnetics"},
	model.SubjectCivil:      {FullSyllabus, "Structural Analysis", "Geotechnical Engg", "Fluid Mechanics", "Transportation"},
	model.SubjectGeneral:    {FullSyllabus, "Numerical Ability", "Verbal Ability"},
}

// Branch describes one selectable stream.
type Branch struct {
	Subject    model.Subject `json:"subject"`
	TopicCount int           `json:"topic_count"`
}

// Branches lists the selectable streams. General Aptitude is not a stream of
// its own.
func Branches() []Branch {
	out := make([]Branch, 0, len(model.AllSubjects))
	for _, s := range model.AllSubjects {
		if s == model.SubjectGeneral {
			continue
		}
		out = append(out, Branch{Subject: s, TopicCount: len(branchTopics[s])})
	}
	return out
}

// Topics returns the topic modules offered for a stream, Full Syllabus first.
func Topics(subject model.Subject) []string {
	topics := branchTopics[subject]
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// TestEntry is one entry of the test list.
type TestEntry struct {
	Name           string `json:"name"`
	Pattern        string `json:"pattern"`
	QuestionCount  int    `json:"question_count"`
	DurationSecond int    `json:"duration_seconds"`
}

// Tests returns the test catalogue: ten standard mocks and the final.
func Tests() []TestEntry {
	out := make([]TestEntry, 0, mockTestCount+1)
	for i := 1; i <= mockTestCount; i++ {
		out = append(out, newTestEntry(fmt.Sprintf("Mock Test %d", i), "Standard Pattern"))
	}
	return append(out, newTestEntry(FinalTestName, "Full Length"))
}

func newTestEntry(name, pattern string) TestEntry {
	cfg := Config{TestName: name}
	n := cfg.TargetSize()
	return TestEntry{
		Name:           name,
		Pattern:        pattern,
		QuestionCount:  n,
		DurationSecond: cfg.PlannedSeconds(n),
	}
}
