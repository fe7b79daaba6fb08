package exam_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
)

func TestSynthesize_FirstDrawsForTopic(t *testing.T) {
	// Seed 4037 draws 0.5207 then 0.8896: concept 2 of 5, option 3.
	cfg := exam.Config{Subject: model.SubjectCSE, Topic: "Algorithms", TestName: "Mock Test 1"}

	got := exam.Synthesize(cfg, 7, 3)
	if len(got) != 7 {
		t.Fatalf("got %d questions, want 7", len(got))
	}

	first := got[0]
	if first.ID != "gen_4037_0" {
		t.Errorf("ID = %q, want gen_4037_0", first.ID)
	}
	if !strings.Contains(first.Text, "Advanced Algorithms") {
		t.Errorf("text = %q, want concept Advanced Algorithms", first.Text)
	}
	if !strings.HasPrefix(first.Text, "[Mock Test 1] Q4:") {
		t.Errorf("text = %q, want [Mock Test 1] Q4: prefix", first.Text)
	}
	if first.CorrectAnswer != 3 {
		t.Errorf("CorrectAnswer = %d, want 3", first.CorrectAnswer)
	}
	if got[6].ID != "gen_4037_6" {
		t.Errorf("last ID = %q", got[6].ID)
	}
}

func TestSynthesize_FullSyllabusUsesBranchVocabulary(t *testing.T) {
	// Seed 5234 draws 0.7009 then 0.0780: concept 4 of 7 (Trees), option 0.
	cfg := exam.Config{Subject: model.SubjectCSE, Topic: exam.FullSyllabus, TestName: exam.FinalTestName}

	got := exam.Synthesize(cfg, 1, 0)
	if !strings.Contains(got[0].Text, "characteristics of Trees") {
		t.Errorf("text = %q, want concept Trees", got[0].Text)
	}
	if got[0].CorrectAnswer != 0 {
		t.Errorf("CorrectAnswer = %d, want 0", got[0].CorrectAnswer)
	}
}

func TestSynthesize_Shape(t *testing.T) {
	cfg := exam.Config{Subject: model.SubjectMech, Topic: "Heat Transfer", TestName: "Mock Test 5"}
	for _, q := range exam.Synthesize(cfg, 10, 0) {
		if len(q.Options) != model.OptionCount {
			t.Errorf("%s has %d options", q.ID, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= model.OptionCount {
			t.Errorf("%s correct answer %d", q.ID, q.CorrectAnswer)
		}
		if q.Explanation == "" {
			t.Errorf("%s has no explanation", q.ID)
		}
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	cfg := exam.Config{Subject: model.SubjectCivil, Topic: "Transportation", TestName: "Mock Test 2"}
	if !reflect.DeepEqual(exam.Synthesize(cfg, 5, 2), exam.Synthesize(cfg, 5, 2)) {
		t.Fatal("synthesis is not reproducible")
	}
}

func TestSynthesize_ZeroCount(t *testing.T) {
	if got := exam.Synthesize(exam.Config{}, 0, 0); len(got) != 0 {
		t.Fatalf("got %d questions", len(got))
	}
}

func TestIsSynthesized(t *testing.T) {
	if exam.IsSynthesized(model.Question{ID: "q1"}) {
		t.Error("q1 reported as synthesized")
	}
	if !exam.IsSynthesized(model.Question{ID: "gen_12_0"}) {
		t.Error("gen_12_0 not reported as synthesized")
	}
}
