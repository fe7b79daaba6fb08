package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/repository"
	"github.com/stemsi/gatemock-backend/internal/service"
)

func addRequest(topic string) model.AddQuestionRequest {
	correct := 2
	return model.AddQuestionRequest{
		Text:          "  Which traversal visits the root first?  ",
		Options:       []string{"Inorder", "Postorder", "Preorder", "Level order"},
		CorrectAnswer: &correct,
		Explanation:   "Preorder visits root, left, right.",
		Subject:       string(model.SubjectCSE),
		Topic:         topic,
		Difficulty:    string(model.DifficultyEasy),
	}
}

func TestQuestionService_Add(t *testing.T) {
	ctx := context.Background()
	st := newStores()
	svc := service.NewQuestionService(st.questions, quietLog())

	q, err := svc.Add(ctx, addRequest(""))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if q.ID == "" {
		t.Error("empty id")
	}
	if q.Topic != service.DefaultTopic {
		t.Errorf("topic = %q, want %q", q.Topic, service.DefaultTopic)
	}
	if q.Text != "Which traversal visits the root first?" {
		t.Errorf("text not trimmed: %q", q.Text)
	}
	if q.CorrectAnswer != 2 || q.Subject != model.SubjectCSE || q.Difficulty != model.DifficultyEasy {
		t.Errorf("question = %+v", q)
	}

	bank, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(bank) != 14 || bank[13].ID != q.ID {
		t.Errorf("bank has %d questions, last %q", len(bank), bank[len(bank)-1].ID)
	}

	second, _ := svc.Add(ctx, addRequest("Trees"))
	if second.Topic != "Trees" || second.ID == q.ID {
		t.Errorf("second = %+v", second)
	}
}

func TestQuestionService_RejectsBlankFields(t *testing.T) {
	tests := []struct {
		name  string
		patch func(*model.AddQuestionRequest)
	}{
		{"text", func(r *model.AddQuestionRequest) { r.Text = "   " }},
		{"explanation", func(r *model.AddQuestionRequest) { r.Explanation = "\t\n" }},
		{"option", func(r *model.AddQuestionRequest) { r.Options[3] = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStores()
			svc := service.NewQuestionService(st.questions, quietLog())

			req := addRequest("Trees")
			tt.patch(&req)
			if _, err := svc.Add(context.Background(), req); !errors.Is(err, exam.ErrInvalidSelection) {
				t.Fatalf("err = %v, want ErrInvalidSelection", err)
			}

			bank, err := svc.List(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(bank) != len(repository.InitialQuestions()) {
				t.Errorf("bank grew to %d", len(bank))
			}
		})
	}
}

func TestQuestionService_StorageDown(t *testing.T) {
	svc := service.NewQuestionService(failingBank{}, quietLog())

	if _, err := svc.Add(context.Background(), addRequest("")); !errors.Is(err, service.ErrStorageUnavailable) {
		t.Errorf("Add err = %v", err)
	}
	if _, err := svc.List(context.Background()); !errors.Is(err, service.ErrStorageUnavailable) {
		t.Errorf("List err = %v", err)
	}
}
