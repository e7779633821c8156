package domain

import "testing"

func TestQuestionValidate(t *testing.T) {
	cases := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Prompt: "Capital of France?", Answer: "Paris", Difficulty: DifficultyEasy}, false},
		{"defaults difficulty", Question{Prompt: "p", Answer: "a"}, false},
		{"blank prompt", Question{Prompt: "  ", Answer: "a"}, true},
		{"blank answer", Question{Prompt: "p", Answer: ""}, true},
		{"bad difficulty", Question{Prompt: "p", Answer: "a", Difficulty: "extreme"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestQuestionValidateDefaultsDifficulty(t *testing.T) {
	q := Question{Prompt: "p", Answer: "a"}
	if err := q.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if q.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, want medium", q.Difficulty)
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (&Category{Name: "History"}).Validate(); err != nil {
		t.Errorf("valid category: %v", err)
	}
	if err := (&Category{Name: " "}).Validate(); err == nil {
		t.Error("blank name should be rejected")
	}
}

func TestAnnouncementValidate(t *testing.T) {
	if err := (&Announcement{Title: "Maintenance window"}).Validate(); err != nil {
		t.Errorf("valid announcement: %v", err)
	}
	if err := (&Announcement{Title: ""}).Validate(); err == nil {
		t.Error("blank title should be rejected")
	}
}
