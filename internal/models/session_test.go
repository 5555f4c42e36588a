package models

import "testing"

func sampleSession() *Session {
	return &Session{
		ID:                "s1",
		Status:            StatusInProgress,
		CurrentRoundIndex: 1,
		Rounds: []Round{
			{
				RoundNum: 1,
				Type:     RoundDSA,
				Questions: []Question{
					{ID: "q1", SourceRef: "dsa-two-sum", Answered: true},
				},
			},
			{
				RoundNum: 2,
				Type:     RoundBehavioral,
				Questions: []Question{
					{ID: "q2", SourceRef: "beh-conflict"},
				},
			},
		},
	}
}

func TestActiveRound(t *testing.T) {
	s := sampleSession()
	round := s.ActiveRound()
	if round == nil || round.RoundNum != 2 {
		t.Fatalf("expected round 2, got %+v", round)
	}

	s.CurrentRoundIndex = 5
	if s.ActiveRound() != nil {
		t.Errorf("expected nil past the last round")
	}
}

func TestFindQuestion(t *testing.T) {
	s := sampleSession()

	round, q := s.FindQuestion("q2")
	if q == nil || q.ID != "q2" {
		t.Fatalf("expected to find q2, got %+v", q)
	}
	if round.RoundNum != 2 {
		t.Errorf("expected q2 in round 2, got round %d", round.RoundNum)
	}

	if _, missing := s.FindQuestion("nope"); missing != nil {
		t.Errorf("expected nil for unknown question id")
	}
}

func TestIssuedQuestionRefs(t *testing.T) {
	refs := sampleSession().IssuedQuestionRefs()
	if len(refs) != 2 || refs[0] != "dsa-two-sum" || refs[1] != "beh-conflict" {
		t.Errorf("unexpected refs: %v", refs)
	}
}

func TestSessionStatusIsTerminal(t *testing.T) {
	for status, terminal := range map[SessionStatus]bool{
		StatusNotStarted: false,
		StatusInProgress: false,
		StatusPaused:     false,
		StatusCompleted:  true,
		StatusAbandoned:  true,
	} {
		if status.IsTerminal() != terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, !terminal, terminal)
		}
	}
}

func TestCreateSessionRequestValidate(t *testing.T) {
	req := &CreateSessionRequest{StudentID: "stu-1"}
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}

	req = &CreateSessionRequest{StudentID: "  "}
	err := req.Validate()
	if err == nil {
		t.Fatalf("expected error for blank student_id")
	}
	if resp, ok := err.(*ErrorResponse); !ok || resp.Code != "missing_student_id" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSubmitAnswerRequestValidate(t *testing.T) {
	valid := &SubmitAnswerRequest{QuestionID: "q1", Text: "my answer"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}

	codeOnly := &SubmitAnswerRequest{QuestionID: "q1", Code: "x = 1", Language: "python"}
	if err := codeOnly.Validate(); err != nil {
		t.Errorf("expected code-only answer to be valid, got %v", err)
	}

	cases := []struct {
		req  *SubmitAnswerRequest
		code string
	}{
		{&SubmitAnswerRequest{Text: "a"}, "missing_question_id"},
		{&SubmitAnswerRequest{QuestionID: "q1"}, "empty_answer"},
		{&SubmitAnswerRequest{QuestionID: "q1", Text: "a", TimeTakenSeconds: -1}, "invalid_time_taken"},
		{&SubmitAnswerRequest{QuestionID: "q1", Code: "x", Language: "cobol"}, "unsupported_language"},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if err == nil {
			t.Errorf("expected %s error, got nil", tc.code)
			continue
		}
		if resp, ok := err.(*ErrorResponse); !ok || resp.Code != tc.code {
			t.Errorf("expected %s, got %v", tc.code, err)
		}
	}
}
