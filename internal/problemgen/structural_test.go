package problemgen

import (
	"strings"
	"testing"
)

func validProblem() *Problem {
	return &Problem{
		ID:                 "py-1-001",
		Title:              "두 수의 합",
		Description:        "두 정수 a, b의 합을 반환하세요.",
		FunctionStub:       "solution(a, b)",
		ExampleInput:       "1, 2",
		ExampleOutput:      "3",
		Points:             10,
		RelativeDifficulty: 3,
	}
}

func TestStructural(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Problem)
		wantErr bool
	}{
		{"valid", func(p *Problem) {}, false},
		{"empty title", func(p *Problem) { p.Title = "  " }, true},
		{"long title", func(p *Problem) { p.Title = strings.Repeat("가", 101) }, true},
		{"korean title at limit", func(p *Problem) { p.Title = strings.Repeat("가", 100) }, false},
		{"empty description", func(p *Problem) { p.Description = "" }, true},
		{"empty stub", func(p *Problem) { p.FunctionStub = "" }, true},
		{"empty example output", func(p *Problem) { p.ExampleOutput = "" }, true},
		{"empty example input allowed", func(p *Problem) { p.ExampleInput = "" }, false},
		{"difficulty low", func(p *Problem) { p.RelativeDifficulty = 0 }, true},
		{"difficulty high", func(p *Problem) { p.RelativeDifficulty = 6 }, true},
		{"zero points", func(p *Problem) { p.Points = 0 }, true},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProblem()
			tt.mutate(p)
			err := v.Validate(p, GenerateInput{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Validator != "structural" {
				t.Errorf("unexpected error shape: %+v", err)
			}
		})
	}
}

func TestStubValidator(t *testing.T) {
	tests := []struct {
		lang    Language
		stub    string
		wantErr bool
	}{
		{Python, "solution(n)", false},
		{Python, "def solution(n):", false},
		{Python, "solution", true},
		{C, "int solution(int n)", false},
		{C, "char* solution(char* s)", false},
		{C, "solution(int n)", true},
		{Java, "public int solution(int n)", false},
		{Java, "public String[] solution(String[] words)", false},
		{Java, "int solution(int n)", true},
	}

	v := &StubValidator{}
	for _, tt := range tests {
		p := validProblem()
		p.FunctionStub = tt.stub
		err := v.Validate(p, GenerateInput{Language: tt.lang})
		if (err != nil) != tt.wantErr {
			t.Errorf("%s %q: err = %v, wantErr %v", tt.lang, tt.stub, err, tt.wantErr)
		}
	}
}
