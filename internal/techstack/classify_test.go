package techstack

import (
	"reflect"
	"testing"
)

func TestClassifyGroupsByDomain(t *testing.T) {
	t.Parallel()

	got := Classify("Python, Django, PostgreSQL and some Docker on AWS")

	// "go" is picked up from inside "Django"; substring matching is pinned
	// behavior, see TestClassifySubstringImprecision.
	if !reflect.DeepEqual(got[DomainLanguage], []string{"go", "python"}) {
		t.Fatalf("unexpected languages: %v", got[DomainLanguage])
	}
	if !reflect.DeepEqual(got[DomainBackendFramework], []string{"django"}) {
		t.Fatalf("unexpected backend frameworks: %v", got[DomainBackendFramework])
	}
	if !reflect.DeepEqual(got[DomainDatabase], []string{"postgresql"}) {
		t.Fatalf("unexpected databases: %v", got[DomainDatabase])
	}
	if !reflect.DeepEqual(got[DomainDevops], []string{"docker"}) {
		t.Fatalf("unexpected devops: %v", got[DomainDevops])
	}
	if !reflect.DeepEqual(got[DomainCloud], []string{"aws"}) {
		t.Fatalf("unexpected cloud: %v", got[DomainCloud])
	}
}

func TestClassifySubstringImprecision(t *testing.T) {
	t.Parallel()

	// Matching is substring-based, so "go" matches inside "google" and
	// "java" inside "javascript". This is pinned, documented behavior.
	got := Classify("I worked at Google on JavaScript tooling")

	if !reflect.DeepEqual(got[DomainLanguage], []string{"go", "java", "javascript"}) {
		t.Fatalf("unexpected languages: %v", got[DomainLanguage])
	}
}

func TestClassifyNoMatches(t *testing.T) {
	t.Parallel()

	if got := Classify("COBOL and Fortran"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestEffective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "flattened and sorted",
			input:  "Python, Django, PostgreSQL",
			expect: "django, go, postgresql, python",
		},
		{
			name:   "fallback to raw text",
			input:  "COBOL mainframes",
			expect: "COBOL mainframes",
		},
		{
			name:   "tokens are de-duplicated",
			input:  "python python PYTHON",
			expect: "python",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Effective(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
