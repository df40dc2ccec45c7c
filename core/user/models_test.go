package user

import "testing"

func TestDisplayName(t *testing.T) {
	u := User{Username: "amina", FullName: "Amina K"}
	if got := u.DisplayName(); got != "Amina K" {
		t.Errorf("expected full name; got %q", got)
	}
	u.FullName = ""
	if got := u.DisplayName(); got != "amina" {
		t.Errorf("expected username fallback; got %q", got)
	}
	if got := UnknownName(42); got != "User #42" {
		t.Errorf("unexpected placeholder %q", got)
	}
}

func TestSkillLookups(t *testing.T) {
	u := User{
		OfferedSkills: []Skill{{ID: 1, Name: "Go"}},
		WantedSkills:  []Skill{{ID: 2, Name: "Photography"}},
	}

	if s, ok := u.SkillByID(1); !ok || s.Name != "Go" {
		t.Errorf("expected offered skill; got %+v ok=%v", s, ok)
	}
	if s, ok := u.SkillByID(2); !ok || s.Name != "Photography" {
		t.Errorf("expected wanted skill; got %+v ok=%v", s, ok)
	}
	if _, ok := u.SkillByID(3); ok {
		t.Error("expected no skill 3")
	}

	if _, ok := u.WantedSkillByID(1); ok {
		t.Error("offered skills must not resolve from the wanted list")
	}
	if _, ok := u.WantedSkillByID(2); !ok {
		t.Error("expected wanted skill 2")
	}

	if !u.HasOfferedSkills() {
		t.Error("expected offered skills")
	}
	if (User{}).HasOfferedSkills() {
		t.Error("expected no offered skills")
	}
}

func TestSkillNamesEqual(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"Go", "go", true},
		{" Go ", "GO", true},
		{"Go", "Golang", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := SkillNamesEqual(tt.a, tt.b); got != tt.expected {
			t.Errorf("SkillNamesEqual(%q, %q) = %v; expected %v", tt.a, tt.b, got, tt.expected)
		}
	}

	u := User{OfferedSkills: []Skill{{ID: 1, Name: "Photography"}}}
	if !u.OffersSkillNamed("photography") {
		t.Error("expected case-insensitive offered match")
	}
	if u.OffersSkillNamed("welding") {
		t.Error("expected no match")
	}
}
