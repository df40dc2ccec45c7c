package core

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	wd := t.TempDir()
	conf, err := NewConfig(wd)
	if err != nil {
		t.Fatal(err)
	}
	if conf.AppName != "SkillShare" {
		t.Errorf("unexpected appName %q", conf.AppName)
	}
	if conf.APIBaseURL != "http://localhost:8080" {
		t.Errorf("unexpected apiBaseUrl %q", conf.APIBaseURL)
	}
	if conf.RequestTimeout != 15*time.Second {
		t.Errorf("unexpected requestTimeout %v", conf.RequestTimeout)
	}
	if want := filepath.Join(wd, ".skillshare", "session.json"); conf.SessionStorePath != want {
		t.Errorf("unexpected sessionStorePath %q", conf.SessionStorePath)
	}
	if !conf.Debug {
		t.Error("expected debug by default")
	}
}

func TestTranslateValidationError(t *testing.T) {
	type form struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"omitempty,email"`
	}

	if err := TranslateValidationError(Validate.Struct(&form{Username: "ok"})); err != nil {
		t.Fatalf("expected no error; got %v", err)
	}

	err := TranslateValidationError(Validate.Struct(&form{Email: "nope"}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError; got %T", err)
	}
	if len(vErr.Fields) != 2 {
		t.Fatalf("expected 2 field errors; got %+v", vErr.Fields)
	}
	// field names come from the json tags
	if vErr.Fields[0].Field != "username" || vErr.Fields[0].Error != "this field is required" {
		t.Errorf("unexpected field error %+v", vErr.Fields[0])
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Hello "); got != "Hello" {
		t.Errorf("unexpected %q", got)
	}
	if got := CleanString("  HeLLo ", true); got != "hello" {
		t.Errorf("unexpected %q", got)
	}
}
