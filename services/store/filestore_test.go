package storesvc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("token"); ok {
		t.Error("expected empty store")
	}

	if err = s.Set("token", "tok123"); err != nil {
		t.Fatal(err)
	}
	if err = s.Set("userId", "7"); err != nil {
		t.Fatal(err)
	}

	// values survive a reopen
	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := s2.Get("token"); !ok || v != "tok123" {
		t.Errorf("expected persisted token; got %q ok=%v", v, ok)
	}

	if err = s2.Delete("token"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s2.Get("token"); ok {
		t.Error("expected token deleted")
	}
	if v, ok := s2.Get("userId"); !ok || v != "7" {
		t.Errorf("expected userId kept; got %q ok=%v", v, ok)
	}

	if err = s2.Clear(); err != nil {
		t.Fatal(err)
	}
	s3, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s3.Get("userId"); ok {
		t.Error("expected cleared store on reopen")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestInMemStore(t *testing.T) {
	s := NewInMemStore()
	_ = s.Set("a", "1")
	if v, ok := s.Get("a"); !ok || v != "1" {
		t.Errorf("expected a=1; got %q ok=%v", v, ok)
	}
	_ = s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Error("expected a deleted")
	}
	_ = s.Set("b", "2")
	_ = s.Clear()
	if _, ok := s.Get("b"); ok {
		t.Error("expected store cleared")
	}
}
