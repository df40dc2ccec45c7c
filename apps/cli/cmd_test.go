package main

import (
	"bytes"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/skillshare/api"
	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/user"
	clipsvc "github.com/trezcool/skillshare/services/clipboard"
	idsvc "github.com/trezcool/skillshare/services/identity"
	logsvc "github.com/trezcool/skillshare/services/logger"
	storesvc "github.com/trezcool/skillshare/services/store"
	"github.com/trezcool/skillshare/tests/fakeapi"
)

type testOpener struct{ urls []string }

func (o *testOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

func setup(t *testing.T) (*commandLine, *fakeapi.Server, *bytes.Buffer) {
	t.Helper()

	backend := fakeapi.New("test-secret")
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	conf := &core.Config{
		AppName:        "SkillShare",
		Env:            "TEST",
		TestMode:       true,
		APIBaseURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
	}
	logger := logsvc.NewConsoleLogger(log.New(&bytes.Buffer{}, "", 0))

	out := &bytes.Buffer{}
	cli := &commandLine{
		conf:     conf,
		client:   api.NewClient(conf, logger),
		store:    storesvc.NewInMemStore(),
		logger:   logger,
		clip:     &clipsvc.Capture{},
		opener:   &testOpener{},
		provider: &idsvc.DummyProvider{},
		out:      out,
		in:       strings.NewReader(""),
	}
	return cli, backend, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	pwd     string
}

func Test_commandLine_help(t *testing.T) {
	cli, _, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "login without username", args: []string{"login"}, wantErr: errHelp},
		{name: "register without email", args: []string{"register", "-username", "amina"}, wantErr: errHelp},
		{name: "respond without status", args: []string{"respond", "-id", "1"}, wantErr: errHelp},
		{name: "cancel without id", args: []string{"cancel"}, wantErr: errHelp},
		{name: "meeting without id", args: []string{"meeting"}, wantErr: errHelp},
		{name: "add-skill without list", args: []string{"add-skill", "-name", "Go"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"skillshare"}, tt.args...)
		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_loginAndDashboard(t *testing.T) {
	cli, backend, out := setup(t)

	usr := user.User{Username: "amina", FullName: "Amina K", Email: "amina@test.io"}
	backend.AddUser(usr, "s3cret99")

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret99"), nil }
	t.Cleanup(func() { readPasswordFunc = term.ReadPassword })

	if err := cli.run([]string{"skillshare", "login", "-username", "amina"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(out.String(), "signed in as amina") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := cli.run([]string{"skillshare", "dashboard"}); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if !strings.Contains(out.String(), "hello Amina K") {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := cli.run([]string{"skillshare", "logout"}); err != nil {
		t.Fatal(err)
	}
	if err := cli.run([]string{"skillshare", "dashboard"}); err == nil {
		t.Error("expected dashboard to fail when signed out")
	}
}

func Test_commandLine_addSkillAndBrowse(t *testing.T) {
	cli, backend, out := setup(t)

	backend.AddUser(user.User{Username: "amina", FullName: "Amina K", Email: "amina@test.io"}, "s3cret99")
	backend.AddUser(user.User{
		Username: "alice", FullName: "Alice W", Email: "alice@test.io", Rating: 4.5,
		OfferedSkills: []user.Skill{{ID: 900, Name: "Photography"}},
	}, "pwd123")

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret99"), nil }
	t.Cleanup(func() { readPasswordFunc = term.ReadPassword })

	if err := cli.run([]string{"skillshare", "login", "-username", "amina"}); err != nil {
		t.Fatal(err)
	}

	if err := cli.run([]string{"skillshare", "add-skill", "-list", "wanted", "-name", "Photography"}); err == nil {
		t.Fatal("expected wanted skills to require a description")
	}
	args := []string{"skillshare", "add-skill", "-list", "wanted", "-name", "Photography", "-description", "portraits"}
	if err := cli.run(args); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := cli.run([]string{"skillshare", "browse", "-skill", "photo"}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Alice W") {
		t.Errorf("expected alice listed; got %q", got)
	}
	if !strings.Contains(got, "which you want to learn") {
		t.Errorf("expected a skill match hint; got %q", got)
	}

	out.Reset()
	if err := cli.run([]string{"skillshare", "browse", "-skill", "welding"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "no users match") {
		t.Errorf("expected no matches; got %q", out.String())
	}

	// the wanted skill got id 3 (after the two seeded users); removing it
	// downgrades the match hint to a suggestion
	cli.in = strings.NewReader("y\n")
	if err := cli.run([]string{"skillshare", "remove-skill", "-list", "wanted", "-id", "3"}); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := cli.run([]string{"skillshare", "browse", "-skill", "photo"}); err != nil {
		t.Fatal(err)
	}
	got = out.String()
	if strings.Contains(got, "which you want to learn") {
		t.Errorf("expected no match hint after removal; got %q", got)
	}
	if !strings.Contains(got, "try adding Photography to your wanted list") {
		t.Errorf("expected a suggestion; got %q", got)
	}
}
