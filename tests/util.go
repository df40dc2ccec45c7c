package testutil

import (
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/trezcool/skillshare/api"
	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/user"
	logsvc "github.com/trezcool/skillshare/services/logger"
	storesvc "github.com/trezcool/skillshare/services/store"
	"github.com/trezcool/skillshare/tests/fakeapi"
)

const secretKey = "test-secret"

// Env wires a fake backend with a real client and an in-memory store, the way
// the app wires them in production.
type Env struct {
	Backend *fakeapi.Server
	Client  *api.Client
	Store   *storesvc.InMemStore
	Logger  core.Logger
	Conf    *core.Config
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	backend := fakeapi.New(secretKey)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	conf := &core.Config{
		AppName:        "SkillShare",
		Env:            "TEST",
		TestMode:       true,
		APIBaseURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
	}
	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	logger.Enable(testing.Verbose())

	return &Env{
		Backend: backend,
		Client:  api.NewClient(conf, logger),
		Store:   storesvc.NewInMemStore(),
		Logger:  logger,
		Conf:    conf,
	}
}

// CreateUser seeds a backend user with the given skills.
func (env *Env) CreateUser(t *testing.T, username, fullName, password string, offered, wanted []string) user.User {
	t.Helper()
	u := user.User{
		Username: username,
		FullName: fullName,
		Email:    username + "@test.io",
	}
	for i, name := range offered {
		u.OfferedSkills = append(u.OfferedSkills, user.Skill{ID: 1000 + i, Name: name})
	}
	for i, name := range wanted {
		u.WantedSkills = append(u.WantedSkills, user.Skill{ID: 2000 + i, Name: name})
	}
	return env.Backend.AddUser(u, password)
}
