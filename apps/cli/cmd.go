package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/skillshare/api"
	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/auth"
	"github.com/trezcool/skillshare/core/dashboard"
	"github.com/trezcool/skillshare/core/schedule"
	"github.com/trezcool/skillshare/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	client   *api.Client
	store    core.KeyValueStore
	logger   core.Logger
	clip     core.Clipboard
	opener   core.URLOpener
	provider auth.IdentityProvider
	out      io.Writer
	in       io.Reader

	reader *bufio.Reader // lazily wraps in
}

// readLine reads one input line through a shared buffered reader.
func (cli *commandLine) readLine() (string, error) {
	if cli.reader == nil {
		cli.reader = bufio.NewReader(cli.in)
	}
	line, err := cli.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME - sign in; the password is prompted next")
	fmt.Fprintln(cli.out, "  register -username USERNAME -email EMAIL -fullname NAME - create an account")
	fmt.Fprintln(cli.out, "  google-login - sign in with Google")
	fmt.Fprintln(cli.out, "  logout - clear the stored session")
	fmt.Fprintln(cli.out, "  dashboard - show requests, sessions and notifications")
	fmt.Fprintln(cli.out, "  browse [-username U] [-skill S] [-location L] [-min-rating N] - search teachers")
	fmt.Fprintln(cli.out, "  request -skill-id ID -teacher-id ID -date YYYY-MM-DD -time HH:MM [-duration MIN] [-type virtual|in_person] [-location L] [-notes N] - request a session")
	fmt.Fprintln(cli.out, "  respond -id ID -status approved|rejected [-message M] - answer an incoming request")
	fmt.Fprintln(cli.out, "  cancel -id ID - withdraw a pending request")
	fmt.Fprintln(cli.out, "  meeting -id ID [-join] [-copy-link] [-begin] [-complete] [-cancel] - act on a scheduled session")
	fmt.Fprintln(cli.out, "  add-skill -list offered|wanted -name NAME [-description D] [-level L] - add a skill to your profile")
	fmt.Fprintln(cli.out, "  remove-skill -list offered|wanted -id ID - remove a skill from your profile")
	fmt.Fprintln(cli.out, "  read-notification -id ID - mark a notification read")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.loginCmd(args[2:])
	case "register":
		return cli.registerCmd(args[2:])
	case "google-login":
		return cli.googleLoginCmd()
	case "logout":
		return cli.authService().Logout()
	case "dashboard":
		return cli.dashboardCmd()
	case "browse":
		return cli.browseCmd(args[2:])
	case "request":
		return cli.requestCmd(args[2:])
	case "respond":
		return cli.respondCmd(args[2:])
	case "cancel":
		return cli.cancelCmd(args[2:])
	case "meeting":
		return cli.meetingCmd(args[2:])
	case "add-skill":
		return cli.addSkillCmd(args[2:])
	case "remove-skill":
		return cli.removeSkillCmd(args[2:])
	case "read-notification":
		return cli.readNotificationCmd(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) authService() *auth.Service {
	return auth.NewService(cli.client, cli.store, cli.provider, cli.logger)
}

// session restores the stored session and returns a client authenticated as
// its holder.
func (cli *commandLine) session() (auth.Session, *api.Client, error) {
	sess, err := cli.authService().CurrentSession()
	if err != nil {
		return auth.Session{}, nil, err
	}
	return sess, cli.client.WithToken(sess.Token), nil
}

func (cli *commandLine) dashboardService(client *api.Client) *dashboard.Service {
	return dashboard.NewService(client, core.ConfirmerFunc(cli.confirm), cli.logger)
}

func (cli *commandLine) scheduleService(client *api.Client) *schedule.Service {
	return schedule.NewService(client, cli.logger)
}

func (cli *commandLine) confirm(prompt string) bool {
	fmt.Fprintf(cli.out, "%s [y/N]: ", prompt)
	line, err := cli.readLine()
	if err != nil {
		return false
	}
	return strings.EqualFold(line, "y")
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}

func statusLabel(r session.Request) string {
	if r.ResponseMessage.Valid && r.ResponseMessage.String != "" {
		return fmt.Sprintf("%s (%s)", r.Status, r.ResponseMessage.String)
	}
	return r.Status
}

// execOpener opens a URL in the default browser.
type execOpener struct{}

func (execOpener) Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
