package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/trezcool/skillshare/core/auth"
)

func (cli *commandLine) loginCmd(args []string) error {
	cmd := newFlagSet("login")
	uname := cmd.String("username", "", "Your username.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *uname == "" {
		cmd.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Enter password:")
	if err != nil {
		return err
	}

	sess, err := cli.authService().Login(context.Background(), auth.LoginForm{Username: *uname, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "signed in as %s\n", sess.Username)
	return nil
}

func (cli *commandLine) registerCmd(args []string) error {
	cmd := newFlagSet("register")
	uname := cmd.String("username", "", "Your username.")
	email := cmd.String("email", "", "Your email address.")
	fullName := cmd.String("fullname", "", "Your full name.")
	location := cmd.String("location", "", "Where you are based (optional).")
	bio := cmd.String("bio", "", "A short bio (optional).")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *uname == "" || *email == "" || *fullName == "" {
		cmd.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Enter password:")
	if err != nil {
		return err
	}

	form := auth.RegisterForm{
		Username: *uname,
		Email:    *email,
		Password: pwd,
		FullName: *fullName,
		Location: *location,
		Bio:      *bio,
	}
	sess, err := cli.authService().Register(context.Background(), form)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "welcome, %s\n", sess.Username)
	return nil
}

func (cli *commandLine) googleLoginCmd() error {
	ctx := context.Background()
	svc := cli.authService()

	sess, pending, err := svc.GoogleSignIn(ctx)
	if err != nil {
		return err
	}
	if pending == nil {
		fmt.Fprintf(cli.out, "signed in as %s\n", sess.Username)
		return nil
	}

	// first sign-in: collect the missing profile fields
	fmt.Fprintln(cli.out, "almost there, complete your profile:")
	form := pending.Prefill
	form.FullName = cli.promptLine("Full name", form.FullName)
	form.Username = cli.promptLine("Username", form.Username)
	form.Location = cli.promptLine("Location", form.Location)
	form.Bio = cli.promptLine("Bio", form.Bio)
	if form.Password, err = cli.readPassword("Choose a password:"); err != nil {
		return err
	}
	if form.PasswordConfirm, err = cli.readPassword("Confirm password:"); err != nil {
		return err
	}

	if sess, err = svc.CompleteProfile(ctx, *pending, form); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "welcome, %s\n", sess.Username)
	return nil
}

// promptLine reads one line, keeping the default on empty input.
func (cli *commandLine) promptLine(label, def string) string {
	if def != "" {
		fmt.Fprintf(cli.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(cli.out, "%s: ", label)
	}
	line, err := cli.readLine()
	if err != nil || line == "" {
		return def
	}
	return line
}

// promptAuthCode shows the consent URL and reads back the authorization code.
func promptAuthCode(authURL string) (string, error) {
	fmt.Printf("Visit the link below, authorize the app and paste the code here:\n%s\n> ", authURL)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
