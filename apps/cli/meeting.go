package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core/meeting"
	"github.com/trezcool/skillshare/core/session"
)

func (cli *commandLine) meetingCmd(args []string) error {
	cmd := newFlagSet("meeting")
	id := cmd.Int("id", 0, "The session id.")
	join := cmd.Bool("join", false, "Open the meeting link.")
	copyLink := cmd.Bool("copy-link", false, "Copy the meeting link.")
	begin := cmd.Bool("begin", false, "Mark the session in progress (teacher only).")
	complete := cmd.Bool("complete", false, "Mark the session completed (teacher only).")
	cancel := cmd.Bool("cancel", false, "Cancel the session (teacher only).")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}

	sessions, err := client.Sessions(ctx, sess.UserID)
	if err != nil {
		return err
	}
	var target *session.Session
	for i := range sessions {
		if sessions[i].ID == *id {
			target = &sessions[i]
			break
		}
	}
	if target == nil {
		return errors.Errorf("no session #%d", *id)
	}

	card := meeting.NewCard(client, cli.clip, cli.opener, cli.logger, *target, sess.UserID, nil)

	switch {
	case *join:
		if err = card.Join(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "meeting link opened")
	case *copyLink:
		if err = card.CopyLink(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Copied!")
	case *begin:
		if err = card.Begin(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "session in progress")
	case *complete:
		if err = card.Complete(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "session completed")
	case *cancel:
		if err = card.Cancel(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "session cancelled")
	default:
		js := card.JoinState()
		fmt.Fprintf(cli.out, "session #%d at %s [%s]\n", target.ID, target.ScheduledTime.Format("Mon Jan 2 15:04"), target.Status)
		fmt.Fprintln(cli.out, js.Label)
		if js.CanJoin {
			fmt.Fprintln(cli.out, "run again with -join to enter the meeting")
		}
	}
	return nil
}
