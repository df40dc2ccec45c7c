package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/skillshare/core/dashboard"
	"github.com/trezcool/skillshare/core/session"
	"github.com/trezcool/skillshare/core/user"
)

func (cli *commandLine) dashboardCmd() error {
	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}

	st, err := cli.dashboardService(client).Load(ctx, sess.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "hello %s\n\n", st.CurrentUser.DisplayName())

	fmt.Fprintf(cli.out, "incoming requests (%d):\n", len(st.Incoming))
	for _, r := range st.Incoming {
		fmt.Fprintf(cli.out, "  #%d %s from %s at %s [%s]\n",
			r.ID, r.SkillName, r.LearnerName, r.RequestedTime.Format("Mon Jan 2 15:04"), statusLabel(r.Request))
	}

	fmt.Fprintf(cli.out, "outgoing requests (%d):\n", len(st.Outgoing))
	for _, r := range st.Outgoing {
		line := fmt.Sprintf("  #%d %s with %s at %s [%s]",
			r.ID, r.SkillName, r.TeacherName, r.RequestedTime.Format("Mon Jan 2 15:04"), statusLabel(r.Request))
		if r.CanCancel(time.Now()) {
			line += " (cancellable)"
		}
		fmt.Fprintln(cli.out, line)
	}

	fmt.Fprintf(cli.out, "sessions (%d):\n", len(st.Sessions))
	for _, s := range st.Sessions {
		fmt.Fprintf(cli.out, "  #%d at %s [%s]\n", s.ID, s.ScheduledTime.Format("Mon Jan 2 15:04"), s.Status)
	}

	fmt.Fprintf(cli.out, "notifications (%d unread):\n", len(st.Unread))
	for _, n := range st.Unread {
		fmt.Fprintf(cli.out, "  #%d %s: %s\n", n.ID, n.Title, n.Message)
	}
	return nil
}

func (cli *commandLine) browseCmd(args []string) error {
	cmd := newFlagSet("browse")
	uname := cmd.String("username", "", "Filter by username or full name.")
	skill := cmd.String("skill", "", "Filter by skill name.")
	location := cmd.String("location", "", "Filter by location.")
	minRating := cmd.Float64("min-rating", 0, "Minimum rating.")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}

	me, err := client.User(ctx, sess.UserID)
	if err != nil {
		return err
	}
	users, err := client.Users(ctx)
	if err != nil {
		return err
	}

	filter := dashboard.SearchFilter{
		Username:  *uname,
		Skill:     *skill,
		Location:  *location,
		MinRating: *minRating,
	}
	matches := dashboard.FilterUsers(dashboard.BrowsableUsers(users, sess.UserID), filter)
	for _, u := range matches {
		line := fmt.Sprintf("#%d %s (%.1f, %d reviews)", u.ID, u.DisplayName(), u.Rating, u.TotalReviews)
		if names := skillNames(u.OfferedSkills); names != "" {
			line += " teaches: " + names
		}
		s, ok := dashboard.HasSkillMatch(u, me)
		switch {
		case ok:
			line += fmt.Sprintf(" << offers %s, which you want to learn", s.Name)
		case s.Name != "":
			line += fmt.Sprintf(" (try adding %s to your wanted list)", s.Name)
		}
		fmt.Fprintln(cli.out, line)
	}
	if len(matches) == 0 {
		fmt.Fprintln(cli.out, "no users match")
	}
	return nil
}

func (cli *commandLine) respondCmd(args []string) error {
	cmd := newFlagSet("respond")
	id := cmd.Int("id", 0, "The request id.")
	status := cmd.String("status", "", "approved or rejected.")
	message := cmd.String("message", "", "An optional message to the learner.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || (*status != session.StatusApproved && *status != session.StatusRejected) {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}
	svc := cli.dashboardService(client)
	st, err := svc.Load(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if *status == session.StatusApproved {
		err = svc.Approve(ctx, st, *id, *message)
	} else {
		err = svc.Reject(ctx, st, *id, *message)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "request #%d %s\n", *id, *status)
	return nil
}

func (cli *commandLine) cancelCmd(args []string) error {
	cmd := newFlagSet("cancel")
	id := cmd.Int("id", 0, "The request id.")
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
	svc := cli.dashboardService(client)
	st, err := svc.Load(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if err = svc.Cancel(ctx, st, *id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "request #%d cancelled\n", *id)
	return nil
}

func (cli *commandLine) addSkillCmd(args []string) error {
	cmd := newFlagSet("add-skill")
	list := cmd.String("list", "", "offered or wanted.")
	name := cmd.String("name", "", "The skill name.")
	description := cmd.String("description", "", "What you want to get out of it (required for wanted skills).")
	level := cmd.String("level", "", "beginner, intermediate or expert (optional).")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if (*list != "offered" && *list != "wanted") || *name == "" {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}
	svc := cli.dashboardService(client)
	st, err := svc.Load(ctx, sess.UserID)
	if err != nil {
		return err
	}

	skill := user.NewSkill{Name: *name}
	if *description != "" {
		skill.Description = null.StringFrom(*description)
	}
	if *level != "" {
		skill.Level = null.StringFrom(*level)
	}
	if *list == "offered" {
		err = svc.AddOfferedSkill(ctx, st, skill)
	} else {
		err = svc.AddWantedSkill(ctx, st, skill)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "added %q to your %s skills\n", *name, *list)
	return nil
}

func (cli *commandLine) removeSkillCmd(args []string) error {
	cmd := newFlagSet("remove-skill")
	list := cmd.String("list", "", "offered or wanted.")
	id := cmd.Int("id", 0, "The skill id.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if (*list != "offered" && *list != "wanted") || *id <= 0 {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}
	svc := cli.dashboardService(client)
	st, err := svc.Load(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if *list == "offered" {
		err = svc.RemoveOfferedSkill(ctx, st, *id)
	} else {
		err = svc.RemoveWantedSkill(ctx, st, *id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "removed skill #%d from your %s skills\n", *id, *list)
	return nil
}

func (cli *commandLine) readNotificationCmd(args []string) error {
	cmd := newFlagSet("read-notification")
	id := cmd.Int("id", 0, "The notification id.")
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
	svc := cli.dashboardService(client)
	st, err := svc.Load(ctx, sess.UserID)
	if err != nil {
		return err
	}
	svc.MarkNotificationRead(st, *id)
	fmt.Fprintf(cli.out, "notification #%d read\n", *id)
	return nil
}

func skillNames(skills []user.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
