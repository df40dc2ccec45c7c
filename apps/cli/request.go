package main

import (
	"context"
	"fmt"

	"github.com/trezcool/skillshare/core/schedule"
	"github.com/trezcool/skillshare/core/session"
)

func (cli *commandLine) requestCmd(args []string) error {
	cmd := newFlagSet("request")
	skillID := cmd.Int("skill-id", 0, "A skill id from your learning list.")
	teacherID := cmd.Int("teacher-id", 0, "The teacher's user id.")
	date := cmd.String("date", "", "The session date, YYYY-MM-DD.")
	timeOfDay := cmd.String("time", "", "The session time, HH:MM.")
	duration := cmd.Int("duration", 60, "Duration in minutes.")
	sessType := cmd.String("type", session.TypeVirtual, "virtual or in_person.")
	location := cmd.String("location", "", "Where to meet (in-person only).")
	notes := cmd.String("notes", "", "Anything the teacher should know.")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	sess, client, err := cli.session()
	if err != nil {
		return err
	}

	viewer, err := client.User(ctx, sess.UserID)
	if err != nil {
		return err
	}
	directory, err := client.Users(ctx)
	if err != nil {
		return err
	}

	form := schedule.Form{
		SkillID:     *skillID,
		TeacherID:   *teacherID,
		Date:        *date,
		TimeOfDay:   *timeOfDay,
		Duration:    *duration,
		SessionType: *sessType,
		Location:    *location,
		Notes:       *notes,
	}
	req, err := cli.scheduleService(client).Submit(ctx, viewer, directory, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "request #%d sent, waiting for the teacher's answer\n", req.ID)
	return nil
}
