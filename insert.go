package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"google.golang.org/api/calendar/v3"

	"github.com/toniov/gcal-cli/eventtime"
	"github.com/toniov/gcal-cli/gcalendar"
)

func insertEvent(fs *pflag.FlagSet, parse func() (args []string, usage func() error, err error)) error {
	var in eventtime.Input
	var details gcalendar.Details
	fs.StringVarP(&in.Summary, "summary", "s", "", "event summary")
	fs.StringVarP(&in.Date, "date", "d", "", "event date (YYYY-MM-DD)")
	fs.StringVarP(&in.Time, "time", "t", "", "start time (HH:MM); all-day event when omitted")
	fs.StringVarP(&in.Duration, "duration", "D", "", "duration such as 30m, 2h or 3d")
	fs.StringVar(&details.Description, "description", "", "event description")
	fs.StringVar(&details.Location, "location", "", "event location")

	args, usage, err := parse()
	if err != nil {
		return err
	}
	switch len(args) {
	case 0:
	case 1:
		in.Text = args[0]
	default:
		return usage()
	}

	a, err := setup()
	if err != nil {
		return err
	}

	ev, err := a.event(in)
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, done, err := a.calendarService(ctx)
	if err != nil {
		return err
	}
	defer done()

	inserted, err := svc.Insert(ctx, gcalendar.NewEvent(ev, details))
	if err != nil {
		return err
	}

	printInserted(os.Stdout, inserted)
	return nil
}

func printInserted(out io.Writer, ev *calendar.Event) {
	summary := ev.Summary
	if summary == "" {
		summary = "no-summary"
	}
	fmt.Fprintf(out, "%s: %s ~ %s\n", summary, dateOrDateTime(ev.Start), dateOrDateTime(ev.End))
	if ev.HtmlLink != "" {
		fmt.Fprintln(out, ev.HtmlLink)
	}
}

func dateOrDateTime(edt *calendar.EventDateTime) string {
	if edt == nil {
		return ""
	}
	if edt.Date != "" {
		return edt.Date
	}
	return edt.DateTime
}
