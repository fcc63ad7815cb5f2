package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/toniov/gcal-cli/bulk"
	"github.com/toniov/gcal-cli/gcalendar"
)

func bulkInsert(fs *pflag.FlagSet, parse func() (args []string, usage func() error, err error)) error {
	var eventsPath string
	fs.StringVarP(&eventsPath, "events", "e", "", "file of events (.json, .yaml or .yml)")

	args, usage, err := parse()
	if err != nil {
		return err
	}
	if len(args) != 0 || eventsPath == "" {
		return usage()
	}

	a, err := setup()
	if err != nil {
		return err
	}

	entries, err := bulk.LoadFile(eventsPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, done, err := a.calendarService(ctx)
	if err != nil {
		return err
	}
	defer done()

	now := a.clock.Now()
	opts := bulk.Options{Concurrency: a.conf.Bulk.Concurrency, Retries: a.conf.Bulk.Retries}
	outcomes := bulk.Run(ctx, entries, opts, func(ctx context.Context, e bulk.Entry) (*calendar.Event, error) {
		ev, err := a.builder.Build(e.Input(), now)
		if err != nil {
			return nil, bulk.Permanent(err)
		}
		inserted, err := svc.Insert(ctx, gcalendar.NewEvent(ev, gcalendar.Details{
			Description: e.Description,
			Location:    e.Location,
		}))
		if err != nil && !retryable(err) {
			return nil, bulk.Permanent(err)
		}
		return inserted, err
	})

	return reportBulk(os.Stdout, entries, outcomes, a.conf.Bulk.ResultFields)
}

// retryable reports whether an API error may succeed on a later attempt.
func retryable(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return true
	}
	return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
}

func reportBulk(out io.Writer, entries []bulk.Entry, outcomes []bulk.Outcome[*calendar.Event], fields []string) error {
	ok, failed := bulk.Split(outcomes)
	for _, o := range ok {
		fmt.Fprintln(out, "Event inserted")
		for _, field := range fields {
			if v := resultField(o.Value, field); v != "" {
				fmt.Fprintf(out, " %s: %s\n", field, v)
			}
		}
	}

	for _, o := range failed {
		log.Errorf("error inserting event %d (%s): %v", o.Index+1, entryName(entries[o.Index]), o.Err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d events could not be inserted", len(failed), len(outcomes))
	}
	return nil
}

func entryName(e bulk.Entry) string {
	if e.Summary != "" {
		return e.Summary
	}
	return e.Text
}

func resultField(ev *calendar.Event, field string) string {
	if ev == nil {
		return ""
	}
	switch field {
	case "id":
		return ev.Id
	case "summary":
		return ev.Summary
	case "htmlLink":
		return ev.HtmlLink
	case "status":
		return ev.Status
	case "location":
		return ev.Location
	case "description":
		return ev.Description
	case "created":
		return ev.Created
	case "updated":
		return ev.Updated
	case "start":
		return dateOrDateTime(ev.Start)
	case "end":
		return dateOrDateTime(ev.End)
	default:
		return ""
	}
}
