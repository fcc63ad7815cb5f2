package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"google.golang.org/api/calendar/v3"

	"github.com/toniov/gcal-cli/config"
	"github.com/toniov/gcal-cli/gcalendar"
	"github.com/toniov/gcal-cli/term"
)

const summaryWidth = 60

func keywordList() string {
	var phrases []string
	for _, k := range term.Keywords() {
		phrases = append(phrases, strconv.Quote(k.String()))
	}
	return strings.Join(phrases, ", ")
}

func truncate(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}

	return runewidth.Truncate(s, w, "...")
}

func listEvents(fs *pflag.FlagSet, parse func() (args []string, usage func() error, err error)) error {
	var from, to string
	var showID bool
	fs.StringVarP(&from, "from", "f", "", "start of the window (date or datetime)")
	fs.StringVarP(&to, "to", "t", "", "end of the window (date or datetime)")
	fs.BoolVarP(&showID, "show-id", "i", false, "show event ids")

	args, usage, err := parse()
	if err != nil {
		return err
	}

	var arg string
	switch len(args) {
	case 0:
	case 1:
		arg = args[0]
	default:
		return usage()
	}

	a, err := setup()
	if err != nil {
		return err
	}

	w, err := a.window(arg, from, to)
	if err != nil {
		return err
	}
	log.Debugf("resolved %q to %s", arg, w)

	ctx := context.Background()
	svc, done, err := a.calendarService(ctx)
	if err != nil {
		return err
	}
	defer done()
	log.Debugf("listing calendar %s", svc.CalendarID())

	items, err := svc.List(ctx, w)
	if err != nil {
		return err
	}

	renderEvents(os.Stdout, w, items, a.conf.Location(), a.conf.List, showID)
	return nil
}

func renderEvents(out io.Writer, w term.Window, items []*calendar.Event, loc *time.Location,
	formats config.List, showID bool) {

	if len(items) == 0 {
		fmt.Fprintf(out, "No upcoming events found (%s)\n", w)
		return
	}
	fmt.Fprintf(out, "Upcoming events (%s)\n", w)

	tw := tablewriter.NewWriter(out)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetBorder(false)
	tw.SetTablePadding(" ")
	tw.SetNoWhiteSpace(true)

	for _, item := range items {
		start, allDay, err := gcalendar.Start(item, loc)
		if err != nil {
			log.Warnf("unable to parse start of %s: %v", item.Id, err)
			continue
		}

		layout := formats.DateTimeFormat
		if allDay {
			layout = formats.DateFormat
		}

		row := []string{
			" " + start.Format(layout),
			"-",
			truncate(item.Summary, summaryWidth),
		}
		if showID {
			row = append(row, "("+item.Id+")")
		}
		tw.Append(row)
	}
	tw.Render()
}
