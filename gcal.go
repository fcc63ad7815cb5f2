package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"

	"github.com/toniov/gcal-cli/clock"
	"github.com/toniov/gcal-cli/config"
	"github.com/toniov/gcal-cli/eventtime"
	"github.com/toniov/gcal-cli/gcalendar"
	"github.com/toniov/gcal-cli/nlp"
	"github.com/toniov/gcal-cli/oauth2gcp"
	"github.com/toniov/gcal-cli/term"
	"github.com/toniov/gcal-cli/tool"
)

var (
	configPath string
	debug      bool

	gcal = tool.Tool{
		Flags: func(fs *pflag.FlagSet) {
			fs.StringVarP(&configPath, "config", "C", "", "config file (.yaml, .json or .toml)")
			fs.BoolVar(&debug, "debug", false, "debug logging and detailed errors")
		},
		Runners: map[string]tool.ToolRunner{
			"list": {
				Syntax: "list [<term> | [-f <date | datetime>] [-t <date | datetime>]] [-i]",
				Usage:  "list events; today's events when run without arguments\n    \t<term> is YYYY, YYYYMM, YYYYMMDD, a phrase or one of: " + keywordList(),
				Runner: tool.FlagsCommand(listEvents),
			},
			"insert": {
				Syntax: "insert <text> | -s <summary> -d <date> [-t <time>] [-D <duration>]",
				Usage:  "insert an event described in natural language or by -s and -d",
				Runner: tool.FlagsCommand(insertEvent),
			},
			"bulk": {
				Syntax: "bulk -e <file>",
				Usage:  "insert every event in a .json or .yaml file",
				Runner: tool.FlagsCommand(bulkInsert),
			},
			"generateUrl": {
				Syntax: "generateUrl [-o]",
				Usage:  "print the consent page URL; -o opens it in a browser",
				Runner: tool.FlagsCommand(generateURL),
			},
			"storeToken": {
				Syntax: "storeToken <code>",
				Usage:  "exchange a consent page code for a token and store it",
				Runner: tool.Command(storeToken),
			},
			"enable": {
				Syntax: "enable",
				Usage:  "list calendars, to check that the API is enabled",
				Runner: tool.Command(enableAPI),
			},
		},
	}
)

func init() {
	gcal.Runners["help"] = tool.ToolRunner{
		Syntax: "help",
		Usage:  "show this help",
		Runner: tool.FlagsCommand(func(fs *pflag.FlagSet, parse func() ([]string, func() error, error)) error {
			gcal.PrintUsage(os.Args[0], fs)
			return nil
		}),
	}
}

// app is everything a command needs, built once from the loaded config.
type app struct {
	conf     config.Config
	clock    clock.Clock
	resolver *term.Resolver
	builder  *eventtime.Builder
}

func setup() (*app, error) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	path, required := configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	conf, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	parser := nlp.NewWhen()
	return &app{
		conf:     conf,
		clock:    clock.System{Location: conf.Location()},
		resolver: term.NewResolver(parser),
		builder:  eventtime.NewBuilder(parser, conf.EventDuration, conf.Location()),
	}, nil
}

// window resolves a list argument, or the --from/--to bounds, against now.
func (a *app) window(arg, from, to string) (term.Window, error) {
	return a.resolver.Resolve(term.Classify(arg, from, to), a.clock.Now())
}

func (a *app) event(in eventtime.Input) (eventtime.Event, error) {
	return a.builder.Build(in, a.clock.Now())
}

func (a *app) oauthConfig() (*oauth2.Config, error) {
	return oauth2gcp.LoadConfig(a.conf.Credentials, calendar.CalendarScope)
}

// tokenStore opens the configured store; the returned func releases it.
func (a *app) tokenStore(ctx context.Context) (oauth2gcp.TokenStore, func(), error) {
	switch a.conf.Token.Store {
	case config.TokenStoreSQLite:
		store, err := oauth2gcp.OpenSQLiteStore(ctx, a.conf.Token.Path, a.conf.Token.Account)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return oauth2gcp.FileStore{Path: a.conf.Token.Path}, func() {}, nil
	}
}

func (a *app) calendarService(ctx context.Context) (*gcalendar.Service, func(), error) {
	oc, err := a.oauthConfig()
	if err != nil {
		return nil, nil, err
	}
	store, closeStore, err := a.tokenStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	client, err := oauth2gcp.GetClient(ctx, oc, store, true)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	svc, err := gcalendar.New(ctx, client, a.conf.CalendarID, a.conf.ListOrder)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return svc, closeStore, nil
}

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return 0
	case tool.IsUsage(err):
		fmt.Fprintln(os.Stderr, err)
		return 2
	case debug:
		log.Errorf("%+v", err)
		return 1
	default:
		log.Error(err)
		return 1
	}
}

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.SortFlags = true

	os.Exit(exitCode(gcal.Run(os.Args[0], fs, os.Args[1:])))
}
