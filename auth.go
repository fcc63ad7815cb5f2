package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/pflag"

	"github.com/toniov/gcal-cli/oauth2gcp"
)

func generateURL(fs *pflag.FlagSet, parse func() (args []string, usage func() error, err error)) error {
	var openBrowser bool
	fs.BoolVarP(&openBrowser, "open", "o", false, "open the URL in a browser")

	args, usage, err := parse()
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return usage()
	}

	a, err := setup()
	if err != nil {
		return err
	}
	oc, err := a.oauthConfig()
	if err != nil {
		return err
	}

	authURL := oauth2gcp.AuthURL(oc, uuid.NewString())
	fmt.Println(authURL)
	if openBrowser {
		if err := open.Run(authURL); err != nil {
			log.Warnf("unable to open browser: %v", err)
		}
	}
	return nil
}

func storeToken(usage func() error, args []string) error {
	if len(args) != 1 {
		return usage()
	}

	a, err := setup()
	if err != nil {
		return err
	}
	oc, err := a.oauthConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, done, err := a.tokenStore(ctx)
	if err != nil {
		return err
	}
	defer done()

	if _, err := oauth2gcp.Exchange(ctx, oc, store, args[0]); err != nil {
		return err
	}
	fmt.Printf("Token stored in %s\n", a.conf.Token.Path)
	return nil
}

func enableAPI(usage func() error, args []string) error {
	if len(args) != 0 {
		return usage()
	}

	a, err := setup()
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, done, err := a.calendarService(ctx)
	if err != nil {
		return err
	}
	defer done()

	items, err := svc.Calendars(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Println(item.Summary)
	}
	return nil
}
