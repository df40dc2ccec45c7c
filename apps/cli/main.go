package main

import (
	"log"
	"os"

	"github.com/trezcool/skillshare/api"
	"github.com/trezcool/skillshare/core"
	clipsvc "github.com/trezcool/skillshare/services/clipboard"
	idsvc "github.com/trezcool/skillshare/services/identity"
	logsvc "github.com/trezcool/skillshare/services/logger"
	storesvc "github.com/trezcool/skillshare/services/store"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "SKILLSHARE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	wd, err := os.Getwd()
	if err != nil {
		std.Fatal(err)
	}
	conf, err := core.NewConfig(wd)
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	store, err := storesvc.NewFileStore(conf.SessionStorePath)
	if err != nil {
		std.Fatal(err)
	}

	cli := commandLine{
		conf:     conf,
		client:   api.NewClient(conf, logger),
		store:    store,
		logger:   logger,
		clip:     &clipsvc.Console{Out: os.Stdout},
		opener:   execOpener{},
		provider: idsvc.NewGoogleProvider(conf, promptAuthCode, logger),
		out:      os.Stdout,
		in:       os.Stdin,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
