package main

import (
	"io"
	"log"
	"os"

	cli "github.com/jawher/mow.cli"
	"github.com/jmoiron/sqlx"

	"pricewatch/internal/config"
	"pricewatch/internal/fetch"
	"pricewatch/internal/http/handlers"
	applog "pricewatch/internal/log"
	"pricewatch/internal/notify"
	"pricewatch/internal/repos"
	"pricewatch/internal/services"
	"pricewatch/internal/sources"
)

func main() {
	app := cli.App("pricewatch", "Extract product offers from shop pages and track URLs")

	var cfg config.Config
	app.Before = func() {
		cfg = config.MustLoad()
		setupLogFile(cfg.LogFile)
	}

	app.Command("migrate", "create the database schema", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			db := mustOpenDB(cfg)
			defer db.Close()
			if err := repos.Migrate(db); err != nil {
				log.Fatal(err)
			}
			applog.Info(nil, "migrate.done", map[string]any{"driver": cfg.DBDriver})
		}
	})

	app.Command("ingest", "fetch every listed URL once and load its products and offers", func(cmd *cli.Cmd) {
		file := cmd.StringOpt("f file", "", "CSV of URLs, first column (defaults to URL_FILE)")
		cmd.Action = func() {
			path := cfg.URLFile
			if *file != "" {
				path = *file
			}
			urls, err := sources.ReadURLs(path)
			if err != nil {
				log.Fatal(err)
			}

			db := mustOpenDB(cfg)
			defer db.Close()
			ingest(db, fetch.New(cfg.UserAgent), urls)
		}
	})

	app.Command("serve", "run the URL tracking form", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			db := mustOpenDB(cfg)
			defer db.Close()
			web := handlers.NewApp(handlers.NewDeps(db))
			log.Fatal(web.Listen(":" + cfg.Port))
		}
	})

	app.Command("notify", "send an SMS through Twilio", func(cmd *cli.Cmd) {
		cmd.Spec = "TO MESSAGE"
		to := cmd.StringArg("TO", "", "recipient phone number, E.164")
		msg := cmd.StringArg("MESSAGE", "", "text to send")
		cmd.Action = func() {
			if err := notify.New(cfg.Twilio).Send(*to, *msg); err != nil {
				log.Fatal(err)
			}
		}
	})

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingest(db *sqlx.DB, f services.Fetcher, urls []string) services.Summary {
	loader := services.NewLoaderService(repos.NewProductRepo(db), repos.NewOfferRepo(db))
	sum := services.NewPipelineService(f, loader).Run(urls)
	applog.Info(nil, "ingest.summary", map[string]any{"summary": sum})
	return sum
}

func mustOpenDB(cfg config.Config) *sqlx.DB {
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	return db
}

// Optional file logging
func setupLogFile(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
}
