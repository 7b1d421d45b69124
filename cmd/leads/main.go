// jobboard-leads
//
// Broad manager-level search. Fetches the leads grid, drops repeated URLs,
// keeps titles naming both an L&D topic and a seniority level, ranks them
// by match score and writes broad_training_leads.csv. Nothing is stored.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"ldexchange/jobboard/internal/config"
	"ldexchange/jobboard/internal/leads"
	"ldexchange/jobboard/internal/scraper"
	"ldexchange/jobboard/internal/ui"
)

func main() {
	out := flag.String("out", leads.OutputFile, "CSV output path")
	top := flag.Int("top", 10, "how many leads to print")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[leads] Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grid := cfg.Leads
	pterm.DefaultHeader.WithFullWidth().Println("Broad search job scraper")
	pterm.Info.Printfln("Search terms: %d · Locations: %d · Total searches: %d",
		len(grid.Terms), len(grid.Locations), len(grid.Pairs()))

	finder := leads.NewFinder(scraper.NewAdzunaFetcher(cfg.AdzunaAppID, cfg.AdzunaAppKey), grid)
	bar := pb.StartNew(len(grid.Pairs()))
	finder.Progress = func(done, _ int) { bar.SetCurrent(int64(done)) }

	res, err := finder.Find(ctx)
	bar.Finish()
	if err != nil {
		log.Fatalf("[leads] Search aborted: %v", err)
	}
	log.Printf("[leads] %s", res)

	if res.Raw == 0 {
		pterm.Warning.Println("No jobs were found. Check the search parameters and API credentials.")
		return
	}
	if err := leads.WriteCSVFile(*out, res.Leads); err != nil {
		log.Fatalf("[leads] %v", err)
	}
	pterm.Success.Printfln("Saved %d leads to %s", len(res.Leads), *out)

	if err := ui.RenderLeads(res, leads.Top(res.Leads, *top)); err != nil {
		log.Printf("[leads] Render: %v", err)
	}
}
