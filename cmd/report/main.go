// Command report prints the rolling sleep report and the current
// window proposal to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cbti-tools/sleep-diary/internal/config"
	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/ledger"
	"github.com/cbti-tools/sleep-diary/internal/repository"
	"github.com/cbti-tools/sleep-diary/internal/service"
	"github.com/fatih/color"
)

func main() {
	days := flag.Int("days", 0, "rolling window length in days (default from config)")
	today := flag.String("date", "", "report date (YYYY-MM-DD, default today)")
	flag.Parse()

	cfg := config.Load()
	if *days <= 0 {
		*days = cfg.RollingWindowDays
	}
	if *today == "" {
		*today = time.Now().Format(domain.DateLayout)
	}
	if !domain.ValidDate(*today) {
		log.Fatalf("Invalid date %q, expected YYYY-MM-DD", *today)
	}

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	diaryRepo := repository.NewDiaryRepository(db)
	windowRepo := repository.NewWindowRepository(db)

	records, err := windowRepo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load window history: %v", err)
	}
	windowLedger, err := ledger.New(records)
	if err != nil {
		log.Fatalf("Failed to build window ledger: %v", err)
	}

	metrics := service.NewMetricsService(diaryRepo, windowLedger)
	reportDate := *today

	rolling, err := metrics.Rolling(ctx, reportDate, *days)
	if err != nil {
		log.Fatalf("Failed to compute rolling report: %v", err)
	}

	nights, err := metrics.Nights(ctx, rolling.From, reportDate)
	if err != nil {
		log.Fatalf("Failed to compute night metrics: %v", err)
	}

	printNights(nights)
	printRolling(rolling)

	active, gap := windowLedger.ActiveOn(reportDate)
	if gap {
		color.Yellow("warning: %s precedes the earliest window record, using the initial plan", reportDate)
	}
	proposal := service.ProposeAdjustment(*rolling, active.Window())
	printProposal(proposal)
}

func printNights(nights []domain.NightMetrics) {
	header := color.New(color.Bold)
	header.Println("Nights")
	if len(nights) == 0 {
		fmt.Println("  no entries in window")
		return
	}

	for _, n := range nights {
		if n.Incomplete {
			color.New(color.Faint).Printf("  %s  incomplete\n", n.LogDate)
			continue
		}
		line := fmt.Sprintf("  %s  TIB %3dm  WASO %3dm  TST %3dm  SE %5.1f%%",
			n.LogDate, n.TIBMinutes, n.WASOMinutes, n.TSTMinutes, n.SE)
		switch {
		case n.SE > 85:
			color.Green("%s", line)
		case n.SE < 80:
			color.Red("%s", line)
		default:
			fmt.Println(line)
		}
	}
}

func printRolling(r *domain.RollingReport) {
	header := color.New(color.Bold)
	header.Printf("\nRolling %d-day window (%s to %s)\n", r.WindowDays, r.From, r.To)

	if r.Insufficient {
		color.Yellow("  no complete nights, average unavailable")
	} else {
		fmt.Printf("  average SE %.1f%% over %d complete night(s)\n", r.AverageSE, r.NightsCounted)
	}

	if r.Naps.Category != domain.NapNone {
		fmt.Printf("  naps: %s (%d day(s), %dm total)\n",
			r.Naps.Category, r.Naps.DaysWithNaps, r.Naps.TotalNapMinutes)
	}

	if r.Adherence.NightsChecked > 0 {
		fmt.Printf("  window kept: %d/%d night(s) within %dm (%s)\n",
			r.Adherence.AdherentNights, r.Adherence.NightsChecked,
			service.AdherenceToleranceMinutes, r.Adherence.Category)
	}
}

func printProposal(p domain.WindowProposal) {
	header := color.New(color.Bold)
	header.Println("\nWindow proposal")
	fmt.Printf("  current:  wake %s, %dm window (bed %s)\n",
		p.Current.TargetWake, p.Current.WindowMinutes, p.Current.PrescribedBedtime())

	if p.Changed {
		color.Cyan("  proposed: wake %s, %dm window (bed %s)",
			p.Proposed.TargetWake, p.Proposed.WindowMinutes, p.ProposedBedtime)
	}
	fmt.Printf("  rationale: %s\n", p.Rationale)
}
