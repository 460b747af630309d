package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"gorm.io/gorm"
)

const seededDays = 21

// Run seeds the database with three weeks of diary entries and a short
// window history. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.DiaryEntry{}, &domain.WindowHistoryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	today := time.Now().UTC().Format(domain.DateLayout)
	start := domain.AddDays(today, -seededDays)

	if err := seedWindowHistory(db, start); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(42))
	if err := seedDiaryEntries(db, start, rng); err != nil {
		return err
	}

	log.Println("Seed completed")
	return nil
}

func seedWindowHistory(db *gorm.DB, start string) error {
	records := []domain.WindowHistoryRecord{
		{EffectiveFrom: start, TargetWake: 7 * 60, WindowMinutes: 360, Rationale: domain.RationaleInitial},
		{EffectiveFrom: domain.AddDays(start, 7), TargetWake: 7 * 60, WindowMinutes: 375, Rationale: domain.RationaleIncrease},
	}

	for _, record := range records {
		if err := db.Where("effective_from = ?", record.EffectiveFrom).FirstOrCreate(&record).Error; err != nil {
			return fmt.Errorf("failed to create window record %s: %w", record.EffectiveFrom, err)
		}
	}
	return nil
}

func seedDiaryEntries(db *gorm.DB, start string, rng *rand.Rand) error {
	clock := func(h, m int) *domain.ClockTime {
		c := domain.ClockTime(h*60 + m)
		return &c
	}

	for i := 0; i < seededDays; i++ {
		logDate := domain.AddDays(start, i)

		bedtimeMin := 22*60 + rng.Intn(90)
		onsetMin := bedtimeMin + 10 + rng.Intn(40)
		wakeMin := (6*60 + rng.Intn(60)) % domain.MinutesPerDay
		riseMin := wakeMin + 5 + rng.Intn(30)

		entry := domain.DiaryEntry{
			LogDate:    logDate,
			Bedtime:    clock(bedtimeMin/60, bedtimeMin%60),
			LightsOff:  clock(bedtimeMin/60, bedtimeMin%60),
			SleepOnset: clock((onsetMin/60)%24, onsetMin%60),
			FinalWake:  clock(wakeMin/60, wakeMin%60),
			RiseTime:   clock(riseMin/60, riseMin%60),
			Awakenings: domain.Intervals{},
			Naps:       domain.Intervals{},
		}

		// Roughly every third night has one awakening within the
		// sleeping span.
		if rng.Intn(3) == 0 {
			awakStart := 2*60 + rng.Intn(120)
			entry.Awakenings = domain.Intervals{{
				Start: domain.ClockTime(awakStart),
				End:   domain.ClockTime(awakStart + 10 + rng.Intn(30)),
			}}
		}

		// Occasional early-afternoon nap.
		if rng.Intn(4) == 0 {
			napStart := 13*60 + rng.Intn(120)
			entry.Naps = domain.Intervals{{
				Start: domain.ClockTime(napStart),
				End:   domain.ClockTime(napStart + 20 + rng.Intn(40)),
			}}
		}

		// Leave a couple of incomplete nights in the data set.
		if i%10 == 9 {
			entry.SleepOnset = nil
			entry.FinalWake = nil
		}

		if err := db.Where("log_date = ?", logDate).FirstOrCreate(&entry).Error; err != nil {
			return fmt.Errorf("failed to create diary entry %s: %w", logDate, err)
		}
	}
	return nil
}
