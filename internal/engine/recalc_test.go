package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/gorm"
)

func testPeriod(id uint, start, end time.Time, rules models.ScoringRules) models.ChallengePeriod {
	return models.ChallengePeriod{
		Model:        gorm.Model{ID: id},
		StartDate:    models.DateOnly(start),
		EndDate:      models.DateOnly(end),
		BookID:       id,
		ScoringRules: rules,
	}
}

func TestRecalculateSetupIncomplete(t *testing.T) {
	t.Run("NoPeriods", func(t *testing.T) {
		db := setupDB(t)
		seedSettings(t, db)
		e := newTestEngine(db, &fakeSource{}, day(2026, 1, 10))
		if err := e.Recalculate(context.Background()); !errors.Is(err, ErrSetupIncomplete) {
			t.Errorf("expected ErrSetupIncomplete, got %v", err)
		}
	})

	t.Run("NoSettings", func(t *testing.T) {
		db := setupDB(t)
		seedPeriod(t, db, day(2026, 1, 1), day(2026, 1, 31), models.DefaultScoringRules())
		e := newTestEngine(db, &fakeSource{}, day(2026, 1, 10))
		if err := e.Recalculate(context.Background()); !errors.Is(err, ErrSetupIncomplete) {
			t.Errorf("expected ErrSetupIncomplete, got %v", err)
		}
	})
}

func TestRecalculateDeterministic(t *testing.T) {
	db := setupDB(t)
	seedSettings(t, db)
	period := seedPeriod(t, db, day(2026, 1, 1), day(2026, 1, 31), models.DefaultScoringRules())
	member := seedMember(t, db, "خالد")

	db.Create(&models.ReadingLog{
		Timestamp: "ts-1", MemberID: member.ID, SubmissionDate: day(2026, 1, 5),
		CommonBookMinutes: 95, OtherBookMinutes: 30, SubmittedCommonQuote: 1,
	})
	db.Create(&models.Achievement{
		MemberID: member.ID, PeriodID: &period.ID, Type: models.AttendedDiscussion, Date: day(2026, 1, 7),
	})

	e := newTestEngine(db, &fakeSource{}, day(2026, 1, 10))

	fetch := func() []models.MemberStats {
		var stats []models.MemberStats
		db.Order("member_id").Find(&stats)
		for i := range stats {
			stats[i].Model = gorm.Model{}
		}
		return stats
	}

	if err := e.Recalculate(context.Background()); err != nil {
		t.Fatalf("first Recalculate returned error: %v", err)
	}
	first := fetch()

	if err := e.Recalculate(context.Background()); err != nil {
		t.Fatalf("second Recalculate returned error: %v", err)
	}
	second := fetch()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("recalculation is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRecalculateReplacesDerivedState(t *testing.T) {
	db := setupDB(t)
	seedSettings(t, db)
	seedPeriod(t, db, day(2026, 1, 1), day(2026, 1, 31), models.DefaultScoringRules())
	member := seedMember(t, db, "خالد")

	// Stale derived rows from an earlier (possibly buggy) run.
	db.Create(&models.MemberStats{MemberID: member.ID, TotalPoints: 9999})
	db.Create(&models.MemberStats{MemberID: 777, TotalPoints: 123}) // orphan

	e := newTestEngine(db, &fakeSource{}, day(2026, 2, 10))
	if err := e.Recalculate(context.Background()); err != nil {
		t.Fatalf("Recalculate returned error: %v", err)
	}

	var stats []models.MemberStats
	db.Find(&stats)
	if len(stats) != 1 {
		t.Fatalf("expected exactly 1 stats row after rebuild, got %d", len(stats))
	}
	if stats[0].MemberID != member.ID || stats[0].TotalPoints != 0 {
		t.Errorf("expected a fresh zero row for member %d, got %+v", member.ID, stats[0])
	}
}

func TestComputeStatsPeriodScopedRules(t *testing.T) {
	periodA := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), models.ScoringRules{MinutesPerPointCommon: 10})
	periodB := testPeriod(2, day(2026, 2, 1), day(2026, 2, 28), models.ScoringRules{MinutesPerPointCommon: 5})
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "خالد", Active: true}

	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 1, 15), CommonBookMinutes: 100},
		{MemberID: 1, SubmissionDate: day(2026, 2, 10), CommonBookMinutes: 100},
	}

	// Today is past both periods, so no penalty noise.
	stats, _ := ComputeStats([]models.Member{member}, logs, nil, []models.ChallengePeriod{periodA, periodB}, day(2026, 3, 15))
	if len(stats) != 1 {
		t.Fatalf("expected 1 stats row, got %d", len(stats))
	}

	// 100/10 under period A plus 100/5 under period B.
	if stats[0].TotalPoints != 30 {
		t.Errorf("expected 30 points, got %d", stats[0].TotalPoints)
	}
	if stats[0].TotalReadingMinutesCommon != 200 {
		t.Errorf("expected 200 common minutes, got %d", stats[0].TotalReadingMinutesCommon)
	}
}

func TestComputeStatsOtherBookCap(t *testing.T) {
	rules := models.ScoringRules{FinishOtherBookPoints: 25}
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), rules)
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "خالد", Active: true}
	periodID := period.ID

	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 1, 5), OtherBookMinutes: 200},
		{MemberID: 1, SubmissionDate: day(2026, 1, 6), OtherBookMinutes: 150},
	}
	achievements := []models.Achievement{
		{Model: gorm.Model{ID: 1}, MemberID: 1, PeriodID: &periodID, Type: models.FinishedOtherBook, Date: day(2026, 1, 5)},
		{Model: gorm.Model{ID: 2}, MemberID: 1, PeriodID: &periodID, Type: models.FinishedOtherBook, Date: day(2026, 1, 6)},
		{Model: gorm.Model{ID: 3}, MemberID: 1, PeriodID: &periodID, Type: models.FinishedOtherBook, Date: day(2026, 1, 7)},
	}

	stats, _ := ComputeStats([]models.Member{member}, logs, achievements, []models.ChallengePeriod{period}, day(2026, 2, 15))

	// 350 minutes supports only 350/180 = 1 finished book.
	if stats[0].TotalOtherBooksRead != 1 {
		t.Errorf("expected 1 credited other book, got %d", stats[0].TotalOtherBooksRead)
	}
	if stats[0].TotalPoints != 25 {
		t.Errorf("expected 25 points (one credited finish), got %d", stats[0].TotalPoints)
	}
}

func TestComputeStatsNoLogPenaltyBoundary(t *testing.T) {
	rules := models.ScoringRules{
		NoLogDaysTrigger:       3,
		NoLogInitialPenalty:    10,
		NoLogSubsequentPenalty: 2,
		NoQuoteDaysTrigger:     999,
	}
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), rules)
	members := []models.Member{
		{Model: gorm.Model{ID: 1}, Name: "بطيء", Active: true},
		{Model: gorm.Model{ID: 2}, Name: "نشيط", Active: true},
	}
	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 1, 15)}, // 5 days before today
		{MemberID: 2, SubmissionDate: day(2026, 1, 18)}, // 2 days before today
	}

	stats, _ := ComputeStats(members, logs, nil, []models.ChallengePeriod{period}, day(2026, 1, 20))

	if stats[0].TotalPoints != -14 {
		t.Errorf("expected -14 points after 10 + (5-3)*2 penalty, got %d", stats[0].TotalPoints)
	}
	if stats[0].LogStreak != 5 {
		t.Errorf("expected log streak 5, got %d", stats[0].LogStreak)
	}
	if stats[1].TotalPoints != 0 {
		t.Errorf("expected no penalty below the trigger, got %d points", stats[1].TotalPoints)
	}
	if stats[1].LogStreak != 0 {
		t.Errorf("expected log streak 0 below the trigger, got %d", stats[1].LogStreak)
	}
}

func TestComputeStatsNoQuotePenalty(t *testing.T) {
	rules := models.ScoringRules{
		NoLogDaysTrigger:         999,
		NoQuoteDaysTrigger:       3,
		NoQuoteInitialPenalty:    5,
		NoQuoteSubsequentPenalty: 1,
	}
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), rules)
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "خالد", Active: true}

	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 1, 16), SubmittedCommonQuote: 1}, // last quote, 4 days ago
		{MemberID: 1, SubmissionDate: day(2026, 1, 19)},                          // recent log, no quote
	}

	stats, _ := ComputeStats([]models.Member{member}, logs, nil, []models.ChallengePeriod{period}, day(2026, 1, 20))

	if stats[0].TotalPoints != -6 {
		t.Errorf("expected -6 points after 5 + (4-3)*1 quote penalty, got %d", stats[0].TotalPoints)
	}
	if stats[0].QuoteStreak != 4 {
		t.Errorf("expected quote streak 4, got %d", stats[0].QuoteStreak)
	}
	if stats[0].LastQuoteDate == nil || !stats[0].LastQuoteDate.Equal(day(2026, 1, 16)) {
		t.Errorf("expected last quote date 2026-01-16, got %v", stats[0].LastQuoteDate)
	}
}

func TestComputeStatsPenaltyAnchorsAtPeriodStartWithoutLogs(t *testing.T) {
	rules := models.ScoringRules{
		NoLogDaysTrigger:       3,
		NoLogInitialPenalty:    10,
		NoLogSubsequentPenalty: 2,
		NoQuoteDaysTrigger:     999,
	}
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), rules)
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "غائب", Active: true}

	// 6 days into the period with no log at all.
	stats, _ := ComputeStats([]models.Member{member}, nil, nil, []models.ChallengePeriod{period}, day(2026, 1, 7))

	if stats[0].TotalPoints != -16 {
		t.Errorf("expected -16 points (10 + (6-3)*2), got %d", stats[0].TotalPoints)
	}
}

func TestComputeStatsZeroActivityMember(t *testing.T) {
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), models.DefaultScoringRules())
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "جديد", Active: true}

	// No active period today, so no penalties either.
	stats, _ := ComputeStats([]models.Member{member}, nil, nil, []models.ChallengePeriod{period}, day(2026, 2, 15))

	if len(stats) != 1 {
		t.Fatalf("expected a stats row for the zero-activity member, got %d rows", len(stats))
	}
	ms := stats[0]
	if ms.TotalPoints != 0 || ms.TotalReadingMinutesCommon != 0 || ms.TotalReadingMinutesOther != 0 ||
		ms.TotalQuotesSubmitted != 0 || ms.MeetingsAttended != 0 ||
		ms.TotalCommonBooksRead != 0 || ms.TotalOtherBooksRead != 0 {
		t.Errorf("expected all-zero stats, got %+v", ms)
	}
	if ms.LastLogDate != nil || ms.LastQuoteDate != nil {
		t.Errorf("expected unset last dates, got %v / %v", ms.LastLogDate, ms.LastQuoteDate)
	}
}

func TestComputeStatsZeroMinutesPerPoint(t *testing.T) {
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), models.ScoringRules{})
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "خالد", Active: true}
	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 1, 5), CommonBookMinutes: 100, OtherBookMinutes: 50},
	}

	stats, _ := ComputeStats([]models.Member{member}, logs, nil, []models.ChallengePeriod{period}, day(2026, 2, 15))

	if stats[0].TotalPoints != 0 {
		t.Errorf("expected 0 points with zero minutes-per-point, got %d", stats[0].TotalPoints)
	}
	if stats[0].TotalReadingMinutesCommon != 100 || stats[0].TotalReadingMinutesOther != 50 {
		t.Errorf("expected minutes still counted, got %+v", stats[0])
	}
}

func TestComputeStatsLogOutsideAnyPeriod(t *testing.T) {
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), models.ScoringRules{MinutesPerPointCommon: 10})
	member := models.Member{Model: gorm.Model{ID: 1}, Name: "خالد", Active: true}
	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 2, 5), CommonBookMinutes: 100}, // no period
	}

	stats, _ := ComputeStats([]models.Member{member}, logs, nil, []models.ChallengePeriod{period}, day(2026, 3, 15))

	if stats[0].TotalPoints != 0 {
		t.Errorf("expected 0 points for an out-of-period log, got %d", stats[0].TotalPoints)
	}
	if stats[0].TotalReadingMinutesCommon != 100 {
		t.Errorf("expected minutes counted toward totals, got %d", stats[0].TotalReadingMinutesCommon)
	}
}

func TestComputeStatsGroupAggregates(t *testing.T) {
	period := testPeriod(1, day(2026, 1, 1), day(2026, 1, 31), models.DefaultScoringRules())
	members := []models.Member{
		{Model: gorm.Model{ID: 1}, Name: "خالد", Active: true},
		{Model: gorm.Model{ID: 2}, Name: "سارة", Active: true},
	}
	logs := []models.ReadingLog{
		{MemberID: 1, SubmissionDate: day(2026, 1, 5), CommonBookMinutes: 60, SubmittedCommonQuote: 1},
		{MemberID: 1, SubmissionDate: day(2026, 1, 6), OtherBookMinutes: 30},
		{MemberID: 2, SubmissionDate: day(2026, 1, 6), CommonBookMinutes: 45, SubmittedOtherQuote: 1},
		{MemberID: 2, SubmissionDate: day(2026, 2, 6), CommonBookMinutes: 45}, // outside period
	}

	_, groups := ComputeStats(members, logs, nil, []models.ChallengePeriod{period}, day(2026, 2, 15))

	if len(groups) != 1 {
		t.Fatalf("expected 1 group stats row, got %d", len(groups))
	}
	gs := groups[0]
	if gs.TotalGroupMinutesCommon != 105 || gs.TotalGroupMinutesOther != 30 {
		t.Errorf("unexpected group minutes: %+v", gs)
	}
	if gs.TotalGroupQuotesCommon != 1 || gs.TotalGroupQuotesOther != 1 {
		t.Errorf("unexpected group quotes: %+v", gs)
	}
	if gs.ActiveMembers != 2 {
		t.Errorf("expected 2 active members in the period, got %d", gs.ActiveMembers)
	}
}
