package engine

import (
	"context"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/gorm"
)

// A finished-other-book claim is only plausible with at least three hours of
// other-book reading behind it.
const minutesPerOtherBook = 180

// Recalculate discards all derived statistics and rebuilds them from the
// full history of logs and achievements, applying each period's own frozen
// rule set. The replace is a single transaction so readers never observe a
// half-rebuilt table.
func (e *Engine) Recalculate(ctx context.Context) error {
	db := e.db.WithContext(ctx)

	var settingsCount int64
	if err := db.Model(&models.GlobalSettings{}).Count(&settingsCount).Error; err != nil {
		return err
	}

	var periods []models.ChallengePeriod
	if err := db.Order("start_date").Find(&periods).Error; err != nil {
		return err
	}

	if settingsCount == 0 || len(periods) == 0 {
		return ErrSetupIncomplete
	}

	var members []models.Member
	if err := db.Order("id").Find(&members).Error; err != nil {
		return err
	}

	var logs []models.ReadingLog
	if err := db.Order("submission_date, id").Find(&logs).Error; err != nil {
		return err
	}

	// Stored order decides which finished-other claims get credited when the
	// reading-time cap bites, so keep it stable.
	var achievements []models.Achievement
	if err := db.Order("id").Find(&achievements).Error; err != nil {
		return err
	}

	memberStats, groupStats := ComputeStats(members, logs, achievements, periods, models.DateOnly(e.now()))

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Unscoped().Delete(&models.MemberStats{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Unscoped().Delete(&models.GroupStats{}).Error; err != nil {
			return err
		}
		if len(memberStats) > 0 {
			if err := tx.Create(&memberStats).Error; err != nil {
				return err
			}
		}
		if len(groupStats) > 0 {
			if err := tx.Create(&groupStats).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ComputeStats derives every member's statistics row and the per-period
// group aggregates. It is a pure function of its inputs and the given today,
// so recomputing on unchanged data yields identical output.
func ComputeStats(members []models.Member, logs []models.ReadingLog, achievements []models.Achievement, periods []models.ChallengePeriod, today time.Time) ([]models.MemberStats, []models.GroupStats) {
	periodByID := make(map[uint]*models.ChallengePeriod, len(periods))
	for i := range periods {
		periodByID[periods[i].ID] = &periods[i]
	}
	rulesFor := func(periodID *uint) *models.ScoringRules {
		if periodID == nil {
			return nil
		}
		if p, ok := periodByID[*periodID]; ok {
			return &p.ScoringRules
		}
		return nil
	}

	logsByMember := make(map[uint][]models.ReadingLog)
	for _, lg := range logs {
		logsByMember[lg.MemberID] = append(logsByMember[lg.MemberID], lg)
	}
	achievementsByMember := make(map[uint][]models.Achievement)
	for _, a := range achievements {
		achievementsByMember[a.MemberID] = append(achievementsByMember[a.MemberID], a)
	}

	activePeriod := models.PeriodFor(periods, today)

	memberStats := make([]models.MemberStats, 0, len(members))
	for _, member := range members {
		ms := models.MemberStats{MemberID: member.ID}

		var lastLog, lastQuote *time.Time
		for _, lg := range logsByMember[member.ID] {
			ms.TotalReadingMinutesCommon += lg.CommonBookMinutes
			ms.TotalReadingMinutesOther += lg.OtherBookMinutes
			ms.TotalQuotesSubmitted += lg.SubmittedCommonQuote + lg.SubmittedOtherQuote

			// Points are converted per log under the rules of the period
			// active on that log's date, so history stays stable when a
			// later period changes its rules. Logs outside every period
			// count toward totals but earn nothing.
			if p := models.PeriodFor(periods, lg.SubmissionDate); p != nil {
				if p.MinutesPerPointCommon > 0 {
					ms.TotalPoints += lg.CommonBookMinutes / p.MinutesPerPointCommon
				}
				if p.MinutesPerPointOther > 0 {
					ms.TotalPoints += lg.OtherBookMinutes / p.MinutesPerPointOther
				}
				ms.TotalPoints += lg.SubmittedCommonQuote * p.QuoteCommonBookPoints
				ms.TotalPoints += lg.SubmittedOtherQuote * p.QuoteOtherBookPoints
			}

			day := lg.SubmissionDate
			if lastLog == nil || day.After(*lastLog) {
				d := day
				lastLog = &d
			}
			if lg.SubmittedCommonQuote+lg.SubmittedOtherQuote > 0 {
				if lastQuote == nil || day.After(*lastQuote) {
					d := day
					lastQuote = &d
				}
			}
		}

		var finishedOtherClaims []models.Achievement
		for _, a := range achievementsByMember[member.ID] {
			switch a.Type {
			case models.FinishedCommonBook:
				ms.TotalCommonBooksRead++
				if r := rulesFor(a.PeriodID); r != nil {
					ms.TotalPoints += r.FinishCommonBookPoints
				}
			case models.AttendedDiscussion:
				ms.MeetingsAttended++
				if r := rulesFor(a.PeriodID); r != nil {
					ms.TotalPoints += r.AttendDiscussionPoints
				}
			case models.FinishedOtherBook:
				finishedOtherClaims = append(finishedOtherClaims, a)
			}
		}

		// Cap finished-other credit by accumulated reading time; the
		// earliest claims win.
		validOther := ms.TotalReadingMinutesOther / minutesPerOtherBook
		if validOther > len(finishedOtherClaims) {
			validOther = len(finishedOtherClaims)
		}
		ms.TotalOtherBooksRead = validOther
		for _, a := range finishedOtherClaims[:validOther] {
			if r := rulesFor(a.PeriodID); r != nil {
				ms.TotalPoints += r.FinishOtherBookPoints
			}
		}

		// Penalties model present disengagement, so they only apply against
		// the period active today, and only to active members.
		if activePeriod != nil && member.Active {
			rules := activePeriod.ScoringRules

			logAnchor := activePeriod.StartDate
			if lastLog != nil {
				logAnchor = *lastLog
			}
			if d := daysBetween(logAnchor, today); d >= rules.NoLogDaysTrigger {
				ms.TotalPoints -= rules.NoLogInitialPenalty + (d-rules.NoLogDaysTrigger)*rules.NoLogSubsequentPenalty
				ms.LogStreak = d
			}

			quoteAnchor := activePeriod.StartDate
			if lastQuote != nil {
				quoteAnchor = *lastQuote
			}
			if d := daysBetween(quoteAnchor, today); d >= rules.NoQuoteDaysTrigger {
				ms.TotalPoints -= rules.NoQuoteInitialPenalty + (d-rules.NoQuoteDaysTrigger)*rules.NoQuoteSubsequentPenalty
				ms.QuoteStreak = d
			}
		}

		ms.LastLogDate = lastLog
		ms.LastQuoteDate = lastQuote
		memberStats = append(memberStats, ms)
	}

	groupStats := make([]models.GroupStats, 0, len(periods))
	for _, p := range periods {
		gs := models.GroupStats{PeriodID: p.ID}
		seen := make(map[uint]bool)
		for _, lg := range logs {
			if !p.Contains(lg.SubmissionDate) {
				continue
			}
			gs.TotalGroupMinutesCommon += lg.CommonBookMinutes
			gs.TotalGroupMinutesOther += lg.OtherBookMinutes
			gs.TotalGroupQuotesCommon += lg.SubmittedCommonQuote
			gs.TotalGroupQuotesOther += lg.SubmittedOtherQuote
			seen[lg.MemberID] = true
		}
		gs.ActiveMembers = len(seen)
		groupStats = append(groupStats, gs)
	}

	return memberStats, groupStats
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
