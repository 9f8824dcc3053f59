package engine

import (
	"context"
	"strings"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/models"
	"github.com/readmarathon/reading-marathon-api/internal/source"
	"gorm.io/gorm"
)

// ingest walks the raw submission table and stores every row not seen
// before. Each row commits its log plus any new achievements in one
// transaction; malformed rows are skipped with a diagnostic.
func (e *Engine) ingest(ctx context.Context, rows []source.SubmissionRow, report *CycleReport) error {
	db := e.db.WithContext(ctx)

	var members []models.Member
	if err := db.Find(&members).Error; err != nil {
		return err
	}
	memberByName := make(map[string]uint, len(members))
	for _, m := range members {
		memberByName[m.Name] = m.ID
	}

	var periods []models.ChallengePeriod
	if err := db.Order("start_date").Find(&periods).Error; err != nil {
		return err
	}

	today := models.DateOnly(e.now())

	for _, row := range rows {
		report.RowsSeen++

		ts := strings.TrimSpace(row.Timestamp)
		if ts == "" {
			report.RowsSkipped++
			continue
		}

		// Dedup before anything else; this is what makes repeated runs over
		// the same sheet idempotent.
		var existing int64
		if err := db.Model(&models.ReadingLog{}).Where("timestamp = ?", ts).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		day, err := ParseSubmissionDate(row.ReadingDate)
		if err != nil {
			report.warnf("invalid date %q for timestamp %q, skipping", row.ReadingDate, ts)
			report.RowsSkipped++
			continue
		}
		if day.After(today) {
			report.warnf("future date %q for timestamp %q, skipping", row.ReadingDate, ts)
			report.RowsSkipped++
			continue
		}

		memberID, ok := memberByName[strings.TrimSpace(row.MemberName)]
		if !ok {
			report.warnf("unknown member %q for timestamp %q, skipping", row.MemberName, ts)
			report.RowsSkipped++
			continue
		}

		claims := source.DetectClaims(row)

		// At most one credited quote of each kind per member per day, no
		// matter how many rows reference that day.
		commonQuote := 0
		if claims.Has(source.ClaimQuoteCommon) && !e.quotedOn(db, memberID, day, true) {
			commonQuote = 1
		}
		otherQuote := 0
		if claims.Has(source.ClaimQuoteOther) && !e.quotedOn(db, memberID, day, false) {
			otherQuote = 1
		}

		logRow := models.ReadingLog{
			Timestamp:            ts,
			MemberID:             memberID,
			SubmissionDate:       day,
			CommonBookMinutes:    ParseDurationMinutes(row.CommonBook),
			OtherBookMinutes:     ParseDurationMinutes(row.OtherBook),
			SubmittedCommonQuote: commonQuote,
			SubmittedOtherQuote:  otherQuote,
		}

		// Period-scoped achievement crediting needs a resolved period; rows
		// outside every period still record their reading minutes.
		var achievements []models.Achievement
		if period := models.PeriodFor(periods, day); period != nil {
			achievements = e.extractAchievements(db, claims, memberID, day, period)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&logRow).Error; err != nil {
				return err
			}
			for i := range achievements {
				if err := tx.Create(&achievements[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if isDuplicateKey(err) {
				// Concurrent cycle already stored this timestamp.
				continue
			}
			report.warnf("failed to store row %q: %v", ts, err)
			report.RowsSkipped++
			continue
		}

		report.LogsAdded++
		report.AchievementsAdded += len(achievements)
	}

	return nil
}

// extractAchievements turns a row's claims into new achievement records,
// enforcing at-most-once per (member, type, period) for the common-book and
// discussion types. Finished-other claims are recorded as-is; their validity
// is decided during recalculation against cumulative reading time.
func (e *Engine) extractAchievements(db *gorm.DB, claims source.ClaimSet, memberID uint, day time.Time, period *models.ChallengePeriod) []models.Achievement {
	var out []models.Achievement

	if claims.Has(source.ClaimFinishedCommon) && !e.hasAchievement(db, memberID, models.FinishedCommonBook, period.ID) {
		bookID := period.BookID
		out = append(out, models.Achievement{
			MemberID: memberID,
			PeriodID: &period.ID,
			BookID:   &bookID,
			Type:     models.FinishedCommonBook,
			Date:     day,
		})
	}
	if claims.Has(source.ClaimAttendedDiscussion) && !e.hasAchievement(db, memberID, models.AttendedDiscussion, period.ID) {
		out = append(out, models.Achievement{
			MemberID: memberID,
			PeriodID: &period.ID,
			Type:     models.AttendedDiscussion,
			Date:     day,
		})
	}
	if claims.Has(source.ClaimFinishedOther) {
		out = append(out, models.Achievement{
			MemberID: memberID,
			PeriodID: &period.ID,
			Type:     models.FinishedOtherBook,
			Date:     day,
		})
	}

	return out
}

func (e *Engine) quotedOn(db *gorm.DB, memberID uint, day time.Time, common bool) bool {
	column := "submitted_other_quote"
	if common {
		column = "submitted_common_quote"
	}
	var count int64
	db.Model(&models.ReadingLog{}).
		Where("member_id = ? AND submission_date = ? AND "+column+" = 1", memberID, day).
		Count(&count)
	return count > 0
}

func (e *Engine) hasAchievement(db *gorm.DB, memberID uint, typ models.AchievementType, periodID uint) bool {
	var count int64
	db.Model(&models.Achievement{}).
		Where("member_id = ? AND achievement_type = ? AND period_id = ?", memberID, typ, periodID).
		Count(&count)
	return count > 0
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
