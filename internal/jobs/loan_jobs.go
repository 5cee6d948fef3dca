package jobs

import (
	"context"
	"time"

	"booknet-backend/internal/logger"
)

// SendLoanReminders emails borrowers whose loans have been open longer than
// the configured number of days. Loans are not mutated; the lifecycle has no
// overdue state, this is purely a nudge.
func (jr *JobRunner) SendLoanReminders() {
	jr.runWithRecovery("SendLoanReminders", func() {
		ctx := context.Background()
		days := jr.config.Lending.ReminderAfterDays
		cutoff := time.Now().AddDate(0, 0, -days)

		loans, err := jr.loanRepo.ListOpenBorrowedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("failed to list overdue loans", "error", err)
			return
		}

		sent := 0
		for _, loan := range loans {
			borrower, err := jr.userRepo.GetByID(ctx, loan.BorrowerID)
			if err != nil {
				logger.Warn("skipping reminder, borrower lookup failed", "loan_id", loan.ID, "error", err)
				continue
			}
			book, err := jr.bookRepo.GetByID(ctx, loan.BookID)
			if err != nil {
				logger.Warn("skipping reminder, book lookup failed", "loan_id", loan.ID, "error", err)
				continue
			}

			daysOut := int(time.Since(loan.BorrowedOn).Hours() / 24)
			if err := jr.emailSvc.SendLoanReminder(ctx, borrower.Email, book.Title, daysOut); err != nil {
				logger.Warn("failed to send loan reminder", "loan_id", loan.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("loan reminders sent", "count", sent, "candidates", len(loans))
	})
}
