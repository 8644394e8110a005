package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const payrollColumns = `id, employee_id, payroll_cycle_id, salary_id, salary_amount,
	total_days, total_working_days, total_days_worked, total_absences, total_incompletes,
	total_lates, to_be_deducted_from_leave_credits, to_be_deducted_from_current_salary,
	manual_correction, total_deduction, total_receivable, paid, created_at, updated_at`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) CreateCycle(ctx context.Context, cycle payroll.PayrollCycle) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_cycles (from_date, to_date, failed_report)
		VALUES ($1, $2, $3)
		RETURNING id, processing, processed, success, failed, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, cycle.FromDate, cycle.ToDate, payroll.FailedReport{}).Scan(
		&cycle.ID, &cycle.Processing, &cycle.Processed, &cycle.Success, &cycle.Failed,
		&cycle.CreatedAt, &cycle.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollCycle{}, fmt.Errorf("failed to create payroll cycle: %w", err)
	}
	return cycle, nil
}

func (r *payrollRepository) GetCycleByID(ctx context.Context, id string) (payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, from_date, to_date, processing, processed, success, failed, failed_report,
			   created_at, updated_at
		FROM payroll_cycles
		WHERE id = $1
	`

	cycle, err := scanCycle(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollCycle{}, payroll.ErrCycleNotFound
		}
		return payroll.PayrollCycle{}, fmt.Errorf("failed to get payroll cycle: %w", err)
	}
	return cycle, nil
}

func (r *payrollRepository) ListCycles(ctx context.Context) ([]payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, from_date, to_date, processing, processed, success, failed, failed_report,
			   created_at, updated_at
		FROM payroll_cycles
		ORDER BY from_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll cycles: %w", err)
	}
	defer rows.Close()

	var result []payroll.PayrollCycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll cycle: %w", err)
		}
		result = append(result, cycle)
	}
	return result, rows.Err()
}

func (r *payrollRepository) ListUnprocessedCycles(ctx context.Context, before time.Time) ([]payroll.PayrollCycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, from_date, to_date, processing, processed, success, failed, failed_report,
			   created_at, updated_at
		FROM payroll_cycles
		WHERE processed = FALSE
		  AND processing = FALSE
		  AND to_date < $1
		ORDER BY to_date
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed cycles: %w", err)
	}
	defer rows.Close()

	var result []payroll.PayrollCycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll cycle: %w", err)
		}
		result = append(result, cycle)
	}
	return result, rows.Err()
}

func (r *payrollRepository) UpdateCycle(ctx context.Context, cycle payroll.PayrollCycle) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_cycles
		SET processing = $2, processed = $3, success = $4, failed = $5, failed_report = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		cycle.ID, cycle.Processing, cycle.Processed, cycle.Success, cycle.Failed, cycle.FailedReport,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll cycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}
	return nil
}

func (r *payrollRepository) CreatePayroll(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			employee_id, payroll_cycle_id, salary_id, salary_amount,
			total_days, total_working_days, total_days_worked, total_absences, total_incompletes,
			total_lates, to_be_deducted_from_leave_credits, to_be_deducted_from_current_salary,
			manual_correction, total_deduction, total_receivable
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, paid, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.PayrollCycleID, p.SalaryID, p.SalaryAmount,
		p.TotalDays, p.TotalWorkingDays, p.TotalDaysWorked, p.TotalAbsences, p.TotalIncompletes,
		p.TotalLates, p.ToBeDeductedFromLeaveCredits, p.ToBeDeductedFromCurrentSalary,
		p.ManualCorrection, p.TotalDeduction, p.TotalReceivable,
	).Scan(&p.ID, &p.Paid, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) UpdatePayroll(ctx context.Context, p payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET salary_id = $2, salary_amount = $3,
			total_days = $4, total_working_days = $5, total_days_worked = $6,
			total_absences = $7, total_incompletes = $8, total_lates = $9,
			to_be_deducted_from_leave_credits = $10, to_be_deducted_from_current_salary = $11,
			manual_correction = $12, total_deduction = $13, total_receivable = $14,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		p.ID, p.SalaryID, p.SalaryAmount,
		p.TotalDays, p.TotalWorkingDays, p.TotalDaysWorked,
		p.TotalAbsences, p.TotalIncompletes, p.TotalLates,
		p.ToBeDeductedFromLeaveCredits, p.ToBeDeductedFromCurrentSalary,
		p.ManualCorrection, p.TotalDeduction, p.TotalReceivable,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepository) GetPayrollByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE employee_id = $1 AND payroll_cycle_id = $2`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, cycleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll by employee and cycle: %w", err)
	}
	return &p, nil
}

func (r *payrollRepository) ListByCycle(ctx context.Context, cycleID string) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE payroll_cycle_id = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payrolls SET paid = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark payroll paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepository) CreateDeductions(ctx context.Context, deductions []payroll.PayrollDeduction) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_deductions (payroll_id, title, amount, installment_id)
		VALUES ($1, $2, $3, $4)
	`

	for _, d := range deductions {
		if _, err := q.Exec(ctx, query, d.PayrollID, d.Title, d.Amount, d.InstallmentID); err != nil {
			return fmt.Errorf("failed to create payroll deduction: %w", err)
		}
	}
	return nil
}

func (r *payrollRepository) DeleteDeductionsByPayroll(ctx context.Context, payrollID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_deductions WHERE payroll_id = $1`, payrollID); err != nil {
		return fmt.Errorf("failed to delete payroll deductions: %w", err)
	}
	return nil
}

func (r *payrollRepository) ListDeductionsByPayroll(ctx context.Context, payrollID string) ([]payroll.PayrollDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, title, amount, installment_id, created_at
		FROM payroll_deductions
		WHERE payroll_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll deductions: %w", err)
	}
	defer rows.Close()

	var result []payroll.PayrollDeduction
	for rows.Next() {
		var d payroll.PayrollDeduction
		if err := rows.Scan(&d.ID, &d.PayrollID, &d.Title, &d.Amount, &d.InstallmentID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll deduction: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *payrollRepository) SumLeaveCreditsUsed(ctx context.Context, employeeID string, excludePayrollID *string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(to_be_deducted_from_leave_credits), 0)
		FROM payrolls
		WHERE employee_id = $1
		  AND ($2::uuid IS NULL OR id <> $2)
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, excludePayrollID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum leave credit usage: %w", err)
	}
	return total, nil
}

func scanCycle(row pgx.Row) (payroll.PayrollCycle, error) {
	var cycle payroll.PayrollCycle
	err := row.Scan(
		&cycle.ID, &cycle.FromDate, &cycle.ToDate, &cycle.Processing, &cycle.Processed,
		&cycle.Success, &cycle.Failed, &cycle.FailedReport, &cycle.CreatedAt, &cycle.UpdatedAt,
	)
	return cycle, err
}

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PayrollCycleID, &p.SalaryID, &p.SalaryAmount,
		&p.TotalDays, &p.TotalWorkingDays, &p.TotalDaysWorked, &p.TotalAbsences, &p.TotalIncompletes,
		&p.TotalLates, &p.ToBeDeductedFromLeaveCredits, &p.ToBeDeductedFromCurrentSalary,
		&p.ManualCorrection, &p.TotalDeduction, &p.TotalReceivable, &p.Paid, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
