package db

import "context"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS places (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'staff',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS place_members (
		user_id  BIGINT NOT NULL REFERENCES users(id),
		place_id BIGINT NOT NULL REFERENCES places(id),
		PRIMARY KEY (user_id, place_id)
	)`,
	`CREATE TABLE IF NOT EXISTS shift_reports (
		id              BIGSERIAL PRIMARY KEY,
		place_id        BIGINT NOT NULL REFERENCES places(id),
		report_date     DATE NOT NULL,
		kind            TEXT NOT NULL CHECK (kind IN ('start','end')),
		user_id         BIGINT NOT NULL REFERENCES users(id),
		shipment_ref    TEXT NOT NULL DEFAULT '',
		work_hours      DOUBLE PRECISION NOT NULL DEFAULT 0,
		initial_cash    DOUBLE PRECISION,
		deposited_cash  DOUBLE PRECISION,
		cash_for_change DOUBLE PRECISION,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS shift_reports_place_date_kind_unique
		ON shift_reports (place_id, report_date, kind)`,
	`CREATE TABLE IF NOT EXISTS fruit_lines (
		id            BIGSERIAL PRIMARY KEY,
		report_id     BIGINT NOT NULL REFERENCES shift_reports(id),
		fruit_id      BIGINT NOT NULL,
		fruit_name    TEXT NOT NULL,
		initial_qty   DOUBLE PRECISION,
		remaining_qty DOUBLE PRECISION,
		waste_qty     DOUBLE PRECISION,
		price_per_kg  DOUBLE PRECISION,
		gross_sales   DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS fruit_lines_report_id_idx ON fruit_lines (report_id)`,
	`CREATE TABLE IF NOT EXISTS daily_summaries (
		id                     BIGSERIAL PRIMARY KEY,
		place_id               BIGINT NOT NULL REFERENCES places(id),
		report_date            DATE NOT NULL,
		place_name             TEXT NOT NULL DEFAULT '',
		has_start_report       BOOLEAN NOT NULL DEFAULT FALSE,
		has_end_report         BOOLEAN NOT NULL DEFAULT FALSE,
		start_report_id        BIGINT,
		end_report_id          BIGINT,
		start_user_name        TEXT NOT NULL DEFAULT '',
		end_user_name          TEXT NOT NULL DEFAULT '',
		start_work_hours       DOUBLE PRECISION NOT NULL DEFAULT 0,
		end_work_hours         DOUBLE PRECISION NOT NULL DEFAULT 0,
		initial_cash           DOUBLE PRECISION NOT NULL DEFAULT 0,
		deposited_cash         DOUBLE PRECISION NOT NULL DEFAULT 0,
		cash_for_change        DOUBLE PRECISION NOT NULL DEFAULT 0,
		fruits                 JSONB NOT NULL DEFAULT '[]',
		total_initial_qty      DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_remaining_qty    DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_waste_qty        DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_sold_qty         DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_gross_sales      DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_calculated_sales DOUBLE PRECISION NOT NULL DEFAULT 0,
		sales_variance         DOUBLE PRECISION NOT NULL DEFAULT 0,
		variance_flagged       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS daily_summaries_place_date_unique
		ON daily_summaries (place_id, report_date)`,
}

// Migrate applies the schema. Statements are idempotent so it is safe to run
// on every startup.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
