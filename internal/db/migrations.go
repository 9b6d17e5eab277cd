package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'driver_role') THEN
			CREATE TYPE driver_role AS ENUM ('driver', 'admin');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'driver_type') THEN
			CREATE TYPE driver_type AS ENUM ('local', 'interstate');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'truck_status') THEN
			CREATE TYPE truck_status AS ENUM ('available', 'on route', 'maintenance');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_status') THEN
			CREATE TYPE job_status AS ENUM ('pending', 'in-progress', 'completed');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_type') THEN
			CREATE TYPE job_type AS ENUM ('local', 'interstate');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role driver_role NOT NULL DEFAULT 'driver',
		driver_type driver_type NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_drivers_email ON drivers (email);`,
	`CREATE TABLE IF NOT EXISTS trucks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		truck_number VARCHAR(32) NOT NULL,
		model VARCHAR(255),
		capacity DOUBLE PRECISION NOT NULL,
		status truck_status NOT NULL DEFAULT 'available',
		assigned_driver_id UUID,
		last_maintenance_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_trucks_truck_number ON trucks (truck_number);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		description TEXT,
		pickup_location VARCHAR(255) NOT NULL,
		delivery_location VARCHAR(255) NOT NULL,
		assigned_to UUID NOT NULL,
		assigned_truck UUID NOT NULL,
		job_date TIMESTAMPTZ NOT NULL,
		job_type job_type NOT NULL,
		status job_status NOT NULL DEFAULT 'pending',
		pod_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_assigned_to ON jobs (assigned_to);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_assigned_truck ON jobs (assigned_truck);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_job_date ON jobs (job_date);`,
	`CREATE TABLE IF NOT EXISTS daily_truck_assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		driver_id UUID NOT NULL,
		truck_id UUID NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	// The one real storage-level invariant: the exact (driver, truck, date)
	// triple is unique. It does not stop the same truck being assigned to a
	// different driver on the same date.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_assignments_triple
		ON daily_truck_assignments (driver_id, truck_id, date);`,
	`CREATE INDEX IF NOT EXISTS idx_daily_assignments_driver_date
		ON daily_truck_assignments (driver_id, date);`,
	`CREATE TABLE IF NOT EXISTS permanent_truck_assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		driver_id UUID NOT NULL,
		truck_id UUID NOT NULL,
		assigned_by UUID NOT NULL,
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_permanent_assignments_driver
		ON permanent_truck_assignments (driver_id);`,
	`CREATE TABLE IF NOT EXISTS daily_work_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		driver_id UUID NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		kilometers DOUBLE PRECISION NOT NULL DEFAULT 0,
		local_start_time VARCHAR(16),
		local_end_time VARCHAR(16),
		interstate_start_km DOUBLE PRECISION,
		interstate_end_km DOUBLE PRECISION,
		deliveries_done INTEGER NOT NULL DEFAULT 0,
		delivery_locations JSONB NOT NULL DEFAULT '[]',
		job_ids JSONB NOT NULL DEFAULT '[]',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_daily_work_logs_driver_id ON daily_work_logs (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_daily_work_logs_date ON daily_work_logs (date);`,
	`CREATE TABLE IF NOT EXISTS job_pods (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		driver_id UUID NOT NULL,
		job_id UUID,
		storage_key TEXT NOT NULL,
		file_url TEXT NOT NULL,
		notes TEXT,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_job_pods_driver_id ON job_pods (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_job_pods_job_id ON job_pods (job_id);`,
	`CREATE TABLE IF NOT EXISTS work_diaries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		driver_id UUID NOT NULL,
		storage_key TEXT NOT NULL,
		file_url TEXT NOT NULL,
		notes TEXT,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_work_diaries_driver_id ON work_diaries (driver_id);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	DECLARE
		t TEXT;
	BEGIN
		FOREACH t IN ARRAY ARRAY['drivers', 'trucks', 'jobs', 'daily_truck_assignments', 'permanent_truck_assignments', 'daily_work_logs', 'job_pods', 'work_diaries'] LOOP
			IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_' || t || '_updated_at') THEN
				EXECUTE format('CREATE TRIGGER trg_%I_updated_at BEFORE UPDATE ON %I FOR EACH ROW EXECUTE PROCEDURE set_updated_at()', t, t);
			END IF;
		END LOOP;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
