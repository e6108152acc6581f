package database

import (
	"log"
	"time"

	"cleanitalia/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB is the global Postgres handle. It stays nil in mock mode.
var DB *sqlx.DB

const schema = `
CREATE TABLE IF NOT EXISTS cities (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	name_it       TEXT NOT NULL DEFAULT '',
	name_en       TEXT NOT NULL DEFAULT '',
	enabled       BOOLEAN NOT NULL DEFAULT TRUE,
	working_days  TEXT NOT NULL DEFAULT '1,2,3,4,5',
	start_time    TEXT NOT NULL DEFAULT '08:00',
	end_time      TEXT NOT NULL DEFAULT '18:00'
);

CREATE TABLE IF NOT EXISTS services (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	name_it         TEXT NOT NULL DEFAULT '',
	name_en         TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	description_it  TEXT NOT NULL DEFAULT '',
	description_en  TEXT NOT NULL DEFAULT '',
	price_per_hour  NUMERIC(10,2) NOT NULL,
	enabled         BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS bookings (
	id                  BIGSERIAL PRIMARY KEY,
	service_id          BIGINT NOT NULL,
	city_id             BIGINT NOT NULL,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL,
	phone               TEXT NOT NULL,
	street              TEXT NOT NULL DEFAULT '',
	house_number        TEXT NOT NULL DEFAULT '',
	property_size       TEXT NOT NULL DEFAULT '',
	doorbell            TEXT NOT NULL DEFAULT '',
	date                TEXT NOT NULL,
	time                TEXT NOT NULL,
	hours               INT NOT NULL,
	cleaners            INT NOT NULL,
	total_amount        NUMERIC(10,2) NOT NULL,
	notes               TEXT NOT NULL DEFAULT '',
	additional_services JSONB NOT NULL DEFAULT '[]',
	supplies            JSONB NOT NULL DEFAULT '[]',
	status              TEXT NOT NULL DEFAULT 'pending',
	stripe_status       TEXT NOT NULL DEFAULT 'none',
	payment_intent_id   TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS workers (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	specialties    JSONB NOT NULL DEFAULT '[]',
	rating         NUMERIC(3,1) NOT NULL DEFAULT 0,
	completed_jobs INT NOT NULL DEFAULT 0,
	active         BOOLEAN NOT NULL DEFAULT TRUE,
	client_ref     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS blocked_slots (
	id      BIGSERIAL PRIMARY KEY,
	city_id BIGINT NOT NULL,
	date    TEXT NOT NULL,
	time    TEXT NOT NULL DEFAULT '',
	reason  TEXT NOT NULL DEFAULT ''
);
`

// seedCatalog inserts the demo cities and services on a fresh database. The
// same records back the in-memory store, so both modes start identical.
const seedCatalog = `
INSERT INTO cities (name, name_it, name_en, enabled, working_days, start_time, end_time)
SELECT v.* FROM (VALUES
	('Rome',   'Roma',   'Rome',   TRUE,  '1,2,3,4,5,6', '09:00', '17:30'),
	('Milan',  'Milano', 'Milan',  TRUE,  '1,2,3,4,5',   '08:00', '18:00'),
	('Naples', 'Napoli', 'Naples', FALSE, '1,2,3,4,5',   '09:00', '17:00')
) AS v(name, name_it, name_en, enabled, working_days, start_time, end_time)
WHERE NOT EXISTS (SELECT 1 FROM cities);

INSERT INTO services (name, name_it, name_en, description, price_per_hour, enabled)
SELECT v.* FROM (VALUES
	('Standard Cleaning', 'Pulizia Standard', 'Standard Cleaning', 'Regular home cleaning',            20.0, TRUE),
	('Deep Cleaning',     'Pulizia Profonda', 'Deep Cleaning',     'Thorough top-to-bottom cleaning', 28.0, TRUE),
	('Office Cleaning',   'Pulizia Uffici',   'Office Cleaning',   'Workspace cleaning',              25.0, FALSE)
) AS v(name, name_it, name_en, description, price_per_hour, enabled)
WHERE NOT EXISTS (SELECT 1 FROM services);
`

// InitDB connects to Postgres and bootstraps the schema. Fatal on failure:
// when a DATABASE_URL is configured the database is not optional.
func InitDB() {
	db, err := sqlx.Connect("postgres", config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("failed to bootstrap schema: %v", err)
	}
	if _, err := db.Exec(seedCatalog); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	DB = db
	log.Println("Connected to Postgres successfully!")
}
