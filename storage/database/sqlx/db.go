// Package sqlxrepos implements the repositories on PostgreSQL via sqlx.
//
// Expected schema:
//
//	CREATE TABLE application (
//	    id                      SERIAL PRIMARY KEY,
//	    ref                     TEXT NOT NULL UNIQUE,
//	    student_first_name      TEXT NOT NULL,
//	    student_middle_name     TEXT,
//	    student_last_name       TEXT NOT NULL,
//	    date_of_birth           TEXT NOT NULL,
//	    gender                  TEXT NOT NULL,
//	    nationality             TEXT,
//	    applying_for            TEXT NOT NULL,
//	    previous_school         TEXT,
//	    medical_conditions      TEXT,
//	    parent_first_name       TEXT NOT NULL,
//	    parent_last_name        TEXT NOT NULL,
//	    parent_relationship     TEXT NOT NULL,
//	    parent_phone            TEXT NOT NULL,
//	    parent_email            TEXT NOT NULL,
//	    parent_occupation       TEXT,
//	    address                 TEXT NOT NULL,
//	    secondary_contact_name  TEXT,
//	    secondary_contact_phone TEXT,
//	    terms_accepted          BOOLEAN NOT NULL,
//	    data_consent            BOOLEAN NOT NULL,
//	    files                   JSONB NOT NULL DEFAULT '{}',
//	    submission_date         TIMESTAMPTZ NOT NULL,
//	    status                  TEXT NOT NULL
//	);
//
//	CREATE TABLE admin_notification (
//	    id        SERIAL PRIMARY KEY,
//	    type      TEXT NOT NULL,
//	    message   TEXT NOT NULL,
//	    ref       TEXT NOT NULL,
//	    timestamp TIMESTAMPTZ NOT NULL,
//	    read      BOOLEAN NOT NULL DEFAULT FALSE
//	);
//
//	CREATE TABLE email_notification (
//	    id        SERIAL PRIMARY KEY,
//	    recipient TEXT NOT NULL,
//	    subject   TEXT NOT NULL,
//	    body      TEXT NOT NULL,
//	    timestamp TIMESTAMPTZ NOT NULL,
//	    status    TEXT NOT NULL,
//	    type      TEXT NOT NULL
//	);
//
//	CREATE TABLE sms_notification (
//	    id        SERIAL PRIMARY KEY,
//	    recipient TEXT NOT NULL,
//	    message   TEXT NOT NULL,
//	    timestamp TIMESTAMPTZ NOT NULL,
//	    status    TEXT NOT NULL,
//	    type      TEXT NOT NULL
//	);
package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", dsn)
}
