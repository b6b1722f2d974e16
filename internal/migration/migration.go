// Package migration creates the schema on startup so a fresh database is
// usable without manual steps. Postgres runs the embedded SQL migrations;
// other dialects fall back to gorm auto-migration.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	contentdomain "github.com/santaradigital/backoffice/internal/content/domain"
	invoicedomain "github.com/santaradigital/backoffice/internal/invoice/domain"
	orderdomain "github.com/santaradigital/backoffice/internal/order/domain"
	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate covers dialects the SQL migrations do not target.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&catalogdomain.Offering{},
		&orderdomain.Order{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceSequence{},
		&contentdomain.LandingSection{},
		&contentdomain.Testimonial{},
		&contentdomain.FooterColumn{},
		&settingsdomain.Settings{},
	)
}

// EnsureSeedRows creates the fixed single rows the services rely on: the
// invoice number counter and the settings row. Idempotent.
func EnsureSeedRows(conn *gorm.DB) error {
	sequence := invoicedomain.InvoiceSequence{ID: invoicedomain.SequenceRowID}
	if err := conn.FirstOrCreate(&sequence, invoicedomain.InvoiceSequence{ID: invoicedomain.SequenceRowID}).Error; err != nil {
		return fmt.Errorf("seed invoice sequence: %w", err)
	}

	settings := settingsdomain.Settings{ID: settingsdomain.SettingsRowID, SMTPPort: 587}
	if err := conn.FirstOrCreate(&settings, settingsdomain.Settings{ID: settingsdomain.SettingsRowID}).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
