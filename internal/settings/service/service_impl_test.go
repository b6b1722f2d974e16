package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/santaradigital/backoffice/internal/config"
	"github.com/santaradigital/backoffice/internal/settings/domain"
	"github.com/santaradigital/backoffice/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Settings{}))

	holder := config.NewStaticDocumentConfigHolder(config.DocumentConfig{
		NumberTemplate: "INV-{YYYY}{MM}{DD}-{SEQ4}",
		DueDays:        30,
		PaymentTerms:   "30 days",
		TaxRateBps:     1_100,
	})

	return New(Params{
		Log:    zap.NewNop(),
		Store:  repository.ProvideStore[domain.Settings](db),
		DocCfg: holder,
	})
}

func TestGetFallsBackToDocumentDefaults(t *testing.T) {
	svc := setup(t)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SettingsRowID, settings.ID)
	assert.Equal(t, 587, settings.SMTPPort)
	assert.Equal(t, "INV-{YYYY}{MM}{DD}-{SEQ4}", settings.InvoiceNumberTemplate)
	assert.Equal(t, "30 days", settings.DefaultPaymentTerms)
	require.NotNil(t, settings.TaxRateBps)
	assert.Equal(t, 1_100, *settings.TaxRateBps)
}

func TestUpdateUpsertsSingleRow(t *testing.T) {
	svc := setup(t)

	name := "Santara Digital"
	first, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{
		CompanyName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SettingsRowID, first.ID)

	terms := "14 hari setelah invoice diterbitkan"
	second, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{
		DefaultPaymentTerms: &terms,
	})
	require.NoError(t, err)

	// Both edits land on the same row.
	assert.Equal(t, "Santara Digital", second.CompanyName)
	assert.Equal(t, terms, second.DefaultPaymentTerms)
}

func TestExplicitZeroTaxRateSticks(t *testing.T) {
	svc := setup(t)

	zero := 0
	updated, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{
		TaxRateBps: &zero,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TaxRateBps)
	assert.Equal(t, 0, *updated.TaxRateBps)

	// The stored zero survives a fresh read instead of reverting to the
	// document-config default.
	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, settings.TaxRateBps)
	assert.Equal(t, 0, *settings.TaxRateBps)
}

func TestUpdateValidatesPortAndRate(t *testing.T) {
	svc := setup(t)

	port := 0
	_, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{SMTPPort: &port})
	assert.ErrorIs(t, err, domain.ErrInvalidSMTPPort)

	rate := 20_000
	_, err = svc.Update(context.Background(), domain.UpdateSettingsRequest{TaxRateBps: &rate})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
}

func TestDisablingEmailPersists(t *testing.T) {
	svc := setup(t)

	enabled := true
	_, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{EmailEnabled: &enabled})
	require.NoError(t, err)

	disabled := false
	updated, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{EmailEnabled: &disabled})
	require.NoError(t, err)
	assert.False(t, updated.EmailEnabled)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, settings.EmailEnabled)
}
