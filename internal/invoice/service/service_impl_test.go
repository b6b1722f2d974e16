package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	"github.com/santaradigital/backoffice/internal/config"
	"github.com/santaradigital/backoffice/internal/invoice/calc"
	"github.com/santaradigital/backoffice/internal/invoice/domain"
	"github.com/santaradigital/backoffice/internal/invoice/repository"
	orderdomain "github.com/santaradigital/backoffice/internal/order/domain"
	"github.com/santaradigital/backoffice/internal/providers/email"
	"github.com/santaradigital/backoffice/internal/providers/pdf"
	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderStub struct {
	orders     map[string]orderdomain.Order
	settled    []orderdomain.DownpaymentSettlement
	settleErr  error
	settledIDs []string
}

func (o *orderStub) Create(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error) {
	return orderdomain.Order{}, nil
}

func (o *orderStub) List(ctx context.Context, req orderdomain.ListOrderRequest) ([]orderdomain.Order, error) {
	return nil, nil
}

func (o *orderStub) GetByID(ctx context.Context, id string) (orderdomain.Order, error) {
	order, ok := o.orders[id]
	if !ok {
		return orderdomain.Order{}, orderdomain.ErrNotFound
	}
	return order, nil
}

func (o *orderStub) UpdateStatus(ctx context.Context, id string, status orderdomain.OrderStatus) (orderdomain.Order, error) {
	return orderdomain.Order{}, nil
}

func (o *orderStub) UpdateAmounts(ctx context.Context, id string, req orderdomain.UpdateOrderAmountsRequest) (orderdomain.Order, error) {
	return orderdomain.Order{}, nil
}

func (o *orderStub) SettleDownpayment(ctx context.Context, id string, settlement orderdomain.DownpaymentSettlement) error {
	if o.settleErr != nil {
		return o.settleErr
	}
	o.settled = append(o.settled, settlement)
	o.settledIDs = append(o.settledIDs, id)
	return nil
}

type catalogStub struct {
	offerings map[string]catalogdomain.Offering
}

func (c *catalogStub) Create(ctx context.Context, req catalogdomain.CreateOfferingRequest) (catalogdomain.Offering, error) {
	return catalogdomain.Offering{}, nil
}

func (c *catalogStub) List(ctx context.Context, req catalogdomain.ListOfferingRequest) ([]catalogdomain.Offering, error) {
	return nil, nil
}

func (c *catalogStub) GetByID(ctx context.Context, id string) (catalogdomain.Offering, error) {
	offering, ok := c.offerings[id]
	if !ok {
		return catalogdomain.Offering{}, catalogdomain.ErrNotFound
	}
	return offering, nil
}

func (c *catalogStub) Update(ctx context.Context, id string, req catalogdomain.UpdateOfferingRequest) (catalogdomain.Offering, error) {
	return catalogdomain.Offering{}, nil
}

func (c *catalogStub) Delete(ctx context.Context, id string) error { return nil }

type settingsStub struct {
	settings settingsdomain.Settings
}

func (s *settingsStub) Get(ctx context.Context) (settingsdomain.Settings, error) {
	return s.settings, nil
}

func (s *settingsStub) Update(ctx context.Context, req settingsdomain.UpdateSettingsRequest) (settingsdomain.Settings, error) {
	return s.settings, nil
}

type rendererStub struct {
	content []byte
	err     error
	calls   int
}

func (r *rendererStub) RenderInvoice(ctx context.Context, doc pdf.Document) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.content, nil
}

type mailerStub struct {
	sent []email.Message
	err  error
}

func (m *mailerStub) Send(ctx context.Context, msg email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	svc      domain.Service
	db       *gorm.DB
	node     *snowflake.Node
	orders   *orderStub
	catalog  *catalogStub
	settings *settingsStub
	renderer *rendererStub
	mailer   *mailerStub
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceSequence{}))
	require.NoError(t, db.Create(&domain.InvoiceSequence{ID: domain.SequenceRowID}).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewDocumentConfigHolder(zap.NewNop())
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		node:     node,
		orders:   &orderStub{orders: map[string]orderdomain.Order{}},
		catalog:  &catalogStub{offerings: map[string]catalogdomain.Offering{}},
		settings: &settingsStub{},
		renderer: &rendererStub{content: []byte("%PDF-stub")},
		mailer:   &mailerStub{},
	}
	f.svc = New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Orders:   f.orders,
		Catalog:  f.catalog,
		Settings: f.settings,
		Document: holder,
		Renderer: f.renderer,
		Mailer:   f.mailer,
	})
	return f
}

func (f *fixture) seedOrder(t *testing.T, total, pct int64, status orderdomain.OrderStatus) orderdomain.Order {
	t.Helper()

	offeringID := f.node.Generate()
	f.catalog.offerings[offeringID.String()] = catalogdomain.Offering{
		ID:    offeringID,
		Name:  "Company Profile Website",
		Price: total,
	}

	dp := int64(0)
	if pct > 0 {
		dp = (total*pct + 50) / 100
	}
	order := orderdomain.Order{
		ID:                    f.node.Generate(),
		CustomerName:          "Budi Santoso",
		CustomerEmail:         "budi@example.com",
		ServiceID:             offeringID,
		Status:                status,
		TotalAmount:           total,
		DownpaymentPercentage: pct,
		DownpaymentAmount:     dp,
		RemainingAmount:       total - dp,
	}
	f.orders.orders[order.ID.String()] = order
	return order
}

func TestCreateFullInvoiceDefaultsFromOrder(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 5_000_000, 0, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	assert.Equal(t, order.ID, invoice.OrderID)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, int64(5_000_000), invoice.Subtotal)
	assert.Equal(t, int64(0), invoice.TaxAmount)
	assert.Equal(t, int64(5_000_000), invoice.TotalAmount)
	assert.Equal(t, int64(0), invoice.DownpaymentPercentage)

	want := fmt.Sprintf("INV-%s-0001", invoice.IssueDate.Format("20060102"))
	assert.Equal(t, want, invoice.InvoiceNumber)

	// Full invoices never touch the order's down-payment split.
	assert.Empty(t, f.orders.settled)
}

func TestCreateDownpaymentInvoiceSettlesOrder(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 10_000_000, 30, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeDownpayment,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3_000_000), invoice.Subtotal)
	assert.Equal(t, int64(3_000_000), invoice.TotalAmount)
	assert.Equal(t, int64(30), invoice.DownpaymentPercentage)

	require.Len(t, f.orders.settled, 1)
	assert.Equal(t, int64(3_000_000), f.orders.settled[0].DownpaymentAmount)
	assert.Equal(t, int64(7_000_000), f.orders.settled[0].RemainingAmount)
	assert.Equal(t, order.ID.String(), f.orders.settledIDs[0])
}

func TestCreateAppliesDefaultTaxRate(t *testing.T) {
	f := setup(t)
	rate := 1_100 // PPN 11%
	f.settings.settings.TaxRateBps = &rate
	order := f.seedOrder(t, 8_000_000, 0, orderdomain.OrderStatusCompleted)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8_000_000), invoice.Subtotal)
	assert.Equal(t, int64(880_000), invoice.TaxAmount)
	assert.Equal(t, int64(8_880_000), invoice.TotalAmount)
}

func TestCreateExplicitTaxOverridesDefault(t *testing.T) {
	f := setup(t)
	rate := 1_100
	f.settings.settings.TaxRateBps = &rate
	order := f.seedOrder(t, 8_000_000, 0, orderdomain.OrderStatusInProgress)

	tax := int64(800_000)
	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
		TaxAmount:   &tax,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(800_000), invoice.TaxAmount)
	assert.Equal(t, int64(8_800_000), invoice.TotalAmount)
}

func TestCreateExplicitSubtotalOverridesOrderAmounts(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 12_000_000, 0, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
		Subtotal:    15_000_000,
	})
	require.NoError(t, err)

	// The caller-provided subtotal beats the order total.
	assert.Equal(t, int64(15_000_000), invoice.Subtotal)
	assert.Equal(t, int64(15_000_000), invoice.TotalAmount)

	_, err = f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
		Subtotal:    -1,
	})
	var vErr *calc.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "subtotal", vErr.Field)
}

func TestCreateRejectsNonInvoiceableOrder(t *testing.T) {
	f := setup(t)

	for _, status := range []orderdomain.OrderStatus{
		orderdomain.OrderStatusPending,
		orderdomain.OrderStatusCancelled,
	} {
		order := f.seedOrder(t, 1_000_000, 0, status)
		_, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
			OrderID:     order.ID.String(),
			InvoiceType: domain.InvoiceTypeFull,
		})
		assert.ErrorIs(t, err, domain.ErrOrderNotInvoiceable, "status %s", status)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 1_000_000, 0, orderdomain.OrderStatusInProgress)

	_, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: "proforma",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestCreateSequenceIsMonotonic(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 2_000_000, 0, orderdomain.OrderStatusInProgress)

	first, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	date := first.IssueDate.Format("20060102")
	assert.Equal(t, fmt.Sprintf("INV-%s-0001", date), first.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("INV-%s-0002", date), second.InvoiceNumber)
}

func TestCreateSettlementFailureKeepsInvoice(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 10_000_000, 30, orderdomain.OrderStatusInProgress)
	f.orders.settleErr = errors.New("db gone")

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeDownpayment,
	})
	require.ErrorIs(t, err, domain.ErrSettlementFailed)
	assert.NotZero(t, invoice.ID)

	// The committed invoice survives the failed settlement.
	stored, getErr := f.svc.GetByID(context.Background(), invoice.ID.String())
	require.NoError(t, getErr)
	assert.Equal(t, invoice.InvoiceNumber, stored.InvoiceNumber)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 1_000_000, 0, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.InvoiceStatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	sent, err := f.svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.InvoiceStatusSent)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, sent.Status)

	overdue, err := f.svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.InvoiceStatusOverdue)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, overdue.Status)

	paid, err := f.svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)

	_, err = f.svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGetByIDNotFound(t *testing.T) {
	f := setup(t)

	_, err := f.svc.GetByID(context.Background(), f.node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.GetByID(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListJoinsOrderFields(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 10_000_000, 30, orderdomain.OrderStatusInProgress)

	_, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeDownpayment,
	})
	require.NoError(t, err)

	items, err := f.svc.List(context.Background(), domain.ListInvoiceRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Budi Santoso", items[0].CustomerName)
	assert.Equal(t, "budi@example.com", items[0].CustomerEmail)
	assert.Equal(t, "Company Profile Website", items[0].ServiceName)
	assert.Equal(t, order.RemainingAmount, items[0].OrderRemainingAmount)
}

func TestListFiltersByStatus(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 1_000_000, 0, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), invoice.ID.String(), domain.InvoiceStatusSent)
	require.NoError(t, err)

	sent, err := f.svc.List(context.Background(), domain.ListInvoiceRequest{
		Statuses: []domain.InvoiceStatus{domain.InvoiceStatusSent},
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, invoice.ID, sent[0].ID)

	_, err = f.svc.List(context.Background(), domain.ListInvoiceRequest{
		Statuses: []domain.InvoiceStatus{"bogus"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestRenderProducesNamedDocument(t *testing.T) {
	f := setup(t)
	f.settings.settings.CompanyName = "Santara Digital"
	order := f.seedOrder(t, 5_000_000, 0, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	rendered, err := f.svc.Render(context.Background(), invoice.ID.String())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber), rendered.Filename)
	assert.Equal(t, []byte("%PDF-stub"), rendered.Content)
	assert.Equal(t, 1, f.renderer.calls)
}

func TestSendMailsAndMarksSent(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 5_000_000, 0, orderdomain.OrderStatusInProgress)

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	sent, err := f.svc.Send(context.Background(), invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, sent.Status)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, []string{"budi@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, invoice.InvoiceNumber)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
	assert.Equal(t, []byte("%PDF-stub"), msg.Attachments[0].Content)
}

func TestSendFailureLeavesDraft(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 5_000_000, 0, orderdomain.OrderStatusInProgress)
	f.mailer.err = email.ErrDisabled

	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
	})
	require.NoError(t, err)

	_, err = f.svc.Send(context.Background(), invoice.ID.String())
	assert.ErrorIs(t, err, email.ErrDisabled)

	stored, err := f.svc.GetByID(context.Background(), invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, stored.Status)
}

func TestDueDateDefaultsFromDocumentConfig(t *testing.T) {
	f := setup(t)
	order := f.seedOrder(t, 1_000_000, 0, orderdomain.OrderStatusInProgress)

	issue := time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)
	invoice, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		OrderID:     order.ID.String(),
		InvoiceType: domain.InvoiceTypeFull,
		IssueDate:   &issue,
	})
	require.NoError(t, err)

	assert.Equal(t, issue, invoice.IssueDate)
	assert.Equal(t, issue.AddDate(0, 0, 30), invoice.DueDate)
}
