package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"servicesales-pro/internal/models"
)

// book is an in-memory customer ledger that applies invoice changes the
// same way the invoice handlers do: one incremental delta per change.
type book struct {
	totalDebt float64
	invoices  map[string]models.Invoice
}

func newBook() *book {
	return &book{invoices: map[string]models.Invoice{}}
}

func (b *book) create(inv models.Invoice) {
	b.invoices[inv.ID] = inv
	b.totalDebt = ApplyDelta(b.totalDebt, Delta(nil, &inv))
}

func (b *book) update(id string, mutate func(*models.Invoice)) {
	old := b.invoices[id]
	updated := old
	mutate(&updated)
	b.invoices[id] = updated
	b.totalDebt = ApplyDelta(b.totalDebt, Delta(&old, &updated))
}

func (b *book) aggregate() float64 {
	all := make([]models.Invoice, 0, len(b.invoices))
	for _, inv := range b.invoices {
		inv.CustomerID = "c1"
		all = append(all, inv)
	}
	return RecomputeTotalDebt("c1", all)
}

func TestPaidInvoiceLeavesDebtUnchanged(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{ID: "i1", TotalAmount: 500000, PaidAmount: 500000, Status: models.InvoicePaid})
	require.Zero(t, b.totalDebt)
}

func TestCreatePaidButUnderpaidAddsNothing(t *testing.T) {
	// Marked PAID at checkout: the shortfall is the cashier's call, not a
	// receivable. Only CANCELLED and the unpaid remainder matter on edits.
	require.Zero(t, Delta(nil, &models.Invoice{TotalAmount: 300000, PaidAmount: 100000, Status: models.InvoicePaid}))

	b := newBook()
	b.create(models.Invoice{ID: "i1", TotalAmount: 300000, PaidAmount: 100000, Status: models.InvoicePaid})
	require.Zero(t, b.totalDebt)
}

func TestPartialInvoiceAddsRemainder(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{ID: "i1", TotalAmount: 300000, PaidAmount: 100000, Status: models.InvoicePartial})
	require.Equal(t, 200000.0, b.totalDebt)
}

func TestSettlingInvoiceRemovesItsContribution(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{ID: "i0", TotalAmount: 50000, PaidAmount: 0, Status: models.InvoiceUnpaid})
	before := b.totalDebt

	b.create(models.Invoice{ID: "i1", TotalAmount: 300000, PaidAmount: 100000, Status: models.InvoicePartial})
	require.Equal(t, before+200000, b.totalDebt)

	// Paying the invoice off returns the balance to its pre-invoice value.
	b.update("i1", func(inv *models.Invoice) {
		inv.PaidAmount = 300000
		inv.Status = models.InvoicePaid
	})
	require.Equal(t, before, b.totalDebt)
}

func TestCancellationRemovesPriorContribution(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{ID: "i1", TotalAmount: 400000, PaidAmount: 0, Status: models.InvoiceUnpaid})
	require.Equal(t, 400000.0, b.totalDebt)

	b.update("i1", func(inv *models.Invoice) {
		inv.Status = models.InvoiceCancelled
	})
	require.Zero(t, b.totalDebt)
}

func TestRepairCancellationCountsAsCancelled(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{
		ID: "r1", TotalAmount: 250000, PaidAmount: 0,
		Status: models.InvoiceUnpaid, InvoiceType: models.InvoiceRepair,
		RepairStatus: models.RepairQuoting,
	})
	require.Equal(t, 250000.0, b.totalDebt)

	b.update("r1", func(inv *models.Invoice) {
		inv.RepairStatus = models.RepairCancelled
	})
	require.Zero(t, b.totalDebt)
}

func TestBalanceNeverGoesNegative(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{ID: "i1", TotalAmount: 100000, PaidAmount: 0, Status: models.InvoiceUnpaid})

	// Overpaying contributes zero, not a negative amount.
	b.update("i1", func(inv *models.Invoice) {
		inv.PaidAmount = 150000
		inv.Status = models.InvoicePaid
	})
	require.Zero(t, b.totalDebt)

	// Even a delta computed against a balance that is already too low
	// clamps at zero.
	require.Zero(t, ApplyDelta(50000, -80000))
}

func TestSequentialEditsMatchFullAggregate(t *testing.T) {
	b := newBook()
	b.create(models.Invoice{ID: "i1", TotalAmount: 300000, PaidAmount: 100000, Status: models.InvoicePartial})
	b.create(models.Invoice{ID: "i2", TotalAmount: 500000, PaidAmount: 500000, Status: models.InvoicePaid})
	b.create(models.Invoice{ID: "i3", TotalAmount: 120000, PaidAmount: 0, Status: models.InvoiceUnpaid})

	b.update("i1", func(inv *models.Invoice) {
		inv.PaidAmount = 200000
	})
	b.update("i3", func(inv *models.Invoice) {
		inv.Status = models.InvoiceCancelled
	})

	// After any sequence of one-at-a-time creates and updates the running
	// balance equals the sum over non-cancelled invoices.
	require.Equal(t, b.aggregate(), b.totalDebt)
	require.Equal(t, 100000.0, b.totalDebt)
}

func TestRecomputeFiltersByCustomer(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "i1", CustomerID: "c1", TotalAmount: 100000, Status: models.InvoiceUnpaid},
		{ID: "i2", CustomerID: "c2", TotalAmount: 999999, Status: models.InvoiceUnpaid},
		{ID: "i3", CustomerID: "c1", TotalAmount: 50000, Status: models.InvoiceCancelled},
	}
	require.Equal(t, 100000.0, RecomputeTotalDebt("c1", invoices))
}

func TestSupplierDebt(t *testing.T) {
	po := &models.PurchaseOrder{TotalAmount: 2000000, PaidAmount: 500000}
	require.Equal(t, 1500000.0, SupplierDebt(po))

	overpaid := &models.PurchaseOrder{TotalAmount: 100000, PaidAmount: 150000}
	require.Zero(t, SupplierDebt(overpaid))
}
