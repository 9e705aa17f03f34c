package repair

import (
	"testing"

	"github.com/stretchr/testify/require"

	"servicesales-pro/internal/models"
)

func newIntake() IntakeInput {
	return IntakeInput{
		CustomerID:   "c1",
		CustomerName: "Anh Minh",
		Device: models.DeviceInfo{
			DeviceName: "Laptop Dell XPS 13",
			Symptoms:   "Không lên nguồn",
		},
	}
}

func TestNewTicketStartsReceived(t *testing.T) {
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)
	require.Equal(t, models.RepairReceived, ticket.RepairStatus)
	require.Equal(t, models.InvoiceRepair, ticket.InvoiceType)
	require.Equal(t, models.InvoiceUnpaid, ticket.Status)
	require.Empty(t, ticket.Items)
	require.Zero(t, ticket.TotalAmount)
	require.Zero(t, ticket.PaidAmount)
	require.Equal(t, models.WarehouseTayPhat, ticket.Warehouse)
	require.NotEmpty(t, ticket.ID)
}

func TestNewTicketRejectsMissingDeviceName(t *testing.T) {
	in := newIntake()
	in.Device.DeviceName = ""
	ticket, err := NewTicket(in)
	require.ErrorIs(t, err, ErrMissingDeviceName)
	require.Nil(t, ticket)
}

func TestNewTicketRejectsMissingCustomer(t *testing.T) {
	in := newIntake()
	in.CustomerID = ""
	ticket, err := NewTicket(in)
	require.ErrorIs(t, err, ErrMissingCustomer)
	require.Nil(t, ticket)
}

func TestAutoAdvanceChain(t *testing.T) {
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)

	// Save with no diagnosis and no items: stays RECEIVED.
	require.NoError(t, Transition(ticket, SaveInput{}))
	require.Equal(t, models.RepairReceived, ticket.RepairStatus)

	// Diagnosis added: advances to CHECKING.
	require.NoError(t, Transition(ticket, SaveInput{Diagnosis: "Hỏng nguồn"}))
	require.Equal(t, models.RepairChecking, ticket.RepairStatus)

	// One line item added: advances to QUOTING and recomputes the total.
	items := []models.InvoiceItem{
		{ProductID: "p1", ProductName: "Nguồn laptop", Quantity: 1, Price: 450000, Type: models.ProductGoods},
	}
	require.NoError(t, Transition(ticket, SaveInput{Diagnosis: "Hỏng nguồn", Items: items}))
	require.Equal(t, models.RepairQuoting, ticket.RepairStatus)
	require.Equal(t, 450000.0, ticket.TotalAmount)
}

func TestAutoAdvanceNeverRegresses(t *testing.T) {
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)

	target := models.RepairInProgress
	require.NoError(t, Transition(ticket, SaveInput{Target: &target}))
	require.Equal(t, models.RepairInProgress, ticket.RepairStatus)

	// A later save with only a diagnosis must not pull it back to CHECKING.
	require.NoError(t, Transition(ticket, SaveInput{Diagnosis: "Thay nguồn"}))
	require.Equal(t, models.RepairInProgress, ticket.RepairStatus)
}

func TestExplicitTransitionAnyOrder(t *testing.T) {
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)

	// Direct jumps are allowed, including backwards.
	for _, target := range []models.RepairStatus{
		models.RepairWaitingParts,
		models.RepairChecking,
		models.RepairCompleted,
	} {
		target := target
		require.NoError(t, Transition(ticket, SaveInput{Target: &target}))
		require.Equal(t, target, ticket.RepairStatus)
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)

	bogus := models.RepairStatus("EXPLODED")
	require.ErrorIs(t, Transition(ticket, SaveInput{Target: &bogus}), ErrUnknownStatus)
}

func TestTerminalTicketsAreClosed(t *testing.T) {
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)

	cancelled := models.RepairCancelled
	require.NoError(t, Transition(ticket, SaveInput{Target: &cancelled}))
	require.ErrorIs(t, Transition(ticket, SaveInput{}), ErrTicketClosed)
	require.ErrorIs(t, Settle(ticket, nil, 0, "emp3"), ErrTicketClosed)
}

func TestSettleFromEarlyStateIsDirect(t *testing.T) {
	// Settlement forces DELIVERED without passing through the
	// intermediate states.
	ticket, err := NewTicket(newIntake())
	require.NoError(t, err)

	items := []models.InvoiceItem{
		{ProductID: "s1", ProductName: "Cài Win + Vệ sinh", Quantity: 1, Price: 150000, Type: models.ProductService},
	}
	require.NoError(t, Settle(ticket, items, 150000, "emp3"))
	require.Equal(t, models.RepairDelivered, ticket.RepairStatus)
	require.Equal(t, models.InvoicePaid, ticket.Status)
	require.Equal(t, 150000.0, ticket.PaidAmount)
	require.Equal(t, "emp3", ticket.SalesID)
}

func TestSettlePaymentDerivation(t *testing.T) {
	items := []models.InvoiceItem{
		{ProductID: "p1", ProductName: "Màn hình", Quantity: 2, Price: 100000, Type: models.ProductGoods},
	}

	tests := []struct {
		name       string
		payment    float64
		wantStatus models.InvoiceStatus
		wantPaid   float64
	}{
		{"full payment", 200000, models.InvoicePaid, 200000},
		{"overpayment is clamped", 250000, models.InvoicePaid, 200000},
		{"partial payment", 50000, models.InvoicePartial, 50000},
		{"no payment", 0, models.InvoiceUnpaid, 0},
		{"negative payment treated as none", -10, models.InvoiceUnpaid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := NewTicket(newIntake())
			require.NoError(t, err)
			require.NoError(t, Settle(ticket, items, tt.payment, "emp1"))
			require.Equal(t, tt.wantStatus, ticket.Status)
			require.Equal(t, tt.wantPaid, ticket.PaidAmount)
			require.Equal(t, models.RepairDelivered, ticket.RepairStatus)
		})
	}
}

func TestTransitionRejectsSaleInvoice(t *testing.T) {
	sale := &models.Invoice{InvoiceType: models.InvoiceSale}
	require.ErrorIs(t, Transition(sale, SaveInput{}), ErrNotRepairTicket)
	require.ErrorIs(t, Settle(sale, nil, 0, ""), ErrNotRepairTicket)
}
