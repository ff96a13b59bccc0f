package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingRepo, *fakePackageRepo, *fakeUserRepo) {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	packageRepo := newFakePackageRepo()
	userRepo := newFakeUserRepo()
	notify := NewNotificationService(testConfig())

	svc := NewBookingService(bookingRepo, packageRepo, userRepo, notify)
	return svc, bookingRepo, packageRepo, userRepo
}

func seedUser(t *testing.T, repo *fakeUserRepo) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Abebe Kebede",
		Email:    "abebe@example.com",
		Phone:    "+251911000000",
		Role:     string(domain.RoleUser),
		IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedPackage(t *testing.T, repo *fakePackageRepo, price, discount float64, active bool) *models.Package {
	t.Helper()
	pkg := &models.Package{
		Name:     "Gold Wedding",
		Price:    price,
		Discount: discount,
		Category: string(domain.CategoryPremium),
		IsActive: active,
	}
	require.NoError(t, repo.Create(context.Background(), pkg))
	return pkg
}

func TestBookingService_Create_SnapshotsDiscountedPrice(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 50000, 10, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:     string(domain.EventWedding),
		EventDate:     time.Now().AddDate(0, 1, 0),
		EventTime:     "18:00",
		LocationType:  string(domain.LocationVenue),
		PackageID:     pkg.ID,
		GuestCount:    150,
		PaymentMethod: string(domain.PayLater),
	}, user.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), result.Booking.Status)
	assert.Equal(t, float64(45000), result.Booking.TotalAmount)
	assert.True(t, strings.HasPrefix(result.WhatsAppLink, "https://wa.me/251911234567?text="))

	// Snapshot survives a later package edit
	pkg.Price = 99999
	assert.Equal(t, float64(45000), result.Booking.TotalAmount)
}

func TestBookingService_Create_CustomerSnapshotFromProfile(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:     string(domain.EventBirthday),
		EventDate:     time.Now().AddDate(0, 0, 14),
		LocationType:  string(domain.LocationHome),
		PackageID:     pkg.ID,
		PaymentMethod: string(domain.PayLater),
	}, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Name, result.Booking.CustomerName)
	assert.Equal(t, user.Email, result.Booking.CustomerEmail)
	assert.Equal(t, user.Phone, result.Booking.CustomerPhone)
}

func TestBookingService_Create_ExplicitCustomerWins(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:     string(domain.EventCorporate),
		EventDate:     time.Now().AddDate(0, 0, 30),
		LocationType:  string(domain.LocationRestaurant),
		PackageID:     pkg.ID,
		PaymentMethod: string(domain.BankTransfer),
		CustomerName:  "Office Events Team",
		CustomerEmail: "events@corp.example.com",
	}, user.ID)

	require.NoError(t, err)
	assert.Equal(t, "Office Events Team", result.Booking.CustomerName)
	assert.Equal(t, "events@corp.example.com", result.Booking.CustomerEmail)
	// Phone was not supplied, still falls back to the profile
	assert.Equal(t, user.Phone, result.Booking.CustomerPhone)
}

func TestBookingService_Create_PackageNotFound(t *testing.T) {
	svc, _, _, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)

	_, err := svc.Create(context.Background(), &CreateBookingInput{
		PackageID:     999,
		PaymentMethod: string(domain.PayLater),
	}, user.ID)

	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestBookingService_Create_InactivePackageRejected(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, false)

	_, err := svc.Create(context.Background(), &CreateBookingInput{
		PackageID:     pkg.ID,
		PaymentMethod: string(domain.PayLater),
	}, user.ID)

	assert.ErrorIs(t, err, ErrPackageUnavailable)
}

func TestBookingService_Create_NegativeAdvanceCoerced(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:      string(domain.EventOther),
		EventDate:      time.Now().AddDate(0, 0, 7),
		LocationType:   string(domain.LocationOther),
		PackageID:      pkg.ID,
		PaymentMethod:  string(domain.MobileMoney),
		AdvancePayment: -500,
	}, user.ID)

	require.NoError(t, err)
	assert.Equal(t, float64(0), result.Booking.AdvancePayment)
}

func TestBookingService_GetByID_OwnershipGate(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	owner := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:     string(domain.EventGraduation),
		EventDate:     time.Now().AddDate(0, 0, 7),
		LocationType:  string(domain.LocationVenue),
		PackageID:     pkg.ID,
		PaymentMethod: string(domain.PayLater),
	}, owner.ID)
	require.NoError(t, err)
	id := result.Booking.ID

	// Owner can read it
	_, err = svc.GetByID(context.Background(), id, owner.ID, domain.RoleUser)
	assert.NoError(t, err)

	// A stranger cannot
	_, err = svc.GetByID(context.Background(), id, owner.ID+1, domain.RoleUser)
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	// Staff can
	_, err = svc.GetByID(context.Background(), id, owner.ID+1, domain.RoleManager)
	assert.NoError(t, err)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	svc, bookingRepo, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:     string(domain.EventWedding),
		EventDate:     time.Now().AddDate(0, 0, 7),
		LocationType:  string(domain.LocationVenue),
		PackageID:     pkg.ID,
		PaymentMethod: string(domain.PayLater),
	}, user.ID)
	require.NoError(t, err)
	id := result.Booking.ID

	notes := "Deposit received by phone"
	updated, err := svc.UpdateStatus(context.Background(), id, &UpdateStatusInput{
		Status:     string(domain.StatusConfirmed),
		AdminNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), updated.Status)
	assert.Equal(t, notes, updated.AdminNotes)

	// Unknown status is rejected
	_, err = svc.UpdateStatus(context.Background(), id, &UpdateStatusInput{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Irregular transitions are permitted (back office override)
	_, err = svc.UpdateStatus(context.Background(), id, &UpdateStatusInput{Status: string(domain.StatusPending)})
	assert.NoError(t, err)

	stored, _ := bookingRepo.GetByID(context.Background(), id)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestBookingService_UpdatePayment_OwnerOnly(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	owner := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	result, err := svc.Create(context.Background(), &CreateBookingInput{
		EventType:     string(domain.EventWedding),
		EventDate:     time.Now().AddDate(0, 0, 7),
		LocationType:  string(domain.LocationVenue),
		PackageID:     pkg.ID,
		PaymentMethod: string(domain.PayLater),
	}, owner.ID)
	require.NoError(t, err)
	id := result.Booking.ID

	method := string(domain.MobileMoney)
	advance := 2500.0
	ref := "TXN-00042"

	updated, err := svc.UpdatePayment(context.Background(), id, owner.ID, &UpdatePaymentInput{
		PaymentMethod:  &method,
		AdvancePayment: &advance,
		PaymentRef:     &ref,
	})
	require.NoError(t, err)
	assert.Equal(t, method, updated.PaymentMethod)
	assert.Equal(t, advance, updated.AdvancePayment)
	assert.Equal(t, ref, updated.PaymentRef)

	// Not even for another user
	_, err = svc.UpdatePayment(context.Background(), id, owner.ID+1, &UpdatePaymentInput{PaymentRef: &ref})
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	// Negative advance clamps to zero
	negative := -100.0
	updated, err = svc.UpdatePayment(context.Background(), id, owner.ID, &UpdatePaymentInput{AdvancePayment: &negative})
	require.NoError(t, err)
	assert.Equal(t, float64(0), updated.AdvancePayment)
}

func TestBookingService_Cancel(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	owner := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 10000, 0, true)

	create := func() uint {
		result, err := svc.Create(context.Background(), &CreateBookingInput{
			EventType:     string(domain.EventWedding),
			EventDate:     time.Now().AddDate(0, 0, 7),
			LocationType:  string(domain.LocationVenue),
			PackageID:     pkg.ID,
			PaymentMethod: string(domain.PayLater),
		}, owner.ID)
		require.NoError(t, err)
		return result.Booking.ID
	}

	// Owner cancel
	id := create()
	booking, err := svc.Cancel(context.Background(), id, owner.ID, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), booking.Status)

	// Cancelling again is a silent no-op
	booking, err = svc.Cancel(context.Background(), id, owner.ID, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), booking.Status)

	// A stranger may not cancel, an admin may
	id = create()
	_, err = svc.Cancel(context.Background(), id, owner.ID+1, domain.RoleUser)
	assert.ErrorIs(t, err, ErrNotBookingOwner)
	_, err = svc.Cancel(context.Background(), id, owner.ID+1, domain.RoleAdmin)
	assert.NoError(t, err)

	// Completed bookings are immutable
	id = create()
	_, err = svc.UpdateStatus(context.Background(), id, &UpdateStatusInput{Status: string(domain.StatusCompleted)})
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), id, owner.ID, domain.RoleUser)
	assert.ErrorIs(t, err, ErrBookingCompleted)
}

func TestBookingService_List_StaffGate(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	_, _, err := svc.List(context.Background(), &ListBookingsInput{Limit: 10}, domain.RoleUser)
	assert.ErrorIs(t, err, ErrStaffOnly)

	_, _, err = svc.List(context.Background(), &ListBookingsInput{Limit: 10}, domain.RoleManager)
	assert.NoError(t, err)
}

func TestBookingService_Stats(t *testing.T) {
	svc, _, packageRepo, userRepo := newBookingFixture(t)
	user := seedUser(t, userRepo)
	pkg := seedPackage(t, packageRepo, 20000, 0, true)

	var ids []uint
	for i := 0; i < 3; i++ {
		result, err := svc.Create(context.Background(), &CreateBookingInput{
			EventType:     string(domain.EventWedding),
			EventDate:     time.Now().AddDate(0, 0, 7+i),
			LocationType:  string(domain.LocationVenue),
			PackageID:     pkg.ID,
			PaymentMethod: string(domain.PayLater),
		}, user.ID)
		require.NoError(t, err)
		ids = append(ids, result.Booking.ID)
	}

	_, err := svc.UpdateStatus(context.Background(), ids[0], &UpdateStatusInput{Status: string(domain.StatusCompleted)})
	require.NoError(t, err)

	_, err = svc.Stats(context.Background(), domain.RoleUser)
	assert.ErrorIs(t, err, ErrStaffOnly)

	stats, err := svc.Stats(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus[string(domain.StatusCompleted)])
	assert.Equal(t, int64(2), stats.ByStatus[string(domain.StatusPending)])
	assert.Equal(t, int64(0), stats.ByStatus[string(domain.StatusCancelled)])
	assert.Equal(t, float64(20000), stats.CompletedTotal)
	assert.Len(t, stats.Recent, 3)
}
