package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/repositories"
	"github.com/mame12b/lyan-restaurant-sub000/internal/config"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes. They return gorm.ErrRecordNotFound for missing
// rows so the services' errors.Is mapping is exercised the same way it is
// against MySQL.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*models.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]*models.User, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, r.users[id])
	}
	return out, int64(len(r.users)), nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if t, ok := r.tokens[tokenHash]; ok {
		now := time.Now()
		t.RevokedAt = &now
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	for _, t := range r.tokens {
		if t.UserID == userID {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for hash, t := range r.tokens {
		if t.ExpiresAt.Before(time.Now()) {
			delete(r.tokens, hash)
			n++
		}
	}
	return n, nil
}

type fakePackageRepo struct {
	packages map[uint]*models.Package
	nextID   uint
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: make(map[uint]*models.Package), nextID: 1}
}

func (r *fakePackageRepo) Create(_ context.Context, pkg *models.Package) error {
	pkg.ID = r.nextID
	r.nextID++
	pkg.CreatedAt = time.Now()
	r.packages[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id uint) (*models.Package, error) {
	p, ok := r.packages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePackageRepo) Update(_ context.Context, pkg *models.Package) error {
	if _, ok := r.packages[pkg.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.packages[pkg.ID] = pkg
	return nil
}

func (r *fakePackageRepo) Delete(_ context.Context, id uint) error {
	delete(r.packages, id)
	return nil
}

func (r *fakePackageRepo) List(_ context.Context, filter repositories.PackageFilter, offset, limit int) ([]*models.Package, int64, error) {
	matched := make([]*models.Package, 0)
	for _, p := range r.packages {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakePackageRepo) Featured(_ context.Context, limit int) ([]*models.Package, error) {
	active := make([]*models.Package, 0)
	for _, p := range r.packages {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Discount > active[j].Discount })
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

type fakeBookingRepo struct {
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uint]*models.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter repositories.BookingFilter, offset, limit int) ([]*models.Booking, int64, error) {
	matched := make([]*models.Booking, 0)
	for _, b := range r.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.EventType != "" && b.EventType != filter.EventType {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Booking, int64, error) {
	matched := make([]*models.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, st := range domain.BookingStatuses() {
		counts[st] = 0
	}
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Recent(_ context.Context, limit int) ([]*models.Booking, error) {
	all := make([]*models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeBookingRepo) SumCompletedAmount(_ context.Context) (float64, error) {
	var sum float64
	for _, b := range r.bookings {
		if b.Status == string(domain.StatusCompleted) {
			sum += b.TotalAmount
		}
	}
	return sum, nil
}

type fakeInquiryRepo struct {
	inquiries map[uint]*models.Inquiry
	nextID    uint
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{inquiries: make(map[uint]*models.Inquiry), nextID: 1}
}

func (r *fakeInquiryRepo) Create(_ context.Context, inquiry *models.Inquiry) error {
	inquiry.ID = r.nextID
	r.nextID++
	inquiry.CreatedAt = time.Now()
	if inquiry.ExpiresAt.IsZero() {
		inquiry.ExpiresAt = time.Now().Add(domain.InquiryTTL)
	}
	r.inquiries[inquiry.ID] = inquiry
	return nil
}

func (r *fakeInquiryRepo) GetByID(_ context.Context, id uint) (*models.Inquiry, error) {
	i, ok := r.inquiries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *fakeInquiryRepo) Delete(_ context.Context, id uint) error {
	delete(r.inquiries, id)
	return nil
}

func (r *fakeInquiryRepo) List(_ context.Context, offset, limit int) ([]*models.Inquiry, int64, error) {
	all := make([]*models.Inquiry, 0, len(r.inquiries))
	for _, i := range r.inquiries {
		all = append(all, i)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeInquiryRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, i := range r.inquiries {
		if i.ExpiresAt.Before(now) {
			delete(r.inquiries, id)
			n++
		}
	}
	return n, nil
}

// testConfig returns a config suitable for service tests: deep links enabled,
// Twilio disabled.
func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		WhatsApp: config.WhatsAppConfig{
			ContactNumber: "251911234567",
			Currency:      "ETB",
		},
	}
}
