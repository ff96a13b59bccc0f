package models

import (
	"math"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents the users table
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;size:100;not null" json:"email"` // stored lowercase
	Phone           string         `gorm:"size:20" json:"phone"`
	Password        string         `gorm:"size:255;not null" json:"-"`
	Role            string         `gorm:"size:20;default:'user'" json:"role"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	ResetTokenHash  *string        `gorm:"size:255" json:"-"`
	ResetTokenExp   *time.Time     `json:"-"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catering Packages
// ============================================================

// Package represents the packages table
type Package struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	Discount    float64        `gorm:"type:decimal(5,2);default:0" json:"discount"` // percent [0,100]
	Category    string         `gorm:"size:20;index;not null" json:"category"`
	Features    []string       `gorm:"serializer:json" json:"features"`
	EventTypes  []string       `gorm:"serializer:json" json:"event_types"`
	MaxGuests   int            `gorm:"default:0" json:"max_guests"`
	ImageURL    string         `gorm:"size:255" json:"image_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Package) TableName() string {
	return "packages"
}

// DiscountedPrice returns the effective price after discount, rounded down.
// Always recomputed, never stored.
func (p *Package) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return math.Floor(p.Price * (100 - p.Discount) / 100)
}

// PackageResponse DTO
type PackageResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	Discount        float64   `json:"discount"`
	DiscountedPrice float64   `json:"discounted_price"`
	Category        string    `json:"category"`
	Features        []string  `json:"features"`
	EventTypes      []string  `json:"event_types"`
	MaxGuests       int       `json:"max_guests"`
	ImageURL        string    `json:"image_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p *Package) ToResponse() *PackageResponse {
	return &PackageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Discount:        p.Discount,
		DiscountedPrice: p.DiscountedPrice(),
		Category:        p.Category,
		Features:        p.Features,
		EventTypes:      p.EventTypes,
		MaxGuests:       p.MaxGuests,
		ImageURL:        p.ImageURL,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

// ============================================================
// Bookings
// ============================================================

// Booking represents the bookings table. Customer fields and TotalAmount are
// snapshots taken at creation; later profile or package edits do not touch them.
type Booking struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	CustomerName    string         `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail   string         `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone   string         `gorm:"size:20" json:"customer_phone"`
	EventType       string         `gorm:"size:20;index;not null" json:"event_type"`
	EventDate       time.Time      `gorm:"index;not null" json:"event_date"`
	EventTime       string         `gorm:"size:5" json:"event_time"`
	LocationType    string         `gorm:"size:20;not null" json:"location_type"`
	Address         string         `gorm:"size:255" json:"address,omitempty"`
	PackageID       uint           `gorm:"index;not null" json:"package_id"`
	GuestCount      int            `gorm:"default:0" json:"guest_count"`
	PaymentMethod   string         `gorm:"size:20;not null" json:"payment_method"`
	AdvancePayment  float64        `gorm:"type:decimal(12,2);default:0" json:"advance_payment"`
	PaymentRef      string         `gorm:"size:100" json:"payment_ref,omitempty"`
	ReceiptRef      string         `gorm:"size:100" json:"receipt_ref,omitempty"`
	TotalAmount     float64        `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status          string         `gorm:"size:20;index;default:'pending'" json:"status"`
	AdminNotes      string         `gorm:"size:500" json:"admin_notes,omitempty"`
	SpecialRequests string         `gorm:"size:1000" json:"special_requests,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Package Package `gorm:"foreignKey:PackageID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsOwnedBy reports whether the booking belongs to the given user
func (b *Booking) IsOwnedBy(userID uint) bool {
	return b.UserID == userID
}

// BookingResponse DTO with the package expanded
type BookingResponse struct {
	ID              uint             `json:"id"`
	UserID          uint             `json:"user_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	EventType       string           `json:"event_type"`
	EventDate       time.Time        `json:"event_date"`
	EventTime       string           `json:"event_time,omitempty"`
	LocationType    string           `json:"location_type"`
	Address         string           `json:"address,omitempty"`
	GuestCount      int              `json:"guest_count,omitempty"`
	PaymentMethod   string           `json:"payment_method"`
	AdvancePayment  float64          `json:"advance_payment"`
	PaymentRef      string           `json:"payment_ref,omitempty"`
	ReceiptRef      string           `json:"receipt_ref,omitempty"`
	TotalAmount     float64          `json:"total_amount"`
	Status          string           `json:"status"`
	AdminNotes      string           `json:"admin_notes,omitempty"`
	SpecialRequests string           `json:"special_requests,omitempty"`
	Package         *PackageResponse `json:"package,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		EventType:       b.EventType,
		EventDate:       b.EventDate,
		EventTime:       b.EventTime,
		LocationType:    b.LocationType,
		Address:         b.Address,
		GuestCount:      b.GuestCount,
		PaymentMethod:   b.PaymentMethod,
		AdvancePayment:  b.AdvancePayment,
		PaymentRef:      b.PaymentRef,
		ReceiptRef:      b.ReceiptRef,
		TotalAmount:     b.TotalAmount,
		Status:          b.Status,
		AdminNotes:      b.AdminNotes,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Package.ID != 0 {
		resp.Package = b.Package.ToResponse()
	}
	return resp
}

// ============================================================
// Inquiries
// ============================================================

// Inquiry represents the inquiries table. Inquiries are time-boxed leads:
// the sweeper hard-deletes expired rows, so there is no soft delete here.
type Inquiry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Phone      string    `gorm:"size:20" json:"phone,omitempty"`
	EventDate  time.Time `json:"event_date"`
	GuestCount int       `gorm:"default:0" json:"guest_count"`
	Location   string    `gorm:"size:255" json:"location,omitempty"`
	Notes      string    `gorm:"size:1000" json:"notes,omitempty"`
	PackageID  *uint     `gorm:"index" json:"package_id,omitempty"`
	ExpiresAt  time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate stamps the expiry for the sweeper
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ExpiresAt.IsZero() {
		i.ExpiresAt = time.Now().Add(domain.InquiryTTL)
	}
	return nil
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Package{},
		&Booking{},
		&Inquiry{},
	)
}
