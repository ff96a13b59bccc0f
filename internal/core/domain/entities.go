package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists all valid user roles
func Roles() []string {
	return []string{
		string(RoleUser),
		string(RoleManager),
		string(RoleAdmin),
	}
}

// IsStaff reports whether the role carries back-office access
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists all valid booking statuses
func BookingStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusCompleted),
		string(StatusCancelled),
	}
}

// IsTerminal reports whether the status ends the booking lifecycle
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from one status to another follows the
// regular lifecycle (pending → confirmed|cancelled, confirmed → completed|cancelled).
// Admin status updates are NOT restricted to regular transitions; irregular
// ones are only logged. Owner cancellation uses the stricter rule that a
// completed booking is immutable.
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// EventType represents the kind of event a booking is for
type EventType string

const (
	EventWedding    EventType = "wedding"
	EventEngagement EventType = "engagement"
	EventBirthday   EventType = "birthday"
	EventGraduation EventType = "graduation"
	EventCorporate  EventType = "corporate"
	EventOther      EventType = "other"
)

// EventTypes lists all valid event types
func EventTypes() []string {
	return []string{
		string(EventWedding),
		string(EventEngagement),
		string(EventBirthday),
		string(EventGraduation),
		string(EventCorporate),
		string(EventOther),
	}
}

// LocationType represents where the catered event takes place
type LocationType string

const (
	LocationRestaurant LocationType = "restaurant"
	LocationHome       LocationType = "home"
	LocationVenue      LocationType = "venue"
	LocationOther      LocationType = "other"
)

// LocationTypes lists all valid location types
func LocationTypes() []string {
	return []string{
		string(LocationRestaurant),
		string(LocationHome),
		string(LocationVenue),
		string(LocationOther),
	}
}

// PaymentMethod represents how the customer intends to pay
type PaymentMethod string

const (
	PayLater     PaymentMethod = "pay_later"
	MobileMoney  PaymentMethod = "mobile_money"
	BankTransfer PaymentMethod = "bank_transfer"
)

// PaymentMethods lists all valid payment methods
func PaymentMethods() []string {
	return []string{
		string(PayLater),
		string(MobileMoney),
		string(BankTransfer),
	}
}

// PaymentMethodLabel returns the human-readable label for a payment method,
// used in the WhatsApp handoff message
func PaymentMethodLabel(m PaymentMethod) string {
	switch m {
	case PayLater:
		return "Pay Later"
	case MobileMoney:
		return "Mobile Money Transfer"
	case BankTransfer:
		return "Bank Transfer"
	default:
		return string(m)
	}
}

// PackageCategory represents a catering package tier
type PackageCategory string

const (
	CategoryBasic    PackageCategory = "basic"
	CategoryStandard PackageCategory = "standard"
	CategoryPremium  PackageCategory = "premium"
	CategoryLuxury   PackageCategory = "luxury"
	CategoryCustom   PackageCategory = "custom"
)

// PackageCategories lists all valid package categories
func PackageCategories() []string {
	return []string{
		string(CategoryBasic),
		string(CategoryStandard),
		string(CategoryPremium),
		string(CategoryLuxury),
		string(CategoryCustom),
	}
}

// InquiryTTL is how long an inquiry lead is kept before the sweeper removes it
const InquiryTTL = 7 * 24 * time.Hour
