package models

import "time"

// ServiceType identifies which payload variant a booking carries.
type ServiceType string

const (
	ServiceVisaApplication ServiceType = "visa-application"
	ServiceFlightBooking   ServiceType = "flight-booking"
	ServiceHotelBooking    ServiceType = "hotel-booking"
	ServiceConcierge       ServiceType = "concierge"
	ServiceCorporateTravel ServiceType = "corporate-travel"
	ServiceConsultation    ServiceType = "consultation"
	ServicePackageRequest  ServiceType = "package-request"
)

// IsValid reports whether st is one of the known service types.
func (st ServiceType) IsValid() bool {
	switch st {
	case ServiceVisaApplication, ServiceFlightBooking, ServiceHotelBooking,
		ServiceConcierge, ServiceCorporateTravel, ServiceConsultation, ServicePackageRequest:
		return true
	}
	return false
}

// Code returns the three-letter code used in reference numbers.
func (st ServiceType) Code() string {
	switch st {
	case ServiceVisaApplication:
		return "VIS"
	case ServiceFlightBooking:
		return "FLT"
	case ServiceHotelBooking:
		return "HTL"
	case ServiceConcierge:
		return "CON"
	case ServiceCorporateTravel:
		return "CRP"
	case ServiceConsultation:
		return "CST"
	case ServicePackageRequest:
		return "PKG"
	}
	return "GEN"
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusProcessing BookingStatus = "processing"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusOnHold     BookingStatus = "on-hold"
)

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving to next.
// The main path is pending -> processing -> confirmed -> completed;
// cancelled and on-hold are reachable from any non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s.IsTerminal() || s == next {
		return false
	}
	switch next {
	case StatusCancelled, StatusOnHold:
		return true
	case StatusPending:
		return s == StatusOnHold
	case StatusProcessing:
		return s == StatusPending || s == StatusOnHold
	case StatusConfirmed:
		return s == StatusProcessing || s == StatusOnHold
	case StatusCompleted:
		return s == StatusConfirmed
	}
	return false
}

// StatusChange is one entry in the append-only audit trail.
type StatusChange struct {
	PreviousStatus BookingStatus `bson:"previous_status" json:"previousStatus"`
	NewStatus      BookingStatus `bson:"new_status" json:"newStatus"`
	ChangedBy      string        `bson:"changed_by" json:"changedBy"`
	ChangedAt      time.Time     `bson:"changed_at" json:"changedAt"`
	Reason         string        `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Milestones records the first time each lifecycle stage was reached.
// Stamped once and never overwritten on repeat transitions.
type Milestones struct {
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processedAt,omitempty"`
	ConfirmedAt *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}

// Customer holds the contact details captured at submission.
type Customer struct {
	Name           string `bson:"name" json:"name"`
	Email          string `bson:"email" json:"email"`
	Phone          string `bson:"phone" json:"phone"`
	Address        string `bson:"address,omitempty" json:"address,omitempty"`
	Nationality    string `bson:"nationality,omitempty" json:"nationality,omitempty"`
	PassportNumber string `bson:"passport_number,omitempty" json:"passportNumber,omitempty"`
}

// Booking is the aggregate root for one customer's service request.
// id, referenceNumber, serviceType and submittedAt are immutable after
// creation; status changes only through the transition operation and the
// payment ledger only through RecordTransaction. Bookings are never
// physically deleted: cancellation is a status.
type Booking struct {
	ID              string         `bson:"id" json:"id"`
	ReferenceNumber string         `bson:"reference_number" json:"referenceNumber"`
	ServiceType     ServiceType    `bson:"service_type" json:"serviceType"`
	Details         BookingDetails `bson:"details" json:"details"`
	Customer        Customer       `bson:"customer" json:"customer"`

	Status        BookingStatus  `bson:"status" json:"status"`
	StatusHistory []StatusChange `bson:"status_history" json:"statusHistory"`
	Milestones    Milestones     `bson:"milestones" json:"milestones"`

	Payment PaymentDetails `bson:"payment" json:"payment"`

	Priority      string   `bson:"priority,omitempty" json:"priority,omitempty"`
	AssignedTo    string   `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	Tags          []string `bson:"tags,omitempty" json:"tags,omitempty"`
	InternalNotes string   `bson:"internal_notes,omitempty" json:"internalNotes,omitempty"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`

	// Version backs the optimistic-concurrency check on writes.
	Version int64 `bson:"version" json:"-"`
}
