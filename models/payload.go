package models

import "time"

// FieldErrors collects per-field validation failures.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// ServicePayload is the variant interface implemented by each
// service-specific detail struct.
type ServicePayload interface {
	ServiceType() ServiceType
	Validate() FieldErrors
}

// BookingDetails holds exactly one payload variant. The populated variant
// must match the booking's serviceType; Validate enforces both.
type BookingDetails struct {
	Visa         *VisaDetails         `bson:"visa,omitempty" json:"visa,omitempty"`
	Flight       *FlightDetails       `bson:"flight,omitempty" json:"flight,omitempty"`
	Hotel        *HotelDetails        `bson:"hotel,omitempty" json:"hotel,omitempty"`
	Concierge    *ConciergeDetails    `bson:"concierge,omitempty" json:"concierge,omitempty"`
	Corporate    *CorporateDetails    `bson:"corporate,omitempty" json:"corporate,omitempty"`
	Consultation *ConsultationDetails `bson:"consultation,omitempty" json:"consultation,omitempty"`
	Package      *PackageDetails      `bson:"package,omitempty" json:"package,omitempty"`
}

// Payload returns the single populated variant, or nil if none or more than
// one is set.
func (d BookingDetails) Payload() ServicePayload {
	var found ServicePayload
	for _, p := range d.variants() {
		if p == nil {
			continue
		}
		if found != nil {
			return nil
		}
		found = p
	}
	return found
}

func (d BookingDetails) variants() []ServicePayload {
	out := make([]ServicePayload, 0, 7)
	if d.Visa != nil {
		out = append(out, d.Visa)
	}
	if d.Flight != nil {
		out = append(out, d.Flight)
	}
	if d.Hotel != nil {
		out = append(out, d.Hotel)
	}
	if d.Concierge != nil {
		out = append(out, d.Concierge)
	}
	if d.Corporate != nil {
		out = append(out, d.Corporate)
	}
	if d.Consultation != nil {
		out = append(out, d.Consultation)
	}
	if d.Package != nil {
		out = append(out, d.Package)
	}
	return out
}

// Validate checks that exactly one variant is set, that its tag matches the
// declared service type, and that its required fields hold.
func (d BookingDetails) Validate(st ServiceType) FieldErrors {
	fe := FieldErrors{}
	p := d.Payload()
	if p == nil {
		fe.Add("details", "exactly one service payload must be provided")
		return fe
	}
	if p.ServiceType() != st {
		fe.Add("details", "payload variant does not match serviceType")
		return fe
	}
	return p.Validate()
}

// VisaDetails is the visa-application payload.
type VisaDetails struct {
	Nationality    string     `bson:"nationality" json:"nationality"`
	Destination    string     `bson:"destination" json:"destination"`
	TravelDate     time.Time  `bson:"travel_date" json:"travelDate"`
	ReturnDate     *time.Time `bson:"return_date,omitempty" json:"returnDate,omitempty"`
	Purpose        string     `bson:"purpose,omitempty" json:"purpose,omitempty"`
	PassportNumber string     `bson:"passport_number" json:"passportNumber"`
	PassportExpiry time.Time  `bson:"passport_expiry" json:"passportExpiry"`
	DateOfBirth    time.Time  `bson:"date_of_birth" json:"dateOfBirth"`
}

func (v *VisaDetails) ServiceType() ServiceType { return ServiceVisaApplication }

func (v *VisaDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if v.Nationality == "" {
		fe.Add("nationality", "nationality is required")
	}
	if v.Destination == "" {
		fe.Add("destination", "destination is required")
	}
	if v.TravelDate.IsZero() {
		fe.Add("travelDate", "travel date is required")
	}
	if v.PassportNumber == "" {
		fe.Add("passportNumber", "passport number is required")
	}
	if v.PassportExpiry.IsZero() {
		fe.Add("passportExpiry", "passport expiry is required")
	}
	if v.DateOfBirth.IsZero() {
		fe.Add("dateOfBirth", "date of birth is required")
	}
	if !v.TravelDate.IsZero() && !v.PassportExpiry.IsZero() && !v.PassportExpiry.After(v.TravelDate) {
		fe.Add("passportExpiry", "passport must be valid beyond the travel date")
	}
	return fe
}

// FlightDetails is the flight-booking payload.
type FlightDetails struct {
	Departure     string     `bson:"departure" json:"departure"`
	Destination   string     `bson:"destination" json:"destination"`
	DepartureDate time.Time  `bson:"departure_date" json:"departureDate"`
	ReturnDate    *time.Time `bson:"return_date,omitempty" json:"returnDate,omitempty"`
	Passengers    int        `bson:"passengers" json:"passengers"`
	CabinClass    string     `bson:"cabin_class" json:"cabinClass"`
}

func (f *FlightDetails) ServiceType() ServiceType { return ServiceFlightBooking }

func (f *FlightDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if f.Departure == "" {
		fe.Add("departure", "departure is required")
	}
	if f.Destination == "" {
		fe.Add("destination", "destination is required")
	}
	if f.DepartureDate.IsZero() {
		fe.Add("departureDate", "departure date is required")
	}
	if f.Passengers < 1 {
		fe.Add("passengers", "at least one passenger is required")
	}
	switch f.CabinClass {
	case "economy", "premium-economy", "business", "first":
	default:
		fe.Add("cabinClass", "cabin class must be one of economy, premium-economy, business, first")
	}
	if f.ReturnDate != nil && !f.DepartureDate.IsZero() && f.ReturnDate.Before(f.DepartureDate) {
		fe.Add("returnDate", "return date must not precede departure")
	}
	return fe
}

// HotelDetails is the hotel-booking payload.
type HotelDetails struct {
	Destination     string    `bson:"destination" json:"destination"`
	CheckIn         time.Time `bson:"check_in" json:"checkIn"`
	CheckOut        time.Time `bson:"check_out" json:"checkOut"`
	Guests          int       `bson:"guests" json:"guests"`
	Rooms           int       `bson:"rooms" json:"rooms"`
	HotelPreference string    `bson:"hotel_preference,omitempty" json:"hotelPreference,omitempty"`
}

func (h *HotelDetails) ServiceType() ServiceType { return ServiceHotelBooking }

func (h *HotelDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if h.Destination == "" {
		fe.Add("destination", "destination is required")
	}
	if h.CheckIn.IsZero() {
		fe.Add("checkIn", "check-in date is required")
	}
	if h.CheckOut.IsZero() {
		fe.Add("checkOut", "check-out date is required")
	}
	if !h.CheckIn.IsZero() && !h.CheckOut.IsZero() && !h.CheckIn.Before(h.CheckOut) {
		fe.Add("checkOut", "check-out must be after check-in")
	}
	if h.Guests < 1 {
		fe.Add("guests", "at least one guest is required")
	}
	if h.Rooms < 1 {
		fe.Add("rooms", "at least one room is required")
	}
	return fe
}

// ConciergeDetails is the concierge payload.
type ConciergeDetails struct {
	StartDate       time.Time  `bson:"start_date" json:"startDate"`
	EndDate         *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Travelers       int        `bson:"travelers" json:"travelers"`
	Interests       string     `bson:"interests,omitempty" json:"interests,omitempty"`
	Budget          string     `bson:"budget,omitempty" json:"budget,omitempty"`
	SpecialRequests string     `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
}

func (c *ConciergeDetails) ServiceType() ServiceType { return ServiceConcierge }

func (c *ConciergeDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if c.StartDate.IsZero() {
		fe.Add("startDate", "start date is required")
	}
	if c.Travelers < 1 {
		fe.Add("travelers", "at least one traveler is required")
	}
	if c.EndDate != nil && !c.StartDate.IsZero() && c.EndDate.Before(c.StartDate) {
		fe.Add("endDate", "end date must not precede start date")
	}
	return fe
}

// CorporateDetails is the corporate-travel payload.
type CorporateDetails struct {
	CompanyName       string `bson:"company_name" json:"companyName"`
	ContactName       string `bson:"contact_name" json:"contactName"`
	NumberOfTravelers int    `bson:"number_of_travelers" json:"numberOfTravelers"`
	Requirements      string `bson:"requirements,omitempty" json:"requirements,omitempty"`
}

func (c *CorporateDetails) ServiceType() ServiceType { return ServiceCorporateTravel }

func (c *CorporateDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if c.CompanyName == "" {
		fe.Add("companyName", "company name is required")
	}
	if c.ContactName == "" {
		fe.Add("contactName", "contact name is required")
	}
	if c.NumberOfTravelers < 1 {
		fe.Add("numberOfTravelers", "at least one traveler is required")
	}
	return fe
}

// ConsultationDetails is the consultation payload.
type ConsultationDetails struct {
	PreferredDate time.Time `bson:"preferred_date" json:"preferredDate"`
	PreferredTime string    `bson:"preferred_time,omitempty" json:"preferredTime,omitempty"`
	Topic         string    `bson:"topic" json:"topic"`
	Details       string    `bson:"details,omitempty" json:"details,omitempty"`
}

func (c *ConsultationDetails) ServiceType() ServiceType { return ServiceConsultation }

func (c *ConsultationDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if c.PreferredDate.IsZero() {
		fe.Add("preferredDate", "preferred date is required")
	}
	if c.Topic == "" {
		fe.Add("topic", "topic is required")
	}
	return fe
}

// PackageDetails is the package-request payload.
type PackageDetails struct {
	PackageID   string     `bson:"package_id,omitempty" json:"packageId,omitempty"`
	PackageName string     `bson:"package_name,omitempty" json:"packageName,omitempty"`
	Travelers   int        `bson:"travelers" json:"travelers"`
	TravelDate  *time.Time `bson:"travel_date,omitempty" json:"travelDate,omitempty"`
}

func (p *PackageDetails) ServiceType() ServiceType { return ServicePackageRequest }

func (p *PackageDetails) Validate() FieldErrors {
	fe := FieldErrors{}
	if p.PackageID == "" && p.PackageName == "" {
		fe.Add("packageId", "a package id or package name is required")
	}
	if p.Travelers < 1 {
		fe.Add("travelers", "at least one traveler is required")
	}
	return fe
}
