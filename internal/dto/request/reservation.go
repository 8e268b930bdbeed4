package request

// ReservationForm is the payload posted by the booking wizard. Only the fields the
// reservation cannot be built without are required here; format hints live in the
// wizard step rules and HQ Rental validates the rest.
type ReservationForm struct {
	// Step 1: dates & location
	PickupLocation string `json:"pickupLocation" validate:"max=200"`
	PickupDate     string `json:"pickupDate" validate:"required"`
	PickupTime     string `json:"pickupTime" validate:"max=8"`
	ReturnDate     string `json:"returnDate" validate:"required"`
	ReturnTime     string `json:"returnTime" validate:"max=8"`

	// Step 2: vehicle
	VehicleGroup string `json:"vehicleGroup" validate:"required"`

	// Step 3: customer
	FirstName         string `json:"firstName" validate:"max=100"`
	LastName          string `json:"lastName" validate:"max=100"`
	Email             string `json:"email" validate:"max=254"`
	Phone             string `json:"phone" validate:"max=30"`
	Country           string `json:"country" validate:"max=100"`
	DriversLicense    string `json:"driversLicense" validate:"max=50"`
	Birthdate         string `json:"birthdate" validate:"max=20"`
	LicenseExpiration string `json:"licenseExpiration" validate:"max=20"`
	Street            string `json:"street" validate:"max=200"`
	City              string `json:"city" validate:"max=100"`
	State             string `json:"state" validate:"max=100"`
	Zip               string `json:"zip" validate:"max=20"`

	// Step 4: enhancements
	SelectedEnhancements []string `json:"selectedEnhancements"`
	SpecialRequests      string   `json:"specialRequests" validate:"max=1000"`
}

// EstimateRequest carries the fields the price estimate depends on.
type EstimateRequest struct {
	PickupDate           string   `json:"pickupDate" validate:"required,datetime=2006-01-02"`
	ReturnDate           string   `json:"returnDate" validate:"required,datetime=2006-01-02"`
	VehicleGroup         string   `json:"vehicleGroup" validate:"required"`
	SelectedEnhancements []string `json:"selectedEnhancements"`
}
