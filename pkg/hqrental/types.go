package hqrental

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an identifier the CRM sends either as a JSON number or a string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("hqrental: id must be a string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// envelope is the wrapper every CRM endpoint responds with.
type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"status_code"`
	Errors     json.RawMessage `json:"errors"`
	Data       json.RawMessage `json:"data"`
}

// errorMessage extracts errors.error_message, tolerating other shapes of the errors field.
func (e envelope) errorMessage() string {
	if len(e.Errors) == 0 {
		return ""
	}
	var body struct {
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(e.Errors, &body); err != nil {
		return ""
	}
	return body.ErrorMessage
}

// Trip is the date, time and location block shared by the reservation endpoints.
type Trip struct {
	BrandID        string `json:"brand_id"`
	PickUpDate     string `json:"pick_up_date"`
	PickUpTime     string `json:"pick_up_time"`
	ReturnDate     string `json:"return_date"`
	ReturnTime     string `json:"return_time"`
	PickUpLocation string `json:"pick_up_location"`
	ReturnLocation string `json:"return_location"`
}

type DatesRequest struct {
	Trip
}

type ApplicableClass struct {
	VehicleClassID ID     `json:"vehicle_class_id"`
	Name           string `json:"name,omitempty"`
}

type DatesData struct {
	ApplicableClasses []ApplicableClass `json:"applicable_classes"`
}

// Offers reports whether the vehicle class is bookable for the requested trip.
func (d DatesData) Offers(vehicleClassID string) bool {
	for _, c := range d.ApplicableClasses {
		if c.VehicleClassID.String() == vehicleClassID {
			return true
		}
	}
	return false
}

type ChargesRequest struct {
	Trip
	VehicleClassID    string `json:"vehicle_class_id"`
	AdditionalCharges []int  `json:"additional_charges"`
}

// CustomerFields maps the CRM's generic contact field keys to values.
type CustomerFields map[string]string

type CustomerData struct {
	Customer struct {
		ID ID `json:"id"`
	} `json:"customer"`
}

type ConfirmRequest struct {
	Trip
	VehicleClassID        string `json:"vehicle_class_id"`
	CustomerID            string `json:"customer_id"`
	AdditionalCharges     []int  `json:"additional_charges"`
	Currency              string `json:"currency,omitempty"`
	SkipConfirmationEmail bool   `json:"skip_confirmation_email"`
	WalkInCustomer        bool   `json:"walk_in_customer"`
}

// ReservationSummary holds the fields this service reads from a confirmed reservation.
type ReservationSummary struct {
	ID                 ID     `json:"id"`
	ConfirmationNumber string `json:"confirmation_number"`
}
