package mapping

// HQ Rental stores contact data in generic numbered fields. These keys must match the
// tenant's customer field configuration.
const (
	CustomerFirstName         = "field_2"
	CustomerLastName          = "field_3"
	CustomerBirthdate         = "field_4"
	CustomerStreet            = "field_5"
	CustomerAddressLine2      = "field_6"
	CustomerCity              = "field_7"
	CustomerPhone             = "field_8"
	CustomerEmail             = "field_9"
	CustomerState             = "field_10"
	CustomerZip               = "field_11"
	CustomerCountry           = "field_12"
	CustomerNationality       = "field_13"
	CustomerLicenseNumber     = "field_14"
	CustomerLicenseExpiration = "field_15"
	CustomerPassport          = "field_16"
	CustomerWebsite           = "field_17"
)
