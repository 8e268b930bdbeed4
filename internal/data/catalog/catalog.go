// Package catalog holds the fleet, locations and enhancements offered on the website.
package catalog

type PriceType string

const (
	PriceDaily   PriceType = "daily"
	PriceOneTime PriceType = "one-time"
)

type Pricing struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

type Vehicle struct {
	Group      string   `json:"group"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Passengers int      `json:"passengers"`
	Doors      int      `json:"doors"`
	Equipment  []string `json:"equipment"`
	Pricing    Pricing  `json:"pricing"`
	Featured   bool     `json:"featured,omitempty"`
}

type Location struct {
	Name        string     `json:"name"`
	Coordinates [2]float64 `json:"coordinates"`
	Airport     bool       `json:"airport"`
}

type Enhancement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PriceType   PriceType `json:"price_type"`
}

var Vehicles = []Vehicle{
	{Group: "ECAR", Name: "Economy Car", Type: "economy", Passengers: 4, Doors: 4, Equipment: []string{"A/C", "Automatic", "Bluetooth"}, Pricing: Pricing{Daily: 45, Weekly: 280, Monthly: 1050}},
	{Group: "CCAR", Name: "Compact Car", Type: "compact", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "Automatic", "Bluetooth"}, Pricing: Pricing{Daily: 50, Weekly: 315, Monthly: 1150}},
	{Group: "ICAR", Name: "Midsize Car", Type: "midsize", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "Automatic", "Bluetooth", "Backup Camera"}, Pricing: Pricing{Daily: 55, Weekly: 350, Monthly: 1300}, Featured: true},
	{Group: "SCAR", Name: "Fullsize Car", Type: "fullsize", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "Automatic", "Bluetooth", "Backup Camera"}, Pricing: Pricing{Daily: 65, Weekly: 410, Monthly: 1500}},
	{Group: "SFAR", Name: "Midsize Jeep", Type: "suv", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "4x4", "Bluetooth"}, Pricing: Pricing{Daily: 75, Weekly: 475, Monthly: 1750}, Featured: true},
	{Group: "RFAR", Name: "Luxury Jeep", Type: "luxury", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "4x4", "Leather", "Navigation"}, Pricing: Pricing{Daily: 110, Weekly: 700, Monthly: 2600}},
	{Group: "FGAR", Name: "Pickup Truck", Type: "pickup", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "4x4", "Tow Hitch"}, Pricing: Pricing{Daily: 85, Weekly: 540, Monthly: 2000}},
	{Group: "FFAR", Name: "Large SUV", Type: "suv", Passengers: 7, Doors: 4, Equipment: []string{"A/C", "Third Row", "Bluetooth"}, Pricing: Pricing{Daily: 95, Weekly: 600, Monthly: 2250}},
	{Group: "GFAR", Name: "Luxury Large SUV", Type: "luxury", Passengers: 7, Doors: 4, Equipment: []string{"A/C", "Third Row", "Leather", "Navigation"}, Pricing: Pricing{Daily: 140, Weekly: 890, Monthly: 3300}},
	{Group: "MVAN", Name: "Minivan", Type: "van", Passengers: 7, Doors: 5, Equipment: []string{"A/C", "Sliding Doors", "Bluetooth"}, Pricing: Pricing{Daily: 90, Weekly: 570, Monthly: 2100}},
	{Group: "LCAR", Name: "Luxury Car", Type: "luxury", Passengers: 5, Doors: 4, Equipment: []string{"A/C", "Leather", "Navigation", "Premium Audio"}, Pricing: Pricing{Daily: 150, Weekly: 950, Monthly: 3500}},
}

var Locations = []Location{
	{Name: "G.F.L Charles Airport", Coordinates: [2]float64{14.0202, -60.9929}, Airport: true},
	{Name: "Hewanorra International Airport", Coordinates: [2]float64{13.7332, -60.9526}, Airport: true},
	{Name: "Point Seraphine", Coordinates: [2]float64{14.0159, -60.9906}},
	{Name: "La Place Carenage", Coordinates: [2]float64{14.0131, -60.9917}},
}

var Enhancements = []Enhancement{
	{ID: "gps", Name: "GPS Navigation", Description: "Turn-by-turn navigation unit", Price: 10, PriceType: PriceDaily},
	{ID: "child-seat", Name: "Child Safety Seat", Description: "Infant, toddler or booster seat", Price: 5, PriceType: PriceDaily},
	{ID: "additional-driver", Name: "Additional Driver", Description: "Add a second authorised driver", Price: 15, PriceType: PriceOneTime},
	{ID: "insurance-premium", Name: "Premium Insurance", Description: "Reduced deductible collision damage waiver", Price: 20, PriceType: PriceDaily},
	{ID: "wifi", Name: "Mobile WiFi Hotspot", Description: "Unlimited 4G data for up to five devices", Price: 8, PriceType: PriceDaily},
}

func FindVehicle(group string) (Vehicle, bool) {
	for _, v := range Vehicles {
		if v.Group == group {
			return v, true
		}
	}
	return Vehicle{}, false
}

func FindEnhancement(id string) (Enhancement, bool) {
	for _, e := range Enhancements {
		if e.ID == id {
			return e, true
		}
	}
	return Enhancement{}, false
}

func HasLocation(name string) bool {
	for _, l := range Locations {
		if l.Name == name {
			return true
		}
	}
	return false
}
