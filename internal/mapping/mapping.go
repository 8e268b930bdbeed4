// Package mapping translates the website's vehicle groups, location names and
// enhancement ids into HQ Rental identifiers.
package mapping

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Unmapped marks an enhancement that has no HQ Rental charge yet.
const Unmapped = 0

const placeholderPrefix = "PLACEHOLDER_"

// VehicleClasses maps SIPP vehicle groups to HQ Rental vehicle_class_id.
var VehicleClasses = map[string]string{
	"ECAR": "3", // Economy -> Compact SUV (CGAR)
	"CCAR": "3", // Compact -> Compact SUV (CGAR)
	"ICAR": "5", // Midsize -> Intermediate Sedan (IDAR)
	"SCAR": "4", // Fullsize -> Full-size Special SUV (FCAR)
	"SFAR": "2", // Midsize Jeep -> Standard SUV
	"RFAR": "1", // Luxury Jeep -> Premium SUV (PFAR)
	"FGAR": "6", // Pickup -> Intermediate SUV (IGAR)
	"FFAR": "1", // Large SUV -> Premium SUV (PFAR)
	"GFAR": "1", // Luxury Large SUV -> Premium SUV (PFAR)
	"MVAN": "7", // Minivan -> Multi-Purpose Vehicle
	"LCAR": "1", // Luxury car -> Premium SUV (PFAR)
}

// Locations maps the location names shown on the website to HQ Rental location ids.
// Point Seraphine and La Place Carenage fall back to Charles Airport until they exist in the CRM.
var Locations = map[string]string{
	"G.F.L Charles Airport":           "1",
	"Point Seraphine":                 "1",
	"Hewanorra International Airport": "2",
	"La Place Carenage":               "1",
}

// Enhancements maps enhancement ids to HQ Rental additional_charge ids.
var Enhancements = map[string]int{
	"gps":               8,
	"child-seat":        5,
	"additional-driver": 6,
	"insurance-premium": 3,
	"wifi":              Unmapped,
}

// Error is returned when an identifier has no HQ Rental counterpart.
type Error struct {
	Kind  string
	Value string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q is not mapped to an HQ Rental id", e.Kind, e.Value)
}

// Table resolves identifiers against fixed lookup maps. It is read-only after construction
// and safe for concurrent use.
type Table struct {
	vehicles       map[string]string
	locations      map[string]string
	enhancements   map[string]int
	rejectUnmapped bool
	log            *zap.Logger
}

// NewTable builds a table over the package defaults. With rejectUnmapped set, an unmapped
// enhancement fails the lookup instead of being dropped.
func NewTable(rejectUnmapped bool, log *zap.Logger) *Table {
	return NewTableFrom(VehicleClasses, Locations, Enhancements, rejectUnmapped, log)
}

func NewTableFrom(vehicles, locations map[string]string, enhancements map[string]int, rejectUnmapped bool, log *zap.Logger) *Table {
	return &Table{
		vehicles:       vehicles,
		locations:      locations,
		enhancements:   enhancements,
		rejectUnmapped: rejectUnmapped,
		log:            log.With(zap.String("component", "mapping")),
	}
}

// VehicleClassID looks up a vehicle group. Keys match exactly, without case folding.
func (t *Table) VehicleClassID(group string) (string, error) {
	id, ok := t.vehicles[group]
	if !ok || id == "" || strings.HasPrefix(id, placeholderPrefix) {
		return "", &Error{Kind: "vehicle group", Value: group}
	}
	return id, nil
}

// LocationID looks up a location by its display name.
func (t *Table) LocationID(name string) (string, error) {
	id, ok := t.locations[name]
	if !ok || id == "" || strings.HasPrefix(id, placeholderPrefix) {
		return "", &Error{Kind: "location", Value: name}
	}
	return id, nil
}

// EnhancementIDs maps enhancement ids in input order. Duplicates are kept.
// Unmapped ids are dropped with a warning, or rejected when the table was built to reject them.
func (t *Table) EnhancementIDs(ids []string) ([]int, error) {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		chargeID, ok := t.enhancements[id]
		if !ok || chargeID == Unmapped {
			if t.rejectUnmapped {
				return nil, &Error{Kind: "enhancement", Value: id}
			}
			t.log.Warn("Enhancement not mapped to HQ Rental charge id, skipping",
				zap.String("enhancement", id))
			continue
		}
		out = append(out, chargeID)
	}
	return out, nil
}

func (t *Table) HasVehicleGroup(group string) bool {
	_, err := t.VehicleClassID(group)
	return err == nil
}

func (t *Table) HasLocation(name string) bool {
	_, err := t.LocationID(name)
	return err == nil
}
