package internal

import (
	"fmt"
	"strings"
)

// EntityKind names the kind of game object an entity-name code refers to.
type EntityKind uint8

const (
	EntityCompany EntityKind = iota
	EntityPresident
	EntityTown
	EntityVehicle
	EntityStation
	EntityIndustry
	EntityEngine
	EntityGroup
	EntitySign
	EntityDepot
	EntityWaypoint

	entityKindCount
)

// String returns the lower-case kind name.
func (k EntityKind) String() string {
	if k >= entityKindCount {
		return fmt.Sprintf("entity(%d)", uint8(k))
	}
	return strings.ToLower(entityKeys[k])
}

// entityCodes maps entity-name control codes to their kind.
var entityCodes = map[rune]EntityKind{
	SCCCompanyName:   EntityCompany,
	SCCPresidentName: EntityPresident,
	SCCTownName:      EntityTown,
	SCCVehicleName:   EntityVehicle,
	SCCStationName:   EntityStation,
	SCCIndustryName:  EntityIndustry,
	SCCEngineName:    EntityEngine,
	SCCGroupName:     EntityGroup,
	SCCSignName:      EntitySign,
	SCCDepotName:     EntityDepot,
	SCCWaypointName:  EntityWaypoint,
}

// EntityName is what a NameProvider knows about one entity.
type EntityName struct {
	// Custom is a user-assigned name. It is formatted as a raw template.
	Custom string
	// Template renders the default name when Custom is empty. Zero selects
	// the language pack's format template for the kind.
	Template StringID
	Args     []Parameter
	// GenderTemplate, when set, is formatted instead while probing gender,
	// so that e.g. an industry takes the gender of its type name rather
	// than of the town in front of it.
	GenderTemplate StringID
}

// NameProvider resolves entity identifiers to names.
type NameProvider interface {
	EntityName(kind EntityKind, id uint64) (EntityName, bool)
}

// TownNameGenerator produces a town name from a style and seed.
type TownNameGenerator interface {
	TownName(style uint16, seed uint32) (string, error)
}

// Indices in TableSpecial.
const (
	SpecialTownNameStart    uint16 = 0x0000
	SpecialTownNameEnd      uint16 = 0x00FF
	SpecialCompanyNameStart uint16 = 0x0100
	SpecialCompanyNameEnd   uint16 = 0x01FF
	SpecialSillyName        uint16 = 0x0200
	SpecialAndCoName        uint16 = 0x0201
	SpecialPresidentName    uint16 = 0x0202
)

var sillyCompanyNames = []string{
	"Bloggs Brothers",
	"Tiny Transport Ltd.",
	"Express Travel",
	"Comfy-Coach & Co.",
	"Crush & Bump Ltd.",
	"Broken & Late Ltd.",
	"Sam Speedy & Son",
	"Supersonic Travel",
	"Mike's Motors",
	"Lightning International",
	"Pannik & Loozit Ltd.",
	"Inter-City Transport",
	"Getout & Pushit Ltd.",
}

var surnames = []string{
	"Adams", "Allan", "Baker", "Bigwig", "Black", "Bloggs", "Brown", "Campbell",
	"Gordon", "Hamilton", "Hawthorn", "Higgins", "Green", "Gribble", "Jones",
	"McAlpine", "MacDonald", "McIntosh", "Muir", "Murphy", "Nelson", "O'Donnell",
	"Parker", "Phillips", "Pilkington", "Quigley", "Sharkey", "Thomson", "Watkins",
}

var sillySurnames = []string{
	"Grumpy", "Dozy", "Speedy", "Nosey", "Dribble", "Mushroom",
	"Cabbage", "Sniffle", "Fishy", "Swindle", "Sneaky", "Nutkins",
}

var initialLetters = []byte{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J',
	'K', 'L', 'M', 'N', 'P', 'R', 'S', 'T', 'W',
}

// bits extracts n bits of v starting at bit s.
func bits(v uint32, s, n uint) uint32 {
	return (v >> s) & (1<<n - 1)
}

// Surname returns the surname generated from seed.
func Surname(seed uint32, toyland bool) string {
	options := surnames
	if toyland {
		options = sillySurnames
	}
	return options[uint32(len(options))*bits(seed, 16, 8)>>8]
}

// AndCoName writes "<surname> & Co.".
func AndCoName(b *strings.Builder, seed uint32, toyland bool) {
	b.WriteString(Surname(seed, toyland))
	b.WriteString(" & Co.")
}

// PresidentName writes one or two initials followed by a surname.
func PresidentName(b *strings.Builder, seed uint32, toyland bool) {
	n := uint32(len(initialLetters))
	b.WriteByte(initialLetters[n*bits(seed, 0, 8)>>8])
	b.WriteString(". ")

	// The second initial is optional.
	if idx := (n + 35) * bits(seed, 8, 8) >> 8; idx < n {
		b.WriteByte(initialLetters[idx])
		b.WriteString(". ")
	}

	b.WriteString(Surname(seed, toyland))
}

// SillyCompanyName returns the fixed company name for index, clamped to
// the last entry.
func SillyCompanyName(index uint64) string {
	if index >= uint64(len(sillyCompanyNames)) {
		index = uint64(len(sillyCompanyNames) - 1)
	}
	return sillyCompanyNames[index]
}

// SyllableTownNames is a small deterministic TownNameGenerator. Every
// style draws from the same syllables; the style only perturbs the seed.
type SyllableTownNames struct{}

var (
	townPrefixes = []string{"Ash", "Black", "Brook", "Chester", "Elm", "Fair", "Glen", "Hay", "Kings", "Lang", "Mill", "North", "Oak", "Red", "Stan", "Wood"}
	townSuffixes = []string{"bridge", "bury", "by", "field", "ford", "ham", "hill", "ley", "mouth", "ton", "wick", "worth"}
)

// TownName implements TownNameGenerator
func (SyllableTownNames) TownName(style uint16, seed uint32) (string, error) {
	seed ^= uint32(style) * 0x9E3779B1
	prefix := townPrefixes[uint32(len(townPrefixes))*bits(seed, 0, 8)>>8]
	suffix := townSuffixes[uint32(len(townSuffixes))*bits(seed, 8, 8)>>8]
	return prefix + suffix, nil
}
