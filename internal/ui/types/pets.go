package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PetStats summarises a list of pets for the home page and dashboard
type PetStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Adopted   int `json:"adopted"`
}

// fold lower-cases s and strips accents so that "joao" matches "João"
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// FilterPets returns the pets whose name, species, breed or owner name contains search
// (case and accent insensitive) and, when status is non-empty, whose status matches.
func FilterPets(pets []Pet, search string, status PetStatus) []Pet {
	term := fold(strings.TrimSpace(search))

	filtered := make([]Pet, 0, len(pets))
	for _, pet := range pets {
		if status != "" && pet.Status != status {
			continue
		}
		if term != "" && !petMatches(pet, term) {
			continue
		}
		filtered = append(filtered, pet)
	}
	return filtered
}

func petMatches(pet Pet, term string) bool {
	if strings.Contains(fold(pet.Name), term) || strings.Contains(fold(pet.Species), term) {
		return true
	}
	if pet.Breed != nil && strings.Contains(fold(*pet.Breed), term) {
		return true
	}
	return pet.Owner != nil && strings.Contains(fold(pet.Owner.Name), term)
}

// OwnedBy returns the pets registered by the given user
func OwnedBy(pets []Pet, userID int64) []Pet {
	owned := make([]Pet, 0)
	for _, pet := range pets {
		if pet.OwnerID == userID {
			owned = append(owned, pet)
		}
	}
	return owned
}

func ComputePetStats(pets []Pet) PetStats {
	stats := PetStats{Total: len(pets)}
	for _, pet := range pets {
		switch pet.Status {
		case PetAvailable:
			stats.Available++
		case PetAdopted:
			stats.Adopted++
		}
	}
	return stats
}

// LatestEvents returns the first limit events in the order the server returned them
func LatestEvents(events []Event, limit int) []Event {
	if limit < 0 || len(events) <= limit {
		return events
	}
	return events[:limit]
}
