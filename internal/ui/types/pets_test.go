package types

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func testPets() []Pet {
	return []Pet{
		{ID: 1, Name: "Luna", Species: "Gato", Status: PetAvailable, OwnerID: 7},
		{ID: 2, Name: "Thor", Species: "Cachorro", Breed: strPtr("Vira-lata"), Status: PetAdopted, OwnerID: 3},
		{ID: 3, Name: "Mimi", Species: "Gato", Status: PetLost, OwnerID: 7, Owner: &UserSummary{ID: 7, Name: "João"}},
		{ID: 4, Name: "Paçoca", Species: "Cachorro", Status: PetAvailable, OwnerID: 5},
	}
}

func ids(pets []Pet) []int64 {
	out := make([]int64, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterPets(t *testing.T) {
	tests := []struct {
		name   string
		search string
		status PetStatus
		want   []int64
	}{
		{"no filter", "", "", []int64{1, 2, 3, 4}},
		{"by name", "luna", "", []int64{1}},
		{"by species", "GATO", "", []int64{1, 3}},
		{"by breed", "vira", "", []int64{2}},
		{"by owner without accent", "joao", "", []int64{3}},
		{"accent insensitive name", "pacoca", "", []int64{4}},
		{"status only", "", PetAvailable, []int64{1, 4}},
		{"search and status", "gato", PetLost, []int64{3}},
		{"no match", "papagaio", "", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterPets(testPets(), tt.search, tt.status))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterPets(%q, %q) = %v, want %v", tt.search, tt.status, got, tt.want)
			}
		})
	}
}

func TestOwnedBy(t *testing.T) {
	got := ids(OwnedBy(testPets(), 7))
	if !equalIDs(got, []int64{1, 3}) {
		t.Errorf("OwnedBy(7) = %v, want [1 3]", got)
	}
	if got := OwnedBy(testPets(), 99); len(got) != 0 {
		t.Errorf("OwnedBy(99) = %v, want none", got)
	}
}

func TestComputePetStats(t *testing.T) {
	got := ComputePetStats(testPets())
	want := PetStats{Total: 4, Available: 2, Adopted: 1}
	if got != want {
		t.Errorf("ComputePetStats() = %+v, want %+v", got, want)
	}
}

func TestLatestEvents(t *testing.T) {
	events := []Event{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}

	if got := LatestEvents(events, 4); len(got) != 4 || got[3].ID != 4 {
		t.Errorf("LatestEvents(5 events, 4) = %v", got)
	}
	if got := LatestEvents(events[:2], 4); len(got) != 2 {
		t.Errorf("LatestEvents(2 events, 4) returned %d events", len(got))
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime("2025-03-01T14:30:00Z"); got != "2025-03-01 14:30" {
		t.Errorf("FormatDateTime() = %q", got)
	}
	if got := FormatDateTime("sábado"); got != "sábado" {
		t.Errorf("FormatDateTime() should return unparseable input unchanged, got %q", got)
	}
}
