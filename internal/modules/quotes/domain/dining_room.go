package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// MenuTier is the meal-service offering level selected per dining room.
type MenuTier string

const (
	MenuSilver   MenuTier = "Silver"
	MenuGold     MenuTier = "Gold"
	MenuPlatinum MenuTier = "Platinum"
)

// ParseMenuTier is case-insensitive. Empty input is allowed and yields "".
func ParseMenuTier(raw string) (MenuTier, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", true
	case "silver":
		return MenuSilver, true
	case "gold":
		return MenuGold, true
	case "platinum":
		return MenuPlatinum, true
	default:
		return "", false
	}
}

// Resident buckets by dietary need. IDDSI levels 3 to 6 are texture-modified diets.
const (
	ResidentsStandard = "standard"
	ResidentsIDDSI3   = "iddsi3"
	ResidentsIDDSI4   = "iddsi4"
	ResidentsIDDSI5   = "iddsi5"
	ResidentsIDDSI6   = "iddsi6"
)

// DiningRoom is a sub-unit of a care home. Its index in the form is its only identity.
type DiningRoom struct {
	Name           string         `json:"name"`
	ResidentCounts map[string]int `json:"residentCounts,omitempty" validate:"dive,gte=0"`
	MealCategories []MealCategory `json:"mealCategories,omitempty" validate:"dive"`
	PortionSize    string         `json:"portionSize,omitempty"`
	SelectedMenu   MenuTier       `json:"selectedMenu,omitempty" validate:"omitempty,menutier"`
}

// NewDiningRoom builds the zeroed template row used when the room count grows.
func NewDiningRoom(position int) DiningRoom {
	return DiningRoom{
		Name: fmt.Sprintf("Dining Room %d", position),
		ResidentCounts: map[string]int{
			ResidentsStandard: 0,
			ResidentsIDDSI3:   0,
			ResidentsIDDSI4:   0,
			ResidentsIDDSI5:   0,
			ResidentsIDDSI6:   0,
		},
		MealCategories: DefaultMealCategories(),
		PortionSize:    "standard",
	}
}

// TotalResidents sums the resident buckets, falling back to meal category counts
// when no buckets were filled in.
func (r DiningRoom) TotalResidents() int {
	total := 0
	for _, count := range r.ResidentCounts {
		if count > 0 {
			total += count
		}
	}
	if total > 0 {
		return total
	}
	for _, category := range r.MealCategories {
		if category.Residents > 0 {
			total += category.Residents
		}
	}
	return total
}

// WeightedMultiplier averages the category multipliers weighted by their residents.
// A room with no category residents has multiplier 1.
func (r DiningRoom) WeightedMultiplier() float64 {
	weighted, residents := r.weightedSums()
	if residents == 0 {
		return 1
	}
	return weighted / float64(residents)
}

func (r DiningRoom) weightedSums() (float64, int) {
	weighted := 0.0
	residents := 0
	for _, category := range r.MealCategories {
		if category.Residents <= 0 {
			continue
		}
		multiplier := category.Multiplier
		if multiplier <= 0 {
			multiplier = DefaultMultiplier(category.Name)
		}
		weighted += float64(category.Residents) * multiplier
		residents += category.Residents
	}
	return weighted, residents
}

func (r DiningRoom) clone() DiningRoom {
	cloned := r
	cloned.ResidentCounts = maps.Clone(r.ResidentCounts)
	cloned.MealCategories = slices.Clone(r.MealCategories)
	return cloned
}

// ResizeDiningRooms returns exactly n rooms. The first min(len(rooms), n) entries are kept,
// missing entries are zeroed template rows and extra entries are dropped from the end.
func ResizeDiningRooms(rooms []DiningRoom, n int) []DiningRoom {
	if n < 0 {
		n = 0
	}
	resized := make([]DiningRoom, n)
	for i := range resized {
		if i < len(rooms) {
			resized[i] = rooms[i].clone()
			continue
		}
		resized[i] = NewDiningRoom(i + 1)
	}
	return resized
}

// ResidentTotals aggregates residents across dining rooms.
type ResidentTotals struct {
	Total        int            `json:"total"`
	ByBucket     map[string]int `json:"byBucket"`
	ByCategory   map[string]int `json:"byCategory"`
	Multiplier   float64        `json:"weightedMultiplier"`
	RoomsCounted int            `json:"roomsCounted"`
}

// AggregateResidents totals residents per bucket and per meal category over all rooms.
// The weighted multiplier is taken over every category resident in the home.
func AggregateResidents(rooms []DiningRoom) ResidentTotals {
	totals := ResidentTotals{
		ByBucket:   map[string]int{},
		ByCategory: map[string]int{},
		Multiplier: 1,
	}
	weighted := 0.0
	categoryResidents := 0
	for _, room := range rooms {
		roomTotal := room.TotalResidents()
		if roomTotal > 0 {
			totals.RoomsCounted++
		}
		totals.Total += roomTotal
		for bucket, count := range room.ResidentCounts {
			if count > 0 {
				totals.ByBucket[bucket] += count
			}
		}
		for _, category := range room.MealCategories {
			if category.Residents > 0 {
				totals.ByCategory[CanonicalCategory(category.Name)] += category.Residents
			}
		}
		w, n := room.weightedSums()
		weighted += w
		categoryResidents += n
	}
	if categoryResidents > 0 {
		totals.Multiplier = weighted / float64(categoryResidents)
	}
	return totals
}
