package repository

import "github.com/maanvikp20/promosite/internal/models"

// indexOf finds a record by identifier; ids compare in canonical form so a
// numeric id in the file matches the string id from the URL.
func indexOf(records []models.Record, id string) int {
	for i, r := range records {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

// without returns a new slice lacking the element at idx, leaving the
// input untouched.
func without(records []models.Record, idx int) []models.Record {
	out := make([]models.Record, 0, len(records)-1)
	out = append(out, records[:idx]...)
	return append(out, records[idx+1:]...)
}
