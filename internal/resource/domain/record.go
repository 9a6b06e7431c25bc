package domain

import (
	"strconv"
)

// ID adalah identifier yang diberikan server. Client tidak pernah membuatnya sendiri.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Record is one persisted entity instance of a resource type.
type Record interface {
	RecordID() ID
	// DisplayName is the field the list screen filters on.
	DisplayName() string
}

type Sort string

const (
	SortLatest Sort = "latest"
	SortOldest Sort = "oldest"
	SortAZ     Sort = "az"
	SortZA     Sort = "za"
)

// Sorts lists the orders the back-office screens offer. Other values are still sent verbatim.
var Sorts = []Sort{SortLatest, SortOldest, SortAZ, SortZA}

// Period dipakai laporan bulanan (server-side grouping).
type Period struct {
	Month int `json:"bulan"`
	Year  int `json:"tahun"`
}

type Query struct {
	Search string
	Sort   Sort
	Period *Period
}

func DefaultQuery() Query {
	return Query{Sort: SortLatest}
}

// IndexOf returns the position of id in items, or -1.
func IndexOf[T Record](items []T, id ID) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}
