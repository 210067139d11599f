package dummydb

import (
	"sync"

	"github.com/trezcool/letscatchup/core/pin"
	"github.com/trezcool/letscatchup/core/school"
)

type (
	DB struct {
		pin    *pinTable
		school *schoolTable
	}

	pinTable struct {
		sync.RWMutex
		table map[int]*pin.Pin
	}

	schoolTable struct {
		sync.RWMutex
		table map[int]*school.School
	}
)

func Open() (*DB, error) {
	db := &DB{
		pin:    &pinTable{table: make(map[int]*pin.Pin)},
		school: &schoolTable{table: make(map[int]*school.School)},
	}
	return db, nil
}
