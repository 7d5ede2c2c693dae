package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates lexicographically sortable entity ids, so a
// table ordered by primary key is also ordered by creation time.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
