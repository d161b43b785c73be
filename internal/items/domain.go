// Package items manages simulated server instances.
package items

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// StackType enumerates the supported server stacks.
type StackType string

const (
	StackLAMP   StackType = "LAMP"
	StackMEAN   StackType = "MEAN"
	StackRuby   StackType = "Ruby"
	StackDjango StackType = "Django"
)

// Valid reports whether the value is one of the supported stacks. This is a
// real membership check; the service rejects anything outside the set.
func (s StackType) Valid() bool {
	switch s {
	case StackLAMP, StackMEAN, StackRuby, StackDjango:
		return true
	}
	return false
}

// Item models a simulated server instance.
type Item struct {
	ID        uuid.UUID
	Name      string
	StackType StackType
	IPAddress string
	Creator   string
	Active    bool
	Notes     string
}

// AssignIPAddress gives the item a random simulated address. Each octet is
// drawn from [0,128), matching the historical generator.
func (i *Item) AssignIPAddress() {
	i.IPAddress = fmt.Sprintf("%d.%d.%d.%d",
		rand.Intn(128), rand.Intn(128), rand.Intn(128), rand.Intn(128))
}
