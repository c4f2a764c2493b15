package metrics

import (
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/world"
)

// Contacts counts boundary hits of one kind over a run.
type Contacts struct {
	name  string
	kind  physics.Contact
	count int
}

func NewFloorContacts() *Contacts   { return &Contacts{name: "floor_contacts", kind: physics.ContactFloor} }
func NewCeilingContacts() *Contacts { return &Contacts{name: "ceiling_contacts", kind: physics.ContactCeiling} }
func NewWallContacts() *Contacts    { return &Contacts{name: "wall_contacts", kind: physics.ContactWall} }

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(_ *world.Scene, st world.FrameStats) {
	switch c.kind {
	case physics.ContactFloor:
		c.count += st.Floor
	case physics.ContactCeiling:
		c.count += st.Ceiling
	case physics.ContactWall:
		c.count += st.Wall
	}
}

func (c *Contacts) Value() float64 { return float64(c.count) }
func (c *Contacts) Reset()         { c.count = 0 }
