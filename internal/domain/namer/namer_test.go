package namer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/namer"
)

func TestName_SingleWaypointUsesSimpleLabel(t *testing.T) {
	r := &model.Route{Root: "usaiI90", Banner: "I-90"}
	w := &model.Waypoint{Label: "A", Route: r}

	n := namer.New()
	assert.Equal(t, "I-90@A", n.Name(w))
}

func TestName_DuplicateCanonicalEscalatesToRegionThenBang(t *testing.T) {
	region := &model.Region{Code: "usny"}
	r1 := &model.Route{Root: "r1", Banner: "I-90", Region: region}
	r2 := &model.Route{Root: "r2", Banner: "I-90", Region: region}

	w1 := &model.Waypoint{Label: "A", Route: r1}
	w2 := &model.Waypoint{Label: "A", Route: r2} // same canonical name, no ring

	n := namer.New()
	first := n.Name(w1)
	second := n.Name(w2)
	assert.Equal(t, "I-90@A", first)
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "|")
}

func TestName_ExitNumberReduction(t *testing.T) {
	r1 := &model.Route{Root: "r1", Banner: "I-90"}
	r2 := &model.Route{Root: "r2", Banner: "I-94"}

	exit := &model.Waypoint{Label: "47B", Route: r1}
	plain := &model.Waypoint{Label: "I-94", Route: r2} // matches rte short name

	ring := &model.ColocationRing{Members: []*model.Waypoint{exit, plain}}
	exit.Colocated = ring
	plain.Colocated = ring

	n := namer.New()
	name := n.Name(exit)
	assert.Equal(t, "I-90(47B)/I-94", name)
}

func TestName_UniquenessAcrossManyCollisions(t *testing.T) {
	region := &model.Region{Code: "usny"}
	n := namer.New()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		r := &model.Route{Root: "r", Banner: "I-90", Region: region}
		w := &model.Waypoint{Label: "A", Route: r}
		name := n.Name(w)
		assert.False(t, seen[name], "name %q reused", name)
		seen[name] = true
	}
}
