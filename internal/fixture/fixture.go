// Package fixture loads a routing problem — a fabricsim graph plus the
// nets to embed in it — from a YAML file, the way cmd/router's route and
// batch subcommands take their input. It exists purely for the CLI and
// its tests; pkg/router never imports it, the same way the
// router core never imports fabricsim itself.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fabricroute/negroute/internal/fabricsim"
	"github.com/fabricroute/negroute/pkg/router"
)

// Design is the on-disk YAML shape: a fabric graph plus the nets to route
// over it. Wires and pips are addressed by their position in the Wires
// and Pips lists (0-based) — the same dense-integer-arena convention
// fabricsim.Builder uses internally.
type Design struct {
	Seed        int64      `yaml:"seed"`
	BasePenalty int64      `yaml:"base_penalty"`
	Wires       []WireSpec `yaml:"wires"`
	Pips        []PipSpec  `yaml:"pips"`
	Nets        []NetSpec  `yaml:"nets"`
}

// DelaySpec is the [min,max] delay range of a wire or pip.
type DelaySpec struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

func (d DelaySpec) toRange() router.DelayRange {
	return router.DelayRange{Min: router.Delay(d.Min), Max: router.Delay(d.Max)}
}

// WireSpec is one entry of Design.Wires; its index in the list is its id.
type WireSpec struct {
	Delay DelaySpec `yaml:"delay"`
}

// PipSpec is one entry of Design.Pips; its index in the list is its id.
// Src and Dst are wire indices.
type PipSpec struct {
	Src   int       `yaml:"src"`
	Dst   int       `yaml:"dst"`
	Delay DelaySpec `yaml:"delay"`
}

// BindingSpec seeds a net's pre-existing route, adopted by Setup before
// the outer loop runs.
type BindingSpec struct {
	Wire     int    `yaml:"wire"`
	Pip      int    `yaml:"pip"` // -1 for the source wire itself
	Strength string `yaml:"strength"`
}

// UserSpec is one sink of a net.
type UserSpec struct {
	Sink   int   `yaml:"sink"`
	Budget int64 `yaml:"budget"`
}

// NetSpec is one net to route.
type NetSpec struct {
	ID       int64         `yaml:"id"`
	Skip     bool          `yaml:"skip"`
	Source   int           `yaml:"source"`
	Users    []UserSpec    `yaml:"users"`
	Bindings []BindingSpec `yaml:"bindings"`
}

var strengthByName = map[string]router.Strength{
	"none":   router.StrengthNone,
	"weak":   router.StrengthWeak,
	"strong": router.StrengthStrong,
	"locked": router.StrengthLocked,
	"fixed":  router.StrengthFixed,
}

// Load parses path and builds the fabric and net list it describes.
func Load(path string) (*fabricsim.Fabric, []*router.Net, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	var design Design
	if err := yaml.Unmarshal(raw, &design); err != nil {
		return nil, nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	return Build(design)
}

// Build turns a parsed Design into a fabricsim.Fabric and net list,
// without touching disk — used by Load and directly by tests that
// construct a Design in-memory.
func Build(design Design) (*fabricsim.Fabric, []*router.Net, error) {
	b := fabricsim.NewBuilder()

	for i, w := range design.Wires {
		id := b.AddWire(w.Delay.toRange())
		if int(id) != i {
			return nil, nil, fmt.Errorf("fixture: wire %d built out of order (got id %d)", i, id)
		}
	}
	for i, p := range design.Pips {
		if p.Src < 0 || p.Src >= len(design.Wires) || p.Dst < 0 || p.Dst >= len(design.Wires) {
			return nil, nil, fmt.Errorf("fixture: pip %d references an out-of-range wire", i)
		}
		id := b.AddPip(fabricsim.Wire(p.Src), fabricsim.Wire(p.Dst), p.Delay.toRange())
		if int(id) != i {
			return nil, nil, fmt.Errorf("fixture: pip %d built out of order (got id %d)", i, id)
		}
	}

	nets := make([]*router.Net, 0, len(design.Nets))
	for _, n := range design.Nets {
		netID := router.NetID(n.ID)
		if n.Skip {
			nets = append(nets, &router.Net{ID: netID, Skip: true})
			continue
		}
		if n.Source < 0 || n.Source >= len(design.Wires) {
			return nil, nil, fmt.Errorf("fixture: net %d has an out-of-range source wire", n.ID)
		}
		b.SetSource(netID, fabricsim.Wire(n.Source))

		users := make([]router.User, len(n.Users))
		for i, u := range n.Users {
			if u.Sink < 0 || u.Sink >= len(design.Wires) {
				return nil, nil, fmt.Errorf("fixture: net %d user %d has an out-of-range sink wire", n.ID, i)
			}
			b.SetSink(netID, i, fabricsim.Wire(u.Sink))
			users[i] = router.User{Budget: router.Delay(u.Budget)}
		}

		for _, bind := range n.Bindings {
			if bind.Wire < 0 || bind.Wire >= len(design.Wires) {
				return nil, nil, fmt.Errorf("fixture: net %d has a binding for an out-of-range wire", n.ID)
			}
			strength, ok := strengthByName[bind.Strength]
			if !ok {
				return nil, nil, fmt.Errorf("fixture: net %d has an unrecognized binding strength %q", n.ID, bind.Strength)
			}
			pip := router.Pip(bind.Pip)
			b.SeedBinding(netID, fabricsim.Wire(bind.Wire), pip, strength)
		}

		nets = append(nets, &router.Net{ID: netID, Users: users})
	}

	basePenalty := router.Delay(design.BasePenalty)
	if basePenalty == 0 {
		basePenalty = 100
	}
	seed := design.Seed
	if seed == 0 {
		seed = 1
	}
	fab := b.Build(seed, basePenalty)

	return fab, nets, nil
}
