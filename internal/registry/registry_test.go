package registry

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("ID() = %s", g.ID())
	}
	if Title("zz_stub_a") != "Stub zz_stub_a" {
		t.Errorf("Title() = %q", Title("zz_stub_a"))
	}
	if Title("missing") != "missing" {
		t.Errorf("Title of unknown game should fall back to the id")
	}

	list := List()
	ia, ib := -1, -1
	for i, info := range list {
		switch info.ID {
		case "zz_stub_a":
			ia = i
		case "zz_stub_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() not sorted or missing stubs: %+v", list)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create of unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
