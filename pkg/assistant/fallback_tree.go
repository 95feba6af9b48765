package assistant

import (
	"errors"
	"fmt"
)

type Action string

const (
	ActionFlow   Action = "flow"
	ActionLink   Action = "link"
	ActionFinish Action = "FINISH"
)

const RootNode = "ROOT"

var ErrUnknownOption = errors.New("unknown option")

type Option struct {
	ID     string
	Label  string
	Action Action
	// Target is the next node id for flow and the URI for link.
	Target string
}

type Node struct {
	ID      string
	Message string
	Options []Option
}

func (n Node) option(id string) (Option, bool) {
	for _, o := range n.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Graph is read-only once built.
type Graph struct {
	nodes map[string]Node
}

// NewGraph checks that ROOT exists, ids are unique and every flow target resolves.
func NewGraph(nodes ...Node) (*Graph, error) {
	g := &Graph{nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node %s", n.ID)
		}
		g.nodes[n.ID] = n
	}
	if _, ok := g.nodes[RootNode]; !ok {
		return nil, fmt.Errorf("missing %s node", RootNode)
	}

	for _, n := range nodes {
		seen := make(map[string]struct{}, len(n.Options))
		for _, o := range n.Options {
			if _, dup := seen[o.ID]; dup {
				return nil, fmt.Errorf("node %s: duplicate option %s", n.ID, o.ID)
			}
			seen[o.ID] = struct{}{}

			switch o.Action {
			case ActionFlow:
				if _, ok := g.nodes[o.Target]; !ok {
					return nil, fmt.Errorf("node %s option %s: unknown target %s", n.ID, o.ID, o.Target)
				}
			case ActionLink:
				if o.Target == "" {
					return nil, fmt.Errorf("node %s option %s: empty link", n.ID, o.ID)
				}
			case ActionFinish:
			default:
				return nil, fmt.Errorf("node %s option %s: unknown action %q", n.ID, o.ID, o.Action)
			}
		}
	}
	return g, nil
}

func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Step is the outcome of one choice.
type Step struct {
	Option   Option
	Node     Node
	Link     string
	Finished bool
}

// Tree walks a Graph for one session, starting at ROOT.
type Tree struct {
	graph   *Graph
	current string
}

func NewTree(g *Graph) *Tree {
	return &Tree{graph: g, current: RootNode}
}

func (t *Tree) Current() Node {
	n, _ := t.graph.Node(t.current)
	return n
}

func (t *Tree) Choose(optionID string) (Step, error) {
	node := t.Current()
	opt, ok := node.option(optionID)
	if !ok {
		return Step{}, fmt.Errorf("%w: %s at %s", ErrUnknownOption, optionID, node.ID)
	}

	switch opt.Action {
	case ActionFlow:
		t.current = opt.Target
		return Step{Option: opt, Node: t.Current()}, nil
	case ActionLink:
		return Step{Option: opt, Node: node, Link: opt.Target}, nil
	default:
		return Step{Option: opt, Node: node, Finished: true}, nil
	}
}

var (
	callOption   = Option{ID: "llamar", Label: "📞 Llamar ahora", Action: ActionLink, Target: "tel:+56950089295"}
	meetOption   = Option{ID: "agendar", Label: "📅 Agendar reunión", Action: ActionFlow, Target: "AGENDAR"}
	backOption   = Option{ID: "volver", Label: "↩️ Volver al inicio", Action: ActionFlow, Target: RootNode}
	finishOption = Option{ID: "finalizar", Label: "✅ Dejar mis datos y finalizar", Action: ActionFinish}
)

var defaultGraph = mustGraph(
	Node{
		ID:      RootNode,
		Message: "Nuestro asistente inteligente no está disponible en este momento. Seleccione una opción para continuar:",
		Options: []Option{
			{ID: "penal", Label: "🛑 Urgencia Penal / Delitos", Action: ActionFlow, Target: "PENAL"},
			{ID: "civil", Label: "⚖️ Demanda Civil / Deudas", Action: ActionFlow, Target: "CIVIL"},
			{ID: "laboral", Label: "💼 Despido / Laboral", Action: ActionFlow, Target: "LABORAL"},
			{ID: "familia", Label: "👨‍👩‍👧 Familia / Divorcio", Action: ActionFlow, Target: "FAMILIA"},
			callOption,
		},
	},
	Node{
		ID:      "PENAL",
		Message: "En materia penal el tiempo es crítico. Si hay una detención o formalización en curso, llámenos de inmediato.",
		Options: []Option{callOption, meetOption, backOption},
	},
	Node{
		ID:      "CIVIL",
		Message: "Para demandas civiles, deudas o contratos revisaremos sus antecedentes en una primera reunión.",
		Options: []Option{meetOption, callOption, backOption},
	},
	Node{
		ID:      "LABORAL",
		Message: "En casos de despido los plazos para reclamar son breves. Tenga a mano su carta de despido y contrato.",
		Options: []Option{meetOption, callOption, backOption},
	},
	Node{
		ID:      "FAMILIA",
		Message: "Atendemos divorcios, pensiones de alimentos y cuidado personal con total reserva.",
		Options: []Option{meetOption, callOption, backOption},
	},
	Node{
		ID:      "AGENDAR",
		Message: "Un abogado revisará su caso. Al finalizar podrá dejar su teléfono o correo para que lo contactemos.",
		Options: []Option{finishOption, callOption, backOption},
	},
)

func mustGraph(nodes ...Node) *Graph {
	g, err := NewGraph(nodes...)
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultGraph is the firm's scripted flow, built once per process.
func DefaultGraph() *Graph {
	return defaultGraph
}
