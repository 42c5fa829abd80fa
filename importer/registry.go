package importer

import (
	stderrors "errors"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/go-errors/errors"
)

var (
	ErrDuplicateParameter = stderrors.New("parameter already registered")
	ErrUnnamedParameter   = stderrors.New("parameter has no name")
)

// ParameterGroup is a form section with its visible parameters, in display order
type ParameterGroup struct {
	Name       string      `json:"name"`
	Order      int         `json:"order"`
	Parameters []Parameter `json:"parameters"`
}

// Registry holds the parameters declared by an importer
type Registry struct {
	mu     sync.RWMutex
	params map[string]Parameter
}

func NewRegistry(params ...Parameter) (*Registry, error) {
	r := &Registry{params: make(map[string]Parameter)}
	for _, p := range params {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a parameter, names are unique
func (r *Registry) Register(p Parameter) error {
	if p.Name == "" {
		return errors.New(ErrUnnamedParameter)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.params[p.Name]; exists {
		return errors.WrapPrefix(ErrDuplicateParameter, p.Name, 0)
	}
	r.params[p.Name] = p
	return nil
}

// Lookup returns a parameter by name, hidden ones included
func (r *Registry) Lookup(name string) (Parameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.params[name]
	return p, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.params)
}

func groupComparator(a, b interface{}) int {
	ga, gb := a.(*ParameterGroup), b.(*ParameterGroup)
	if c := utils.IntComparator(ga.Order, gb.Order); c != 0 {
		return c
	}
	return strings.Compare(ga.Name, gb.Name)
}

func parameterComparator(a, b interface{}) int {
	pa, pb := a.(Parameter), b.(Parameter)
	if c := utils.IntComparator(pa.Config.Order, pb.Config.Order); c != 0 {
		return c
	}
	if c := strings.Compare(pa.Config.DisplayName, pb.Config.DisplayName); c != 0 {
		return c
	}
	return strings.Compare(pa.Name, pb.Name)
}

// Groups returns the visible parameters by group name, groups ordered by (order, name)
// and parameters by (order, display name).
// A group declared with several orders takes the lowest one.
func (r *Registry) Groups() []ParameterGroup {
	r.mu.RLock()
	byName := treemap.NewWithStringComparator()
	for _, p := range r.params {
		if p.Config.Hidden {
			continue
		}
		g := p.Config.Group
		if v, found := byName.Get(g.Name); found {
			pg := v.(*ParameterGroup)
			if g.Order < pg.Order {
				pg.Order = g.Order
			}
			pg.Parameters = append(pg.Parameters, p)
			continue
		}
		byName.Put(g.Name, &ParameterGroup{Name: g.Name, Order: g.Order, Parameters: []Parameter{p}})
	}
	r.mu.RUnlock()

	groups := byName.Values()
	utils.Sort(groups, groupComparator)

	rv := make([]ParameterGroup, 0, len(groups))
	for _, v := range groups {
		pg := v.(*ParameterGroup)
		members := make([]interface{}, len(pg.Parameters))
		for i, p := range pg.Parameters {
			members[i] = p
		}
		utils.Sort(members, parameterComparator)
		for i, m := range members {
			pg.Parameters[i] = m.(Parameter)
		}
		rv = append(rv, *pg)
	}
	return rv
}
