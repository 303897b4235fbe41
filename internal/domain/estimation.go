package domain

import (
	"fmt"
	"slices"
)

// Item is a leaf of the flat model.
type Item struct {
	ID   string
	Name string
	// Complexity is set for screens only. Common tasks leave it empty.
	Complexity Complexity
	EffortDays float64
}

type Group struct {
	ID    string
	Name  string
	Kind  GroupKind
	Items []Item
}

// Estimation is the root of the flat model.
type Estimation struct {
	Name         string
	ScreenGroups []Group
	TaskGroups   []Group
	Settings     Settings
}

// ItemPatch carries optional item updates. A Complexity update overwrites
// EffortDays with the base days of the new label, even when the same patch
// also sets EffortDays.
type ItemPatch struct {
	Name       *string
	EffortDays *float64
	Complexity *Complexity
}

func NewEstimation(name string) *Estimation {
	return &Estimation{Name: name, Settings: DefaultSettings()}
}

func (e *Estimation) groups(kind GroupKind) (*[]Group, error) {
	switch kind {
	case GroupScreen:
		return &e.ScreenGroups, nil
	case GroupTask:
		return &e.TaskGroups, nil
	}
	return nil, fmt.Errorf("invalid group kind %q", kind)
}

// AddGroup appends an empty group of the given kind. The returned pointer
// is valid until the next group is added.
func (e *Estimation) AddGroup(kind GroupKind, name string) (*Group, error) {
	list, err := e.groups(kind)
	if err != nil {
		return nil, err
	}
	*list = append(*list, Group{ID: NewID(), Name: name, Kind: kind})
	return &(*list)[len(*list)-1], nil
}

// GroupIn looks id up among the groups of one kind.
func (e *Estimation) GroupIn(kind GroupKind, id string) (*Group, error) {
	list, err := e.groups(kind)
	if err != nil {
		return nil, err
	}
	for i := range *list {
		if (*list)[i].ID == id {
			return &(*list)[i], nil
		}
	}
	return nil, fmt.Errorf("%s group %s: %w", kind, id, ErrNotFound)
}

// FindGroup searches screen groups then task groups. Screen and task groups
// may share an id; such an id is reported as ambiguous.
func (e *Estimation) FindGroup(id string) (*Group, error) {
	var found []*Group
	for _, g := range e.AllGroups() {
		if g.ID == id {
			found = append(found, g)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("group %s: %w", id, ErrNotFound)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("group %s: %w (%d matches)", id, ErrAmbiguous, len(found))
}

func (e *Estimation) RenameGroup(id, name string) error {
	g, err := e.FindGroup(id)
	if err != nil {
		return err
	}
	g.Name = name
	return nil
}

// DeleteGroup removes the group and every item it owns.
func (e *Estimation) DeleteGroup(id string) error {
	g, err := e.FindGroup(id)
	if err != nil {
		return err
	}
	return e.DeleteGroupIn(g.Kind, id)
}

func (e *Estimation) DeleteGroupIn(kind GroupKind, id string) error {
	list, err := e.groups(kind)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(*list, func(g Group) bool { return g.ID == id })
	if i < 0 {
		return fmt.Errorf("%s group %s: %w", kind, id, ErrNotFound)
	}
	*list = slices.Delete(*list, i, i+1)
	return nil
}

// AllGroups returns the groups in traversal order: screen groups, then
// task groups.
func (e *Estimation) AllGroups() []*Group {
	out := make([]*Group, 0, len(e.ScreenGroups)+len(e.TaskGroups))
	for i := range e.ScreenGroups {
		out = append(out, &e.ScreenGroups[i])
	}
	for i := range e.TaskGroups {
		out = append(out, &e.TaskGroups[i])
	}
	return out
}

// FindItem locates an item in any group. Item ids repeat across groups, so
// an id found in more than one group is reported as ambiguous.
func (e *Estimation) FindItem(id string) (*Group, *Item, error) {
	var (
		group *Group
		item  *Item
		n     int
	)
	for _, g := range e.AllGroups() {
		if it, err := g.FindItem(id); err == nil {
			group, item = g, it
			n++
		}
	}
	switch n {
	case 0:
		return nil, nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	case 1:
		return group, item, nil
	}
	return nil, nil, fmt.Errorf("item %s: %w (%d matches)", id, ErrAmbiguous, n)
}

// AddItem appends a new leaf. Screens start as normal complexity with its
// base days; tasks start at zero effort.
func (g *Group) AddItem(name string) *Item {
	it := Item{ID: NewID(), Name: name}
	if g.Kind == GroupScreen {
		it.Complexity = ComplexityNormal
		it.EffortDays = ComplexityNormal.BaseDays()
	}
	g.Items = append(g.Items, it)
	return &g.Items[len(g.Items)-1]
}

func (g *Group) FindItem(id string) (*Item, error) {
	for i := range g.Items {
		if g.Items[i].ID == id {
			return &g.Items[i], nil
		}
	}
	return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
}

func (g *Group) UpdateItem(id string, patch ItemPatch) error {
	it, err := g.FindItem(id)
	if err != nil {
		return err
	}
	if patch.Complexity != nil {
		if g.Kind != GroupScreen {
			return fmt.Errorf("item %s: %w: complexity applies to screens only", id, ErrInvalidComplexity)
		}
		if !patch.Complexity.Valid() {
			return fmt.Errorf("item %s: %w %q", id, ErrInvalidComplexity, *patch.Complexity)
		}
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.EffortDays != nil {
		it.EffortDays = ClampEffort(*patch.EffortDays)
	}
	if patch.Complexity != nil {
		it.Complexity = *patch.Complexity
		it.EffortDays = patch.Complexity.BaseDays()
	}
	return nil
}

func (g *Group) DeleteItem(id string) error {
	i := slices.IndexFunc(g.Items, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	g.Items = slices.Delete(g.Items, i, i+1)
	return nil
}

// LeafCount returns the number of items across every group.
func (e *Estimation) LeafCount() int {
	n := 0
	for _, g := range e.AllGroups() {
		n += len(g.Items)
	}
	return n
}

func (g Group) clone() Group {
	g.Items = slices.Clone(g.Items)
	return g
}

func (e *Estimation) Clone() *Estimation {
	if e == nil {
		return nil
	}
	out := *e
	out.ScreenGroups = cloneGroups(e.ScreenGroups)
	out.TaskGroups = cloneGroups(e.TaskGroups)
	out.Settings = e.Settings.Clone()
	return &out
}

func cloneGroups(in []Group) []Group {
	if in == nil {
		return nil
	}
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = g.clone()
	}
	return out
}
