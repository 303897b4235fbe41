package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/effortplan/internal/domain"
	"github.com/alexanderramin/effortplan/internal/timeline"
)

// ref addresses one element by its own id and by its path, the slash-joined
// ids from the root down (screen/1/1, t1/s1/a). Ids repeat under different
// parents; paths do not.
type ref[T any] struct {
	id   string
	path string
	val  T
}

// resolve matches input against refs. An exact path wins, then an exact id
// that names a single element, then a unique id prefix, then a unique path
// prefix.
func resolve[T any](what, input string, refs []ref[T]) (T, error) {
	var zero T
	if input == "" {
		return zero, fmt.Errorf("%s ID is required", what)
	}

	var exact []ref[T]
	for _, r := range refs {
		if r.path == input {
			return r.val, nil
		}
		if r.id == input {
			exact = append(exact, r)
		}
	}
	switch len(exact) {
	case 0:
	case 1:
		return exact[0].val, nil
	default:
		return zero, ambiguous(what, input, exact)
	}

	matches := prefixed(refs, input, func(r ref[T]) string { return r.id })
	if len(matches) == 0 {
		matches = prefixed(refs, input, func(r ref[T]) string { return r.path })
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s not found: %q", what, input)
	case 1:
		return matches[0].val, nil
	}
	return zero, ambiguous(what, input, matches)
}

func prefixed[T any](refs []ref[T], input string, key func(ref[T]) string) []ref[T] {
	var out []ref[T]
	for _, r := range refs {
		if strings.HasPrefix(key(r), input) {
			out = append(out, r)
		}
	}
	return out
}

func ambiguous[T any](what, input string, refs []ref[T]) error {
	paths := make([]string, len(refs))
	for i, r := range refs {
		paths[i] = r.path
	}
	return fmt.Errorf("%s %q is %w; use one of: %s", what, input, domain.ErrAmbiguous, strings.Join(paths, ", "))
}

func estimationOf(doc *domain.Document) (*domain.Estimation, error) {
	if doc.Kind != domain.ModelEstimation || doc.Estimation == nil {
		return nil, fmt.Errorf("the working project is a %s; this command needs an estimation", doc.Kind)
	}
	return doc.Estimation, nil
}

func planOf(doc *domain.Document) (*domain.Plan, error) {
	if doc.Kind != domain.ModelPlan || doc.Plan == nil {
		return nil, fmt.Errorf("the working project is a %s; this command needs a plan", doc.Kind)
	}
	return doc.Plan, nil
}

type itemRef struct {
	group *domain.Group
	item  *domain.Item
}

type subTaskRef struct {
	task    *domain.PlanTask
	subTask *domain.SubTask
}

type teamRef struct {
	subTask *domain.SubTask
	team    *domain.TeamAssignment
}

func groupRefs(e *domain.Estimation) []ref[*domain.Group] {
	var refs []ref[*domain.Group]
	for _, g := range e.AllGroups() {
		refs = append(refs, ref[*domain.Group]{id: g.ID, path: timeline.Key(string(g.Kind), g.ID), val: g})
	}
	return refs
}

func itemRefs(e *domain.Estimation) []ref[itemRef] {
	var refs []ref[itemRef]
	for _, g := range e.AllGroups() {
		for i := range g.Items {
			it := &g.Items[i]
			refs = append(refs, ref[itemRef]{
				id:   it.ID,
				path: timeline.Key(string(g.Kind), g.ID, it.ID),
				val:  itemRef{group: g, item: it},
			})
		}
	}
	return refs
}

func taskRefs(p *domain.Plan) []ref[*domain.PlanTask] {
	refs := make([]ref[*domain.PlanTask], 0, len(p.Tasks))
	for i := range p.Tasks {
		t := &p.Tasks[i]
		refs = append(refs, ref[*domain.PlanTask]{id: t.ID, path: timeline.Key(t.ID), val: t})
	}
	return refs
}

func subTaskRefs(p *domain.Plan) []ref[subTaskRef] {
	var refs []ref[subTaskRef]
	for i := range p.Tasks {
		t := &p.Tasks[i]
		for j := range t.SubTasks {
			st := &t.SubTasks[j]
			refs = append(refs, ref[subTaskRef]{
				id:   st.ID,
				path: timeline.Key(t.ID, st.ID),
				val:  subTaskRef{task: t, subTask: st},
			})
		}
	}
	return refs
}

func teamRefs(p *domain.Plan) []ref[teamRef] {
	var refs []ref[teamRef]
	for i := range p.Tasks {
		t := &p.Tasks[i]
		for j := range t.SubTasks {
			st := &t.SubTasks[j]
			for k := range st.Teams {
				tm := &st.Teams[k]
				refs = append(refs, ref[teamRef]{
					id:   tm.ID,
					path: timeline.Key(t.ID, st.ID, tm.ID),
					val:  teamRef{subTask: st, team: tm},
				})
			}
		}
	}
	return refs
}
