package reactive

import "slices"

// reaction is a computation re-executed when one of its dependencies changes.
type reaction interface {
	execute()
	dispose()
	addDependency(o observable)
	removeDependency(o observable)
	ownedBy() *Owner
}

// observable is a value source that reactions can depend on.
type observable interface {
	track(r reaction)
	untrack(r reaction)
}

type reactionTracker struct {
	reactions []reaction
}

func (s *reactionTracker) track(o observable, r reaction) {
	if !slices.Contains(s.reactions, r) {
		s.reactions = append(s.reactions, r)
		r.addDependency(o)
	}
}

func (s *reactionTracker) untrack(o observable, r reaction) {
	if index := slices.Index(s.reactions, r); index != -1 {
		s.reactions = slices.Delete(s.reactions, index, index+1)
		r.removeDependency(o)
	}
}

type dependencyTracker struct {
	dependencies []observable
}

func (d *dependencyTracker) addDependency(o observable) {
	if !slices.Contains(d.dependencies, o) {
		d.dependencies = append(d.dependencies, o)
	}
}

func (d *dependencyTracker) removeDependency(o observable) {
	if index := slices.Index(d.dependencies, o); index != -1 {
		d.dependencies = slices.Delete(d.dependencies, index, index+1)
	}
}

func (d *dependencyTracker) clear(r reaction) {
	// cloned, untrack mutates d.dependencies
	dependencies := slices.Clone(d.dependencies)
	d.dependencies = nil
	for _, dep := range dependencies {
		dep.untrack(r)
	}
}
