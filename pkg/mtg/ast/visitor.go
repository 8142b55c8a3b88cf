package ast

import "fmt"

// Visitor provides an interface for traversing trigger trees.
// There is one method per node variant the trigger grammar builds, so an
// implementation that forgets a variant does not compile. Subtrees from
// the subset, keyword and counter productions arrive at VisitOpaque.
type Visitor interface {
	VisitTrigger(*Node) error
	VisitEvent(*Node) error
	VisitCondition(*Node) error
	VisitEnter(*Node) error
	VisitLeave(*Node) error
	VisitFrom(*Node) error
	VisitPhase(*Node) error
	VisitHas(*Node) error
	VisitZoneSet(*Node) error
	VisitMarker(*Node) error
	VisitOpaque(*Node) error
}

// BaseVisitor implements Visitor with no-op methods.
// Embed it to override only the methods of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitTrigger(*Node) error   { return nil }
func (BaseVisitor) VisitEvent(*Node) error     { return nil }
func (BaseVisitor) VisitCondition(*Node) error { return nil }
func (BaseVisitor) VisitEnter(*Node) error     { return nil }
func (BaseVisitor) VisitLeave(*Node) error     { return nil }
func (BaseVisitor) VisitFrom(*Node) error      { return nil }
func (BaseVisitor) VisitPhase(*Node) error     { return nil }
func (BaseVisitor) VisitHas(*Node) error       { return nil }
func (BaseVisitor) VisitZoneSet(*Node) error   { return nil }
func (BaseVisitor) VisitMarker(*Node) error    { return nil }
func (BaseVisitor) VisitOpaque(*Node) error    { return nil }

// Dispatch calls the visitor method matching the node's kind.
// It returns an error for a kind outside the closed set.
func Dispatch(n *Node, v Visitor) error {
	switch n.Kind() {
	case KindTrigger:
		return v.VisitTrigger(n)
	case KindEvent:
		return v.VisitEvent(n)
	case KindCondition:
		return v.VisitCondition(n)
	case KindEnter:
		return v.VisitEnter(n)
	case KindLeave:
		return v.VisitLeave(n)
	case KindFrom:
		return v.VisitFrom(n)
	case KindPhase:
		return v.VisitPhase(n)
	case KindHas:
		return v.VisitHas(n)
	case KindZoneSet:
		return v.VisitZoneSet(n)
	case KindIn, KindOut, KindNumber, KindAnywhere, KindBattlefield, KindGraveyard:
		return v.VisitMarker(n)
	case KindSubset, KindSelf, KindDeterminer, KindObjectType, KindPlayer,
		KindHand, KindLibrary, KindExile, KindStack, KindCommand,
		KindKeyword, KindCounters, KindCounterType, KindComparison:
		return v.VisitOpaque(n)
	default:
		return fmt.Errorf("ast: unknown node kind %q", n.Kind())
	}
}

// Walk traverses the tree depth-first in child order, calling Dispatch for
// each node. It returns the first error encountered.
func Walk(n *Node, v Visitor) error {
	if n == nil {
		return nil
	}
	if err := Dispatch(n, v); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := Walk(c, v); err != nil {
			return err
		}
	}
	return nil
}

// Inspect traverses the tree depth-first, calling fn for each node.
// If fn returns false, the children of that node are skipped.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.children {
		Inspect(c, fn)
	}
}
