package ast

// Kind identifies the variant of an AST node. The set is closed: every
// node built by the parser or by a production has one of the kinds below.
type Kind string

// Trigger grammar kinds.
const (
	KindTrigger     Kind = "TRIGGER"     // subset, EVENT|CONDITION
	KindEvent       Kind = "EVENT"       // ENTER|LEAVE|PHASE
	KindCondition   Kind = "CONDITION"   // HAS or a counter-count subtree
	KindEnter       Kind = "ENTER"       // destination, FROM?
	KindLeave       Kind = "LEAVE"       // zone-subset
	KindFrom        Kind = "FROM"        // zone-subset|ANYWHERE
	KindPhase       Kind = "PHASE"       // IN|OUT
	KindIn          Kind = "IN"          // Phasing direction marker
	KindOut         Kind = "OUT"         // Phasing direction marker
	KindHas         Kind = "HAS"         // keyword-ref
	KindZoneSet     Kind = "ZONE_SET"    // count or owner, zone
	KindNumber      Kind = "NUMBER"      // Integer payload
	KindAnywhere    Kind = "ANYWHERE"    // Any zone
	KindBattlefield Kind = "BATTLEFIELD" // Zone marker
	KindGraveyard   Kind = "GRAVEYARD"   // Zone marker
)

// Kinds produced by the subset, zone-subset, keyword and counter productions.
const (
	KindSubset      Kind = "SUBSET"       // determiner?, types... | SELF
	KindSelf        Kind = "SELF"         // The object with the ability
	KindDeterminer  Kind = "DETERMINER"   // a, another, each, target, ...
	KindObjectType  Kind = "OBJ_TYPE"     // creature, artifact, ...
	KindPlayer      Kind = "PLAYER"       // you, opponent, owner
	KindHand        Kind = "HAND"         // Zone marker
	KindLibrary     Kind = "LIBRARY"      // Zone marker
	KindExile       Kind = "EXILE"        // Zone marker
	KindStack       Kind = "STACK"        // Zone marker
	KindCommand     Kind = "COMMAND"      // Zone marker
	KindKeyword     Kind = "KEYWORD"      // Keyword ability reference
	KindCounters    Kind = "COUNTERS"     // NUMBER, COUNTER_TYPE, COMPARISON?
	KindCounterType Kind = "COUNTER_TYPE" // +1/+1, charge, ...
	KindComparison  Kind = "COMPARISON"   // or more, or fewer
)

// allKinds lists every valid kind in declaration order.
var allKinds = []Kind{
	KindTrigger, KindEvent, KindCondition, KindEnter, KindLeave, KindFrom,
	KindPhase, KindIn, KindOut, KindHas, KindZoneSet, KindNumber,
	KindAnywhere, KindBattlefield, KindGraveyard,

	KindSubset, KindSelf, KindDeterminer, KindObjectType, KindPlayer,
	KindHand, KindLibrary, KindExile, KindStack, KindCommand,
	KindKeyword, KindCounters, KindCounterType, KindComparison,
}

var validKinds = func() map[Kind]bool {
	m := make(map[Kind]bool, len(allKinds))
	for _, k := range allKinds {
		m[k] = true
	}
	return m
}()

// Kinds returns all valid node kinds.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// IsValid returns true if k is a member of the closed kind set.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// IsZoneMarker returns true for the terminal kinds naming a single zone.
func (k Kind) IsZoneMarker() bool {
	switch k {
	case KindBattlefield, KindGraveyard, KindHand, KindLibrary,
		KindExile, KindStack, KindCommand:
		return true
	}
	return false
}

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}
