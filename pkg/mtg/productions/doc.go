// Package productions provides the subset, zone-subset, keyword and
// counter rules the trigger parser delegates to.
//
// The rules cover the common phrasings of trigger subjects and zones:
// "~", "a creature", "your creatures", "the battlefield", "a graveyard",
// "your hand", "its owner's graveyard", and counter counts such as
// "three or more +1/+1 counters on it".
package productions
