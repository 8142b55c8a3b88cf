package lexer

import (
	"sort"
	"strings"

	"demystify-mtg/demystify/pkg/mtg/token"
)

// Every surface form of a word maps to the same kind. Present tense covers
// both persons ("enter" and "enters"), nouns cover singular and plural.
var verbs = map[token.Kind][]string{
	token.KindEnter: {"enter", "enters"},
	token.KindLeave: {"leave", "leaves"},
	token.KindDie:   {"die", "dies"},
	token.KindPhase: {"phase", "phases"},
	token.KindHas:   {"has", "have"},
	token.KindIs:    {"is"},
	token.KindAre:   {"are"},
	token.KindPut:   {"put", "puts"},
}

var connectives = map[token.Kind][]string{
	token.KindInto:     {"into"},
	token.KindOnto:     {"onto"},
	token.KindFrom:     {"from"},
	token.KindAnywhere: {"anywhere"},
	token.KindIn:       {"in"},
	token.KindOut:      {"out"},
	token.KindOr:       {"or"},
	token.KindMore:     {"more", "greater"},
	token.KindFewer:    {"fewer", "less"},
	token.KindOn:       {"on"},
	token.KindCounter:  {"counter", "counters"},
}

var zones = []string{
	"battlefield", "graveyard", "graveyards", "hand", "hands",
	"library", "libraries", "exile", "stack", "command zone",
}

var abilities = []string{
	// core
	"deathtouch", "defender", "double strike", "first strike", "flash",
	"flying", "haste", "hexproof", "indestructible", "intimidate",
	"landwalk", "lifelink", "protection", "reach", "shroud", "trample",
	"vigilance",

	// expert level expansions
	"affinity", "annihilator", "battle cry", "bloodthirst", "bushido",
	"buyback", "cascade", "changeling", "convoke", "cumulative upkeep",
	"delve", "dredge", "echo", "entwine", "epic", "exalted", "fading",
	"flanking", "flashback", "forecast", "frenzy", "gravestorm",
	"hideaway", "horsemanship", "infect", "kicker", "living weapon",
	"madness", "modular", "morph", "multikicker", "ninjutsu", "offering",
	"persist", "phasing", "poisonous", "rampage", "rebound", "retrace",
	"shadow", "soulshift", "split second", "storm", "sunburst", "totem armor",
	"undying", "unearth", "vanishing", "wither",
}

var determiners = []string{
	"a", "an", "another", "each", "target", "the", "that", "this", "its",
	"all", "any",
}

var objectTypes = []string{
	"artifact", "artifacts", "creature", "creatures", "enchantment",
	"enchantments", "land", "lands", "planeswalker", "planeswalkers",
	"permanent", "permanents", "card", "cards", "token", "tokens",
	"spell", "spells", "instant", "instants", "sorcery", "sorceries",
	"nontoken", "legendary", "basic", "snow",
}

var players = []string{
	"you", "player", "players", "opponent", "opponents", "owner",
	"controller",
}

var possessives = []string{
	"your", "player's", "players'", "opponent's", "opponents'", "owner's",
	"controller's", "their",
}

var selfWords = []string{"~", "it"}

// numberWords maps spelled-out numbers to their values.
var numberWords = map[string]int{
	"no":        0,
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
}

// dictionary is the merged word -> kind lookup.
// phrases holds the multi-word entries split into words, longest first.
var (
	dictionary = map[string]token.Kind{}
	phrases    [][]string
)

func init() {
	for kind, words := range verbs {
		addWords(kind, words...)
	}
	for kind, words := range connectives {
		addWords(kind, words...)
	}
	addWords(token.KindZone, zones...)
	addWords(token.KindAbility, abilities...)
	addWords(token.KindDeterminer, determiners...)
	addWords(token.KindObjectType, objectTypes...)
	addWords(token.KindPlayer, players...)
	addWords(token.KindPlayerPoss, possessives...)
	addWords(token.KindSelf, selfWords...)
	for w := range numberWords {
		addWords(token.KindNumber, w)
	}

	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return strings.Join(phrases[i], " ") < strings.Join(phrases[j], " ")
	})
}

func addWords(kind token.Kind, words ...string) {
	for _, w := range words {
		dictionary[w] = kind
		if strings.Contains(w, " ") {
			phrases = append(phrases, strings.Fields(w))
		}
	}
}

// Lookup returns the kind of a dictionary word or phrase (lowercase).
func Lookup(word string) (token.Kind, bool) {
	k, ok := dictionary[word]
	return k, ok
}

// NumberValue returns the value of a number token's text, spelled out or
// in digits.
func NumberValue(text string) (int, bool) {
	text = strings.ToLower(text)
	if n, ok := numberWords[text]; ok {
		return n, true
	}
	if text == "" {
		return 0, false
	}
	n := 0
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Words returns every dictionary entry of the given kind, sorted.
func Words(kind token.Kind) []string {
	var out []string
	for w, k := range dictionary {
		if k == kind {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// counterNames are the named counter types. They only lex as
// COUNTER_TYPE when followed by "counter" or "counters".
var counterNames = map[string]bool{
	"age": true, "aim": true, "arrow": true, "arrowhead": true, "awakening": true,
	"blaze": true, "blood": true, "bounty": true, "bribery": true, "carrion": true,
	"charge": true, "corpse": true, "credit": true, "cube": true, "currency": true,
	"death": true, "delay": true, "depletion": true, "devotion": true, "divinity": true,
	"doom": true, "dream": true, "echo": true, "elixir": true, "energy": true,
	"eon": true, "fade": true, "fate": true, "feather": true, "flood": true,
	"fungus": true, "fuse": true, "glyph": true, "gold": true, "growth": true,
	"hatchling": true, "healing": true, "hoofprint": true, "hourglass": true, "hunger": true,
	"ice": true, "infection": true, "intervention": true, "javelin": true, "ki": true,
	"level": true, "loyalty": true, "luck": true, "magnet": true, "mannequin": true,
	"matrix": true, "mine": true, "mining": true, "mire": true, "music": true,
	"net": true, "omen": true, "ore": true, "page": true, "pain": true,
	"paralyzation": true, "petal": true, "phylactery": true, "pin": true, "plague": true,
	"poison": true, "polyp": true, "pressure": true, "pupa": true, "quest": true,
	"rust": true, "scream": true, "shell": true, "shield": true, "shred": true,
	"sleep": true, "sleight": true, "soot": true, "spore": true, "storage": true,
	"strife": true, "study": true, "theft": true, "tide": true, "time": true,
	"tower": true, "training": true, "trap": true, "treasure": true, "velocity": true,
	"verse": true, "vitality": true, "wage": true, "winch": true, "wind": true,
	"wish": true,
}
