package core

// Color is the role of a screen cell. Games pick roles; the platform maps
// each role to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorMuted         // empty cells, rules, secondary text
	ColorTitle
	ColorStat
	ColorNotice // shot feedback, overlay headings
	ColorPlayer
	ColorThreat // destroyables
	ColorLoot   // collectables
	ColorShield // blockers
)
