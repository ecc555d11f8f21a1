package ordinals

// Charm is the per-inscription flag bitfield. Charms derived from a
// sat's numeric position (Coin, Nineball, and the rarity flags) are
// computed by Sat.Charms; the rest are set by the inscription updater
// from curse, lifecycle, and placement state.
type Charm uint16

const (
	CharmCoin Charm = 1 << iota
	CharmCursed
	CharmEpic
	CharmLegendary
	CharmLost
	CharmMythic
	CharmNineball
	CharmRare
	CharmReinscription
	CharmUnbound
	CharmUncommon
	CharmVindicated
)

var charmNames = [...]struct {
	flag Charm
	name string
}{
	{CharmCoin, "coin"},
	{CharmCursed, "cursed"},
	{CharmEpic, "epic"},
	{CharmLegendary, "legendary"},
	{CharmLost, "lost"},
	{CharmMythic, "mythic"},
	{CharmNineball, "nineball"},
	{CharmRare, "rare"},
	{CharmReinscription, "reinscription"},
	{CharmUnbound, "unbound"},
	{CharmUncommon, "uncommon"},
	{CharmVindicated, "vindicated"},
}

// Has reports whether flag is set in c.
func (c Charm) Has(flag Charm) bool {
	return c&flag != 0
}

// Names returns the set flags in c as their lowercase names, in
// declaration order.
func (c Charm) Names() []string {
	names := make([]string, 0, len(charmNames))
	for _, entry := range charmNames {
		if c.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return names
}
