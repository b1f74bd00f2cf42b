// Package progress holds everything that outlives a single run: the
// persisted save record, the currency ledger and the upgrade registry.
// Run-scoped temporary effects live on the registry as well so that one
// value answers "what modifies this run".
package progress

// SaveState is the persisted record. Field names are the on-disk keys.
type SaveState struct {
	Gems                 int             `yaml:"gems"`
	Shards               int             `yaml:"shards"`
	TotalCoinsEarned     int             `yaml:"totalCoinsEarned"`
	TotalGemsEarned      int             `yaml:"totalGemsEarned"`
	HighestWave          int             `yaml:"highestWave"`
	TotalRuns            int             `yaml:"totalRuns"`
	TotalBricksDestroyed int             `yaml:"totalBricksDestroyed"`
	Upgrades             map[string]int  `yaml:"upgrades"`
	Prestige             map[string]bool `yaml:"prestige"`
	Settings             Settings        `yaml:"settings"`
}

// Settings is the player preferences sub-record.
type Settings struct {
	SoundEnabled bool `yaml:"soundEnabled"`
	MusicEnabled bool `yaml:"musicEnabled"`
}

// DefaultSave returns a fresh record with every known key present.
func DefaultSave() *SaveState {
	s := &SaveState{
		Upgrades: make(map[string]int, len(AllUpgrades())),
		Prestige: make(map[string]bool, len(AllPrestige())),
		Settings: Settings{SoundEnabled: true, MusicEnabled: true},
	}
	for _, k := range AllUpgrades() {
		s.Upgrades[k.Key()] = 0
	}
	for _, p := range AllPrestige() {
		s.Prestige[p.Key()] = false
	}
	return s
}

// Clone returns a deep copy.
func (s *SaveState) Clone() *SaveState {
	c := *s
	c.Upgrades = make(map[string]int, len(s.Upgrades))
	for k, v := range s.Upgrades {
		c.Upgrades[k] = v
	}
	c.Prestige = make(map[string]bool, len(s.Prestige))
	for k, v := range s.Prestige {
		c.Prestige[k] = v
	}
	return &c
}

// Normalize fills missing keys and clamps negative counters. Unknown
// upgrade or prestige keys written by other versions are kept.
func (s *SaveState) Normalize() {
	if s.Upgrades == nil {
		s.Upgrades = make(map[string]int)
	}
	if s.Prestige == nil {
		s.Prestige = make(map[string]bool)
	}
	for _, k := range AllUpgrades() {
		if v, ok := s.Upgrades[k.Key()]; !ok || v < 0 {
			s.Upgrades[k.Key()] = 0
		}
	}
	for _, p := range AllPrestige() {
		if _, ok := s.Prestige[p.Key()]; !ok {
			s.Prestige[p.Key()] = false
		}
	}
	for _, n := range []*int{
		&s.Gems, &s.Shards, &s.TotalCoinsEarned, &s.TotalGemsEarned,
		&s.HighestWave, &s.TotalRuns, &s.TotalBricksDestroyed,
	} {
		if *n < 0 {
			*n = 0
		}
	}
}

// RecordWave raises the highest-wave stat. It reports whether the wave
// is a new record.
func (s *SaveState) RecordWave(wave int) bool {
	if wave <= s.HighestWave {
		return false
	}
	s.HighestWave = wave
	return true
}
