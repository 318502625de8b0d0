package hunt

import (
	"time"

	"github.com/susu3304/lootsplit/internal/settlement"
)

// Participant is one member's reported figures for a hunt session.
// Balance is taken as reported and is not checked against Loot - Supplies.
type Participant struct {
	Name     string `json:"name" yaml:"name"`
	IsLeader bool   `json:"isLeader" yaml:"isLeader"`
	Loot     int64  `json:"loot" yaml:"loot"`
	Supplies int64  `json:"supplies" yaml:"supplies"`
	Balance  int64  `json:"balance" yaml:"balance"`
	Damage   int64  `json:"damage" yaml:"damage"`
	Healing  int64  `json:"healing" yaml:"healing"`
}

// Distribution is a participant's share of a group metric, in percent.
type Distribution struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Summary is the normalized result of parsing one hunt session report.
type Summary struct {
	SessionDate     string    `json:"sessionDate" yaml:"sessionDate"`
	SessionDuration string    `json:"sessionDuration" yaml:"sessionDuration"`
	SessionStart    time.Time `json:"sessionStart" yaml:"sessionStart"`
	SessionEnd      time.Time `json:"sessionEnd" yaml:"sessionEnd"`
	DurationSeconds int64     `json:"durationSeconds" yaml:"durationSeconds"`
	// SessionLength is the HH:MM figure the client printed on the "Session:" line.
	SessionLength string `json:"sessionLength" yaml:"sessionLength"`
	LootType      string `json:"lootType" yaml:"lootType"`

	TotalLoot         int64 `json:"totalLoot" yaml:"totalLoot"`
	TotalSupplies     int64 `json:"totalSupplies" yaml:"totalSupplies"`
	TotalBalance      int64 `json:"totalBalance" yaml:"totalBalance"`
	IndividualBalance int64 `json:"individualBalance" yaml:"individualBalance"`
	LootPerHour       int64 `json:"lootPerHour" yaml:"lootPerHour"`
	NumPlayers        int   `json:"numPlayers" yaml:"numPlayers"`

	DamageDistribution   []Distribution        `json:"damageDistribution" yaml:"damageDistribution"`
	HealingDistribution  []Distribution        `json:"healingDistribution" yaml:"healingDistribution"`
	TransferInstructions []settlement.Transfer `json:"transferInstructions" yaml:"transferInstructions"`
	Players              []Participant         `json:"players" yaml:"players"`
}
