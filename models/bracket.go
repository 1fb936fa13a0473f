package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidBracketType   = errors.New("invalid bracket type")
	ErrInvalidBracketRound  = errors.New("invalid bracket round")
	ErrInvalidBracketFormat = errors.New("invalid bracket format")
)

// BracketType соответствует стороне сетки.
type BracketType string

const (
	BracketSingle BracketType = "single"
	BracketUpper  BracketType = "upper"
	BracketLower  BracketType = "lower"
)

func ParseBracketType(s string) (BracketType, error) {
	t := BracketType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBracketType, s)
	}
	return t, nil
}

func (t BracketType) Valid() bool {
	switch t {
	case BracketSingle, BracketUpper, BracketLower:
		return true
	}
	return false
}

func (t *BracketType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBracketType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *BracketType) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseBracketType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t BracketType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBracketType, string(t))
	}
	return string(t), nil
}

// BracketRound is a named stage of a bracket.
type BracketRound string

const (
	RoundOf16         BracketRound = "round_of_16"
	RoundQuarterfinal BracketRound = "quarterfinal"
	RoundSemifinal    BracketRound = "semifinal"
	RoundFinal        BracketRound = "final"
	RoundLower1       BracketRound = "lower_round_1"
	RoundLower2       BracketRound = "lower_round_2"
	RoundLower3       BracketRound = "lower_round_3"
	RoundLower4       BracketRound = "lower_round_4"
	RoundLower5       BracketRound = "lower_round_5"
	RoundLowerFinal   BracketRound = "lower_final"
	RoundGrandFinal   BracketRound = "grand_final"
)

var roundAbbrev = map[BracketRound]string{
	RoundOf16:         "R16-",
	RoundQuarterfinal: "QF",
	RoundSemifinal:    "SF",
	RoundFinal:        "F",
	RoundLower1:       "R1-",
	RoundLower2:       "R2-",
	RoundLower3:       "R3-",
	RoundLower4:       "R4-",
	RoundLower5:       "R5-",
	RoundLowerFinal:   "F",
	RoundGrandFinal:   "GF",
}

var lowerRounds = []BracketRound{RoundLower1, RoundLower2, RoundLower3, RoundLower4, RoundLower5}

func ParseBracketRound(s string) (BracketRound, error) {
	r := BracketRound(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBracketRound, s)
	}
	return r, nil
}

func (r BracketRound) Valid() bool {
	_, ok := roundAbbrev[r]
	return ok
}

// Abbrev is the short code used in match UIDs (QF, SF, GF, ...).
func (r BracketRound) Abbrev() string {
	return roundAbbrev[r]
}

// UpperRoundForMatches names an elimination round by how many matches it holds.
func UpperRoundForMatches(matches int) (BracketRound, error) {
	switch matches {
	case 8:
		return RoundOf16, nil
	case 4:
		return RoundQuarterfinal, nil
	case 2:
		return RoundSemifinal, nil
	case 1:
		return RoundFinal, nil
	}
	return "", fmt.Errorf("%w: no round holds %d matches", ErrInvalidBracketRound, matches)
}

// LowerRoundAt names the i-th (1-based) lower bracket round out of total.
func LowerRoundAt(i, total int) (BracketRound, error) {
	if i == total {
		return RoundLowerFinal, nil
	}
	if i < 1 || i > len(lowerRounds) || i > total {
		return "", fmt.Errorf("%w: lower round %d of %d", ErrInvalidBracketRound, i, total)
	}
	return lowerRounds[i-1], nil
}

func (r *BracketRound) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBracketRound(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r *BracketRound) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseBracketRound(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r BracketRound) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBracketRound, string(r))
	}
	return string(r), nil
}

// BracketFormat selects the generator for a stage.
type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "single_elimination"
	FormatDoubleElimination BracketFormat = "double_elimination"
)

func ParseBracketFormat(s string) (BracketFormat, error) {
	f := BracketFormat(s)
	switch f {
	case FormatSingleElimination, FormatDoubleElimination:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBracketFormat, s)
}

func (f *BracketFormat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBracketFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// BracketMatch is one node of a playoff stage. Team names stay empty until the
// slot is resolved; the placeholder labels describe where the team comes from.
type BracketMatch struct {
	ID               int          `json:"id" db:"id"`
	Stage            string       `json:"stage" db:"stage"`
	UID              string       `json:"uid" db:"uid"`
	BracketType      BracketType  `json:"bracket_type" db:"bracket_type"`
	BracketRound     BracketRound `json:"bracket_round" db:"bracket_round"`
	BracketPosition  int          `json:"bracket_position" db:"bracket_position"`
	Team1Name        string       `json:"team1_name,omitempty" db:"team1_name"`
	Team2Name        string       `json:"team2_name,omitempty" db:"team2_name"`
	Team1Placeholder string       `json:"team1_placeholder,omitempty" db:"team1_placeholder"`
	Team2Placeholder string       `json:"team2_placeholder,omitempty" db:"team2_placeholder"`
	WinnerName       string       `json:"winner_name,omitempty" db:"winner_name"`
	LoserName        string       `json:"loser_name,omitempty" db:"loser_name"`
	IsPlayed         bool         `json:"is_played" db:"is_played"`
	PlayedAt         *time.Time   `json:"played_at,omitempty" db:"played_at"`

	NextMatchID      *int `json:"next_match_id,omitempty" db:"next_match_id"`
	WinnerToSlot     *int `json:"winner_to_slot,omitempty" db:"winner_to_slot"`
	LoserNextMatchID *int `json:"loser_next_match_id,omitempty" db:"loser_next_match_id"`
	LoserToSlot      *int `json:"loser_to_slot,omitempty" db:"loser_to_slot"`
}

// Ready reports whether both slots hold real teams.
func (m *BracketMatch) Ready() bool {
	return m.Team1Name != "" && m.Team2Name != ""
}

func (m *BracketMatch) HasTeam(name string) bool {
	return name != "" && (m.Team1Name == name || m.Team2Name == name)
}

// IsTerminal is true for the node whose winner is the stage champion.
func (m *BracketMatch) IsTerminal() bool {
	return m.NextMatchID == nil && m.LoserNextMatchID == nil
}

// SetSlot writes a resolved team into slot 1 or 2.
func (m *BracketMatch) SetSlot(slot int, teamName string) error {
	switch slot {
	case 1:
		m.Team1Name = teamName
	case 2:
		m.Team2Name = teamName
	default:
		return fmt.Errorf("invalid bracket slot %d for match %s", slot, m.UID)
	}
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("unsupported scan type %T", src)
}
