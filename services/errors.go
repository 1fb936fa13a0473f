package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("not found")

	// Общая ошибка валидации, все ошибки ниже оборачивают ее
	ErrValidationFailed = errors.New("validation failed")

	// Конфликт с текущим состоянием
	ErrConflict = errors.New("conflict")
)

// Ошибки валидации результата матча
var (
	ErrUnknownTeam            = fmt.Errorf("%w: team is not a member of the group", ErrValidationFailed)
	ErrSelfMatch              = fmt.Errorf("%w: a team cannot play itself", ErrValidationFailed)
	ErrDuplicatePairing       = fmt.Errorf("%w: pair already played in this group", ErrValidationFailed)
	ErrIllegalDraw            = fmt.Errorf("%w: draws are not allowed", ErrValidationFailed)
	ErrNegativeScore          = fmt.Errorf("%w: score cannot be negative", ErrValidationFailed)
	ErrBelowWinThreshold      = fmt.Errorf("%w: winner did not reach the winning round count", ErrValidationFailed)
	ErrInvalidTechnicalWinner = fmt.Errorf("%w: technical winner must be one of the two teams", ErrValidationFailed)
	ErrMatchQuotaExceeded     = fmt.Errorf("%w: team already played every opponent in the group", ErrValidationFailed)
	ErrTeamNameRequired       = fmt.Errorf("%w: team name is required", ErrValidationFailed)
	ErrGroupNameRequired      = fmt.Errorf("%w: group name is required", ErrValidationFailed)
	ErrStageNameRequired      = fmt.Errorf("%w: stage name is required", ErrValidationFailed)
)

// Ошибки, специфичные для сущностей
var (
	ErrMatchNotFound        = fmt.Errorf("match %w", ErrNotFound)
	ErrTeamNotFound         = fmt.Errorf("team %w", ErrNotFound)
	ErrGroupNotFound        = fmt.Errorf("group %w", ErrNotFound)
	ErrStageNotFound        = fmt.Errorf("stage %w", ErrNotFound)
	ErrBracketMatchNotFound = fmt.Errorf("bracket match %w", ErrNotFound)
)

// Ошибки конфликтов
var (
	ErrTeamNameConflict = fmt.Errorf("%w: team name is already in use", ErrConflict)
	ErrAlreadyPlayed    = fmt.Errorf("%w: bracket match already has a result", ErrConflict)
)

// Ошибки подготовки стадий
var (
	ErrInsufficientTeams    = errors.New("not enough eligible teams")
	ErrInvalidGroupCount    = errors.New("group count must be at least 1")
	ErrInvalidSeedCount     = errors.New("seed list does not fit the bracket format")
	ErrBracketMatchNotReady = errors.New("bracket match still waits for a team")
	ErrInvalidWinner        = errors.New("winner must be one of the two teams")
	ErrNoSwissPairing       = errors.New("every remaining pairing is a rematch")
)
