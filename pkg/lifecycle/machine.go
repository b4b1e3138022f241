// Package lifecycle owns the project certification state machine: the ordered
// pipeline from application to active, plus the two absorbing exits
// (rejected, retired). The functions here are pure; the storage layer enforces
// the computed transition with a conditional write so that concurrent admin
// actions cannot race past each other.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// ErrInvalidTransition is returned when a requested status change is not a
// legal move in the certification pipeline.
var ErrInvalidTransition = errors.New("invalid project status transition")

// ErrRejectionReasonRequired is returned when a rejection carries no reason.
var ErrRejectionReasonRequired = errors.New("rejection reason is required")

// pipeline is the ordered forward-only certification sequence.
var pipeline = []models.ProjectStatus{
	models.StatusApplication,
	models.StatusRegistration,
	models.StatusPreValidation,
	models.StatusValidation,
	models.StatusMonitoring,
	models.StatusAudited,
	models.StatusActive,
}

// Next returns the status that follows current in the pipeline.
// Terminal states (active, rejected, retired) have no successor.
func Next(current models.ProjectStatus) (models.ProjectStatus, error) {
	for i, s := range pipeline {
		if s != current {
			continue
		}
		if i == len(pipeline)-1 {
			return "", fmt.Errorf("%w: project is already active", ErrInvalidTransition)
		}
		return pipeline[i+1], nil
	}
	return "", fmt.Errorf("%w: no advance from status %q", ErrInvalidTransition, current)
}

// CanReject reports whether a project in the given status may still be
// rejected. Both absorbing exits are final.
func CanReject(current models.ProjectStatus) bool {
	return current != models.StatusRejected && current != models.StatusRetired
}

// ValidateReject checks the preconditions of a rejection.
func ValidateReject(current models.ProjectStatus, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrRejectionReasonRequired
	}
	if !CanReject(current) {
		return fmt.Errorf("%w: cannot reject a project in status %q", ErrInvalidTransition, current)
	}
	return nil
}

// ValidateRetire checks that a project may be retired. Retirement of the
// project itself is only reachable from active.
func ValidateRetire(current models.ProjectStatus) error {
	if current != models.StatusActive {
		return fmt.Errorf("%w: only active projects can be retired, got %q", ErrInvalidTransition, current)
	}
	return nil
}

// Purchasable reports whether credits of a project may currently be sold.
// The legacy "verified" vocabulary is normalised to active at the store
// boundary, so active is the single sellable status.
func Purchasable(p *models.Project) bool {
	return p.Status == models.StatusActive && p.AvailableCredits.IsPositive()
}

// Terminal reports whether a status has no outgoing transitions at all.
func Terminal(s models.ProjectStatus) bool {
	return s == models.StatusRejected || s == models.StatusRetired
}

// ValidStatus reports whether s is one of the closed set of statuses this
// engine persists. Unknown strings are rejected at the store boundary instead
// of being carried along.
func ValidStatus(s models.ProjectStatus) bool {
	switch s {
	case models.StatusApplication, models.StatusRegistration, models.StatusPreValidation,
		models.StatusValidation, models.StatusMonitoring, models.StatusAudited,
		models.StatusActive, models.StatusRejected, models.StatusRetired:
		return true
	}
	return false
}

// Normalize maps legacy status vocabulary onto the staged pipeline. The old
// two-state flow ("pending"/"verified") is a degenerate instantiation of the
// same machine: pending maps to application, verified to active.
func Normalize(raw string) (models.ProjectStatus, error) {
	switch models.ProjectStatus(raw) {
	case "pending":
		return models.StatusApplication, nil
	case "verified":
		return models.StatusActive, nil
	}
	s := models.ProjectStatus(raw)
	if !ValidStatus(s) {
		return "", fmt.Errorf("unknown project status %q", raw)
	}
	return s, nil
}
