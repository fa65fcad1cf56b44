package main

import (
	"strings"
	"time"
)

type SBTCriteria struct {
	VentSettings bool
	NoPressor    bool
	Stable       bool
	Evaluation   bool
}

func (er *EvaluationRequest) sbtEligibility(checkDate time.Time) *SBTCriteria {
	/*
	 * Latest vital has daysFiO2 < 60 AND daysVentPEEP < 10
	 * AND No active medication order containing "noradrenaline"
	 * AND No vital since 12am of the check date with
	 *     daysVentBreathSequence = "csv" AND daysHR < 120
	 *
	 * Thresholds are strict. Fields that are missing or fail to coerce are
	 * treated as not satisfying whichever condition needs them.
	 */

	// Evaluate SBT criteria
	sc := SBTCriteria{}

	// Create patient shortcut
	patient := er.Patient

	// Find the latest vital by timestamp. Unparsable timestamps are skipped,
	// and a tie keeps the vital seen first.
	var latest *VitalObservation
	var latestTime time.Time

	for i := range patient.Vitals {
		t, err := parseDate(patient.Vitals[i].Timestamp)
		if err != nil {
			continue
		}
		if latest == nil || t.After(latestTime) {
			latest = &patient.Vitals[i]
			latestTime = t
		}
	}

	// Check ventilator settings on the latest vital
	if latest != nil {
		if latest.DaysFiO2.Valid && latest.DaysFiO2.Value < 60 &&
			latest.DaysVentPEEP.Valid && latest.DaysVentPEEP.Value < 10 {
			sc.VentSettings = true
		}
	}

	// Check active medication orders for noradrenaline. Substring match on
	// the lower-cased name so brand and route variants are caught.
	sc.NoPressor = true
MedicationLoop:
	for _, medication := range patient.Orders.Active.Medications {
		if strings.Contains(strings.ToLower(medication.Name), "noradrenaline") {
			sc.NoPressor = false
			break MedicationLoop
		}
	}

	// Check vitals since 12am of the check date for a csv breath sequence
	// with a heart rate below 120
	windowStart := startOfDay(checkDate)

	sc.Stable = true
StabilityLoop:
	for _, vital := range patient.Vitals {
		t, err := parseDate(vital.Timestamp)
		if err != nil || t.Before(windowStart) {
			continue
		}
		if vital.DaysVentBreathSequence == "csv" {
			// An uncoercible heart rate does not trigger the gate
			if vital.DaysHR.Valid && vital.DaysHR.Value < 120 {
				sc.Stable = false
				break StabilityLoop
			}
		}
	}

	// Return final evaluation
	sc.Evaluation = sc.VentSettings && sc.NoPressor && sc.Stable

	return &sc
}
