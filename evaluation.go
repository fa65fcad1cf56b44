package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EvaluationRequest struct {
	Context  EvalContext
	Patient  *PatientRecord
	Criteria Criteria
}

type EvalContext struct {
	RequestContext context.Context
	EvalId         string
	Body           string
}

type Criteria struct {
	SBT *SBTCriteria
}

func checkSBT(c echo.Context) error {

	// Obtains raw http request
	r := c.Request()

	// Obtains http request context
	ctx := r.Context()

	checkRequest, err := parseCheckRequest(r.Body)
	if err != nil {
		logger(ctx, err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	// Build the patient record from the loose payload
	patient := buildPatientRecord(checkRequest)

	// Convert the shaped request back to a string to add as context for logs
	requestBytes, err := json.Marshal(checkRequest)
	if err != nil {
		// Log an error if this fails, but continue to process the request
		logger(ctx, fmt.Errorf("failed to marshal check request: %v", err))
	}

	// Initialize evaluation request struct
	er := EvaluationRequest{
		Context: EvalContext{
			RequestContext: ctx,
			EvalId:         uuid.NewString(),
			Body:           string(requestBytes),
		},
		Patient: patient,
	}

	// Resolve the check date, defaulting to today
	checkDate := time.Now().UTC()
	if checkRequest.CheckDate != "" {
		if parsed, parseErr := parseDate(checkRequest.CheckDate); parseErr == nil {
			checkDate = parsed
		} else {
			logger(ctx, fmt.Errorf("%v (patient: %s)", parseErr, patient.CPMRN))
		}
	}

	// Evaluate SBT criteria
	er.Criteria.SBT = er.sbtEligibility(checkDate)

	// Convert struct to map to pass to generateEvalDetail function
	detailMap := structToMap(*er.Criteria.SBT)

	// Build detail string
	detail, err := generateEvalDetail(detailMap, "static/evalDetail.txt")
	if err != nil {
		logger(ctx, fmt.Errorf("%v (patient: %s)", err, patient.CPMRN))
		return c.NoContent(http.StatusInternalServerError)
	}

	// Log evaluation results
	er.sendWebLog(detail)

	// Criteria not met. This is an informational outcome, not an error.
	if !er.Criteria.SBT.Evaluation {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Patient does not meet SBT eligibility criteria",
		})
	}

	// Return the generated task
	return c.JSON(http.StatusOK, er.buildTask())
}

func parseCheckRequest(body io.Reader) (CheckRequest, error) {

	reqBytes, err := io.ReadAll(body)
	if err != nil {
		return CheckRequest{}, err
	}

	// An empty body is a request error, not an evaluation outcome
	if len(bytes.TrimSpace(reqBytes)) == 0 {
		return CheckRequest{}, errors.New("empty request body")
	}

	// Unmarshal request into struct
	var checkRequest CheckRequest
	if err := json.Unmarshal(reqBytes, &checkRequest); err != nil {
		return CheckRequest{}, fmt.Errorf("unable to unmarshal check request: %v", err)
	}

	return checkRequest, nil
}

// Shapes the loose request payload into a PatientRecord. Blank medication
// names are skipped, the latest vital contributes the ventilator settings,
// and the remaining vitals only carry the keys present in the payload.
func buildPatientRecord(req CheckRequest) *PatientRecord {
	patient := PatientRecord{
		CPMRN:        req.CPMRN,
		Name:         req.Name,
		LastName:     req.LastName,
		HospitalName: req.HospitalName,
		UnitName:     req.UnitName,
		BedNo:        req.BedNo,
		Orders: Orders{
			Active: ActiveOrders{
				Medications: []MedicationOrder{},
			},
		},
		Vitals: []VitalObservation{},
	}

	// Add active medications
	for _, name := range req.Medications {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		patient.Orders.Active.Medications = append(patient.Orders.Active.Medications, MedicationOrder{
			Name: name,
		})
	}

	// Add the latest vital
	if req.LatestVital != nil {
		patient.Vitals = append(patient.Vitals, VitalObservation{
			Timestamp:    req.LatestVital.Timestamp,
			DaysFiO2:     req.LatestVital.DaysFiO2,
			DaysVentPEEP: req.LatestVital.DaysVentPEEP,
		})
	}

	// Add other vitals since 12am
	for _, vital := range req.Vitals {
		entry := VitalObservation{
			Timestamp: vital.Timestamp,
		}
		if vital.DaysVentBreathSequence != nil {
			entry.DaysVentBreathSequence = *vital.DaysVentBreathSequence
		}
		if vital.DaysHR != nil {
			entry.DaysHR = *vital.DaysHR
		}
		patient.Vitals = append(patient.Vitals, entry)
	}

	return &patient
}
