package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postCheck(t *testing.T, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/services/sbt", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, checkSBT(c))
	return rec
}

func eligibleBody() string {
	return `{
		"CPMRN": "CP001",
		"name": "Asha",
		"lastName": "Rao",
		"hospitalName": "General",
		"unitName": "ICU",
		"bedNo": "12",
		"checkDate": "2025-07-15",
		"medications": [],
		"latestVital": {"timestamp": "2025-07-15T06:00:00", "daysFiO2": 50, "daysVentPEEP": 5},
		"vitals": []
	}`
}

func TestCheckSBT_EligiblePatient(t *testing.T) {
	rec := postCheck(t, eligibleBody())
	assert.Equal(t, http.StatusOK, rec.Code)

	var task Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "SBT agent", task.CreatedBy)
	assert.Equal(t, "CP001", task.CPMRN)
	assert.Equal(t, "Asha Rao", task.PatientName)
	assert.Equal(t, "General", task.Hospital)
	assert.Equal(t, "ICU", task.Unit)
	assert.Equal(t, "12", task.BedNumber)
	assert.Equal(t, "Low", task.Urgency)
	assert.Contains(t, task.Message, "Please order a SBT")
	assert.NotEmpty(t, task.CreatedAt)
}

func TestCheckSBT_NotEligible(t *testing.T) {
	body := strings.Replace(eligibleBody(), `"medications": []`, `"medications": ["IV Noradrenaline"]`, 1)
	rec := postCheck(t, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Patient does not meet SBT eligibility criteria", resp["message"])
}

func TestCheckSBT_RecentInstability(t *testing.T) {
	body := strings.Replace(eligibleBody(), `"vitals": []`,
		`"vitals": [{"timestamp": "2025-07-15T07:00:00", "daysVentBreathSequence": "csv", "daysHR": 100}]`, 1)
	rec := postCheck(t, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Patient does not meet SBT eligibility criteria", resp["message"])
}

func TestCheckSBT_StringCoercedFiO2(t *testing.T) {
	body := strings.Replace(eligibleBody(), `"daysFiO2": 50`, `"daysFiO2": "70"`, 1)
	rec := postCheck(t, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["message"])
}

func TestCheckSBT_EmptyBody(t *testing.T) {
	rec := postCheck(t, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestCheckSBT_MalformedBody(t *testing.T) {
	rec := postCheck(t, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildPatientRecord(t *testing.T) {
	csv := "csv"
	req := CheckRequest{
		CPMRN:       "CP002",
		Name:        "Ravi",
		Medications: []string{" paracetamol ", "", "   "},
		LatestVital: &VitalPayload{
			Timestamp:    "2025-07-15T06:00:00",
			DaysFiO2:     ff(50),
			DaysVentPEEP: ff(5),
		},
		Vitals: []VitalPayload{
			{Timestamp: "2025-07-15T07:00:00", DaysVentBreathSequence: &csv},
		},
	}

	patient := buildPatientRecord(req)

	// Blank medication names are dropped and the rest trimmed
	require.Len(t, patient.Orders.Active.Medications, 1)
	assert.Equal(t, "paracetamol", patient.Orders.Active.Medications[0].Name)

	// Latest vital first, then the rest of the readings
	require.Len(t, patient.Vitals, 2)
	assert.Equal(t, ff(50), patient.Vitals[0].DaysFiO2)
	assert.Equal(t, "csv", patient.Vitals[1].DaysVentBreathSequence)
	assert.False(t, patient.Vitals[1].DaysHR.Valid)
}

func TestBuildPatientRecord_NoLatestVital(t *testing.T) {
	patient := buildPatientRecord(CheckRequest{CPMRN: "CP003"})
	assert.Empty(t, patient.Vitals)
	assert.Empty(t, patient.Orders.Active.Medications)
}

func TestParseCheckRequest_Whitespace(t *testing.T) {
	_, err := parseCheckRequest(strings.NewReader("   \n"))
	assert.Error(t, err)
}
