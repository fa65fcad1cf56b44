package main

import (
	"strconv"
	"strings"
)

/**************************
 ***** Service Listing ****
 **************************/
type ServiceResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Id          string `json:"id"`
	Endpoint    string `json:"endpoint"`
}

/**************************
 ***** Check Request ******
 **************************/

// CheckRequest is the loosely-typed payload sent by the caller. Medications
// arrive as a flat list of name strings; the ventilator settings are carried
// on a single "latest vital" object and the readings taken since midnight on
// a separate list.
type CheckRequest struct {
	CPMRN        string         `json:"CPMRN"`
	Name         string         `json:"name"`
	LastName     string         `json:"lastName"`
	HospitalName string         `json:"hospitalName"`
	UnitName     string         `json:"unitName"`
	BedNo        string         `json:"bedNo"`
	CheckDate    string         `json:"checkDate,omitempty"`
	Medications  []string       `json:"medications"`
	LatestVital  *VitalPayload  `json:"latestVital"`
	Vitals       []VitalPayload `json:"vitals"`
}

// VitalPayload mirrors one vital entry as sent on the wire. The breath
// sequence and heart rate fields are pointers so an absent key can be told
// apart from an explicit value.
type VitalPayload struct {
	Timestamp              string     `json:"timestamp"`
	DaysFiO2               FlexFloat  `json:"daysFiO2"`
	DaysVentPEEP           FlexFloat  `json:"daysVentPEEP"`
	DaysVentBreathSequence *string    `json:"daysVentBreathSequence,omitempty"`
	DaysHR                 *FlexFloat `json:"daysHR,omitempty"`
}

/**************************
 ***** Patient Record *****
 **************************/

type PatientRecord struct {
	CPMRN        string             `json:"CPMRN"`
	Name         string             `json:"name"`
	LastName     string             `json:"lastName"`
	HospitalName string             `json:"hospitalName"`
	UnitName     string             `json:"unitName"`
	BedNo        string             `json:"bedNo"`
	Orders       Orders             `json:"orders"`
	Vitals       []VitalObservation `json:"vitals"`
}

type Orders struct {
	Active ActiveOrders `json:"active"`
}

type ActiveOrders struct {
	Medications []MedicationOrder `json:"medications"`
}

type MedicationOrder struct {
	Name string `json:"name"`
}

// VitalObservation is one point-in-time reading. The zero value of each field
// reads as "not recorded", so entries built from partial payloads stay safe
// to evaluate.
type VitalObservation struct {
	Timestamp              string    `json:"timestamp"`
	DaysFiO2               FlexFloat `json:"daysFiO2"`
	DaysVentPEEP           FlexFloat `json:"daysVentPEEP"`
	DaysVentBreathSequence string    `json:"daysVentBreathSequence,omitempty"`
	DaysHR                 FlexFloat `json:"daysHR"`
}

/**************************
 ******* Task Output ******
 **************************/

type Task struct {
	CreatedBy   string `json:"createdBy"`
	CPMRN       string `json:"CPMRN"`
	PatientName string `json:"patientName"`
	Hospital    string `json:"hospital"`
	Unit        string `json:"unit"`
	BedNumber   string `json:"BedNumber"`
	CreatedAt   string `json:"createdAt"`
	Urgency     string `json:"Urgency"`
	Message     string `json:"Message"`
}

/********************************
 ********** App Config **********
 ********************************/

type Config struct {
	SystemUser  string `json:"systemUser"`
	TaskUrgency string `json:"taskUrgency"`
	TaskMessage string `json:"taskMessage"`
}

/*******************************
 ***** Unmarshal Functions *****
 *******************************/

// FlexFloat holds a numeric field that may arrive as a JSON number, a numeric
// string, or null. A value that cannot be coerced is recorded as invalid
// rather than failing the unmarshal.
type FlexFloat struct {
	Value float64
	Valid bool
}

// Custom UnmarshalJSON for FlexFloat type
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}

	// Remove quotes around string-typed numbers
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Degrade to an invalid value, the gates treat it as not satisfied
		return nil
	}

	f.Value = value
	f.Valid = true
	return nil
}
