package main

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// Builds the task record handed back to the caller when all criteria pass.
// The createdBy, urgency, and message values come from config so deployments
// can be rebranded without a code change.
func (er *EvaluationRequest) buildTask() *Task {
	// Create patient shortcut
	patient := er.Patient

	return &Task{
		CreatedBy:   config.SystemUser,
		CPMRN:       patient.CPMRN,
		PatientName: strings.TrimSpace(patient.Name + " " + patient.LastName),
		Hospital:    patient.HospitalName,
		Unit:        patient.UnitName,
		BedNumber:   patient.BedNo,
		CreatedAt:   time.Now().Format(time.RFC3339),
		Urgency:     config.TaskUrgency,
		Message:     config.TaskMessage,
	}
}

func generateEvalDetail(m map[string]string, fileName string) (string, error) {
	tmpl := template.Must(template.ParseFiles(fileName))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func structToMap(s any) map[string]string {
	// Initialize map
	result := make(map[string]string)

	// Create value and type fields
	val := reflect.ValueOf(s)
	typ := reflect.TypeOf(s)

	// Iterate over struct fields
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		value := val.Field(i)

		// Convert values to string
		var strValue string
		switch value.Kind() {
		case reflect.Bool:
			strValue = strconv.FormatBool(value.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			strValue = strconv.FormatInt(value.Int(), 10)
		case reflect.String:
			strValue = value.String()
		default:
			strValue = fmt.Sprintf("%v", value.Interface()) // Fallback for other types
		}

		// Append result to map
		result[field.Name] = strValue
	}
	return result
}
