package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	appVersion string
)

func servicesList(c echo.Context) error {
	// Build service listing response
	serviceResponse := ServiceResponse{
		Services: []Service{
			{
				Title:       "Check SBT Eligibility",
				Description: "Checks if a patient qualifies for a Spontaneous Breathing Trial",
				Id:          "sbt",
				Endpoint:    "/services/sbt",
			},
		},
	}

	// Return response
	return c.JSON(http.StatusOK, serviceResponse)
}

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.NoContent(http.StatusOK)
}
