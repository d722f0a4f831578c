package main

import "net/http"

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	app.sendResponse(w, r, http.StatusOK, "available", map[string]string{
		"environment": app.config.Environment,
		"version":     app.config.Version,
	})
}
