package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.jwtAuth)

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/register", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/api/auth/login", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Complaints. The literal /admin route must be registered before the
	// parameterized ones so pat does not capture "admin" as an id.
	mux.Get("/api/complaints/admin", authMiddleware.ThenFunc(app.complaintHandler.GetAllComplaints))
	mux.Post("/api/complaints", authMiddleware.ThenFunc(app.complaintHandler.SubmitComplaint))
	mux.Get("/api/complaints", authMiddleware.ThenFunc(app.complaintHandler.GetMyComplaints))
	mux.Add(http.MethodPatch, "/api/complaints/:id/status", authMiddleware.ThenFunc(app.complaintHandler.UpdateComplaintStatus))
	mux.Post("/api/complaints/:id/photo", authMiddleware.ThenFunc(app.complaintHandler.UploadComplaintPhoto))
	mux.Del("/api/complaints/:id", authMiddleware.ThenFunc(app.complaintHandler.DeleteComplaint))

	// Push notification tokens
	mux.Post("/api/notify/token", authMiddleware.ThenFunc(app.notifyHandler.CreateToken))
	mux.Del("/api/notify/token/:token", authMiddleware.ThenFunc(app.notifyHandler.DeleteToken))

	// Admin live feed
	mux.Get("/ws/admin", authMiddleware.ThenFunc(app.AdminFeedHandler))

	return mux
}
