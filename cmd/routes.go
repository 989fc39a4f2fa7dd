package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	publicMiddleware := standardMiddleware.Append(app.optionalIdentity)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/sign_out", authMiddleware.ThenFunc(app.userHandler.SignOut))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Listings
	mux.Post("/listings", authMiddleware.ThenFunc(app.listingHandler.CreateListing))
	mux.Get("/listings/mine", authMiddleware.ThenFunc(app.listingHandler.GetMyListings))
	mux.Get("/listings/:id", publicMiddleware.ThenFunc(app.listingHandler.GetListingByID))
	mux.Del("/listings/:id", authMiddleware.ThenFunc(app.listingHandler.DeleteListing))
	mux.Get("/listings", publicMiddleware.ThenFunc(app.listingHandler.GetListings))
	mux.Get("/filters/meta", standardMiddleware.ThenFunc(app.listingHandler.GetFilterMeta))

	// Saved listings
	mux.Post("/saved", authMiddleware.ThenFunc(app.savedHandler.SaveListing))
	mux.Del("/saved/:listing_id", authMiddleware.ThenFunc(app.savedHandler.UnsaveListing))
	mux.Get("/saved/check/:listing_id", authMiddleware.ThenFunc(app.savedHandler.CheckSaved))
	mux.Get("/saved", authMiddleware.ThenFunc(app.savedHandler.GetSavedListings))

	// Dashboard
	mux.Get("/dashboard/stats", authMiddleware.ThenFunc(app.statsHandler.DashboardStats))

	return mux
}
