package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
)

// Services bundles the use-cases exposed over HTTP.
type Services struct {
	Users         *services.UserService
	Trials        *services.TrialTimeService
	RobotSettings *services.RobotSettingsService
	Videos        *services.MediaService
	Photos        *services.MediaService
	Announcements *services.AnnouncementService
	Notes         *services.NoteService
	AdminMessages *services.AdminMessageService
}

// Mount registers every API route on r. The identity resolver middleware
// must already be installed on a parent router.
func Mount(r chi.Router, svc Services, codec *auth.TokenCodec, cookie auth.CookieConfig) {
	AuthRouter(r, svc.Users, codec, cookie)

	r.Route("/users", func(r chi.Router) {
		UserRouter(r, svc.Users)
	})
	r.Route("/times", func(r chi.Router) {
		TrialTimeRouter(r, svc.Trials)
	})
	r.Route("/robot-settings", func(r chi.Router) {
		RobotSettingsRouter(r, svc.RobotSettings)
	})
	r.Route("/videos", func(r chi.Router) {
		MediaRouter(r, svc.Videos)
	})
	r.Route("/photos", func(r chi.Router) {
		MediaRouter(r, svc.Photos)
	})
	r.Route("/announcements", func(r chi.Router) {
		AnnouncementRouter(r, svc.Announcements)
	})
	r.Route("/notes", func(r chi.Router) {
		NoteRouter(r, svc.Notes)
	})
	r.Route("/admin-messages", func(r chi.Router) {
		AdminMessageRouter(r, svc.AdminMessages)
	})
}
