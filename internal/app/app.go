package app

import (
	"fmt"
	"net/http"

	"mindlog/internal/app/deps"
	"mindlog/internal/app/services"
	"mindlog/internal/http/handlers/auth"
	login "mindlog/internal/http/handlers/auth/log_in"
	logout "mindlog/internal/http/handlers/auth/log_out"
	resetpassword "mindlog/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "mindlog/internal/http/handlers/auth/send_password_reset_token"
	signup "mindlog/internal/http/handlers/auth/sign_up"
	listsessions "mindlog/internal/http/handlers/chat/list_sessions"
	sendmessage "mindlog/internal/http/handlers/chat/send_message"
	getdailylog "mindlog/internal/http/handlers/logs/get_daily_log"
	savedailylog "mindlog/internal/http/handlers/logs/save_daily_log"
	createmedication "mindlog/internal/http/handlers/medications/create_medication"
	deletemedication "mindlog/internal/http/handlers/medications/delete_medication"
	listusermedications "mindlog/internal/http/handlers/medications/list_user_medications"
	markmedicationtaken "mindlog/internal/http/handlers/medications/mark_medication_taken"
	updatemedication "mindlog/internal/http/handlers/medications/update_medication"
	"mindlog/internal/http/handlers/notifications/action"
	"mindlog/internal/http/handlers/notifications/events"
	"mindlog/internal/http/handlers/notifications/permission"
	"mindlog/internal/http/handlers/reports/dashboard"
	"mindlog/internal/http/handlers/reports/progress"
	weeklyreport "mindlog/internal/http/handlers/reports/weekly_report"
	me "mindlog/internal/http/handlers/user/me"
	updateuser "mindlog/internal/http/handlers/user/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	profileRouter.Method(http.MethodPatch, "/me", updateuser.New(s.UpdateUser))

	medicationsRouter := chi.NewRouter()
	medicationsRouter.Use(auth.SetAuthTokenToContext)
	medicationsRouter.Method(http.MethodGet, "/", listusermedications.New(s.ListUserMedications))
	medicationsRouter.Method(http.MethodPost, "/", createmedication.New(s.CreateMedication))
	medicationsRouter.Method(http.MethodPatch, "/{medicationID}", updatemedication.New(s.UpdateMedication))
	medicationsRouter.Method(http.MethodDelete, "/{medicationID}", deletemedication.New(s.DeleteMedication))
	medicationsRouter.Method(
		http.MethodPost,
		"/{medicationID}/taken",
		markmedicationtaken.New(s.MarkMedicationTaken),
	)

	logsRouter := chi.NewRouter()
	logsRouter.Use(auth.SetAuthTokenToContext)
	logsRouter.Method(http.MethodGet, "/daily", getdailylog.New(s.GetDailyLog))
	logsRouter.Method(http.MethodPut, "/daily", savedailylog.New(s.SaveDailyLog))

	reportsRouter := chi.NewRouter()
	reportsRouter.Use(auth.SetAuthTokenToContext)
	reportsRouter.Method(http.MethodGet, "/dashboard", dashboard.New(s.Dashboard))
	reportsRouter.Method(http.MethodGet, "/weekly", weeklyreport.New(s.WeeklyReport))
	reportsRouter.Method(http.MethodGet, "/progress", progress.New(s.Progress))

	chatRouter := chi.NewRouter()
	chatRouter.Use(auth.SetAuthTokenToContext)
	chatRouter.Method(http.MethodPost, "/message", sendmessage.New(s.SendChatMessage))
	chatRouter.Method(http.MethodGet, "/sessions", listsessions.New(s.ListChatSessions))

	notificationsRouter := chi.NewRouter()
	notificationsRouter.Use(auth.SetAuthTokenToContext)
	notificationsRouter.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken),
	)
	notificationsRouter.Method(
		http.MethodPost,
		"/action",
		action.New(deps.Logger, s.GetUserBySessionToken, s.MarkMedicationTaken, deps.ReminderScheduler),
	)
	notificationsRouter.Method(http.MethodPut, "/permission", permission.New(s.SetNotificationPermission))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/medications", medicationsRouter)
	router.Mount("/logs", logsRouter)
	router.Mount("/reports", reportsRouter)
	router.Mount("/chat", chatRouter)
	router.Mount("/notifications", notificationsRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
