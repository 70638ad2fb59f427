package services

import (
	"mindlog/internal/app/deps"
	drl "mindlog/internal/core/domain/rate_limiter"
	"mindlog/internal/core/services"
	"mindlog/internal/core/services/auth"
	createmedication "mindlog/internal/core/services/create_medication"
	"mindlog/internal/core/services/dashboard"
	deletemedication "mindlog/internal/core/services/delete_medication"
	getdailylog "mindlog/internal/core/services/get_daily_log"
	getuserbysessiontoken "mindlog/internal/core/services/get_user_by_session_token"
	listchatsessions "mindlog/internal/core/services/list_chat_sessions"
	listusermedications "mindlog/internal/core/services/list_user_medications"
	login "mindlog/internal/core/services/log_in"
	logout "mindlog/internal/core/services/log_out"
	markmedicationtaken "mindlog/internal/core/services/mark_medication_taken"
	"mindlog/internal/core/services/progress"
	ratelimiting "mindlog/internal/core/services/rate_limiting"
	resetpassword "mindlog/internal/core/services/reset_password"
	savedailylog "mindlog/internal/core/services/save_daily_log"
	schedulereminders "mindlog/internal/core/services/schedule_reminders"
	sendchatmessage "mindlog/internal/core/services/send_chat_message"
	sendpasswordresettoken "mindlog/internal/core/services/send_password_reset_token"
	setnotificationpermission "mindlog/internal/core/services/set_notification_permission"
	signup "mindlog/internal/core/services/sign_up"
	updatemedication "mindlog/internal/core/services/update_medication"
	updateuser "mindlog/internal/core/services/update_user"
	weeklyreport "mindlog/internal/core/services/weekly_report"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	UpdateUser             services.Service[updateuser.Input, updateuser.Result]

	CreateMedication    services.Service[createmedication.Input, createmedication.Result]
	UpdateMedication    services.Service[updatemedication.Input, updatemedication.Result]
	DeleteMedication    services.Service[deletemedication.Input, deletemedication.Result]
	ListUserMedications services.Service[listusermedications.Input, listusermedications.Result]
	MarkMedicationTaken services.Service[markmedicationtaken.Input, markmedicationtaken.Result]
	ScheduleReminders   services.Service[schedulereminders.Input, schedulereminders.Result]

	SaveDailyLog services.Service[savedailylog.Input, savedailylog.Result]
	GetDailyLog  services.Service[getdailylog.Input, getdailylog.Result]

	Dashboard    services.Service[dashboard.Input, dashboard.Result]
	WeeklyReport services.Service[weeklyreport.Input, weeklyreport.Result]
	Progress     services.Service[progress.Input, progress.Result]

	SendChatMessage  services.Service[sendchatmessage.Input, sendchatmessage.Result]
	ListChatSessions services.Service[listchatsessions.Input, listchatsessions.Result]

	SetNotificationPermission services.Service[setnotificationpermission.Input, setnotificationpermission.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		signup.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetter,
			deps.PasswordResetTokenSender,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
		deps.PasswordHasher,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(deps.SessionRepository)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
		),
	)

	s.ScheduleReminders = schedulereminders.New(
		deps.Logger,
		deps.MedicationRepository,
		deps.ReminderScheduler,
	)
	s.CreateMedication = auth.WithAuthentication(
		deps.SessionRepository,
		createmedication.New(
			deps.Logger,
			deps.MedicationRepository,
			s.ScheduleReminders,
			deps.Now,
		),
	)
	s.UpdateMedication = auth.WithAuthentication(
		deps.SessionRepository,
		updatemedication.New(
			deps.Logger,
			deps.MedicationRepository,
			s.ScheduleReminders,
			deps.Now,
		),
	)
	s.DeleteMedication = auth.WithAuthentication(
		deps.SessionRepository,
		deletemedication.New(
			deps.Logger,
			deps.MedicationRepository,
			s.ScheduleReminders,
		),
	)
	s.ListUserMedications = auth.WithAuthentication(
		deps.SessionRepository,
		listusermedications.New(
			deps.Logger,
			deps.MedicationRepository,
		),
	)
	s.MarkMedicationTaken = auth.WithAuthentication(
		deps.SessionRepository,
		markmedicationtaken.New(
			deps.Logger,
			deps.MedicationRepository,
			deps.IntakeRepository,
			deps.DailyLogRepository,
			deps.Now,
		),
	)

	s.SaveDailyLog = auth.WithAuthentication(
		deps.SessionRepository,
		savedailylog.New(
			deps.Logger,
			deps.DailyLogRepository,
			deps.Now,
		),
	)
	s.GetDailyLog = auth.WithAuthentication(
		deps.SessionRepository,
		getdailylog.New(
			deps.DailyLogRepository,
			deps.Now,
		),
	)

	s.Dashboard = auth.WithAuthentication(
		deps.SessionRepository,
		dashboard.New(
			deps.Logger,
			deps.DailyLogRepository,
			deps.Now,
		),
	)
	s.WeeklyReport = auth.WithAuthentication(
		deps.SessionRepository,
		weeklyreport.New(
			deps.Logger,
			deps.DailyLogRepository,
			deps.Now,
		),
	)
	s.Progress = auth.WithAuthentication(
		deps.SessionRepository,
		progress.New(
			deps.Logger,
			deps.DailyLogRepository,
			deps.Now,
		),
	)

	s.SendChatMessage = auth.WithAuthentication(
		deps.SessionRepository,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Minute, Value: 5},
			sendchatmessage.New(
				deps.Logger,
				deps.ChatSessionRepository,
				deps.ChatMessageRepository,
				deps.Completer,
				deps.Now,
			),
		),
	)
	s.ListChatSessions = auth.WithAuthentication(
		deps.SessionRepository,
		listchatsessions.New(
			deps.Logger,
			deps.ChatSessionRepository,
		),
	)

	s.SetNotificationPermission = auth.WithAuthentication(
		deps.SessionRepository,
		setnotificationpermission.New(
			deps.Logger,
			deps.PermissionRepository,
		),
	)

	return s
}
