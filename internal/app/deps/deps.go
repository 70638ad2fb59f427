package deps

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"mindlog/internal/config"
	"mindlog/internal/core/domain/chat"
	"mindlog/internal/core/domain/dailylog"
	dl "mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/notification"
	drl "mindlog/internal/core/domain/rate_limiter"
	"mindlog/internal/core/domain/user"
	dbchat "mindlog/internal/db/chat"
	dbdailylog "mindlog/internal/db/dailylog"
	dbmedication "mindlog/internal/db/medication"
	dbuser "mindlog/internal/db/user"
	"mindlog/internal/implementations/completion"
	"mindlog/internal/implementations/email"
	"mindlog/internal/implementations/logging"
	"mindlog/internal/implementations/notifier"
	passwordhasher "mindlog/internal/implementations/password_hasher"
	passwordresetter "mindlog/internal/implementations/password_resetter"
	ratelimiter "mindlog/internal/implementations/rate_limiter"
	"mindlog/internal/implementations/session"
	"mindlog/internal/rabbitmq"
	"mindlog/internal/scheduler"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

const COMPLETION_REQUEST_TIMEOUT = 90 * time.Second

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UserRepository        user.UserRepository
	SessionRepository     user.SessionRepository
	PermissionRepository  notification.PermissionRepository
	MedicationRepository  medication.Repository
	IntakeRepository      medication.IntakeRepository
	DailyLogRepository    dailylog.Repository
	ChatSessionRepository chat.SessionRepository
	ChatMessageRepository chat.MessageRepository

	RateLimiter drl.RateLimiter

	EmailSender              *email.EmailSender
	SessionTokenGenerator    user.SessionTokenGenerator
	PasswordHasher           user.PasswordHasher
	PasswordResetter         user.PasswordResetter
	PasswordResetTokenSender user.PasswordResetTokenSender

	Completer chat.Completer

	Notifier          notification.Notifier
	ReminderScheduler *scheduler.Scheduler
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.PermissionRepository = dbuser.NewPgxPermissionRepository(deps.DB)
	deps.MedicationRepository = dbmedication.NewPgxRepository(deps.DB)
	deps.IntakeRepository = dbmedication.NewPgxIntakeRepository(deps.DB)
	deps.DailyLogRepository = dbdailylog.NewPgxRepository(deps.DB)
	deps.ChatSessionRepository = dbchat.NewPgxSessionRepository(deps.DB)
	deps.ChatMessageRepository = dbchat.NewPgxMessageRepository(deps.DB)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.PasswordResetBaseURL,
		deps.Config.AwsEmailReminderTemplate,
	)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.SessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetter = passwordresetter.NewHMAC(
		deps.Config.Secret,
		time.Duration(deps.Config.PasswordResetValidDurationHours)*time.Hour,
		deps.Now,
	)
	deps.PasswordResetTokenSender = deps.EmailSender

	deps.Completer = completion.NewClient(
		&http.Client{Timeout: COMPLETION_REQUEST_TIMEOUT},
		deps.Logger,
		deps.Config.CompletionURL,
		deps.Config.CompletionAPIKey,
	)

	closeNotifier := deps.initNotifier()
	closeReminderScheduler := deps.initReminderScheduler()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeReminderScheduler,
			closeNotifier,
			closeSseServer,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

// initNotifier selects the reminder delivery path. Background mode
// still pushes to an open event stream but also queues an email for
// users who are away from the app.
func (deps *Deps) initNotifier() func() {
	switch deps.Config.NotificationMode {
	case config.NotificationModeForeground:
		deps.Notifier = notifier.NewSSE(deps.Logger, deps.SseServer)
		return func() {}
	case config.NotificationModeBackground:
		rabbitmqChannel := deps.initNotificationChannel()
		deps.Notifier = notifier.NewFanout(
			deps.Logger,
			notifier.NewSSE(deps.Logger, deps.SseServer),
			notifier.NewAMQP(
				deps.Logger,
				rabbitmqChannel,
				deps.Config.RabbitmqExchange,
				deps.Config.ReminderEmailRoutesKey,
			),
		)
		return func() {
			deps.Logger.Info(context.Background(), "Shutting down notification publisher.")
			rabbitmqChannel.Close()
			deps.Logger.Info(context.Background(), "Notification publisher shut down.")
		}
	default:
		deps.Notifier = notifier.NewNoop(deps.Logger)
		return func() {}
	}
}

func (deps *Deps) initNotificationChannel() *rabbitmq.Channel {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqReminderQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueBind(
		deps.Config.RabbitmqReminderQueue,
		deps.Config.ReminderEmailRoutesKey,
		deps.Config.RabbitmqExchange,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	return rabbitmqChannel
}

func (deps *Deps) initReminderScheduler() func() {
	deps.ReminderScheduler = scheduler.New(
		deps.Logger,
		deps.Notifier,
		deps.PermissionRepository,
		deps.Now,
	)
	deps.ReminderScheduler.Start()
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down reminder scheduler.")
		deps.ReminderScheduler.Shutdown()
		deps.Logger.Info(context.Background(), "Reminder scheduler shut down.")
	}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
