package deps

import (
	"context"
	"enemauth/internal/config"
	dl "enemauth/internal/core/domain/logging"
	passwordreset "enemauth/internal/core/domain/password_reset"
	drl "enemauth/internal/core/domain/rate_limiter"
	duow "enemauth/internal/core/domain/unit_of_work"
	"enemauth/internal/core/domain/user"
	dbpasswordreset "enemauth/internal/db/password_reset"
	uow "enemauth/internal/db/unit_of_work"
	dbuser "enemauth/internal/db/user"
	"enemauth/internal/implementations/clock"
	"enemauth/internal/implementations/email"
	lognotifier "enemauth/internal/implementations/log_notifier"
	"enemauth/internal/implementations/logging"
	passwordhasher "enemauth/internal/implementations/password_hasher"
	ratelimiter "enemauth/internal/implementations/rate_limiter"
	tokengenerator "enemauth/internal/implementations/token_generator"
	"enemauth/internal/rabbitmq"
	passwordresetrequested "enemauth/internal/rabbitmq/publishers/password_reset_requested"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork                   duow.UnitOfWork
	UserRepository               user.UserRepository
	PasswordResetTokenRepository passwordreset.TokenRepository

	RateLimiter drl.RateLimiter

	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator passwordreset.TokenGenerator
	PasswordResetNotifier       passwordreset.Notifier
	PasswordResetTokenTTL       time.Duration
	PasswordResetRateLimit      drl.Limit
	PasswordResetEmailSender    *email.EmailSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = clock.UTC

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.PasswordResetTokenRepository = dbpasswordreset.NewPgxTokenRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = tokengenerator.NewGenerator()
	deps.PasswordResetTokenTTL = deps.Config.PasswordResetTokenTTL()
	deps.PasswordResetRateLimit = drl.Limit{Interval: drl.Hour, Value: deps.Config.PasswordResetRequestsPerHour}

	if deps.Config.AwsEmailSender != "" {
		deps.PasswordResetEmailSender = email.NewEmailSender(
			deps.AwsConfig,
			deps.Config.AwsEmailSender,
			deps.Config.AwsEmailPasswordResetTemplate,
			deps.Config.AwsEmailPasswordResetBaseUrl,
		)
	}
	closeNotifier := deps.initPasswordResetNotifier()

	return deps, func() {
		closeFuncs := []func(){
			closeNotifier,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
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
		closeLogger()
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
	logger := logging.NewZapLogger(deps.Config.LogLevel)
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
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is disabled.")
		return func() {}
	}

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

func (deps *Deps) initPasswordResetNotifier() func() {
	transport := deps.Config.NotificationTransport
	deps.Logger.Info(
		context.Background(),
		"Password reset notification transport selected.",
		dl.Entry("transport", transport),
	)

	switch transport {
	case config.NotificationTransportSES:
		deps.PasswordResetNotifier = deps.PasswordResetEmailSender
		return func() {}
	case config.NotificationTransportLog:
		deps.PasswordResetNotifier = lognotifier.New(deps.Logger)
		return func() {}
	case config.NotificationTransportRabbitmq:
		return deps.initRabbitmqPasswordResetPublisher()
	}
	panic(fmt.Sprintf("unknown notification transport %q", transport))
}

func (deps *Deps) initRabbitmqPasswordResetPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetRequestedQueue
	if err = rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.PasswordResetNotifier = passwordresetrequested.NewRabbitMQ(deps.Logger, rabbitmqChannel, "", queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password reset publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password reset publisher shut down.")
	}
}
