package deps

import (
	"context"
	"eventual/internal/config"
	"eventual/internal/core/domain/expression"
	dl "eventual/internal/core/domain/logging"
	drl "eventual/internal/core/domain/rate_limiter"
	announceoccurrence "eventual/internal/core/services/announce_occurrence"
	"eventual/internal/implementations/grammar"
	"eventual/internal/implementations/logging"
	ratelimiter "eventual/internal/implementations/rate_limiter"
	sequencecache "eventual/internal/implementations/sequence_cache"
	valuepublisher "eventual/internal/implementations/value_publisher"
	"eventual/internal/rabbitmq"
	occurrencescheduler "eventual/internal/rabbitmq/publishers/occurrence_scheduler"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now             func() time.Time
	DefaultLanguage expression.Language
	Parser          *expression.Parser

	RateLimiter         drl.RateLimiter
	ValuesCache         expression.ValuesCache
	OccurrenceScheduler expression.OccurrenceScheduler
	ValuePublisher      expression.ValuePublisher
}

func NewParser(now func() time.Time) *expression.Parser {
	return expression.NewParser(now, grammar.All())
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.DefaultLanguage = deps.initDefaultLanguage()
	deps.Parser = NewParser(deps.Now)

	closeSseServer := deps.initSseServer()
	deps.ValuePublisher = valuepublisher.NewSSE(
		deps.Logger,
		deps.SseServer,
		deps.Config.StreamTTL,
		announceoccurrence.OccurrencesStream,
	)

	closeFuncs := []func(){closeSseServer}
	if deps.Config.IsTestMode {
		deps.RateLimiter = ratelimiter.NewMemory(deps.Now)
		deps.ValuesCache = sequencecache.NewMemory(deps.Now)
		deps.OccurrenceScheduler = expression.NewTestOccurrenceScheduler()
	} else {
		closeRedisClient := deps.initRedisClient()
		closeRabbitmqConn := deps.initRabbitmqConnection()
		closeOccurrenceScheduler := deps.initRabbitmqOccurrenceScheduler()
		deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
		deps.ValuesCache = sequencecache.NewRedis(deps.Redis)
		closeFuncs = append(closeFuncs, closeOccurrenceScheduler, closeRabbitmqConn, closeRedisClient)
	}
	closeFuncs = append(closeFuncs, flushSentry, closeLogger)

	return deps, func() {
		var wg sync.WaitGroup
		wg.Add(len(closeFuncs) - 1)
		for _, closeFunc := range closeFuncs[:len(closeFuncs)-1] {
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

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initDefaultLanguage() expression.Language {
	lang, err := expression.ParseLanguage(deps.Config.DefaultLanguage)
	if err != nil {
		deps.Logger.Error(context.Background(), "Invalid default language.", dl.Entry("err", err))
		panic(err)
	}
	return lang
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

func (deps *Deps) initRabbitmqOccurrenceScheduler() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqOccurrenceDueQueue
	if err := rabbitmqChannel.DeclareDelayed(deps.Config.RabbitmqDelayedExchange, queue, queue); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare RabbitMQ topology.", dl.Entry("err", err))
		panic(err)
	}

	deps.OccurrenceScheduler = occurrencescheduler.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqDelayedExchange,
		queue,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down occurrence scheduler.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Occurrence scheduler shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = false
	deps.SseServer.AutoReplay = true
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
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
