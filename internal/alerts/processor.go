package alerts

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the Asynq server and initializes a shared client.
func Init() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	opts := asynq.RedisClientOpt{Addr: redisAddr}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, handleWelcomeEmail)
	mux.HandleFunc(TaskBookingRequested, handleBookingRequested)
	mux.HandleFunc(TaskBookingStatusChanged, handleBookingStatusChanged)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Error().Err(err).Msg("asynq server stopped")
		}
	}()

	log.Info().Str("addr", redisAddr).Msg("asynq initialized")
}
