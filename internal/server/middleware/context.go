package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/lattice-kg/lattice/internal/util"
	"github.com/lattice-kg/lattice/pkg/ai"
	oai "github.com/lattice-kg/lattice/pkg/ai/ollama"
	gai "github.com/lattice-kg/lattice/pkg/ai/openai"
	"github.com/lattice-kg/lattice/pkg/logger"
	"github.com/lattice-kg/lattice/pkg/store"
)

type AppUser struct {
	Subject string
	Role    string
}

type App struct {
	Registry     *store.Registry
	Queue        *amqp091.Channel
	Key          *keyfunc.Keyfunc
	AiClient     ai.TextClient
	MasterAPIKey string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(
	registry *store.Registry,
	queue *amqp091.Channel,
	key *keyfunc.Keyfunc,
	masterAPIKey string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			adapter := util.GetEnv("AI_ADAPTER")
			var aiClient ai.TextClient

			switch adapter {
			case "ollama":
				client, err := oai.NewTextOllamaClient(oai.NewTextOllamaClientParams{
					RewriteModel: util.GetEnv("AI_REWRITE_MODEL"),
					AnswerModel:  util.GetEnv("AI_ANSWER_MODEL"),

					BaseURL: util.GetEnv("AI_CHAT_URL"),
					ApiKey:  util.GetEnv("AI_CHAT_KEY"),

					MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
				})
				if err != nil {
					logger.Fatal("Failed to create Ollama client", "err", err)
				}
				aiClient = client
			default:
				aiClient = gai.NewTextOpenAIClient(gai.NewTextOpenAIClientParams{
					RewriteModel: util.GetEnv("AI_REWRITE_MODEL"),
					AnswerModel:  util.GetEnv("AI_ANSWER_MODEL"),

					ChatURL: util.GetEnv("AI_CHAT_URL"),
					ChatKey: util.GetEnv("AI_CHAT_KEY"),
				})
			}

			app := &App{
				Registry:     registry,
				Queue:        queue,
				Key:          key,
				AiClient:     aiClient,
				MasterAPIKey: masterAPIKey,
			}
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
