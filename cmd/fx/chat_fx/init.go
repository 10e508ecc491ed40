package chat_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"yatra/internal/realtime"
	"yatra/internal/repositories"
	"yatra/internal/services"
	"yatra/internal/support"
	"yatra/pkg/logger"
	"yatra/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		provideChatRepo,
		provideFAQRepo,
		provideHub,
		provideChatService),
	fx.Invoke(startHub))

func provideChatRepo(db *gorm.DB) repositories.ChatRepository {
	return repositories.NewChatRepository(db)
}

func provideFAQRepo(db *gorm.DB) repositories.FAQRepository {
	return repositories.NewFAQRepository(db)
}

func provideHub(bus realtime.Bus, log *logger.Logger) *realtime.Hub {
	return realtime.NewHub(bus, log)
}

func provideChatService(
	chats repositories.ChatRepository,
	faqs repositories.FAQRepository,
	accounts repositories.AccountRepository,
	ai utils.AIClientInterface,
	store support.ConversationStore,
	mail services.IMailService,
	hub *realtime.Hub,
	log *logger.Logger,
) services.ChatServiceInterface {
	return services.NewChatService(chats, faqs, accounts, ai, store, mail, hub, log)
}

// startHub closes the loop between the hub and the chat pipeline and
// subscribes the hub to the bus.
func startHub(lc fx.Lifecycle, hub *realtime.Hub, chat services.ChatServiceInterface) {
	hub.SetHandler(chat)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return hub.Start(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
