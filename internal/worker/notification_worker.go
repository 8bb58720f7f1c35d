package worker

import (
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartLeaderboardInvalidator subscribes the leaderboard cache invalidator to
// the mutating event stream.
func StartLeaderboardInvalidator(leaderboardService *service.LeaderboardService, dispatcher events.Dispatcher) {
	if leaderboardService == nil {
		return
	}
	leaderboardService.RegisterInvalidation(dispatcher)
}
