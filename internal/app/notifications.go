package app

import (
	"sparkz/pkg/logger"
	"sparkz/pkg/queue"
)

// startNotificationWorker drains the notification queue in the background,
// turning published tasks into log lines. Without a broker there is no
// worker and publishing is already a no-op.
func startNotificationWorker(queueClient *queue.Client, log *logger.Logger) {
	if queueClient == nil {
		return
	}

	if backlog, err := queueClient.GetQueueLength(); err == nil && backlog > 0 {
		log.Info("Notification queue has %d pending tasks", backlog)
	}

	if err := queueClient.ConsumeNotificationTasks(func(task map[string]interface{}) error {
		return handleNotificationTask(log, task)
	}); err != nil {
		log.Error("Failed to start notification worker: %v", err)
	}
}

// handleNotificationTask never returns an error for malformed tasks: the
// consumer requeues on handler error, which would redeliver a permanently
// bad message forever. Malformed tasks are dropped with a warning.
func handleNotificationTask(log *logger.Logger, task map[string]interface{}) error {
	taskType, ok := task["type"].(string)
	if !ok {
		log.Warn("Dropping notification task without a type: %+v", task)
		return nil
	}

	switch taskType {
	case queue.RoutingKeyProjectPublished:
		log.Info("Nuevo proyecto publicado: %v (%v)", task["title"], task["category"])
	case queue.RoutingKeyDonationReceived:
		log.Info("Donación recibida: %v para %v", task["amount"], task["target_id"])
	default:
		log.Warn("Dropping notification task with unknown type %q", taskType)
	}
	return nil
}
