// Package job holds the scheduled background jobs of the medblog server.
package job

import (
	"fmt"

	"medblog/logger"
	"medblog/web/service"
)

// DigestJob mails the administrator a periodic content summary.
type DigestJob struct {
	serverService service.ServerService
	userService   service.UserService

	mailerService *service.MailerService
}

// NewDigestJob creates a digest job bound to the shared mailer.
func NewDigestJob(mailer *service.MailerService) *DigestJob {
	return &DigestJob{mailerService: mailer}
}

// Run is the cron entry point.
func (j *DigestJob) Run() {
	stats, err := j.serverService.GetContentStats()
	if err != nil {
		logger.Warning("digest job: load stats failed:", err)
		return
	}

	summary := fmt.Sprintf(
		"Posts: %d (%d published)\nTotal views: %d\nSubscribers: %d\nFeedback: %d",
		stats.Posts, stats.Published, stats.Views, stats.Subscribers, stats.Feedback,
	)
	logger.Info("daily digest:\n" + summary)

	admin, err := j.userService.GetFirstUser()
	if err != nil {
		logger.Warning("digest job: load admin failed:", err)
		return
	}
	if err := j.mailerService.SendDigest(admin.Email, summary); err != nil {
		logger.Warning("digest job: send failed:", err)
	}
}
