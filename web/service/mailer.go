package service

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"

	"medblog/config"
	"medblog/database/model"
	"medblog/logger"
	"medblog/util/common"

	"github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const defaultMailBaseURL = "https://api.resend.com"

// defaultMailFrom is the sandbox sender of the transactional mail API.
const defaultMailFrom = "onboarding@resend.dev"

type mailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

// MailerService fans out newsletter and welcome mail through a
// Resend-compatible HTTP API. Every send is best-effort: failures are
// logged and never surfaced to the triggering request. With no API key
// configured the whole service is a silent no-op.
type MailerService struct {
	subscriberService SubscriberService

	APIKey  string
	BaseURL string
	From    string
	Client  *http.Client
}

func NewMailerService() *MailerService {
	from := os.Getenv("MEDBLOG_MAIL_FROM")
	if from == "" {
		from = defaultMailFrom
	}
	return &MailerService{
		APIKey:  os.Getenv("RESEND_API_KEY"),
		BaseURL: defaultMailBaseURL,
		From:    from,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *MailerService) Configured() bool {
	return s.APIKey != ""
}

// Send delivers one individually addressed message. One attempt, no
// retry.
func (s *MailerService) Send(to string, subject string, html string) error {
	payload, err := json.Marshal(mailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return common.NewErrorf("mail api responded %d", resp.StatusCode)
	}
	return nil
}

// NotifySubscribers dispatches a new-post notification to every current
// subscriber on a background goroutine and returns immediately.
func (s *MailerService) NotifySubscribers(post *model.Post) {
	if !s.Configured() {
		logger.Debug("mail transport not configured, skipping newsletter")
		return
	}
	go func() {
		defer common.Recover("newsletter dispatch")
		s.dispatch(post)
	}()
}

// dispatch reads the subscriber list at send time, so removals between
// publishes always take effect.
func (s *MailerService) dispatch(post *model.Post) {
	subscribers, err := s.subscriberService.List()
	if err != nil {
		logger.Warning("newsletter dispatch: load subscribers failed:", err)
		return
	}
	if len(subscribers) == 0 {
		logger.Debug("newsletter dispatch: no subscribers")
		return
	}

	postURL := fmt.Sprintf("%s/blog/%s", config.GetFrontendURL(), post.Slug)
	subject := "New Story: " + post.Title
	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #111;">%s</h2>
  <p>A new article has just been published.</p>
  <br/>
  <a href="%s" style="background-color: #000; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Read Now</a>
</div>`, post.Title, postURL)

	var sent, failed atomic.Int64
	for _, subscriber := range subscribers {
		if err := s.Send(subscriber.Email, subject, html); err != nil {
			failed.Inc()
			logger.Warningf("newsletter send to %s failed: %v", subscriber.Email, err)
			continue
		}
		sent.Inc()
	}
	logger.Infof("newsletter %q dispatched: %d sent, %d failed", post.Slug, sent.Load(), failed.Load())
}

// SendWelcome mails a welcome message to a new subscriber on a
// background goroutine.
func (s *MailerService) SendWelcome(email string) {
	if !s.Configured() {
		return
	}
	go func() {
		defer common.Recover("welcome mail")
		html := `<div style="font-family: sans-serif; padding: 20px;">
  <h2 style="color: #E11D48;">Welcome to MedBlog!</h2>
  <p>Thanks for subscribing. You have successfully joined our community.</p>
</div>`
		if err := s.Send(email, "Welcome to MedBlog", html); err != nil {
			logger.Warningf("welcome mail to %s failed: %v", email, err)
			return
		}
		logger.Infof("welcome mail sent to %s", email)
	}()
}

// SendDigest mails the daily content summary to the administrator.
func (s *MailerService) SendDigest(to string, stats string) error {
	if !s.Configured() {
		return nil
	}
	html := fmt.Sprintf(`<div style="font-family: sans-serif; padding: 20px;"><pre>%s</pre></div>`, stats)
	return s.Send(to, "MedBlog daily digest", html)
}
