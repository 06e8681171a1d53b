package scheduling

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Notifier delivers an appointment reminder to the patient. The channel
// (SMS, email, push) is the implementation's business.
type Notifier interface {
	NotifyAppointment(ctx context.Context, a *Appointment) error
}

// LogNotifier writes reminders to the log. Stands in until a real delivery
// channel is configured.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n *LogNotifier) NotifyAppointment(_ context.Context, a *Appointment) error {
	n.Log.Info().
		Str("appointment_id", a.ID.String()).
		Str("patient_id", a.PatientID.String()).
		Time("scheduled_at", a.ScheduledAt).
		Msg("appointment reminder")
	return nil
}

// Reminder periodically scans for appointments coming up within the lead
// window and notifies their patients once each.
type Reminder struct {
	repo     Repository
	notifier Notifier
	lead     time.Duration
	log      zerolog.Logger

	scheduler *gocron.Scheduler
	now       func() time.Time
}

func NewReminder(repo Repository, notifier Notifier, lead time.Duration, log zerolog.Logger) *Reminder {
	return &Reminder{
		repo:     repo,
		notifier: notifier,
		lead:     lead,
		log:      log.With().Str("component", "appointment-reminder").Logger(),
		now:      time.Now,
	}
}

// Start schedules the scan to run every minute until Stop is called.
func (r *Reminder) Start() error {
	r.scheduler = gocron.NewScheduler(time.UTC)
	if _, err := r.scheduler.Every(1).Minute().Do(func() {
		if err := r.RunOnce(context.Background()); err != nil {
			r.log.Error().Err(err).Msg("reminder scan failed")
		}
	}); err != nil {
		return err
	}
	r.scheduler.StartAsync()
	r.log.Info().Dur("lead", r.lead).Msg("appointment reminders started")
	return nil
}

func (r *Reminder) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

// RunOnce performs a single scan. A failed notification leaves the
// appointment unreminded so the next scan retries it.
func (r *Reminder) RunOnce(ctx context.Context) error {
	now := r.now().UTC()
	due, err := r.repo.DueForReminder(ctx, now, now.Add(r.lead))
	if err != nil {
		return err
	}
	for _, a := range due {
		if err := r.notifier.NotifyAppointment(ctx, a); err != nil {
			r.log.Warn().Err(err).Str("appointment_id", a.ID.String()).Msg("reminder delivery failed")
			continue
		}
		if err := r.repo.MarkReminded(ctx, a.ID, now); err != nil {
			return err
		}
	}
	return nil
}
