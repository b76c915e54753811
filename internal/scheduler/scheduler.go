package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-command/internal/command"
)

// Dispatcher runs a single weather command.
type Dispatcher interface {
	Handle(ctx context.Context, cmd command.Command) command.Reply
}

// Scheduler periodically broadcasts forecasts for configured cities.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	dispatcher Dispatcher
	notifier   Notifier
	cities     []string
	interval   time.Duration
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, dispatcher Dispatcher, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		scheduler:  s,
		dispatcher: dispatcher,
		notifier:   notifier,
		cities:     cities,
		interval:   interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first broadcast happens one interval after start.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no broadcast cities configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce broadcasts the forecast for every city and waits for all of them.
func (s *Scheduler) RunOnce(ctx context.Context) {
	log.Println("scheduler: running forecast broadcast")

	var wg sync.WaitGroup
	for _, city := range s.cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()

			reply := s.dispatcher.Handle(ctx, command.Command{Kind: command.KindForecast, City: city})
			if err := s.notifier.Notify(ctx, city, reply); err != nil {
				log.Printf("scheduler: notify failed for %s: %v", city, err)
			}
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed forecast broadcast")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
