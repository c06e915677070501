package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/park-engine/internal/eventbus"
)

const (
	defaultNatsURL = "nats://127.0.0.1:4222"
	timeFormat     = "2006-01-02T15:04:05Z"
)

func main() {
	var (
		natsURL    = flag.String("url", defaultNatsURL, "NATS server URL")
		stream     = flag.String("stream", "PARK", "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, stats")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		sources    = flag.String("sources", "", "Sources filter (comma-separated, e.g. map:park)")
		since      = flag.String("since", "1h", "Time duration since now (e.g., 1h, 30m) or RFC3339 time")
		limit      = flag.Int("limit", 100, "Maximum number of events")
		follow     = flag.Bool("follow", false, "Follow new events (like tail -f)")
	)
	flag.Parse()

	// Подключаемся к JetStream; стрим создаётся, если его ещё нет
	bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 0)
	if err != nil {
		log.Fatalf("❌ Failed to connect to NATS: %v", err)
	}
	defer bus.Close()

	// Выполняем команду
	switch *command {
	case "tail":
		if err := tailEvents(bus, &TailOptions{
			Filter: eventbus.Filter{
				Types:   parseStringList(*eventTypes),
				Sources: parseStringList(*sources),
			},
			Since:  *since,
			Limit:  *limit,
			Follow: *follow,
		}); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}

	case "stats":
		if err := showStats(bus); err != nil {
			log.Fatalf("❌ Stats failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, stats")
		os.Exit(1)
	}
}

type TailOptions struct {
	Filter eventbus.Filter
	Since  string
	Limit  int
	Follow bool
}

// tailEvents выводит события стрима, начиная с момента since
func tailEvents(bus *eventbus.JetStreamBus, opts *TailOptions) error {
	fmt.Printf("🎬 Tailing events (limit: %d, follow: %v)\n", opts.Limit, opts.Follow)

	startTime, err := parseSinceTime(opts.Since, time.Now())
	if err != nil {
		return fmt.Errorf("invalid since time: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan *eventbus.Envelope, 64)
	sub, err := bus.SubscribeSince(ctx, opts.Filter, startTime, func(_ context.Context, ev *eventbus.Envelope) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Без follow выходим, когда история закончилась (нет событий за idle)
	const idle = 2 * time.Second
	eventCount := 0
	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case ev := <-events:
			fmt.Print(formatEvent(ev))
			eventCount++
			if !opts.Follow && eventCount >= opts.Limit {
				fmt.Printf("\n📊 Total events: %d\n", eventCount)
				return nil
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(idle)
		case <-timer.C:
			if !opts.Follow {
				fmt.Printf("\n📊 Total events: %d\n", eventCount)
				return nil
			}
			timer.Reset(idle)
		case <-sigCh:
			fmt.Printf("\n📊 Total events: %d\n", eventCount)
			return nil
		}
	}
}

// showStats выводит состояние стрима
func showStats(bus *eventbus.JetStreamBus) error {
	fmt.Println("📊 Stream statistics")

	stats, err := bus.StreamStats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %v", err)
	}

	fmt.Printf("Stream: %s\n", stats.Name)
	fmt.Printf("Total events: %d (%d bytes)\n", stats.Messages, stats.Bytes)
	if stats.Messages > 0 {
		fmt.Printf("Period: %s - %s\n", stats.First.UTC().Format(timeFormat), stats.Last.UTC().Format(timeFormat))
	}
	return nil
}

// formatEvent возвращает событие в читаемом формате
func formatEvent(ev *eventbus.Envelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] %s\n",
		ev.Timestamp.Format("15:04:05"),
		ev.Source,
		ev.EventType,
		ev.ID)

	// Добавляем детали изменения карты
	var change struct {
		X       int    `json:"x"`
		Y       int    `json:"y"`
		Index   int    `json:"index"`
		Element string `json:"element"`
	}
	if err := ev.Decode(&change); err == nil {
		if ev.EventType == "MapResized" {
			fmt.Fprintf(&b, "  Size: %dx%d\n", change.X, change.Y)
		} else {
			fmt.Fprintf(&b, "  Tile: (%d,%d) Index: %d Element: %s\n", change.X, change.Y, change.Index, change.Element)
		}
	}
	return b.String()
}

// parseStringList парсит строку с разделителями-запятыми
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseSinceTime парсит относительное время типа "1h", "30m" или абсолютное
func parseSinceTime(since string, from time.Time) (time.Time, error) {
	if since == "" {
		return from, nil
	}

	duration, err := time.ParseDuration(since)
	if err != nil {
		// Пробуем парсить как абсолютное время
		return time.Parse(timeFormat, since)
	}

	return from.Add(-duration), nil
}
