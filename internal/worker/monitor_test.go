package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

// --- fakes ---

type fakeScreener struct {
	mu        sync.Mutex
	snapshots map[string]domain.Snapshot
	errs      map[string]error
	calls     int
}

func (f *fakeScreener) Snapshot(ctx context.Context, cfg domain.SymbolConfig) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[cfg.Key]; ok {
		return domain.Snapshot{}, err
	}
	return f.snapshots[cfg.Key], nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) NotifyUser(chatID int64, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeNotifier) first() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[0]
}

type fakeSubRepo struct {
	mu      sync.Mutex
	history []bool
	active  []int64
}

func (f *fakeSubRepo) SetActive(ctx context.Context, chatID int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, active)
	return nil
}

func (f *fakeSubRepo) GetActiveChatIDs(ctx context.Context) ([]int64, error) {
	return f.active, nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts []domain.Alert
}

func (f *fakeAlertRepo) Save(ctx context.Context, alert domain.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

type fakeThrottle struct {
	mu    sync.Mutex
	seen  map[string]bool
	calls int
}

func (f *fakeThrottle) Allow(ctx context.Context, chatID int64, symbolKey string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if f.seen[symbolKey] {
		return false, nil
	}
	f.seen[symbolKey] = true
	return true, nil
}

// --- helpers ---

func snapshotWithDiff(key string, diffPct float64) domain.Snapshot {
	buy := decimal.NewFromInt(100)
	sell := buy.Add(decimal.NewFromFloat(diffPct))
	return domain.Snapshot{
		Symbol: domain.SymbolConfig{Key: key, Name: key + "/USDT"},
		Quotes: []domain.Quote{
			{Exchange: "Binance", Price: buy},
			{Exchange: "Bybit", Price: sell},
		},
		Opportunities: []domain.Opportunity{{
			BuyExchange:  "Binance",
			SellExchange: "Bybit",
			BuyPrice:     buy,
			SellPrice:    sell,
			Difference:   decimal.NewFromFloat(diffPct),
			Direction:    domain.DirectionBuy,
		}},
		CheckedAt: time.Now(),
	}
}

func plainRender(snapshot domain.Snapshot, threshold decimal.Decimal) string {
	return snapshot.Symbol.Key
}

func newTestManager(screener domain.SnapshotProvider, notifier domain.NotificationService, subRepo domain.SubscriptionRepository, alertRepo domain.AlertRepository, throttle domain.AlertThrottle, symbols []domain.SymbolConfig) *Manager {
	return NewManager(
		screener, notifier, subRepo, alertRepo, throttle, plainRender, symbols,
		Options{
			Interval:     time.Hour, // тики за пределами первого не нужны в тестах
			InitialDelay: 10 * time.Millisecond,
			Threshold:    decimal.NewFromFloat(0.5),
			Cooldown:     time.Minute,
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func waitFirstTick() { time.Sleep(150 * time.Millisecond) }

var btcOnly = []domain.SymbolConfig{{Key: "BTC", Name: "BTC/USDT"}}

// --- tests ---

func TestStartTwiceReportsAlreadyRunning(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 0.1)}}
	subRepo := &fakeSubRepo{}
	m := newTestManager(screener, &fakeNotifier{}, subRepo, nil, nil, btcOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := m.Start(ctx, 42); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if !m.IsRunning(42) {
		t.Fatal("subscription must stay running")
	}

	// Вторая попытка не должна дописывать состояние в репозиторий
	subRepo.mu.Lock()
	writes := len(subRepo.history)
	subRepo.mu.Unlock()
	if writes != 1 {
		t.Fatalf("expected 1 repo write, got %d", writes)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 0.1)}}
	subRepo := &fakeSubRepo{}
	m := newTestManager(screener, &fakeNotifier{}, subRepo, nil, nil, btcOnly)

	ctx := context.Background()

	// Stop без start - no-op
	m.Stop(ctx, 42)
	if len(subRepo.history) != 0 {
		t.Fatalf("stop of inactive subscription must not touch the repo")
	}

	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	m.Stop(ctx, 42)
	m.Stop(ctx, 42)

	if m.IsRunning(42) {
		t.Fatal("subscription must be stopped")
	}
	subRepo.mu.Lock()
	defer subRepo.mu.Unlock()
	if len(subRepo.history) != 2 { // true, false
		t.Fatalf("expected 2 repo writes, got %d", len(subRepo.history))
	}
}

func TestTickBelowThresholdEmitsNothing(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 0.3)}}
	notifier := &fakeNotifier{}
	m := newTestManager(screener, notifier, &fakeSubRepo{}, nil, nil, btcOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitFirstTick()

	screener.mu.Lock()
	calls := screener.calls
	screener.mu.Unlock()
	if calls == 0 {
		t.Fatal("first tick did not happen")
	}
	if notifier.count() != 0 {
		t.Fatalf("expected no notifications below threshold, got %d", notifier.count())
	}
}

func TestTickAboveThresholdDeliversAndLogs(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 2.0)}}
	notifier := &fakeNotifier{}
	alertRepo := &fakeAlertRepo{}
	m := newTestManager(screener, notifier, &fakeSubRepo{}, alertRepo, nil, btcOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitFirstTick()

	if notifier.count() != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.count())
	}

	alertRepo.mu.Lock()
	defer alertRepo.mu.Unlock()
	if len(alertRepo.alerts) != 1 {
		t.Fatalf("expected 1 alert logged, got %d", len(alertRepo.alerts))
	}
	alert := alertRepo.alerts[0]
	if alert.ChatID != 42 || alert.SymbolKey != "BTC" || alert.ID == "" {
		t.Errorf("unexpected alert record: %+v", alert)
	}
}

func TestStopBeforeFirstTickSuppressesDelivery(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 2.0)}}
	notifier := &fakeNotifier{}
	m := newTestManager(screener, notifier, &fakeSubRepo{}, nil, nil, btcOnly)

	ctx := context.Background()
	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	m.Stop(ctx, 42)
	waitFirstTick()

	if notifier.count() != 0 {
		t.Fatalf("expected no notifications after stop, got %d", notifier.count())
	}
}

func TestFailedSymbolDoesNotAbortTick(t *testing.T) {
	screener := &fakeScreener{
		snapshots: map[string]domain.Snapshot{"ETH": snapshotWithDiff("ETH", 2.0)},
		errs: map[string]error{
			"BTC": errors.New("all sources down"),
		},
	}
	notifier := &fakeNotifier{}
	symbols := []domain.SymbolConfig{
		{Key: "BTC", Name: "BTC/USDT"},
		{Key: "ETH", Name: "ETH/USDT"},
	}
	m := newTestManager(screener, notifier, &fakeSubRepo{}, nil, nil, symbols)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitFirstTick()

	if notifier.count() != 1 {
		t.Fatalf("expected ETH alert despite BTC failure, got %d notifications", notifier.count())
	}
	if notifier.first() != "ETH" {
		t.Errorf("unexpected message: %s", notifier.first())
	}
}

func TestThrottleSuppressesRepeatedAlert(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 2.0)}}
	notifier := &fakeNotifier{}
	throttle := &fakeThrottle{}
	m := newTestManager(screener, notifier, &fakeSubRepo{}, nil, throttle, btcOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx, 42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitFirstTick()

	// Второй проход вручную: тот же символ в окне подавления
	m.tick(ctx, 42)

	if notifier.count() != 1 {
		t.Fatalf("expected 1 notification with throttle, got %d", notifier.count())
	}
	if throttle.calls != 2 {
		t.Fatalf("expected 2 throttle checks, got %d", throttle.calls)
	}
}

func TestRestoreStartsActiveSubscriptions(t *testing.T) {
	screener := &fakeScreener{snapshots: map[string]domain.Snapshot{"BTC": snapshotWithDiff("BTC", 0.1)}}
	subRepo := &fakeSubRepo{active: []int64{1, 2}}
	m := newTestManager(screener, &fakeNotifier{}, subRepo, nil, nil, btcOnly)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Restore(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if !m.IsRunning(1) || !m.IsRunning(2) {
		t.Fatal("restored subscriptions must be running")
	}
	if m.IsRunning(3) {
		t.Fatal("unexpected subscription running")
	}
}
